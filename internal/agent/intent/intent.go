// Package intent extracts structured search filters from free-text buyer
// messages. Extraction is deterministic: regexes and keyword tables pull out
// price bands, bedrooms, cities, property types, project/developer names,
// feature keywords, and lead contact details, plus routing flags for
// greetings, off-topic chatter, investment, and comparison requests.
package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Filters is the structured interpretation of a buyer message.
type Filters struct {
	RewrittenQuery   string   `json:"rewritten_query"`
	ProjectName      string   `json:"project_name,omitempty"`
	Developer        string   `json:"developer,omitempty"`
	City             string   `json:"city,omitempty"`
	PriceMin         float64  `json:"price_min,omitempty"`
	PriceMax         float64  `json:"price_max,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Bedrooms         int      `json:"bedrooms,omitempty"`
	PropertyType     string   `json:"property_type,omitempty"`
	MustHaveFeatures []string `json:"must_have_features,omitempty"`
	LeadName         string   `json:"lead_name,omitempty"`
	LeadEmail        string   `json:"lead_email,omitempty"`

	IsGreeting       bool `json:"is_greeting"`
	IsOffTopic       bool `json:"is_off_topic"`
	IsInvestment     bool `json:"is_investment"`
	IsComparison     bool `json:"is_comparison"`
	IsDetailQuestion bool `json:"is_detail_question"`
}

// HasStrongFilter reports whether at least one filter is specific enough to
// run a structured search without clarifying questions.
func (f Filters) HasStrongFilter() bool {
	return f.City != "" || f.PriceMin > 0 || f.PriceMax > 0 || f.Bedrooms > 0 ||
		f.PropertyType != "" || f.Developer != "" || f.ProjectName != "" ||
		len(f.MustHaveFeatures) > 0
}

var knownCities = []string{
	// multi-word entries first so they win over their substrings
	"dubai marina",
	"downtown dubai",
	"abu dhabi",
	"new york",
	"dubai",
	"london",
	"miami",
	"chicago",
	"nyc",
	"toronto",
	"paris",
	"sydney",
	"mumbai",
	"bangalore",
	"delhi",
}

var cityNormalize = map[string]string{
	"nyc":            "new york",
	"downtown dubai": "dubai",
}

var propertyTypes = []string{"apartment", "villa", "townhouse", "condo", "flat", "studio"}

var featureKeywords = map[string][]string{
	"sea view": {"sea view", "ocean view", "waterfront"},
	"pool":     {"pool", "swimming"},
	"gym":      {"gym", "fitness"},
	"balcony":  {"balcony", "terrace"},
	"parking":  {"parking"},
	"metro":    {"metro", "subway", "train", "station"},
	"ready":    {"ready to move", "ready-to-move"},
}

var currencyTokens = []string{"aed", "usd", "eur", "gbp", "inr", "cad", "aud", "sgd"}

var projectKeywords = []string{
	"residence", "residences", "residency", "tower", "towers", "villa", "villas",
	"heights", "collection", "apartments", "resort", "bay", "marina", "harbour",
	"harbor", "plaza", "residential", "signature", "downtown", "midtown",
	"edgewater", "palm", "crescent",
}

const numPat = `([\d,.]+)\s*(k|m|b|mn|bn|mil|million|billion)?`

var (
	rangeRe = regexp.MustCompile(`(?i)(?:between|from)\s+` + numPat +
		`\s*(?:aed|usd|eur|gbp|inr|cad|aud|sgd)?\s*(?:and|to)\s+` + numPat)
	underRe    = regexp.MustCompile(`(?i)(?:under|below|less than|up to|max|within)\s+` + numPat)
	overRe     = regexp.MustCompile(`(?i)(?:over|above|at least|min|greater than|more than)\s+` + numPat)
	slashBedRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	bedRe      = regexp.MustCompile(`(?i)(\d+)\s*(bedroom|bed|br|bhk)`)
	quotedRe   = regexp.MustCompile(`['"]([^'"]{3,80})['"]`)
	calledRe   = regexp.MustCompile(`(?i)(?:called|named|project)\s+([A-Za-z][\w\s'-]{3,80})`)
	byDevRe    = regexp.MustCompile(`(?i)(?:by|developer)\s+([A-Za-z][\w\s'-]{3,80})`)
	emailRe    = regexp.MustCompile(`([\w.+-]+@[\w-]+\.[\w.-]+)`)
	nameRe     = regexp.MustCompile(`(?i)(?:name\s*[:=]\s*|i am\s+|i'm\s+|my name is\s+)([A-Za-z][A-Za-z\s]{1,60})`)
	spanRe     = regexp.MustCompile(`[A-Za-z0-9&.'-]+(?:\s+[A-Za-z0-9&.'-]+){1,6}`)
)

var (
	greetTerms    = []string{"hello", "hi", "hey", "good morning", "good evening"}
	offTopicTerms = []string{"joke", "weather", "movie", "song", "news", "sports"}
	investTerms   = []string{"investment", "roi", "yield", "cap rate", "appreciation", "irr"}
	compareTerms  = []string{"compare", "vs", "versus", "difference", "better"}
	detailTerms   = []string{
		"amenity", "amenities", "amenties", "facility", "facilities", "facilty",
		"feature", "features", "description", "what is there", "what does it have",
		"cinema", "theatre", "theater", "pool", "gym", "spa",
	}
	propertyTerms = []string{"property", "project", "apartment", "villa", "bedroom", "budget", "city", "price"}
)

// Extract parses a buyer message into Filters.
func Extract(query string) Filters {
	lower := strings.ToLower(query)

	f := Filters{RewrittenQuery: strings.TrimSpace(query)}

	f.PriceMin, f.PriceMax, f.Currency = extractPrice(lower)
	f.Bedrooms = extractBedrooms(lower)
	f.PropertyType = extractPropertyType(lower)
	f.City = extractCity(lower)
	f.ProjectName, f.Developer = extractProjectAndDeveloper(query)
	f.MustHaveFeatures = extractFeatures(lower)
	f.LeadEmail = extractEmail(query)
	f.LeadName = extractLeadName(query)

	if f.ProjectName == "" {
		f.ProjectName = extractProjectKeywordSpan(query, f.City)
	}

	f.IsGreeting = containsAny(lower, greetTerms) && !containsAny(lower, []string{"apartment", "property", "villa", "house", "project"})
	f.IsOffTopic = !containsAny(lower, propertyTerms) && containsAny(lower, offTopicTerms)
	f.IsInvestment = containsAny(lower, investTerms)
	f.IsComparison = containsAny(lower, compareTerms)
	f.IsDetailQuestion = containsAny(lower, detailTerms)

	return f
}

func extractPrice(lower string) (min, max float64, currency string) {
	currency = "usd"
	for _, token := range currencyTokens {
		if strings.Contains(lower, token) {
			currency = token
			break
		}
	}

	if m := rangeRe.FindStringSubmatch(lower); m != nil {
		return parseAmount(m[1], m[2]), parseAmount(m[3], m[4]), currency
	}
	if m := underRe.FindStringSubmatch(lower); m != nil {
		return 0, parseAmount(m[1], m[2]), currency
	}
	if m := overRe.FindStringSubmatch(lower); m != nil {
		return parseAmount(m[1], m[2]), 0, currency
	}
	return 0, 0, currency
}

func parseAmount(value, suffix string) float64 {
	n, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(suffix) {
	case "k":
		return n * 1_000
	case "m", "mn", "mil", "million":
		return n * 1_000_000
	case "b", "bn", "billion":
		return n * 1_000_000_000
	}
	return n
}

func extractBedrooms(lower string) int {
	if m := slashBedRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := bedRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

func extractPropertyType(lower string) string {
	for _, pt := range propertyTypes {
		if strings.Contains(lower, pt) {
			// flat/condo/studio normalize to apartment for SQL filtering
			if pt == "flat" || pt == "condo" || pt == "studio" {
				return "apartment"
			}
			return pt
		}
	}
	return ""
}

func extractCity(lower string) string {
	for _, city := range knownCities {
		if strings.Contains(lower, city) {
			if norm, ok := cityNormalize[city]; ok {
				return norm
			}
			return city
		}
	}
	return ""
}

func extractProjectAndDeveloper(text string) (project, developer string) {
	if m := quotedRe.FindStringSubmatch(text); m != nil {
		project = strings.TrimSpace(m[1])
	}
	if project == "" {
		if m := calledRe.FindStringSubmatch(text); m != nil {
			project = strings.TrimSpace(m[1])
		}
	}
	if m := byDevRe.FindStringSubmatch(text); m != nil {
		developer = strings.TrimSpace(m[1])
	}
	return project, developer
}

// extractProjectKeywordSpan grabs a project-like phrase when the main
// extractors missed it: 2-7 word spans containing a real-estate keyword.
func extractProjectKeywordSpan(text, existingCity string) string {
	var candidates []string
	for _, span := range spanRe.FindAllString(text, -1) {
		low := strings.ToLower(span)
		matched := false
		for _, kw := range projectKeywords {
			if strings.Contains(low, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if existingCity != "" && strings.Contains(low, existingCity) && len(strings.Fields(low)) <= 2 {
			continue
		}
		candidates = append(candidates, strings.TrimSpace(span))
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool { return len(candidates[i]) > len(candidates[j]) })
	return candidates[0]
}

func extractFeatures(lower string) []string {
	var feats []string
	for _, key := range []string{"sea view", "pool", "gym", "balcony", "parking", "metro", "ready"} {
		if containsAny(lower, featureKeywords[key]) {
			feats = append(feats, key)
		}
	}
	return feats
}

func extractEmail(text string) string {
	if m := emailRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func extractLeadName(text string) string {
	if m := nameRe.FindStringSubmatch(text); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), ",.")
	}
	return ""
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
