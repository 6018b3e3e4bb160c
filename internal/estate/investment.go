package estate

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// cityBaseYields are baseline gross rental yields per market.
var cityBaseYields = map[string]float64{
	"dubai":     0.06,
	"mumbai":    0.03,
	"london":    0.04,
	"new york":  0.045,
	"bangalore": 0.05,
	"miami":     0.05,
	"toronto":   0.04,
}

const fallbackYield = 0.04

// InvestmentAnalysis summarizes a project's investment potential.
type InvestmentAnalysis struct {
	Project       string  `json:"project"`
	City          string  `json:"city"`
	Price         float64 `json:"price"`
	RentalYield   float64 `json:"rental_yield"`
	Appreciation  float64 `json:"estimated_appreciation"`
	Score         float64 `json:"investment_score"`
	Verdict       string  `json:"verdict"`
	Comparables   int     `json:"comparables"`
	CityMeanPrice float64 `json:"city_mean_price"`
}

// AnalyzeInvestment scores a project against its city comparables.
//
// The yield starts from the city baseline and shifts with the project's price
// relative to the city mean: units priced under the mean rent out at a higher
// gross yield. Appreciation tracks the dispersion of city prices, so volatile
// markets carry a wider upside estimate. The whole computation is a pure
// function of the inputs.
func AnalyzeInvestment(p Project, cityPrices []float64) InvestmentAnalysis {
	base := fallbackYield
	if y, ok := cityBaseYields[strings.ToLower(strings.TrimSpace(p.City))]; ok {
		base = y
	}

	mean := 0.0
	sigma := 0.0
	if len(cityPrices) > 0 {
		mean = stat.Mean(cityPrices, nil)
	}
	if len(cityPrices) > 1 {
		sigma = stat.StdDev(cityPrices, nil)
	}

	rentalYield := base
	if p.Price > 0 && mean > 0 {
		adj := math.Sqrt(mean / p.Price)
		rentalYield = base * clampFloat(adj, 0.9, 1.1)
	}

	appreciation := 0.03
	if mean > 0 && sigma > 0 {
		cv := sigma / mean
		appreciation = clampFloat(0.02+0.06*cv, 0.02, 0.08)
	}

	score := rentalYield*100 + appreciation*50
	score = clampFloat(score, 1, 10)

	verdict := "Average Investment"
	switch {
	case score > 7:
		verdict = "Excellent Investment"
	case score > 5:
		verdict = "Good Investment"
	}

	return InvestmentAnalysis{
		Project:       p.Name,
		City:          p.City,
		Price:         p.Price,
		RentalYield:   rentalYield,
		Appreciation:  appreciation,
		Score:         score,
		Verdict:       verdict,
		Comparables:   len(cityPrices),
		CityMeanPrice: mean,
	}
}

// Summary renders the analysis for the chat model to relay.
func (a InvestmentAnalysis) Summary() string {
	return fmt.Sprintf(
		"Project: %s\nPrice: $%.0f\nRental Yield: %.2f%%\nEstimated Appreciation: %.2f%%\nInvestment Score: %.1f/10\nVerdict: %s",
		a.Project, a.Price, a.RentalYield*100, a.Appreciation*100, a.Score, a.Verdict,
	)
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
