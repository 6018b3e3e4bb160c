package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PriceRange(t *testing.T) {
	f := Extract("apartments between 1m and 2.5m aed in dubai")

	assert.Equal(t, 1_000_000.0, f.PriceMin)
	assert.Equal(t, 2_500_000.0, f.PriceMax)
	assert.Equal(t, "aed", f.Currency)
	assert.Equal(t, "dubai", f.City)
	assert.True(t, f.HasStrongFilter())
}

func TestExtract_PriceUnder(t *testing.T) {
	f := Extract("2 bedroom apartment under 500k usd")

	assert.Zero(t, f.PriceMin)
	assert.Equal(t, 500_000.0, f.PriceMax)
	assert.Equal(t, "usd", f.Currency)
	assert.Equal(t, 2, f.Bedrooms)
	assert.Equal(t, "apartment", f.PropertyType)
}

func TestExtract_PriceOver(t *testing.T) {
	f := Extract("villas over 2 million")

	assert.Equal(t, 2_000_000.0, f.PriceMin)
	assert.Zero(t, f.PriceMax)
	assert.Equal(t, "villa", f.PropertyType)
}

func TestExtract_SlashBedrooms(t *testing.T) {
	f := Extract("looking for 2/3 bhk in mumbai")

	assert.Equal(t, 2, f.Bedrooms)
	assert.Equal(t, "mumbai", f.City)
}

func TestExtract_PropertyTypeNormalization(t *testing.T) {
	assert.Equal(t, "apartment", Extract("a condo in miami").PropertyType)
	assert.Equal(t, "apartment", Extract("studio in london").PropertyType)
	assert.Equal(t, "villa", Extract("a villa please").PropertyType)
}

func TestExtract_CityNormalization(t *testing.T) {
	assert.Equal(t, "new york", Extract("apartments in nyc").City)
	assert.Equal(t, "dubai marina", Extract("flats in dubai marina").City)
}

func TestExtract_QuotedProjectName(t *testing.T) {
	f := Extract(`Tell me about "Marina Pearl Residences"`)
	assert.Equal(t, "Marina Pearl Residences", f.ProjectName)
}

func TestExtract_Developer(t *testing.T) {
	f := Extract("show me villas by Emaar")
	assert.Equal(t, "Emaar", f.Developer)
}

func TestExtract_ProjectKeywordSpan(t *testing.T) {
	f := Extract("Any updates on Emerald Bay Towers")
	assert.Contains(t, f.ProjectName, "Emerald Bay Towers")
}

func TestExtract_LeadContact(t *testing.T) {
	f := Extract("I'm John Smith, my email is john.smith@example.com")

	assert.Equal(t, "John Smith", f.LeadName)
	assert.Equal(t, "john.smith@example.com", f.LeadEmail)
}

func TestExtract_Features(t *testing.T) {
	f := Extract("apartment with sea view, a pool and near the metro")

	require.Len(t, f.MustHaveFeatures, 3)
	assert.Contains(t, f.MustHaveFeatures, "sea view")
	assert.Contains(t, f.MustHaveFeatures, "pool")
	assert.Contains(t, f.MustHaveFeatures, "metro")
}

func TestExtract_RoutingFlags(t *testing.T) {
	assert.True(t, Extract("hello there").IsGreeting)
	assert.False(t, Extract("hi, looking for an apartment").IsGreeting)

	assert.True(t, Extract("tell me a joke").IsOffTopic)
	assert.False(t, Extract("tell me about property prices").IsOffTopic)

	assert.True(t, Extract("what is the rental yield here").IsInvestment)
	assert.True(t, Extract("compare these two for me").IsComparison)
	assert.True(t, Extract("what amenities does it have").IsDetailQuestion)
}

func TestHasStrongFilter_Empty(t *testing.T) {
	f := Extract("hello")
	assert.False(t, f.HasStrongFilter())
}
