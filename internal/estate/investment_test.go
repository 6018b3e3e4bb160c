package estate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeInvestment_Deterministic(t *testing.T) {
	p := Project{Name: "Marina Pearl", City: "Dubai", Price: 485000}
	prices := []float64{485000, 2350000, 390000, 3100000}

	a := AnalyzeInvestment(p, prices)
	b := AnalyzeInvestment(p, prices)

	assert.Equal(t, a, b, "analysis must be a pure function of its inputs")
	assert.Equal(t, 4, a.Comparables)
	assert.Greater(t, a.RentalYield, 0.0)
}

func TestAnalyzeInvestment_BelowMeanBoostsYield(t *testing.T) {
	prices := []float64{400000, 600000, 800000, 1000000}

	cheap := AnalyzeInvestment(Project{City: "Dubai", Price: 400000}, prices)
	expensive := AnalyzeInvestment(Project{City: "Dubai", Price: 1000000}, prices)

	assert.Greater(t, cheap.RentalYield, expensive.RentalYield)
	// adjustment is clamped to ±10% of the city base
	assert.LessOrEqual(t, cheap.RentalYield, 0.06*1.1+1e-12)
	assert.GreaterOrEqual(t, expensive.RentalYield, 0.06*0.9-1e-12)
}

func TestAnalyzeInvestment_UnknownCityFallback(t *testing.T) {
	a := AnalyzeInvestment(Project{City: "Atlantis", Price: 500000}, nil)

	assert.InDelta(t, fallbackYield, a.RentalYield, 1e-9)
	assert.InDelta(t, 0.03, a.Appreciation, 1e-9)
	assert.Zero(t, a.CityMeanPrice)
}

func TestAnalyzeInvestment_AppreciationBounds(t *testing.T) {
	// extreme dispersion still clamps into [0.02, 0.08]
	wild := AnalyzeInvestment(Project{City: "Dubai", Price: 500000}, []float64{100000, 9000000})
	flat := AnalyzeInvestment(Project{City: "Dubai", Price: 500000}, []float64{500000, 500000, 500000})

	assert.LessOrEqual(t, wild.Appreciation, 0.08)
	assert.GreaterOrEqual(t, flat.Appreciation, 0.02)
}

func TestAnalyzeInvestment_Verdict(t *testing.T) {
	a := AnalyzeInvestment(Project{City: "Dubai", Price: 485000}, []float64{485000, 600000})

	assert.GreaterOrEqual(t, a.Score, 1.0)
	assert.LessOrEqual(t, a.Score, 10.0)
	assert.NotEmpty(t, a.Verdict)
}

func TestInvestmentSummary(t *testing.T) {
	a := AnalyzeInvestment(Project{Name: "Marina Pearl", City: "Dubai", Price: 485000}, []float64{485000})
	s := a.Summary()

	assert.Contains(t, s, "Marina Pearl")
	assert.Contains(t, s, "Rental Yield")
	assert.Contains(t, s, "/10")
}
