package estate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRow_MapsSpreadsheetHeaders(t *testing.T) {
	rec := map[string]interface{}{
		"Project name":                    "Marina Pearl",
		"Price (USD)":                     485000.0,
		"Property type (apartment/villa)": "Apartment",
		"City":                            "Dubai",
	}

	row := normalizeRow(rec)

	assert.Equal(t, "Marina Pearl", row["name"])
	assert.Equal(t, 485000.0, row["price"])
	assert.Equal(t, "Apartment", row["property_type"])
	// unknown headers fall back to lowercased field names
	assert.Equal(t, "Dubai", row["city"])
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "available", normalizeStatus("Available"))
	assert.Equal(t, "available", normalizeStatus("ready / available now"))
	assert.Equal(t, "off_plan", normalizeStatus("off plan"))
	assert.Equal(t, "off_plan", normalizeStatus(""))
}

func TestRowString(t *testing.T) {
	row := map[string]interface{}{
		"name":  "  Palm Crest  ",
		"empty": nil,
		"nan":   "NaN",
		"num":   42,
	}

	assert.Equal(t, "Palm Crest", rowString(row, "name"))
	assert.Empty(t, rowString(row, "empty"))
	assert.Empty(t, rowString(row, "nan"))
	assert.Empty(t, rowString(row, "missing"))
	assert.Equal(t, "42", rowString(row, "num"))
}

func TestRowFloat(t *testing.T) {
	row := map[string]interface{}{
		"f":       485000.0,
		"i":       3,
		"s":       "2,350,000",
		"bad":     "n/a",
		"nan":     math.NaN(),
		"nan_str": "NaN",
		"inf":     math.Inf(1),
	}

	assert.Equal(t, 485000.0, rowFloat(row, "f"))
	assert.Equal(t, 3.0, rowFloat(row, "i"))
	assert.Equal(t, 2350000.0, rowFloat(row, "s"))
	assert.Zero(t, rowFloat(row, "bad"))
	assert.Zero(t, rowFloat(row, "missing"))
	assert.Zero(t, rowFloat(row, "nan"))
	assert.Zero(t, rowFloat(row, "nan_str"))
	assert.Zero(t, rowFloat(row, "inf"))
}

func TestSplitName(t *testing.T) {
	first, last := splitName("John Smith")
	assert.Equal(t, "John", first)
	assert.Equal(t, "Smith", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)

	first, last = splitName("Anna Maria van der Berg")
	assert.Equal(t, "Anna", first)
	assert.Equal(t, "Maria van der Berg", last)

	first, last = splitName("   ")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
