package estate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewTable(t *testing.T) {
	projects := []Project{
		{Name: "Marina Pearl", City: "Dubai", Price: 485000, Bedrooms: 2, PropertyType: "apartment", Status: "available"},
		{Name: "Palm Crest", City: "Dubai", Price: 2350000, Bedrooms: 4, PropertyType: "villa", Status: "off_plan"},
	}

	out := PreviewTable(projects)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4) // header + separator + 2 rows
	assert.Equal(t, "| Project | City | Price (USD) | Bedrooms | Type | Status |", lines[0])
	assert.Contains(t, lines[2], "$485,000")
	assert.Contains(t, lines[3], "$2,350,000")
	assert.Contains(t, lines[3], "off_plan")
}

func TestPreviewTable_Empty(t *testing.T) {
	assert.Empty(t, PreviewTable(nil))
}

func TestPreviewTable_MissingFields(t *testing.T) {
	out := PreviewTable([]Project{{Name: "Mystery"}})

	assert.Contains(t, out, "| Mystery | N/A | N/A | N/A | N/A | N/A |")
}

func TestCompareTable(t *testing.T) {
	projects := []Project{
		{Name: "A", City: "Dubai", Price: 1000000, Bedrooms: 2, PropertyType: "apartment", Area: 120, Status: "available", Developer: "Emaar"},
		{Name: "B", City: "Mumbai", Price: 700000, Bedrooms: 3, PropertyType: "apartment", Area: 155, Status: "available", Developer: "Lodha"},
	}

	out := CompareTable(projects)

	assert.Contains(t, out, "| Feature | A | B |")
	assert.Contains(t, out, "| City | Dubai | Mumbai |")
	assert.Contains(t, out, "| Price | $1,000,000 | $700,000 |")
	assert.Contains(t, out, "| Area (sq m) | 120 | 155 |")
	assert.Contains(t, out, "| Developer | Emaar | Lodha |")
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "999", groupThousands("999"))
	assert.Equal(t, "1,000", groupThousands("1000"))
	assert.Equal(t, "485,000", groupThousands("485000"))
	assert.Equal(t, "2,350,000", groupThousands("2350000"))
}
