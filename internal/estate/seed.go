package estate

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

// csvColumns maps the spreadsheet headers to project fields.
var csvColumns = map[string]string{
	"Project name":                           "name",
	"No of bedrooms":                         "bedrooms",
	"bathrooms":                              "bathrooms",
	"unit type":                              "unit_type",
	"Completion status (off plan/available)": "status",
	"developer name":                         "developer",
	"Price (USD)":                            "price",
	"Area (sq mtrs)":                         "area",
	"Property type (apartment/villa)":        "property_type",
	"city":                                   "city",
	"country":                                "country",
	"completion_date":                        "completion_date",
	"features":                               "features",
	"facilities":                             "facilities",
	"Project description":                    "description",
}

// SeedFromCSV loads property records from path unless projects already exist.
func SeedFromCSV(ctx context.Context, store *Store, path string) (int, error) {
	n, err := store.CountProjects(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logx.Info().Int64("projects", n).Msg("Database already seeded, skipping")
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed csv: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return 0, fmt.Errorf("parse seed csv: %w", df.Err)
	}

	projects := make([]Project, 0, df.Nrow())
	for _, rec := range df.Maps() {
		row := normalizeRow(rec)

		name := rowString(row, "name")
		if name == "" {
			continue
		}

		projects = append(projects, Project{
			Name:           name,
			Bedrooms:       int(rowFloat(row, "bedrooms")),
			Bathrooms:      rowFloat(row, "bathrooms"),
			Status:         normalizeStatus(rowString(row, "status")),
			UnitType:       rowString(row, "unit_type"),
			Developer:      rowString(row, "developer"),
			Price:          rowFloat(row, "price"),
			Area:           rowFloat(row, "area"),
			PropertyType:   strings.ToLower(rowString(row, "property_type")),
			City:           rowString(row, "city"),
			Country:        rowString(row, "country"),
			CompletionDate: rowString(row, "completion_date"),
			Features:       rowString(row, "features"),
			Facilities:     rowString(row, "facilities"),
			Description:    rowString(row, "description"),
		})
	}

	if err := store.CreateProjects(ctx, projects); err != nil {
		return 0, err
	}
	logx.Info().Int("created", len(projects)).Msg("Database seeding complete")
	return len(projects), nil
}

func normalizeRow(rec map[string]interface{}) map[string]interface{} {
	row := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		if field, ok := csvColumns[k]; ok {
			row[field] = v
			continue
		}
		// already-normalized header
		row[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return row
}

func normalizeStatus(s string) string {
	if strings.Contains(strings.ToLower(s), "available") {
		return "available"
	}
	return "off_plan"
}

func rowString(row map[string]interface{}, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "NaN" {
		return ""
	}
	return s
}

func rowFloat(row map[string]interface{}, key string) float64 {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return finiteOrZero(n)
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", ""), 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	default:
		return 0
	}
}

// finiteOrZero drops the NaN that gota produces for empty numeric cells;
// ParseFloat also accepts the literal "NaN" from pandas-style exports.
func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
