package estate

import (
	"fmt"
	"strings"
)

// PreviewTable renders search results as a compact markdown table for the UI.
func PreviewTable(projects []Project) string {
	if len(projects) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| Project | City | Price (USD) | Bedrooms | Type | Status |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, p := range projects {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			orNA(p.Name), orNA(p.City), formatPrice(p.Price),
			formatBedrooms(p.Bedrooms), orNA(p.PropertyType), orNA(p.Status))
	}
	return b.String()
}

// CompareTable renders a feature-by-feature comparison, one column per project.
func CompareTable(projects []Project) string {
	if len(projects) == 0 {
		return ""
	}

	headers := []string{"Feature"}
	for _, p := range projects {
		headers = append(headers, p.Name)
	}

	rows := [][]string{
		row("City", projects, func(p Project) string { return orNA(p.City) }),
		row("Price", projects, func(p Project) string { return formatPrice(p.Price) }),
		row("Bedrooms", projects, func(p Project) string { return formatBedrooms(p.Bedrooms) }),
		row("Type", projects, func(p Project) string { return orNA(p.PropertyType) }),
		row("Area (sq m)", projects, func(p Project) string {
			if p.Area <= 0 {
				return "N/A"
			}
			return fmt.Sprintf("%.0f", p.Area)
		}),
		row("Status", projects, func(p Project) string { return orNA(p.Status) }),
		row("Developer", projects, func(p Project) string { return orNA(p.Developer) }),
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("| " + strings.Repeat("--- | ", len(headers)-1) + "--- |\n")
	for _, r := range rows {
		b.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
	return b.String()
}

func row(label string, projects []Project, field func(Project) string) []string {
	cells := []string{label}
	for _, p := range projects {
		cells = append(cells, field(p))
	}
	return cells
}

func formatPrice(price float64) string {
	if price <= 0 {
		return "N/A"
	}
	return "$" + groupThousands(fmt.Sprintf("%.0f", price))
}

func formatBedrooms(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
