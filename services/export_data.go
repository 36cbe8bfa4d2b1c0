package services

import (
	"fmt"

	"offertetool/scopes"
)

// ExportRow is one row of the quote sheet: a scope heading or a line.
type ExportRow struct {
	Level       int    // 0 = scope heading, 1 = line
	Index       string // "1", "1.1" etc
	Description string
	Type        LineType
	Quantity    float64
	Unit        string
	UnitPrice   float64
	Total       float64
}

// quoteExportRows groups lines under their scope in line order. Lines
// without a scope end up under "Overige regels".
func quoteExportRows(lines []QuoteLine) []ExportRow {
	var (
		order  []scopes.Key
		byKey  = make(map[scopes.Key][]QuoteLine)
		hasKey = make(map[scopes.Key]bool)
	)
	for _, l := range lines {
		if !hasKey[l.Scope] {
			hasKey[l.Scope] = true
			order = append(order, l.Scope)
		}
		byKey[l.Scope] = append(byKey[l.Scope], l)
	}

	var rows []ExportRow
	for i, k := range order {
		heading := "Overige regels"
		if k != "" {
			heading = k.Label()
		}
		group := byKey[k]
		totals := make([]float64, len(group))
		for j, l := range group {
			totals[j] = l.Total
		}
		rows = append(rows, ExportRow{
			Level:       0,
			Index:       fmt.Sprintf("%d", i+1),
			Description: heading,
			Total:       sumExact(totals...),
		})
		for j, l := range group {
			rows = append(rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", i+1, j+1),
				Description: l.Description,
				Type:        l.Type,
				Quantity:    l.Quantity,
				Unit:        l.Unit,
				UnitPrice:   l.UnitPrice,
				Total:       l.Total,
			})
		}
	}
	return rows
}
