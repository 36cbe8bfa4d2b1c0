package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type sheetStyles struct {
	title, subtitle, header, heading, line, label, value int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&s.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&s.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2F5D34"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&s.heading, "scope heading", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Border: thinBorders()}},
		{&s.line, "line", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&s.label, "summary label", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&s.value, "summary value", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// sheetName makes a title usable as a sheet name: no reserved characters,
// at most 31 runes.
func sheetName(title, fallback string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		return fallback
	}
	return name
}

func setWidths(f *excelize.File, sheet string, columns []string, widths []float64) error {
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	return nil
}

func writeTitle(f *excelize.File, sheet, lastCol, title string, subtitles []string, st sheetStyles) (int, error) {
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return 0, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", st.title)

	row := 2
	for _, sub := range subtitles {
		if sub == "" {
			continue
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.MergeCell(sheet, cell, fmt.Sprintf("%s%d", lastCol, row)); err != nil {
			return 0, fmt.Errorf("merge subtitle: %w", err)
		}
		f.SetCellValue(sheet, cell, sanitizeExcelCell(sub))
		f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, row), st.subtitle)
		row++
	}
	return row + 1, nil
}

func writeSummary(f *excelize.File, sheet string, row int, labelCol, valueCol string, pairs [][2]string, st sheetStyles) {
	for _, p := range pairs {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, labelCol+r, p[0])
		f.SetCellStyle(sheet, labelCol+r, labelCol+r, st.label)
		f.SetCellValue(sheet, valueCol+r, p[1])
		f.SetCellStyle(sheet, valueCol+r, valueCol+r, st.value)
		row++
	}
}

func writeFile(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateQuoteExcel renders a calculated quote: lines grouped per scope,
// followed by the totals.
func GenerateQuoteExcel(draft QuoteDraft, res QuoteResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(draft.Title, "Offerte")
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]
	if err := setWidths(f, sheet, columns, []float64{6, 44, 12, 10, 10, 16, 16}); err != nil {
		return nil, err
	}
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	title := draft.Title
	if title == "" {
		title = "Offerte"
	}
	var customer string
	if draft.Customer != "" {
		customer = "Klant: " + draft.Customer
	}
	var number string
	if draft.Number != "" {
		number = "Offertenummer: " + draft.Number
	}
	row, err := writeTitle(f, sheet, lastCol, title, []string{number, customer}, st)
	if err != nil {
		return nil, err
	}

	headers := []string{"#", "Omschrijving", "Soort", "Aantal", "Eenheid", "Prijs", "Totaal"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), st.header)
	row++

	for _, r := range quoteExportRows(res.Quote.Lines) {
		rs := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rs, r.Index)
		style := st.line
		if r.Level == 0 {
			style = st.heading
			f.SetCellValue(sheet, "B"+rs, sanitizeExcelCell(r.Description))
		} else {
			f.SetCellValue(sheet, "B"+rs, "  "+sanitizeExcelCell(r.Description))
			f.SetCellValue(sheet, "C"+rs, string(r.Type))
			f.SetCellValue(sheet, "D"+rs, RoundMoney(r.Quantity))
			f.SetCellValue(sheet, "E"+rs, sanitizeExcelCell(r.Unit))
			f.SetCellValue(sheet, "F"+rs, FormatEUR(r.UnitPrice))
		}
		f.SetCellValue(sheet, "G"+rs, FormatEUR(r.Total))
		f.SetCellStyle(sheet, "A"+rs, lastCol+rs, style)
		row++
	}

	t := res.Quote.Totals.Rounded()
	writeSummary(f, sheet, row+1, "F", "G", [][2]string{
		{"Materiaal:", FormatEUR(t.Materials)},
		{"Arbeid:", FormatEUR(t.Labor)},
		{"Machines:", FormatEUR(t.Equipment)},
		{"Subtotaal:", FormatEUR(t.Subtotal)},
		{fmt.Sprintf("Marge (%s):", FormatPercent(t.MarginPercent)), FormatEUR(t.MarginAmount)},
		{"Totaal excl. btw:", FormatEUR(t.TotalExVAT)},
		{"Btw:", FormatEUR(t.VAT)},
		{"Totaal incl. btw:", FormatEUR(t.TotalInclVAT)},
		{"Uren:", FormatHours(t.TotalHours)},
	}, st)

	return writeFile(f)
}

// GenerateNacalculatieExcel renders a deviation report: the per-scope
// comparison, the totals and the insights on a second sheet.
func GenerateNacalculatieExcel(title string, r NacalculatieReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title, "Nacalculatie")
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]
	if err := setWidths(f, sheet, columns, []float64{26, 16, 16, 16, 14, 12}); err != nil {
		return nil, err
	}
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = "Nacalculatie"
	}
	row, err := writeTitle(f, sheet, lastCol, title, []string{
		fmt.Sprintf("%d werkdagen, %d medewerkers", r.ActualDays, r.Workers),
	}, st)
	if err != nil {
		return nil, err
	}

	headers := []string{"Scope", "Gepland", "Werkelijk", "Afwijking", "Afwijking %", "Status"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), st.header)
	row++

	for _, s := range r.Scopes {
		rs := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rs, s.Scope.Label())
		f.SetCellValue(sheet, "B"+rs, FormatHours(s.PlannedHours))
		f.SetCellValue(sheet, "C"+rs, FormatHours(s.ActualHours))
		f.SetCellValue(sheet, "D"+rs, FormatHours(s.DeviationHours))
		f.SetCellValue(sheet, "E"+rs, FormatPercent(s.DeviationPercent))
		f.SetCellValue(sheet, "F"+rs, string(s.Status))
		f.SetCellStyle(sheet, "A"+rs, lastCol+rs, st.line)
		row++
	}

	writeSummary(f, sheet, row+1, "D", "E", [][2]string{
		{"Geplande uren:", FormatHours(r.PlannedHours)},
		{"Werkelijke uren:", FormatHours(r.ActualHours)},
		{"Afwijking:", FormatPercent(r.DeviationPercent)},
		{"Status:", string(r.Status)},
		{"Uren zonder scope:", FormatHours(r.UnscopedHours)},
		{"Machinekosten gepland:", FormatEUR(r.PlannedEquipmentCost)},
		{"Machinekosten werkelijk:", FormatEUR(r.ActualEquipmentCost)},
	}, st)

	const insightSheet = "Inzichten"
	if _, err := f.NewSheet(insightSheet); err != nil {
		return nil, fmt.Errorf("create insight sheet: %w", err)
	}
	if err := setWidths(f, insightSheet, []string{"A", "B", "C"}, []float64{12, 40, 80}); err != nil {
		return nil, err
	}
	for i, h := range []string{"Type", "Titel", "Beschrijving"} {
		f.SetCellValue(insightSheet, fmt.Sprintf("%s1", columns[i]), h)
	}
	f.SetCellStyle(insightSheet, "A1", "C1", st.header)
	for i, in := range r.Insights {
		rs := fmt.Sprintf("%d", i+2)
		f.SetCellValue(insightSheet, "A"+rs, string(in.Type))
		f.SetCellValue(insightSheet, "B"+rs, sanitizeExcelCell(in.Title))
		f.SetCellValue(insightSheet, "C"+rs, sanitizeExcelCell(in.Description))
	}

	return writeFile(f)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
