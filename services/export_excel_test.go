package services

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"offertetool/scopes"
)

func testQuoteResult(t *testing.T) (QuoteDraft, QuoteResult) {
	t.Helper()
	manual := 0.0
	lines := []QuoteLine{
		{ID: "a", Scope: scopes.Bestrating, Type: LineLabor, Description: "Arbeid Bestrating", Unit: "uur", Quantity: 10, UnitPrice: 45, Total: 450},
		{ID: "b", Scope: scopes.Bestrating, Type: LineMaterial, Description: "Betontegel 30x30", Unit: "m2", Quantity: 20, UnitPrice: 18.5, Total: 370},
		{ID: "c", Scope: scopes.Gras, Type: LineLabor, Description: "Arbeid Gras", Unit: "uur", Quantity: 2, UnitPrice: 45, Total: 90},
		{ID: "d", Type: LineMaterial, Description: "=HYPERLINK(\"x\")", Unit: "st", Quantity: 1, UnitPrice: 25, Total: 25, Manual: true, MarginOverride: &manual},
	}
	draft := QuoteDraft{ID: "q1", Title: "Tuin familie De Vries", Customer: "De Vries"}
	res := QuoteResult{
		QuoteID: "q1",
		Quote: Quote{
			Lines:  lines,
			Totals: CalculateTotals(395, 540, 0, 15, 21),
		},
	}
	return draft, res
}

func TestQuoteExportRows(t *testing.T) {
	_, res := testQuoteResult(t)
	rows := quoteExportRows(res.Quote.Lines)

	want := []struct {
		level int
		index string
		desc  string
	}{
		{0, "1", "Bestrating"},
		{1, "1.1", "Arbeid Bestrating"},
		{1, "1.2", "Betontegel 30x30"},
		{0, "2", "Gras"},
		{1, "2.1", "Arbeid Gras"},
		{0, "3", "Overige regels"},
		{1, "3.1", "=HYPERLINK(\"x\")"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Level != w.level || rows[i].Index != w.index {
			t.Errorf("row %d = level %d index %q, want %d %q", i, rows[i].Level, rows[i].Index, w.level, w.index)
		}
	}
	if rows[0].Total != 820 {
		t.Errorf("scope heading total = %v, want 820", rows[0].Total)
	}
}

func TestGenerateQuoteExcel(t *testing.T) {
	draft, res := testQuoteResult(t)

	out, err := GenerateQuoteExcel(draft, res)
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(out))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Tuin familie De Vries" {
		t.Fatalf("sheets = %v", sheets)
	}
	sheet := sheets[0]

	title, _ := f.GetCellValue(sheet, "A1")
	if title != "Tuin familie De Vries" {
		t.Errorf("title = %q", title)
	}
	customer, _ := f.GetCellValue(sheet, "A2")
	if customer != "Klant: De Vries" {
		t.Errorf("customer = %q", customer)
	}
	header, _ := f.GetCellValue(sheet, "B4")
	if header != "Omschrijving" {
		t.Errorf("header = %q", header)
	}
	heading, _ := f.GetCellValue(sheet, "B5")
	if heading != "Bestrating" {
		t.Errorf("first scope heading = %q", heading)
	}
	price, _ := f.GetCellValue(sheet, "F6")
	if price != "€ 45,00" {
		t.Errorf("labor unit price = %q", price)
	}
	injected, _ := f.GetCellValue(sheet, "B11")
	if injected != "  '=HYPERLINK(\"x\")" {
		t.Errorf("manual line cell = %q", injected)
	}
}

func TestGenerateQuoteExcelEmpty(t *testing.T) {
	out, err := GenerateQuoteExcel(QuoteDraft{}, QuoteResult{})
	if err != nil {
		t.Fatalf("GenerateQuoteExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(out))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); sheets[0] != "Offerte" {
		t.Errorf("sheets = %v", sheets)
	}
}

func TestGenerateNacalculatieExcel(t *testing.T) {
	plan := Voorcalculatie{TotalNormHours: 40, EstimatedDays: 3.33, HoursPerScope: map[scopes.Key]float64{scopes.Bestrating: 40}}
	entries := []TimeEntry{
		{Date: day(4), Worker: "Jan", Hours: 24, Scope: scopes.Bestrating},
		{Date: day(5), Worker: "Piet", Hours: 22, Scope: scopes.Bestrating},
	}
	r := CalculateNacalculatie(plan, entries, nil)

	out, err := GenerateNacalculatieExcel("Project: Tuin/Achter", r)
	if err != nil {
		t.Fatalf("GenerateNacalculatieExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(out))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Project- Tuin-Achter" || sheets[1] != "Inzichten" {
		t.Fatalf("sheets = %v", sheets)
	}
	scope, _ := f.GetCellValue(sheets[0], "A5")
	pct, _ := f.GetCellValue(sheets[0], "E5")
	if scope != "Bestrating" || pct != "+15,0%" {
		t.Errorf("scope row = %q %q", scope, pct)
	}
	kind, _ := f.GetCellValue("Inzichten", "A2")
	if kind != string(InsightWarning) {
		t.Errorf("first insight type = %q", kind)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Offerte 12", "Offerte 12"},
		{"", "Offerte"},
		{"  ", "Offerte"},
		{"a/b:c", "a-b-c"},
		{"Een hele lange titel die langer is dan toegestaan", "Een hele lange titel die langer"},
	}
	for _, tt := range tests {
		if got := sheetName(tt.in, "Offerte"); got != tt.want {
			t.Errorf("sheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"Normal text", "Normal text"},
		{"=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"+cmd", "'+cmd"},
		{"-cmd", "'-cmd"},
		{"@SUM(A1)", "'@SUM(A1)"},
		{"\tcmd", "'\tcmd"},
		{"\rcmd", "'\rcmd"},
		{"|cmd", "'|cmd"},
		{"Tegels 30x30", "Tegels 30x30"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Fatalf("expected 4 borders, got %d", len(borders))
	}
	for _, b := range borders {
		if b.Style != 1 || b.Color != "#000000" {
			t.Errorf("border %s = %+v", b.Type, b)
		}
	}
}
