package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"offertetool/reference"
)

// RowError is a single field-level error on one row of an uploaded file.
type RowError struct {
	Row     int    `json:"rij"`
	Field   string `json:"veld"`
	Message string `json:"melding"`
}

// ImportResult is returned after parsing and validating an uploaded price book.
type ImportResult struct {
	TotalRows int                 `json:"totaalRijen"`
	ValidRows int                 `json:"geldigeRijen"`
	ErrorRows int                 `json:"foutRijen"`
	Imported  int                 `json:"geimporteerd"`
	Errors    []RowError          `json:"fouten,omitempty"`
	Products  []reference.Product `json:"-"`
	FileName  string              `json:"-"`
}

// ErrImportRejected is returned when an import contains invalid rows.
// Nothing is written in that case.
var ErrImportRejected = errors.New("price book import has invalid rows")

// ErrInvalidFile wraps every error caused by the uploaded file itself.
var ErrInvalidFile = errors.New("invalid price book file")

type importColumn struct {
	key      string
	label    string
	required bool
}

var priceBookColumns = []importColumn{
	{"naam", "Naam", true},
	{"categorie", "Categorie", true},
	{"eenheid", "Eenheid", true},
	{"inkoopprijs", "Inkoopprijs", false},
	{"verkoopprijs", "Verkoopprijs", true},
	{"verlies", "Verlies %", false},
	{"actief", "Actief", false},
}

// parseCSV reads a CSV file and returns headers + data rows. Both comma and
// semicolon separated files are accepted.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	if first, _, _ := strings.Cut(string(raw), "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		reader.Comma = ';'
	}

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeaders maps uploaded column headers to column keys. Unknown columns
// map to "".
func mapHeaders(headers []string) []string {
	labelToKey := make(map[string]string, len(priceBookColumns)*2)
	for _, c := range priceBookColumns {
		labelToKey[strings.ToLower(c.label)] = c.key
		labelToKey[c.key] = c.key
	}
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, "*"))
		mapped[i] = labelToKey[norm]
	}
	return mapped
}

// parseAmount reads a Dutch or plain number: "1.234,50", "€ 12,5", "12.5".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "€"))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, "%")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return cast.ToFloat64E(s)
}

func parseActive(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ja", "j", "yes":
		return true, nil
	case "nee", "n", "no":
		return false, nil
	}
	return cast.ToBoolE(s)
}

// ParsePriceBookFile parses and validates an uploaded .csv or .xlsx price
// book. Rows with errors are reported, valid rows become products.
func ParsePriceBookFile(file io.Reader, fileName string) (*ImportResult, error) {
	var (
		headers  []string
		dataRows [][]string
		err      error
	)
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("%w: unsupported file format: must be .csv or .xlsx", ErrInvalidFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	columnKeys := mapHeaders(headers)
	present := make(map[string]bool)
	for _, k := range columnKeys {
		present[k] = true
	}
	for _, c := range priceBookColumns {
		if c.required && !present[c.key] {
			return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidFile, c.label)
		}
	}

	result := &ImportResult{TotalRows: len(dataRows), FileName: fileName}
	errorRows := make(map[int]bool)
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2
		data := make(map[string]string, len(columnKeys))
		empty := true
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			data[key] = strings.TrimSpace(row[colIdx])
			if data[key] != "" {
				empty = false
			}
		}
		if empty {
			result.TotalRows--
			continue
		}

		p, rowErrs := productFromRow(rowNum, data)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			errorRows[rowNum] = true
			continue
		}
		result.Products = append(result.Products, p)
	}
	result.ErrorRows = len(errorRows)
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

func productFromRow(rowNum int, data map[string]string) (reference.Product, []RowError) {
	var errs []RowError
	label := func(key string) string {
		for _, c := range priceBookColumns {
			if c.key == key {
				return c.label
			}
		}
		return key
	}
	amount := func(key string) float64 {
		if data[key] == "" {
			return 0
		}
		v, err := parseAmount(data[key])
		if err != nil {
			errs = append(errs, RowError{Row: rowNum, Field: label(key), Message: fmt.Sprintf("%q is geen getal", data[key])})
		}
		return v
	}

	p := reference.Product{
		Name:          data["naam"],
		Category:      strings.ToLower(data["categorie"]),
		Unit:          data["eenheid"],
		PurchasePrice: amount("inkoopprijs"),
		SalePrice:     amount("verkoopprijs"),
		LossPercent:   amount("verlies"),
	}
	active, err := parseActive(data["actief"])
	if err != nil {
		errs = append(errs, RowError{Row: rowNum, Field: label("actief"), Message: fmt.Sprintf("%q is geen ja/nee", data["actief"])})
	}
	p.Active = active
	if data["verkoopprijs"] == "" {
		errs = append(errs, RowError{Row: rowNum, Field: label("verkoopprijs"), Message: "Verkoopprijs is verplicht"})
	}

	var verrs validation.Errors
	if errors.As(p.Validate(), &verrs) {
		fields := make([]string, 0, len(verrs))
		for f := range verrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			errs = append(errs, RowError{Row: rowNum, Field: jsonFieldLabel(f), Message: verrs[f].Error()})
		}
	}
	return p, errs
}

func jsonFieldLabel(field string) string {
	switch field {
	case "naam":
		return "Naam"
	case "categorie":
		return "Categorie"
	case "eenheid":
		return "Eenheid"
	case "inkoopprijs":
		return "Inkoopprijs"
	case "verkoopprijs":
		return "Verkoopprijs"
	case "verliesPercentage":
		return "Verlies %"
	}
	return field
}

// GenerateErrorReport creates a downloadable .xlsx file from row errors.
func GenerateErrorReport(rowErrors []RowError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Fouten"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Rij")
	f.SetCellValue(sheet, "B1", "Veld")
	f.SetCellValue(sheet, "C1", "Fout")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range rowErrors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}
	return writeFile(f)
}

type PriceBookService struct {
	writer PriceBookWriter
	log    *zap.Logger
}

func NewPriceBookService(writer PriceBookWriter, log *zap.Logger) *PriceBookService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PriceBookService{writer: writer, log: log}
}

// Import validates the whole file first and writes only when every row is
// valid. With invalid rows the result carries the errors and
// ErrImportRejected is returned.
func (s *PriceBookService) Import(owner string, file io.Reader, fileName string) (*ImportResult, error) {
	res, err := ParsePriceBookFile(file, fileName)
	if err != nil {
		return nil, err
	}
	if res.ErrorRows > 0 {
		s.log.Info("price book import rejected",
			zap.String("owner", owner),
			zap.String("file", fileName),
			zap.Int("errorRows", res.ErrorRows),
		)
		return res, ErrImportRejected
	}
	for i := range res.Products {
		res.Products[i].Owner = owner
	}
	n, err := s.writer.UpsertProducts(owner, res.Products)
	if err != nil {
		return nil, fmt.Errorf("store products: %w", err)
	}
	res.Imported = n
	s.log.Info("price book imported",
		zap.String("owner", owner),
		zap.String("file", fileName),
		zap.Int("products", n),
	)
	return res, nil
}
