package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"leadgen-engine/internal/domain"
)

// Input workbook layout: one sheet per record set.
const (
	CompanySheet = "Company"
	ContactSheet = "Contacts"
)

// Input column headers. Lookup is by header name, not position, so extra
// columns are fine.
const (
	colCompanyName = "Company Name"
	colRegion      = "Country/Region"
	colFullName    = "Full Name"
	colCurrentCo   = "Current Company"
)

// ReadCompanies loads company records from an .xlsx workbook or a .csv file.
func ReadCompanies(path string) ([]domain.Company, error) {
	rows, err := readRows(path, CompanySheet)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows, colCompanyName)
	if err != nil {
		return nil, fmt.Errorf("sheet: %s: %w", path, err)
	}

	var out []domain.Company
	for _, row := range rows[1:] {
		name := cell(row, idx, colCompanyName)
		if name == "" {
			continue
		}
		out = append(out, domain.Company{
			Name:   name,
			Region: cell(row, idx, colRegion),
		})
	}
	return out, nil
}

// ReadContacts loads contact records from an .xlsx workbook or a .csv file.
func ReadContacts(path string) ([]domain.Contact, error) {
	rows, err := readRows(path, ContactSheet)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows, colFullName)
	if err != nil {
		return nil, fmt.Errorf("sheet: %s: %w", path, err)
	}

	var out []domain.Contact
	for _, row := range rows[1:] {
		name := cell(row, idx, colFullName)
		if name == "" {
			continue
		}
		out = append(out, domain.Contact{
			FullName: name,
			Company:  cell(row, idx, colCurrentCo),
		})
	}
	return out, nil
}

func readRows(path, sheetName string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVRows(path)
	case ".xlsx", ".xlsm":
		return readXLSXRows(path, sheetName)
	default:
		return nil, fmt.Errorf("sheet: unsupported input format %q", filepath.Ext(path))
	}
}

func readXLSXRows(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet: read sheet %q: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet: sheet %q has no data rows", sheetName)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheet: read csv %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet: csv %s has no data rows", path)
	}
	return rows, nil
}

func headerIndex(rows [][]string, required string) (map[string]int, error) {
	idx := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		idx[strings.TrimSpace(col)] = i
	}
	if _, ok := idx[required]; !ok {
		return nil, fmt.Errorf("missing required column %q", required)
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
