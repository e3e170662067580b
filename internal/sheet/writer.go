package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"leadgen-engine/internal/domain"
)

// Output workbook layout.
const (
	CompanyOutSheet = "Company_Revenue"
	ContactOutSheet = "Contact_Enrichment"
)

var companyHeaders = []string{
	"Company Name", "Country/Region",
	"Estimated revenue (basis public data)", "Calculated Tier",
}

var contactHeaders = []string{
	"Full Name", "Current Company", "LinkedIn URL", "Current Designation",
	"Work Email", "EnrichmentSource", "Confidence",
}

// WriteWorkbook writes both result sets into one .xlsx workbook. The
// revenue column carries a currency grouping format so amounts render as
// $1,234,567 rather than raw floats.
func WriteWorkbook(path string, companies []domain.CompanyResult, contacts []domain.ContactResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CompanyOutSheet); err != nil {
		return fmt.Errorf("sheet: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ContactOutSheet); err != nil {
		return fmt.Errorf("sheet: add sheet: %w", err)
	}

	companyRows := make([][]any, 0, len(companies))
	for _, c := range companies {
		var revenue any
		if c.Revenue.AmountUSD != nil {
			revenue = *c.Revenue.AmountUSD
		}
		companyRows = append(companyRows, []any{c.Name, c.Region, revenue, c.Tier})
	}
	if err := writeSheet(f, CompanyOutSheet, companyHeaders, companyRows); err != nil {
		return err
	}

	contactRows := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		contactRows = append(contactRows, []any{
			c.FullName, c.Company,
			deref(c.LinkedInURL), deref(c.Designation), deref(c.WorkEmail),
			c.Source, string(c.Confidence),
		})
	}
	if err := writeSheet(f, ContactOutSheet, contactHeaders, contactRows); err != nil {
		return err
	}

	// $#,##0 on the revenue column (C), data rows only
	currency := "$#,##0"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	if err != nil {
		return fmt.Errorf("sheet: currency style: %w", err)
	}
	if len(companyRows) > 0 {
		last := fmt.Sprintf("C%d", len(companyRows)+1)
		if err := f.SetCellStyle(CompanyOutSheet, "C2", last, style); err != nil {
			return fmt.Errorf("sheet: apply currency style: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("sheet: save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheetName string, headers []string, rows [][]any) error {
	widths := make([]int, len(headers))

	for col, h := range headers {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("sheet: cell ref: %w", err)
		}
		if err := f.SetCellValue(sheetName, cellRef, h); err != nil {
			return fmt.Errorf("sheet: write header: %w", err)
		}
		widths[col] = len(h)
	}

	for r, row := range rows {
		for col, v := range row {
			cellRef, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("sheet: cell ref: %w", err)
			}
			if v == nil {
				continue
			}
			if err := f.SetCellValue(sheetName, cellRef, v); err != nil {
				return fmt.Errorf("sheet: write cell: %w", err)
			}
			if n := len(fmt.Sprint(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	// widths track the longest value per column, same as the display the
	// downstream spreadsheet users expect
	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("sheet: column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(w+2)); err != nil {
			return fmt.Errorf("sheet: column width: %w", err)
		}
	}
	return nil
}

// WriteCompaniesCSV writes the company result set as CSV; the revenue
// column holds the raw integer amount.
func WriteCompaniesCSV(path string, companies []domain.CompanyResult) error {
	rows := [][]string{companyHeaders}
	for _, c := range companies {
		revenue := ""
		if c.Revenue.AmountUSD != nil {
			revenue = strconv.FormatFloat(*c.Revenue.AmountUSD, 'f', 0, 64)
		}
		rows = append(rows, []string{c.Name, c.Region, revenue, c.Tier})
	}
	return writeCSV(path, rows)
}

func WriteContactsCSV(path string, contacts []domain.ContactResult) error {
	rows := [][]string{contactHeaders}
	for _, c := range contacts {
		rows = append(rows, []string{
			c.FullName, c.Company,
			deref(c.LinkedInURL), deref(c.Designation), deref(c.WorkEmail),
			c.Source, string(c.Confidence),
		})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sheet: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("sheet: write csv %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
