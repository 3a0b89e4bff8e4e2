package report

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the only worksheet of the spreadsheet
const SheetName = "Relatório Fiscal"

const headerFill = "4472C4"

// XLSXRenderer renders the fiscal report as a single-sheet workbook with
// one row per invoice. Amounts are numeric cells.
type XLSXRenderer struct {
	location *time.Location
}

// NewXLSXRenderer creates a spreadsheet renderer printing dates in loc (UTC if nil)
func NewXLSXRenderer(loc *time.Location) *XLSXRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &XLSXRenderer{location: loc}
}

// Format implements report.Renderer
func (r *XLSXRenderer) Format() report.Format {
	return report.FormatXLSX
}

// Render implements report.Renderer
func (r *XLSXRenderer) Render(doc report.FiscalReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	widths := make([]int, len(invoiceHeaders))
	track := func(i int, s string) {
		if n := utf8.RuneCountInString(s); n > widths[i] {
			widths[i] = n
		}
	}

	header := make([]any, len(invoiceHeaders))
	for i, h := range invoiceHeaders {
		header[i] = h
		track(i, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for n, inv := range doc.Invoices {
		issued := formatDate(inv.IssuedAt, r.location)
		row := []any{inv.Number, inv.CompanyName, issued}
		track(0, inv.Number)
		track(1, inv.CompanyName)
		track(2, issued)
		for _, a := range totalsColumns(inv.Totals) {
			track(len(row), a.StringFixed(2))
			row = append(row, a.InexactFloat64())
		}

		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write invoice %s: %w", inv.Number, err)
		}
	}

	if err := r.styleHeader(f); err != nil {
		return nil, err
	}
	if err := r.applyWidths(f, widths); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *XLSXRenderer) styleHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(invoiceHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

// applyWidths sets every column to its longest cell plus two characters
func (r *XLSXRenderer) applyWidths(f *excelize.File, widths []int) error {
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(w+2)); err != nil {
			return fmt.Errorf("set width of column %s: %w", name, err)
		}
	}
	return nil
}

func totalsColumns(t fiscal.InvoiceTotals) []decimal.Decimal {
	return []decimal.Decimal{t.Total, t.ICMS, t.PIS, t.COFINS, t.IPI}
}
