package report

import (
	"fmt"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// invoice table column widths on maroto's 12-column grid
var pdfInvoiceCols = []int{1, 3, 2, 2, 1, 1, 1, 1}

// PDFRenderer renders the fiscal report as an A4 landscape PDF
type PDFRenderer struct {
	location *time.Location
}

// NewPDFRenderer creates a PDF renderer printing dates in loc (UTC if nil)
func NewPDFRenderer(loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{location: loc}
}

// Format implements report.Renderer
func (r *PDFRenderer) Format() report.Format {
	return report.FormatPDF
}

// Render implements report.Renderer
func (r *PDFRenderer) Render(doc report.FiscalReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, report.Title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Gerado em "+formatDate(doc.GeneratedAt, r.location), props.Text{
			Size:  9,
			Align: align.Center,
		}),
	)

	r.addSummary(m, doc)
	r.addInvoices(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func (r *PDFRenderer) addSummary(m core.Maroto, doc report.FiscalReport) {
	t := doc.Summary.Totals
	rows := [][2]string{
		{"Total de Notas", formatCount(doc.Summary.Count)},
		{"Valor Total", formatMoney(t.Total)},
		{"ICMS", formatMoney(t.ICMS)},
		{"PIS", formatMoney(t.PIS)},
		{"COFINS", formatMoney(t.COFINS)},
		{"IPI", formatMoney(t.IPI)},
	}

	m.AddRow(10,
		text.NewCol(12, "Resumo", props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}),
	)
	for _, row := range rows {
		m.AddRow(7,
			text.NewCol(4, row[0], props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(4, row[1], props.Text{Size: 10, Align: align.Right}),
			col.New(4),
		)
	}
}

func (r *PDFRenderer) addInvoices(m core.Maroto, doc report.FiscalReport) {
	m.AddRow(12,
		text.NewCol(12, "Notas Fiscais", props.Text{Size: 12, Style: fontstyle.Bold, Top: 5}),
	)

	if len(doc.Invoices) == 0 {
		m.AddRow(8, text.NewCol(12, "Nenhuma nota fiscal emitida.", props.Text{Size: 9}))
		return
	}

	header := props.Text{Size: 8, Style: fontstyle.Bold}
	m.AddRow(8, invoiceRow(invoiceHeaders, header)...)
	m.AddRow(1, line.NewCol(12))

	body := props.Text{Size: 8}
	for _, inv := range doc.Invoices {
		values := []string{
			inv.Number,
			inv.CompanyName,
			formatDate(inv.IssuedAt, r.location),
			formatMoney(inv.Totals.Total),
			formatMoney(inv.Totals.ICMS),
			formatMoney(inv.Totals.PIS),
			formatMoney(inv.Totals.COFINS),
			formatMoney(inv.Totals.IPI),
		}
		m.AddRow(7, invoiceRow(values, body)...)
	}
}

// invoiceRow lays values out on the invoice grid; amount columns are
// right-aligned
func invoiceRow(values []string, style props.Text) []core.Col {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		p := style
		if i >= 3 {
			p.Align = align.Right
		}
		cols[i] = text.NewCol(pdfInvoiceCols[i], v, p)
	}
	return cols
}
