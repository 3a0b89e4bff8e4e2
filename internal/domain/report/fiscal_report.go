// Package report describes the fiscal report handed to renderers and the
// archive generated reports are kept in.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Title heads every rendered report
const Title = "Relatório Fiscal - FiscalManager Total"

// baseName is the download name of a report, without extension
const baseName = "relatorio_fiscal"

// Format is an output format of the fiscal report
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "pdf", "xlsx" and the "excel" alias
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", shared.NewValidationError("formato", "formato de relatório inválido: %q", s)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Filename returns the attachment name, relatorio_fiscal.<ext>
func (f Format) Filename() string {
	return baseName + "." + string(f)
}

// FiscalReport is the data every renderer receives. Invoices are ordered
// newest first; Summary covers exactly those invoices.
type FiscalReport struct {
	GeneratedAt time.Time
	Summary     fiscal.InvoiceSummary
	Invoices    []fiscal.Invoice
}

// Renderer turns a FiscalReport into a document of one format
type Renderer interface {
	Format() Format
	Render(r FiscalReport) ([]byte, error)
}

// ArchivedReport is a previously generated report kept in the archive
type ArchivedReport struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Archive stores generated reports
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	List(ctx context.Context, prefix string) ([]ArchivedReport, error)
}

// ArchivePrefix is the key prefix of one owner's archived reports
func ArchivePrefix(ownerID uuid.UUID) string {
	return fmt.Sprintf("reports/%s/", ownerID)
}

// ArchiveKey returns reports/<owner>/<timestamp>-relatorio_fiscal.<ext>
func ArchiveKey(ownerID uuid.UUID, at time.Time, f Format) string {
	return ArchivePrefix(ownerID) + at.UTC().Format("20060102T150405Z") + "-" + f.Filename()
}
