package handler

import (
	"net/http"

	appreport "github.com/fiscalmanager/backend/internal/application/report"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/gin-gonic/gin"
)

// ArchiveKeyHeader carries the archive key of a report that was stored
const ArchiveKeyHeader = "X-Report-Archive-Key"

// ReportHandler serves the rendered fiscal reports
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// PDF godoc
//
//	@ID				getReportPDF
//	@Summary		Fiscal report as PDF
//	@Tags			relatorios
//	@Produce		application/pdf
//	@Param			empresa_id	query		string	false	"Company filter"	format(uuid)
//	@Success		200			{file}		binary
//	@Failure		400			{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		401			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/relatorios/pdf [get]
func (h *ReportHandler) PDF(c *gin.Context) {
	h.serve(c, report.FormatPDF)
}

// Excel godoc
//
//	@ID				getReportExcel
//	@Summary		Fiscal report as XLSX
//	@Tags			relatorios
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			empresa_id	query		string	false	"Company filter"	format(uuid)
//	@Success		200			{file}		binary
//	@Failure		400			{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		401			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/relatorios/excel [get]
func (h *ReportHandler) Excel(c *gin.Context) {
	h.serve(c, report.FormatXLSX)
}

func (h *ReportHandler) serve(c *gin.Context, format report.Format) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	companyID, ok := h.companyFilter(c)
	if !ok {
		return
	}

	out, err := h.reportService.Generate(c.Request.Context(), scope, format, appreport.ReportFilter{CompanyID: companyID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+out.Filename)
	if out.ArchiveKey != "" {
		c.Header(ArchiveKeyHeader, out.ArchiveKey)
	}
	c.Data(http.StatusOK, out.ContentType, out.Body)
}

// ListArchived godoc
//
//	@ID				listArchivedReports
//	@Summary		Archived reports
//	@Description	Reports previously generated by the caller. Unavailable when no archive is configured.
//	@Tags			relatorios
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=[]appreport.ArchivedReportResponse}
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		503	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/relatorios/arquivo [get]
func (h *ReportHandler) ListArchived(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	reports, err := h.reportService.ListArchived(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reports)
}
