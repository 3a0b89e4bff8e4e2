package handler

import (
	"github.com/fiscalmanager/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the tenant overview
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Get godoc
//
//	@ID				getDashboard
//	@Summary		Dashboard
//	@Description	Counts, invoice value, tax sums and the five most recent invoices of the caller
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=report.DashboardResponse}
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	resp, err := h.dashboardService.Get(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
