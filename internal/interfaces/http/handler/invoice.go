package handler

import (
	"github.com/fiscalmanager/backend/internal/application/fiscal"
	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice-related HTTP requests. Invoices have no
// update endpoint.
type InvoiceHandler struct {
	BaseHandler
	invoiceService *fiscal.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *fiscal.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create godoc
//
//	@ID				createInvoice
//	@Summary		Emit an invoice
//	@Description	Snapshots every referenced product and computes ICMS, PIS, COFINS and IPI per line
//	@Tags			notas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		fiscal.CreateInvoiceRequest	true	"Invoice data"
//	@Success		201		{object}	dto.Response{data=fiscal.InvoiceResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/notas [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req fiscal.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
//
//	@ID				listInvoices
//	@Summary		List invoices
//	@Description	Newest first
//	@Tags			notas
//	@Produce		json
//	@Param			empresa_id	query		string	false	"Company filter"	format(uuid)
//	@Success		200			{object}	dto.Response{data=[]fiscal.InvoiceResponse}
//	@Failure		400			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/notas [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	companyID, ok := h.companyFilter(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), scope, fiscal.InvoiceListFilter{CompanyID: companyID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// GetByID godoc
//
//	@ID				getInvoice
//	@Summary		Get an invoice
//	@Tags			notas
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=fiscal.InvoiceResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/notas/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
//
//	@ID				deleteInvoice
//	@Summary		Delete an invoice
//	@Tags			notas
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=dto.MessageResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/notas/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Nota fiscal excluída com sucesso"})
}
