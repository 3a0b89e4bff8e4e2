package handler

import (
	"github.com/fiscalmanager/backend/internal/application/company"
	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	BaseHandler
	companyService *company.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *company.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Create godoc
//
//	@ID				createCompany
//	@Summary		Create a company
//	@Tags			empresas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		company.CompanyRequest	true	"Company data"
//	@Success		201		{object}	dto.Response{data=company.CompanyResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/empresas [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req company.CompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.companyService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
//
//	@ID				listCompanies
//	@Summary		List companies
//	@Description	Companies owned by the caller
//	@Tags			empresas
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=[]company.CompanyResponse}
//	@Failure		401	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/empresas [get]
func (h *CompanyHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	companies, err := h.companyService.List(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// GetByID godoc
//
//	@ID				getCompany
//	@Summary		Get a company
//	@Tags			empresas
//	@Produce		json
//	@Param			id	path		string	true	"Company ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=company.CompanyResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/empresas/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.companyService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
//
//	@ID				updateCompany
//	@Summary		Update a company
//	@Description	Replaces every field; the CNPJ must stay unique for the owner
//	@Tags			empresas
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Company ID"	format(uuid)
//	@Param			request	body		company.CompanyRequest	true	"Company data"
//	@Success		200		{object}	dto.Response{data=company.CompanyResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/empresas/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req company.CompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.companyService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
//
//	@ID				deleteCompany
//	@Summary		Delete a company
//	@Tags			empresas
//	@Param			id	path	string	true	"Company ID"	format(uuid)
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=dto.MessageResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/empresas/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Empresa excluída com sucesso"})
}
