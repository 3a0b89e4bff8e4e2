package handler

import (
	"github.com/fiscalmanager/backend/internal/application/catalog"
	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// Create godoc
//
//	@ID				createProduct
//	@Summary		Create a product
//	@Description	The company must belong to the caller. Omitted rates take their defaults.
//	@Tags			produtos
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalog.ProductRequest	true	"Product data"
//	@Success		201		{object}	dto.Response{data=catalog.ProductResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/produtos [post]
func (h *ProductHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
//
//	@ID				listProducts
//	@Summary		List products
//	@Tags			produtos
//	@Produce		json
//	@Param			empresa_id	query		string	false	"Company filter"	format(uuid)
//	@Success		200			{object}	dto.Response{data=[]catalog.ProductResponse}
//	@Failure		400			{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/produtos [get]
func (h *ProductHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	companyID, ok := h.companyFilter(c)
	if !ok {
		return
	}

	products, err := h.productService.List(c.Request.Context(), scope, catalog.ProductListFilter{CompanyID: companyID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID godoc
//
//	@ID				getProduct
//	@Summary		Get a product
//	@Tags			produtos
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=catalog.ProductResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/produtos/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.productService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
//
//	@ID				updateProduct
//	@Summary		Update a product
//	@Tags			produtos
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Product ID"	format(uuid)
//	@Param			request	body		catalog.ProductRequest	true	"Product data"
//	@Success		200		{object}	dto.Response{data=catalog.ProductResponse}
//	@Failure		400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure		404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/produtos/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
//
//	@ID				deleteProduct
//	@Summary		Delete a product
//	@Tags			produtos
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=dto.MessageResponse}
//	@Failure		404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Security		BearerAuth
//	@Router			/produtos/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Produto excluído com sucesso"})
}
