// Package handler holds the gin handlers of the FiscalManager API.
package handler

import (
	"errors"
	"net/http"

	reportapp "github.com/fiscalmanager/backend/internal/application/report"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/logger"
	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/fiscalmanager/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// companyQueryParam filters lists and reports by company
const companyQueryParam = "empresa_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError converts an error returned by a service into a response.
// Domain errors keep their message and field; anything else is logged and
// reported as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code),
			dto.NewFieldErrorResponse(code, domainErr.Message, domainErr.Field, requestID))
		return
	}

	if errors.Is(err, reportapp.ErrArchiveDisabled) {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Report archive is not enabled")
		return
	}

	logger.FromContext(c.Request.Context()).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// bindJSON decodes and validates the request body. On failure the 400
// response has already been written.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// scope returns the tenant scope of the caller. On failure the 401
// response has already been written.
func (h *BaseHandler) scope(c *gin.Context) (shared.TenantScope, bool) {
	scope, err := middleware.GetTenantScope(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return shared.TenantScope{}, false
	}
	return scope, true
}

// pathID parses the :id path parameter
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeInvalidInput, "Invalid id format", "id", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}

// companyFilter parses the optional empresa_id query parameter. A missing
// or empty value means no filter.
func (h *BaseHandler) companyFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query(companyQueryParam)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeInvalidInput, "Invalid empresa_id format", companyQueryParam, middleware.GetRequestID(c)))
		return nil, false
	}
	return &id, true
}
