package router

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fiscalmanager/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// denyAll stands in for the JWT gate: protected routes never reach a handler
func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

func newRoutedEngine(cfg RouteConfig) *gin.Engine {
	engine := gin.New()
	if cfg.Authenticate == nil {
		cfg.Authenticate = denyAll
	}
	SetupRoutes(engine, Handlers{
		Auth:      handler.NewAuthHandler(nil),
		Company:   handler.NewCompanyHandler(nil),
		Product:   handler.NewProductHandler(nil),
		Invoice:   handler.NewInvoiceHandler(nil),
		Dashboard: handler.NewDashboardHandler(nil),
		Report:    handler.NewReportHandler(nil),
		System:    handler.NewSystemHandler(okPinger{}, "test"),
	}, cfg)
	return engine
}

func TestSetupRoutes_SystemEndpoints(t *testing.T) {
	engine := newRoutedEngine(RouteConfig{})

	w := serve(engine, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	var banner map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &banner))
	assert.Equal(t, handler.APIBanner, banner["message"])

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestSetupRoutes_ProtectedRoutes(t *testing.T) {
	engine := newRoutedEngine(RouteConfig{})

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/empresas"},
		{http.MethodPost, "/api/v1/empresas"},
		{http.MethodGet, "/api/v1/empresas/x"},
		{http.MethodPut, "/api/v1/empresas/x"},
		{http.MethodDelete, "/api/v1/empresas/x"},
		{http.MethodGet, "/api/v1/produtos"},
		{http.MethodPost, "/api/v1/produtos"},
		{http.MethodGet, "/api/v1/produtos/x"},
		{http.MethodPut, "/api/v1/produtos/x"},
		{http.MethodDelete, "/api/v1/produtos/x"},
		{http.MethodGet, "/api/v1/notas"},
		{http.MethodPost, "/api/v1/notas"},
		{http.MethodGet, "/api/v1/notas/x"},
		{http.MethodDelete, "/api/v1/notas/x"},
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodGet, "/api/v1/relatorios/pdf"},
		{http.MethodGet, "/api/v1/relatorios/excel"},
		{http.MethodGet, "/api/v1/relatorios/arquivo"},
	}
	for _, tt := range protected {
		assert.Equal(t, http.StatusUnauthorized, serve(engine, tt.method, tt.path).Code, "%s %s", tt.method, tt.path)
	}
}

func TestSetupRoutes_PublicAuthRoutes(t *testing.T) {
	limited := 0
	engine := newRoutedEngine(RouteConfig{
		AuthRateLimit: func(c *gin.Context) {
			limited++
			c.Next()
		},
	})

	// an empty body is rejected by binding, so the request got past the gate
	assert.Equal(t, http.StatusBadRequest, serve(engine, http.MethodPost, "/api/v1/auth/register").Code)
	assert.Equal(t, http.StatusBadRequest, serve(engine, http.MethodPost, "/api/v1/auth/login").Code)
	assert.Equal(t, 2, limited)
}

func TestSetupRoutes_InvoicesHaveNoUpdate(t *testing.T) {
	engine := newRoutedEngine(RouteConfig{Authenticate: func(c *gin.Context) { c.Next() }})

	assert.NotEqual(t, http.StatusOK, serve(engine, http.MethodPut, "/api/v1/notas/x").Code)
}

func TestSetupRoutes_Swagger(t *testing.T) {
	disabled := newRoutedEngine(RouteConfig{})
	assert.Equal(t, http.StatusNotFound, serve(disabled, http.MethodGet, "/swagger/index.html").Code)

	enabled := newRoutedEngine(RouteConfig{SwaggerEnabled: true})
	w := serve(enabled, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "FiscalManager Total API")
}
