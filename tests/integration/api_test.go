package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalogapp "github.com/fiscalmanager/backend/internal/application/catalog"
	companyapp "github.com/fiscalmanager/backend/internal/application/company"
	fiscalapp "github.com/fiscalmanager/backend/internal/application/fiscal"
	identityapp "github.com/fiscalmanager/backend/internal/application/identity"
	reportapp "github.com/fiscalmanager/backend/internal/application/report"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/fiscalmanager/backend/internal/infrastructure/auth"
	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence"
	reportinfra "github.com/fiscalmanager/backend/internal/infrastructure/report"
	"github.com/fiscalmanager/backend/internal/infrastructure/storage"
	"github.com/fiscalmanager/backend/internal/interfaces/http/handler"
	"github.com/fiscalmanager/backend/internal/interfaces/http/middleware"
	"github.com/fiscalmanager/backend/internal/interfaces/http/router"
	"github.com/fiscalmanager/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// apiServer is the full HTTP stack over a migrated PostgreSQL database
type apiServer struct {
	engine  *gin.Engine
	archive *storage.MemoryReportArchive
}

// assertAmount accepts plain decimals and the cent-fixed response amounts
func assertAmount(t *testing.T, want string, got interface{ Equal(decimal.Decimal) bool }) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %v", want, got)
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db := NewTestDB(t)
	log := zap.NewNop()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "integration-secret-0123456789abcdef",
		Expiration: time.Hour,
		Issuer:     "fiscalmanager-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist(time.Minute)
	archive := storage.NewMemoryReportArchive()

	companies := persistence.NewGormCompanyRepositoryFactory(db.DB)
	products := persistence.NewGormProductRepositoryFactory(db.DB)
	invoices := persistence.NewGormInvoiceRepositoryFactory(db.DB)
	renderers := []report.Renderer{reportinfra.NewPDFRenderer(time.UTC), reportinfra.NewXLSXRenderer(time.UTC)}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.SetupRoutes(engine, router.Handlers{
		Auth:      handler.NewAuthHandler(identityapp.NewAuthService(persistence.NewGormUserRepository(db.DB), jwtService, blacklist, log)),
		Company:   handler.NewCompanyHandler(companyapp.NewCompanyService(companies, log)),
		Product:   handler.NewProductHandler(catalogapp.NewProductService(products, companies, log)),
		Invoice:   handler.NewInvoiceHandler(fiscalapp.NewInvoiceService(invoices, products, companies, log)),
		Dashboard: handler.NewDashboardHandler(reportapp.NewDashboardService(companies, products, invoices, log)),
		Report:    handler.NewReportHandler(reportapp.NewReportService(invoices, renderers, log, reportapp.WithArchive(archive))),
		System:    handler.NewSystemHandler(db, "test"),
	}, router.RouteConfig{
		Authenticate: middleware.JWTAuthMiddleware(jwtService, blacklist),
	})

	return &apiServer{engine: engine, archive: archive}
}

func (s *apiServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Perform(t, s.engine, testutil.Request{Method: method, Path: path, Token: token, Body: body})
}

// call performs the request, checks the status and decodes data into out
func (s *apiServer) call(t *testing.T, method, path, token string, body any, wantStatus int, out any) testutil.Envelope {
	t.Helper()
	w := s.do(t, method, path, token, body)
	require.Equal(t, wantStatus, w.Code, "%s %s: %s", method, path, w.Body.String())

	env := testutil.DecodeEnvelope(t, w)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func (s *apiServer) register(t *testing.T, name, email string) string {
	t.Helper()
	var result identityapp.AuthResult
	s.call(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"nome":  name,
		"email": email,
		"senha": "s3nha-segura",
	}, http.StatusCreated, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func (s *apiServer) createCompany(t *testing.T, token, cnpj, regime string) companyapp.CompanyResponse {
	t.Helper()
	var c companyapp.CompanyResponse
	s.call(t, http.MethodPost, "/api/v1/empresas", token, map[string]string{
		"nome":              "Comercial " + cnpj,
		"cnpj":              cnpj,
		"cidade":            "São Paulo",
		"estado":            "SP",
		"regime_tributario": regime,
	}, http.StatusCreated, &c)
	return c
}

func TestAPI_FiscalFlow(t *testing.T) {
	s := newAPIServer(t)
	token := s.register(t, "Ana Souza", "ana@example.com")

	var me identityapp.UserInfo
	s.call(t, http.MethodGet, "/api/v1/auth/me", token, nil, http.StatusOK, &me)
	assert.Equal(t, "ana@example.com", me.Email)

	company := s.createCompany(t, token, "12.345.678/0001-90", "Lucro Presumido")

	var product catalogapp.ProductResponse
	s.call(t, http.MethodPost, "/api/v1/produtos", token, map[string]any{
		"empresa_id":     company.ID,
		"nome":           "Notebook",
		"codigo":         "NB-01",
		"valor_unitario": "100.00",
	}, http.StatusCreated, &product)
	assertAmount(t, "18", product.ICMSRate)

	var invoice fiscalapp.InvoiceResponse
	s.call(t, http.MethodPost, "/api/v1/notas", token, map[string]any{
		"empresa_id": company.ID,
		"numero_nf":  "000001",
		"itens":      []map[string]any{{"produto_id": product.ID, "quantidade": "3"}},
	}, http.StatusCreated, &invoice)
	assert.Equal(t, company.Name, invoice.CompanyName)
	assertAmount(t, "300.00", invoice.TotalValue)
	assertAmount(t, "54.00", invoice.TotalICMS)
	assertAmount(t, "4.95", invoice.TotalPIS)
	assertAmount(t, "22.80", invoice.TotalCOFINS)
	assert.True(t, invoice.TotalIPI.IsZero())

	var fetched fiscalapp.InvoiceResponse
	s.call(t, http.MethodGet, "/api/v1/notas/"+invoice.ID.String(), token, nil, http.StatusOK, &fetched)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Notebook", fetched.Items[0].ProductName)

	// invoices carry a snapshot: repricing the product leaves them untouched
	s.call(t, http.MethodPut, "/api/v1/produtos/"+product.ID.String(), token, map[string]any{
		"empresa_id":     company.ID,
		"nome":           "Notebook Pro",
		"valor_unitario": "250.00",
	}, http.StatusOK, nil)
	s.call(t, http.MethodGet, "/api/v1/notas/"+invoice.ID.String(), token, nil, http.StatusOK, &fetched)
	assert.Equal(t, "Notebook", fetched.Items[0].ProductName)
	assertAmount(t, "300.00", fetched.TotalValue)

	var dash reportapp.DashboardResponse
	s.call(t, http.MethodGet, "/api/v1/dashboard", token, nil, http.StatusOK, &dash)
	assert.Equal(t, int64(1), dash.TotalCompanies)
	assert.Equal(t, int64(1), dash.TotalProducts)
	assert.Equal(t, int64(1), dash.TotalInvoices)
	assertAmount(t, "300.00", dash.TotalValue)
	assertAmount(t, "54.00", dash.TotalTaxes.ICMS)
	require.Len(t, dash.RecentInvoices, 1)

	w := s.do(t, http.MethodGet, "/api/v1/relatorios/pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio_fiscal.pdf")
	key := w.Header().Get(handler.ArchiveKeyHeader)
	assert.True(t, strings.HasPrefix(key, "reports/"), key)
	_, contentType, ok := s.archive.Get(key)
	require.True(t, ok, "report %s was not archived", key)
	assert.Equal(t, "application/pdf", contentType)

	w = s.do(t, http.MethodGet, "/api/v1/relatorios/excel?empresa_id="+company.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	var archived []reportapp.ArchivedReportResponse
	s.call(t, http.MethodGet, "/api/v1/relatorios/arquivo", token, nil, http.StatusOK, &archived)
	assert.Len(t, archived, 2)

	// deleting the company keeps the issued invoice and its name snapshot
	s.call(t, http.MethodDelete, "/api/v1/empresas/"+company.ID.String(), token, nil, http.StatusOK, nil)
	s.call(t, http.MethodGet, "/api/v1/notas/"+invoice.ID.String(), token, nil, http.StatusOK, &fetched)
	assert.Equal(t, company.Name, fetched.CompanyName)

	s.call(t, http.MethodDelete, "/api/v1/notas/"+invoice.ID.String(), token, nil, http.StatusOK, nil)
	env := s.call(t, http.MethodGet, "/api/v1/notas/"+invoice.ID.String(), token, nil, http.StatusNotFound, nil)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)
}

func TestAPI_TenantIsolation(t *testing.T) {
	s := newAPIServer(t)
	alice := s.register(t, "Alice", "alice@example.com")
	bob := s.register(t, "Bob", "bob@example.com")

	company := s.createCompany(t, alice, "11.111.111/0001-11", "Lucro Real")
	var product catalogapp.ProductResponse
	s.call(t, http.MethodPost, "/api/v1/produtos", alice, map[string]any{
		"empresa_id":     company.ID,
		"nome":           "Cadeira",
		"valor_unitario": "50",
	}, http.StatusCreated, &product)
	var invoice fiscalapp.InvoiceResponse
	s.call(t, http.MethodPost, "/api/v1/notas", alice, map[string]any{
		"empresa_id": company.ID,
		"numero_nf":  "1",
		"itens":      []map[string]any{{"produto_id": product.ID, "quantidade": 2}},
	}, http.StatusCreated, &invoice)

	t.Run("foreign ids are not found", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/empresas/" + company.ID.String(),
			"/api/v1/produtos/" + product.ID.String(),
			"/api/v1/notas/" + invoice.ID.String(),
		} {
			s.call(t, http.MethodGet, path, bob, nil, http.StatusNotFound, nil)
			s.call(t, http.MethodDelete, path, bob, nil, http.StatusNotFound, nil)
		}
		s.call(t, http.MethodPut, "/api/v1/empresas/"+company.ID.String(), bob, map[string]string{
			"nome": "Hijack", "cnpj": "1", "cidade": "X", "estado": "Y", "regime_tributario": "Lucro Real",
		}, http.StatusNotFound, nil)
	})

	t.Run("lists and dashboard are empty", func(t *testing.T) {
		var companies []companyapp.CompanyResponse
		s.call(t, http.MethodGet, "/api/v1/empresas", bob, nil, http.StatusOK, &companies)
		assert.Empty(t, companies)

		var invoices []fiscalapp.InvoiceResponse
		s.call(t, http.MethodGet, "/api/v1/notas?empresa_id="+company.ID.String(), bob, nil, http.StatusOK, &invoices)
		assert.Empty(t, invoices)

		var dash reportapp.DashboardResponse
		s.call(t, http.MethodGet, "/api/v1/dashboard", bob, nil, http.StatusOK, &dash)
		assert.Zero(t, dash.TotalInvoices)
		assert.True(t, dash.TotalValue.IsZero())
	})

	t.Run("cannot build on a foreign company or product", func(t *testing.T) {
		s.call(t, http.MethodPost, "/api/v1/produtos", bob, map[string]any{
			"empresa_id": company.ID, "nome": "Intruso", "valor_unitario": "1",
		}, http.StatusNotFound, nil)

		own := s.createCompany(t, bob, "22.222.222/0001-22", "Simples Nacional")
		s.call(t, http.MethodPost, "/api/v1/notas", bob, map[string]any{
			"empresa_id": own.ID,
			"numero_nf":  "9",
			"itens":      []map[string]any{{"produto_id": product.ID, "quantidade": 1}},
		}, http.StatusNotFound, nil)
	})

	t.Run("cnpj is unique per owner only", func(t *testing.T) {
		s.createCompany(t, bob, company.CNPJ, "Lucro Real")
		env := s.call(t, http.MethodPost, "/api/v1/empresas", alice, map[string]string{
			"nome": "Duplicada", "cnpj": company.CNPJ, "cidade": "X", "estado": "Y", "regime_tributario": "Lucro Real",
		}, http.StatusConflict, nil)
		assert.Equal(t, "cnpj", env.Error.Field)
	})

	t.Run("reports only cover the caller's invoices", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/relatorios/pdf", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var archived []reportapp.ArchivedReportResponse
		s.call(t, http.MethodGet, "/api/v1/relatorios/arquivo", bob, nil, http.StatusOK, &archived)
		assert.Len(t, archived, 1)
		s.call(t, http.MethodGet, "/api/v1/relatorios/arquivo", alice, nil, http.StatusOK, &archived)
		assert.Empty(t, archived)
	})
}

func TestAPI_Auth(t *testing.T) {
	s := newAPIServer(t)
	token := s.register(t, "Carla", "carla@example.com")

	env := s.call(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"nome": "Outra", "email": "CARLA@example.com", "senha": "outra-senha",
	}, http.StatusConflict, nil)
	assert.Equal(t, "email", env.Error.Field)

	var login identityapp.AuthResult
	s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "carla@example.com", "senha": "s3nha-segura",
	}, http.StatusOK, &login)
	assert.Equal(t, "Carla", login.User.Name)

	s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "carla@example.com", "senha": "errada",
	}, http.StatusUnauthorized, nil)

	s.call(t, http.MethodPost, "/api/v1/auth/logout", token, nil, http.StatusOK, nil)
	env = s.call(t, http.MethodGet, "/api/v1/empresas", token, nil, http.StatusUnauthorized, nil)
	assert.Equal(t, "ERR_TOKEN_REVOKED", env.Error.Code)

	s.call(t, http.MethodGet, "/api/v1/empresas", login.Token, nil, http.StatusOK, nil)
}

func TestAPI_Health(t *testing.T) {
	s := newAPIServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := testutil.DecodeJSON[handler.HealthResponse](t, w)
	assert.Equal(t, "ok", health.Database)
}
