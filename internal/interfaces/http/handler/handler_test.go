package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/fiscalmanager/backend/internal/interfaces/http/middleware"
	"github.com/fiscalmanager/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestRouter mimics the production chain: request ids, then the identity
// the JWT middleware would have stored.
func newTestRouter(authenticated bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserIDKey, testutil.TestUserID().String())
			c.Next()
		})
	}
	return r
}

func perform(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Perform(t, r, testutil.Request{Method: method, Path: path, Body: body})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) testutil.Envelope {
	t.Helper()
	return testutil.DecodeEnvelope(t, w)
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	return testutil.DecodeData[T](t, w)
}

func newTestCompany(t *testing.T, regime fiscal.TaxRegime) *company.Company {
	t.Helper()
	addr, err := valueobject.NewAddress("Rua das Flores", "100", "Centro", "São Paulo", "SP", "01000-000")
	require.NoError(t, err)
	c, err := company.NewCompany(testutil.TestUserID(), "Comercial Alfa", "12.345.678/0001-90", addr, regime)
	require.NoError(t, err)
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
