package testutil

import (
	"net/http"
	"testing"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestUUID_Deterministic(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.NotEqual(t, TestScope().OwnerID(), ForeignScope().OwnerID())
}

func TestMockFactories_RecordScopes(t *testing.T) {
	companies := new(MockCompanyRepository)

	assert.Same(t, companies, companies.ForTenant(TestScope()))
	companies.ForTenant(ForeignScope())

	assert.Equal(t, []shared.TenantScope{TestScope(), ForeignScope()}, companies.Scopes)
}

func newEchoEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/empresas", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{
				"code": "ERR_INVALID_INPUT", "message": err.Error(), "field": "body",
			}})
			return
		}
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": body})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return r
}

func TestPerform_DecodeData(t *testing.T) {
	w := Perform(t, newEchoEngine(), Request{
		Method: http.MethodPost,
		Path:   "/empresas",
		Token:  "abc",
		Body:   map[string]string{"nome": "Comercial Alfa"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := DecodeData[map[string]string](t, w)
	assert.Equal(t, "Comercial Alfa", data["nome"])
	assert.Equal(t, "Bearer abc", data["auth"])
}

func TestAssertError(t *testing.T) {
	w := Perform(t, newEchoEngine(), Request{Method: http.MethodPost, Path: "/empresas", Body: "{"})

	body := AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
	assert.Equal(t, "body", body.Field)
}

func TestDecodeJSON(t *testing.T) {
	w := Perform(t, newEchoEngine(), Request{Method: http.MethodGet, Path: "/health"})

	got := DecodeJSON[map[string]string](t, w)
	assert.Equal(t, "healthy", got["status"])
}
