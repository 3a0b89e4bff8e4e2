package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiscalmanager/backend/internal/infrastructure/auth"
	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     testSecret,
		Expiration: time.Hour,
		Issuer:     "fiscalmanager-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, userID uuid.UUID) *auth.IssuedToken {
	t.Helper()
	tok, err := svc.GenerateToken(auth.GenerateTokenInput{UserID: userID, Email: "ana@example.com", Role: "user"})
	require.NoError(t, err)
	return tok
}

type failingBlacklist struct{}

func (failingBlacklist) AddToBlacklist(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func protectedRouter(svc *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService:     svc,
		TokenBlacklist: blacklist,
		SkipPaths:      []string{"/health"},
	}))
	router.GET("/me", func(c *gin.Context) {
		scope, err := GetTenantScope(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, scope.OwnerID().String())
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func requestWithToken(router *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	tok := issueToken(t, svc, userID)

	w := requestWithToken(protectedRouter(svc, nil), "/me", BearerPrefix+tok.Token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestJWTAuthMiddleware_SetsContext(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	tok := issueToken(t, svc, userID)

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc, nil))
	router.GET("/test", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, tok.JTI, claims.ID)
		assert.Equal(t, userID.String(), c.GetString(UserIDKey))
		assert.Equal(t, "ana@example.com", c.GetString(JWTEmailKey))
		assert.Equal(t, "user", c.GetString(JWTRoleKey))
		c.Status(http.StatusOK)
	})

	w := requestWithToken(router, "/test", BearerPrefix+tok.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: userID.String(),
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID.String(),
	}).SignedString([]byte("some-other-secret-of-32-characters!"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "ERR_UNAUTHORIZED"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "ERR_UNAUTHORIZED"},
		{"empty bearer", "Bearer ", "ERR_UNAUTHORIZED"},
		{"garbage", "Bearer not-a-jwt", "ERR_TOKEN_INVALID"},
		{"bad signature", BearerPrefix + forged, "ERR_TOKEN_INVALID"},
		{"expired", BearerPrefix + expiredToken, "ERR_TOKEN_EXPIRED"},
	}

	router := protectedRouter(svc, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := requestWithToken(router, "/me", tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
			assert.Contains(t, w.Body.String(), `"request_id"`)
		})
	}
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist(time.Minute)
	tok := issueToken(t, svc, uuid.New())
	router := protectedRouter(svc, blacklist)

	assert.Equal(t, http.StatusOK, requestWithToken(router, "/me", BearerPrefix+tok.Token).Code)

	require.NoError(t, blacklist.AddToBlacklist(context.Background(), tok.JTI, time.Hour))

	w := requestWithToken(router, "/me", BearerPrefix+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_BlacklistFailureFailsOpen(t *testing.T) {
	svc := newTestJWTService()
	tok := issueToken(t, svc, uuid.New())

	w := requestWithToken(protectedRouter(svc, failingBlacklist{}), "/me", BearerPrefix+tok.Token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	w := requestWithToken(protectedRouter(newTestJWTService(), nil), "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_OnError(t *testing.T) {
	var got error
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: newTestJWTService(),
		OnError: func(c *gin.Context, err error) {
			got = err
			c.Status(http.StatusTeapot)
		},
	}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := requestWithToken(router, "/test", "")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.ErrorIs(t, got, ErrMissingToken)
}

func TestGetTenantScope_WithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetTenantScope(c)
	assert.ErrorIs(t, err, ErrNoIdentity)

	c.Set(UserIDKey, uuid.Nil.String())
	_, err = GetTenantScope(c)
	assert.Error(t, err)
}
