package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiscalmanager/backend/internal/application/identity"
	domainidentity "github.com/fiscalmanager/backend/internal/domain/identity"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/auth"
	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/fiscalmanager/backend/internal/interfaces/http/middleware"
	"github.com/fiscalmanager/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	router    *gin.Engine
	users     *testutil.MockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users: new(testutil.MockUserRepository),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:     "handler-test-secret-at-least-32-characters",
			Expiration: 24 * time.Hour,
			Issuer:     "fiscalmanager-test",
		}),
		blacklist: auth.NewInMemoryTokenBlacklist(time.Minute),
	}

	h := NewAuthHandler(identity.NewAuthService(f.users, f.jwt, f.blacklist, zap.NewNop()))
	r := newTestRouter(false)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	protected := r.Group("", middleware.JWTAuthMiddleware(f.jwt, f.blacklist))
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.GetCurrentUser)
	f.router = r
	return f
}

func (f *authFixture) performWithToken(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("ExistsByEmail", mock.Anything, "maria@example.com").Return(false, nil)
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		w := perform(t, f.router, http.MethodPost, "/auth/register", map[string]string{
			"nome":  "Maria Silva",
			"email": "Maria@Example.com",
			"senha": "segredo123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		result := decodeData[identity.AuthResult](t, w)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "maria@example.com", result.User.Email)
		assert.Equal(t, "user", result.User.Role)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("ExistsByEmail", mock.Anything, "maria@example.com").Return(true, nil)

		w := perform(t, f.router, http.MethodPost, "/auth/register", map[string]string{
			"nome":  "Maria Silva",
			"email": "maria@example.com",
			"senha": "segredo123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decode(t, w)
		assert.Equal(t, "ERR_ALREADY_EXISTS", env.Error.Code)
		assert.Equal(t, "email", env.Error.Field)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newAuthFixture(t)

		w := perform(t, f.router, http.MethodPost, "/auth/register", map[string]string{
			"email": "not-an-email",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION", decode(t, w).Error.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	user, err := domainidentity.NewUser("Maria Silva", "maria@example.com", "segredo123", domainidentity.RoleUser)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByEmail", mock.Anything, "maria@example.com").Return(user, nil)

		w := perform(t, f.router, http.MethodPost, "/auth/login", map[string]string{
			"email": "maria@example.com",
			"senha": "segredo123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		result := decodeData[identity.AuthResult](t, w)
		claims, err := f.jwt.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByEmail", mock.Anything, "maria@example.com").Return(user, nil)
		f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, domainidentity.ErrUserNotFound)

		wrong := perform(t, f.router, http.MethodPost, "/auth/login", map[string]string{
			"email": "maria@example.com",
			"senha": "errada",
		})
		unknown := perform(t, f.router, http.MethodPost, "/auth/login", map[string]string{
			"email": "ghost@example.com",
			"senha": "segredo123",
		})

		for _, w := range []*httptest.ResponseRecorder{wrong, unknown} {
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			env := decode(t, w)
			assert.Equal(t, "ERR_INVALID_CREDENTIALS", env.Error.Code)
			assert.Equal(t, shared.ErrInvalidCredentials.Message, env.Error.Message)
		}
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	f := newAuthFixture(t)
	user, err := domainidentity.NewUser("Maria Silva", "maria@example.com", "segredo123", domainidentity.RoleAdmin)
	require.NoError(t, err)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	issued, err := f.jwt.GenerateToken(auth.GenerateTokenInput{UserID: user.ID, Email: user.Email, Role: string(user.Role)})
	require.NoError(t, err)

	w := f.performWithToken(t, http.MethodGet, "/auth/me", issued.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	info := decodeData[identity.UserInfo](t, w)
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, "admin", info.Role)

	w = f.performWithToken(t, http.MethodPost, "/auth/logout", issued.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.performWithToken(t, http.MethodGet, "/auth/me", issued.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", decode(t, w).Error.Code)
}
