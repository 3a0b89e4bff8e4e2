package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("client1"), "request %d should be allowed", i+1)
		}
		assert.False(t, limiter.Allow("client1"))
	})

	t.Run("separate limits per client", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("clientA"))
		assert.True(t, limiter.Allow("clientA"))
		assert.False(t, limiter.Allow("clientA"))

		assert.True(t, limiter.Allow("clientB"))
	})

	t.Run("resets after window", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("client3"))
		assert.True(t, limiter.Allow("client3"))
		assert.False(t, limiter.Allow("client3"))

		time.Sleep(70 * time.Millisecond)

		assert.True(t, limiter.Allow("client3"))
	})

	t.Run("remaining returns correct count", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("newclient"))
		limiter.Allow("newclient")
		limiter.Allow("newclient")
		assert.Equal(t, 3, limiter.Remaining("newclient"))

		for i := 0; i < 10; i++ {
			limiter.Allow("newclient")
		}
		assert.Equal(t, 0, limiter.Remaining("newclient"))
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("concurrent-client") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, 100, allowed)
	})
}

func serve(router *gin.Engine, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("returns 429 envelope when limit exceeded", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(NewRateLimiter(2, time.Minute)))
		router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		for i := 0; i < 2; i++ {
			w := serve(router, http.MethodGet, "/test", "10.0.0.1:1234")
			assert.Equal(t, http.StatusOK, w.Code)
		}
		w := serve(router, http.MethodGet, "/test", "10.0.0.1:1234")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("keys authenticated requests by user", func(t *testing.T) {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if uid := c.GetHeader("X-Test-User"); uid != "" {
				c.Set(UserIDKey, uid)
			}
		})
		router.Use(RateLimit(NewRateLimiter(1, time.Minute)))
		router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		for _, user := range []string{"user-1", "user-2"} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = "10.0.0.9:1234"
			req.Header.Set("X-Test-User", user)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, user)
		}
	})

	t.Run("sets rate limit headers", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(NewRateLimiter(5, time.Minute)))
		router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		w := serve(router, http.MethodGet, "/test", "10.0.0.2:1234")

		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})
}

func TestAuthRateLimit(t *testing.T) {
	t.Run("separate limits per IP address", func(t *testing.T) {
		router := gin.New()
		router.Use(AuthRateLimit(NewRateLimiter(2, time.Minute)))
		router.POST("/login", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/login", "192.168.1.1:12345").Code)
		}
		blocked := serve(router, http.MethodPost, "/login", "192.168.1.1:12345")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
		assert.Contains(t, blocked.Body.String(), "Too many authentication attempts")

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/login", "192.168.1.2:12345").Code)
	})

	t.Run("isolated from the global limiter", func(t *testing.T) {
		router := gin.New()
		auth := router.Group("/auth")
		auth.Use(AuthRateLimit(NewRateLimiter(1, time.Minute)))
		auth.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
		api := router.Group("/api")
		api.Use(RateLimit(NewRateLimiter(100, time.Minute)))
		api.GET("/data", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/auth/login", "192.168.1.100:1").Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/auth/login", "192.168.1.100:1").Code)
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/data", "192.168.1.100:1").Code)
	})
}
