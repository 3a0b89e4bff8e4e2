package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fiscalmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// RateLimiter is a fixed-window counter per key. Windows start at a key's
// first request and expire with the cache entry.
type RateLimiter struct {
	mu     sync.Mutex
	hits   *cache.Cache
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:   cache.New(window, window*2),
		limit:  limit,
		window: window,
	}
}

// Allow checks if a request from the given key should be allowed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if err := rl.hits.Add(key, 1, rl.window); err == nil {
		return true
	}
	n, err := rl.hits.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and IncrementInt
		rl.hits.Set(key, 1, rl.window)
		return true
	}
	return n <= rl.limit
}

// Remaining returns the number of remaining requests for the given key
func (rl *RateLimiter) Remaining(key string) int {
	v, ok := rl.hits.Get(key)
	if !ok {
		return rl.limit
	}
	return max(rl.limit-v.(int), 0)
}

// Limit returns the number of requests allowed per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// ClientKey keys requests by authenticated user, falling back to the client IP
func ClientKey(c *gin.Context) string {
	if uid := c.GetString(UserIDKey); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.ClientIP()
}

// RateLimit returns a rate limiting middleware keyed by ClientKey
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, ClientKey, "Too many requests. Please try again later.")
}

// AuthRateLimit is the stricter limiter in front of login and registration.
// It is always keyed by IP.
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return "auth:" + c.ClientIP()
	}, "Too many authentication attempts. Please try again later.")
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited, message, GetRequestID(c)))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
