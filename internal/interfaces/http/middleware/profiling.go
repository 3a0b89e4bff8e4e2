package middleware

import (
	"context"
	"strings"

	"github.com/fiscalmanager/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// profilingSkipPaths never get labels
var profilingSkipPaths = []string{"/", "/health", "/swagger/*any"}

// Profiling attaches controller, route and method labels to the request
// goroutine so profiles can be filtered per endpoint. Labels use the route
// pattern, never the concrete path.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || isProfilingSkipped(route) {
			c.Next()
			return
		}

		labels := telemetry.HTTPRequestLabels(controllerFromRoute(route), route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func isProfilingSkipped(route string) bool {
	for _, p := range profilingSkipPaths {
		if route == p {
			return true
		}
	}
	return false
}

// controllerFromRoute returns the first resource segment after the api
// version: "/api/v1/notas/:id" is "notas"
func controllerFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || (s[0] != 'v' && s[0] != 'V') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
