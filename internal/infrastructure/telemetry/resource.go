// Package telemetry wires OpenTelemetry tracing, metrics and log export
// plus Pyroscope continuous profiling.
// Every provider degrades to a no-op when disabled, so callers never need
// to check whether telemetry is on.
package telemetry

import (
	"fmt"
	"time"

	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported as service.version on every signal
const ServiceVersion = "1.0.0"

// shutdownTimeout bounds the final flush of each provider
const shutdownTimeout = 10 * time.Second

// Config holds telemetry configuration.
type Config struct {
	Enabled                    bool
	CollectorEndpoint          string
	SamplingRatio              float64
	ServiceName                string
	Insecure                   bool
	MetricsEnabled             bool
	MetricsInterval            time.Duration
	LogsEnabled                bool
	DBTraceEnabled             bool
	ProfilingEnabled           bool
	ProfilingServerAddress     string
	ProfilingBasicAuthUser     string
	ProfilingBasicAuthPassword string
}

// FromConfig converts the application configuration
func FromConfig(c config.TelemetryConfig) Config {
	return Config{
		Enabled:                    c.Enabled,
		CollectorEndpoint:          c.CollectorEndpoint,
		SamplingRatio:              c.SamplingRatio,
		ServiceName:                c.ServiceName,
		Insecure:                   c.Insecure,
		MetricsEnabled:             c.MetricsEnabled,
		MetricsInterval:            c.MetricsInterval,
		LogsEnabled:                c.LogsEnabled,
		DBTraceEnabled:             c.DBTraceEnabled,
		ProfilingEnabled:           c.ProfilingEnabled,
		ProfilingServerAddress:     c.ProfilingServerAddress,
		ProfilingBasicAuthUser:     c.ProfilingBasicAuthUser,
		ProfilingBasicAuthPassword: c.ProfilingBasicAuthPassword,
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
