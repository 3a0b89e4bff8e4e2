package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	catalogapp "github.com/fiscalmanager/backend/internal/application/catalog"
	companyapp "github.com/fiscalmanager/backend/internal/application/company"
	fiscalapp "github.com/fiscalmanager/backend/internal/application/fiscal"
	identityapp "github.com/fiscalmanager/backend/internal/application/identity"
	reportapp "github.com/fiscalmanager/backend/internal/application/report"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/fiscalmanager/backend/internal/infrastructure/auth"
	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/fiscalmanager/backend/internal/infrastructure/logger"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence"
	reportinfra "github.com/fiscalmanager/backend/internal/infrastructure/report"
	"github.com/fiscalmanager/backend/internal/infrastructure/storage"
	"github.com/fiscalmanager/backend/internal/infrastructure/telemetry"
	"github.com/fiscalmanager/backend/internal/interfaces/http/handler"
	"github.com/fiscalmanager/backend/internal/interfaces/http/middleware"
	"github.com/fiscalmanager/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			FiscalManager Total API
//	@version		1.0
//	@description	Multi-tenant fiscal backend: companies, products, invoices with ICMS/PIS/COFINS/IPI and fiscal reports.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telCfg := telemetry.FromConfig(cfg.Telemetry)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFromConfig(telCfg), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	log := logProvider.Tee(baseLog)
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FiscalManager",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Database.SlowQueryThreshold)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if db.Driver() == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	} else {
		log.Info("PostgreSQL schema is managed by cmd/migrate")
	}
	if err := db.InstallTenantGuard(); err != nil {
		log.Fatal("Failed to install tenant guard", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: telCfg.Enabled && telCfg.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}

	blacklist, closeBlacklist := newTokenBlacklist(cfg, log)
	defer closeBlacklist()
	jwtService := auth.NewJWTService(cfg.JWT)

	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepos := persistence.NewGormCompanyRepositoryFactory(db.DB)
	productRepos := persistence.NewGormProductRepositoryFactory(db.DB)
	invoiceRepos := persistence.NewGormInvoiceRepositoryFactory(db.DB)

	var invoiceOpts []fiscalapp.InvoiceServiceOption
	var reportOpts []reportapp.ReportServiceOption
	if meterProvider.IsEnabled() {
		fiscalMetrics, err := telemetry.NewFiscalMetrics(meterProvider.Meter("fiscal"))
		if err != nil {
			log.Warn("Fiscal metrics disabled", zap.Error(err))
		} else {
			invoiceOpts = append(invoiceOpts, fiscalapp.WithInvoiceMetrics(fiscalMetrics))
			reportOpts = append(reportOpts, reportapp.WithReportMetrics(fiscalMetrics))
		}
	}
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3ReportArchive(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize report archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Report archive bucket unavailable", zap.Error(err), zap.String("bucket", archive.Bucket()))
		}
		reportOpts = append(reportOpts, reportapp.WithArchive(archive))
		log.Info("Report archive enabled", zap.String("bucket", archive.Bucket()))
	}

	loc := cfg.App.Location()
	renderers := []report.Renderer{
		reportinfra.NewPDFRenderer(loc),
		reportinfra.NewXLSXRenderer(loc),
	}

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	companyService := companyapp.NewCompanyService(companyRepos, log)
	productService := catalogapp.NewProductService(productRepos, companyRepos, log)
	invoiceService := fiscalapp.NewInvoiceService(invoiceRepos, productRepos, companyRepos, log, invoiceOpts...)
	dashboardService := reportapp.NewDashboardService(companyRepos, productRepos, invoiceRepos, log)
	reportService := reportapp.NewReportService(invoiceRepos, renderers, log, reportOpts...)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// request id first so every later log line and span carries it
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: telCfg.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	})...)
	engine.Use(middleware.HTTPMetrics(meterProvider, log))
	engine.Use(middleware.Profiling(profiler.IsEnabled()))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	router.SetupRoutes(engine, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Company:   handler.NewCompanyHandler(companyService),
		Product:   handler.NewProductHandler(productService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService),
		System:    handler.NewSystemHandler(db, telemetry.ServiceVersion),
	}, router.RouteConfig{
		Authenticate: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		AuthRateLimit:  middleware.AuthRateLimit(middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.RateLimitWindow)),
		SwaggerEnabled: cfg.Swagger.Enabled,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer":   tracerProvider.Shutdown,
		"meter":    meterProvider.Shutdown,
		"logger":   logProvider.Shutdown,
		"profiler": profiler.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			baseLog.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist returns the Redis blacklist when enabled and reachable,
// otherwise the in-process one. Revocations held in memory do not survive a
// restart.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) (auth.TokenBlacklist, func()) {
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err == nil {
			log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
			return redisBlacklist, func() {
				if err := redisBlacklist.Close(); err != nil {
					log.Warn("Error closing Redis", zap.Error(err))
				}
			}
		}
		log.Warn("Redis unavailable, keeping revoked tokens in memory", zap.Error(err))
	}
	return auth.NewInMemoryTokenBlacklist(10*time.Minute), func() {}
}
