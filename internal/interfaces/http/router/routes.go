package router

import (
	_ "github.com/fiscalmanager/backend/docs"
	"github.com/fiscalmanager/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers are the API handlers mounted by SetupRoutes
type Handlers struct {
	Auth      *handler.AuthHandler
	Company   *handler.CompanyHandler
	Product   *handler.ProductHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	System    *handler.SystemHandler
}

// RouteConfig holds the middleware that differs between route groups
type RouteConfig struct {
	// Authenticate guards every route except register, login and the system endpoints
	Authenticate gin.HandlerFunc
	// AuthRateLimit, when set, throttles register and login per client IP
	AuthRateLimit gin.HandlerFunc
	// SwaggerEnabled exposes the API documentation at /swagger/*any
	SwaggerEnabled bool
}

// SetupRoutes mounts the system endpoints at the root and the API under /api/v1
func SetupRoutes(engine *gin.Engine, h Handlers, cfg RouteConfig) {
	engine.GET("/", h.System.Root)
	engine.GET("/health", h.System.Health)
	if cfg.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))

	throttled := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.AuthRateLimit == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{cfg.AuthRateLimit, next}
	}
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", throttled(h.Auth.Register)...)
	authRoutes.POST("/login", throttled(h.Auth.Login)...)
	authRoutes.Group("session", "").
		Use(cfg.Authenticate).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.GetCurrentUser)

	companyRoutes := NewDomainGroup("empresas", "/empresas").Use(cfg.Authenticate).
		Resource(Resource{
			Create: h.Company.Create,
			List:   h.Company.List,
			Get:    h.Company.GetByID,
			Update: h.Company.Update,
			Delete: h.Company.Delete,
		})
	productRoutes := NewDomainGroup("produtos", "/produtos").Use(cfg.Authenticate).
		Resource(Resource{
			Create: h.Product.Create,
			List:   h.Product.List,
			Get:    h.Product.GetByID,
			Update: h.Product.Update,
			Delete: h.Product.Delete,
		})
	// issued invoices are immutable
	invoiceRoutes := NewDomainGroup("notas", "/notas").Use(cfg.Authenticate).
		Resource(Resource{
			Create: h.Invoice.Create,
			List:   h.Invoice.List,
			Get:    h.Invoice.GetByID,
			Delete: h.Invoice.Delete,
		})

	dashboardRoutes := NewDomainGroup("dashboard", "/dashboard").Use(cfg.Authenticate)
	dashboardRoutes.GET("", h.Dashboard.Get)

	reportRoutes := NewDomainGroup("relatorios", "/relatorios").Use(cfg.Authenticate)
	reportRoutes.GET("/pdf", h.Report.PDF).
		GET("/excel", h.Report.Excel).
		GET("/arquivo", h.Report.ListArchived)

	r.Register(authRoutes).
		Register(companyRoutes).
		Register(productRoutes).
		Register(invoiceRoutes).
		Register(dashboardRoutes).
		Register(reportRoutes)
	r.Setup()
}
