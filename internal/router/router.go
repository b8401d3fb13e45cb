package router

import (
	"context"

	"github.com/Baaaki/portfolio/internal/handler"
	"github.com/Baaaki/portfolio/internal/middleware"
	"github.com/Baaaki/portfolio/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the HTTP layer needs. Nothing is read from
// package-level state.
type Deps struct {
	AuthService    *service.AuthService
	ProjectService *service.ProjectService
	// Ping checks the database for /health; nil skips the check.
	Ping func(context.Context) error

	// Registry backs /metrics. Nil uses a private registry.
	Registry *prometheus.Registry

	AllowedOrigins []string
	IsProduction   bool
}

func New(deps Deps) *gin.Engine {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		metrics.Middleware(),
		middleware.CORSMiddleware(deps.AllowedOrigins),
		middleware.SecurityHeadersMiddleware(),
		middleware.HSTSMiddleware(deps.IsProduction),
	)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	projectHandler := handler.NewProjectHandler(deps.ProjectService)
	healthHandler := handler.NewHealthHandler(deps.Ping)

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/projects", projectHandler.List)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Admin routes: authentication first, then the role gate
	admin := router.Group("/projects")
	admin.Use(
		middleware.AuthMiddleware(deps.AuthService),
		middleware.AdminMiddleware(deps.AuthService),
	)
	{
		admin.POST("", projectHandler.Create)
		admin.PUT("/:id", projectHandler.Update)
		admin.DELETE("/:id", projectHandler.Delete)
	}

	return router
}
