// Package api wires the HTTP surface of the document portal.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestordoc/docportal/internal/api/handler"
	"github.com/gestordoc/docportal/internal/api/middleware"
	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// Deps bundles everything the router needs. Mongo and Redis are nil when
// the deployment runs purely in memory.
type Deps struct {
	AuthService     ports.AuthService
	ClientService   ports.ClientService
	DocumentService ports.DocumentService
	JWTSecret       string
	Mongo           *mongo.Database
	Redis           *redis.Client
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("docportal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	clientHandler := handler.NewClientHandler(deps.ClientService)
	documentHandler := handler.NewDocumentHandler(deps.DocumentService, deps.ClientService)

	authMW := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	anyRole := middleware.RequireRole(domain.RoleAdmin, domain.RoleClient)
	clientOnly := middleware.RequireRole(domain.RoleClient)

	// --- Public ---
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Client management (admin) ---
	clients := e.Group("/v1/clients", authMW, adminOnly)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.PATCH("/:id", clientHandler.Edit)
	clients.DELETE("/:id", clientHandler.Delete)
	clients.PUT("/:id/permissions", clientHandler.SetPermissions)

	// --- Profile (client) ---
	e.GET("/v1/me", clientHandler.Me, authMW, clientOnly)

	// --- Documents & statistics ---
	e.POST("/v1/documents", documentHandler.Upload, authMW, adminOnly)
	e.GET("/v1/documents", documentHandler.List, authMW, anyRole)
	e.GET("/v1/documents/:id", documentHandler.Get, authMW, anyRole)
	e.GET("/v1/stats", documentHandler.Stats, authMW, anyRole)

	// --- Probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
