package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/martijn/boatapi/internal/api/docs"
	"github.com/martijn/boatapi/internal/api/handler"
	"github.com/martijn/boatapi/internal/api/middleware"
	"github.com/martijn/boatapi/internal/core/service"
	"github.com/martijn/boatapi/internal/logging"
	"github.com/martijn/boatapi/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger logging.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	boatService *service.BoatService,
	authService *service.AuthService,
	tokenService *service.TokenService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	logger = logger.With("component", "api")

	publicPrefixes := []string{"/auth/", "/health"}
	if cfg.SwaggerEnabled {
		publicPrefixes = append(publicPrefixes, "/swagger/")
	}

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.Authenticate(tokenService))
	router.Use(middleware.RequireIdentity(publicPrefixes...))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	boatHandler := handler.NewBoatHandler(boatService)

	// Public routes (no identity required)
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Boats
	boats := router.Group("/boats")
	{
		boats.GET("", boatHandler.ListBoats)
		boats.POST("", boatHandler.CreateBoat)
		boats.GET("/:id", boatHandler.GetBoat)
		boats.PUT("/:id", boatHandler.UpdateBoat)
		boats.DELETE("/:id", boatHandler.DeleteBoat)
	}

	// Health check
	router.GET("/health", handler.Health)

	if cfg.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info(context.Background(), "starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info(context.Background(), "starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
