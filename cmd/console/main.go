package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketadmin/internal/adminapi"
	"marketadmin/internal/config"
	"marketadmin/internal/handlers"
	"marketadmin/internal/jobs"
	"marketadmin/internal/logger"
	"marketadmin/internal/metrics"
	"marketadmin/internal/middleware"
	"marketadmin/internal/session"
	"marketadmin/internal/viewstate"
)

// sessionStore is a session.Store that can also answer liveness checks for the sweeper
type sessionStore interface {
	session.Store
	jobs.SessionLookup
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.ConfigFor(cfg.App.Environment))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	checks := map[string]handlers.HealthCheck{}

	// Session store
	var store sessionStore
	switch cfg.Session.Store {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zl.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.Session.TTL)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	default:
		store = session.NewMemoryStore()
	}

	// Token decoder: verified against the JWKS when one is configured
	decoder := session.NewTokenDecoder(nil)
	if cfg.AdminAPI.JWKSURL != "" {
		jwksDecoder, endJWKS, err := session.NewJWKSDecoder(ctx, cfg.AdminAPI.JWKSURL, zl)
		if err != nil {
			zl.Fatal("Failed to load JWKS", zap.String("url", cfg.AdminAPI.JWKSURL), zap.Error(err))
		}
		defer endJWKS()
		decoder = jwksDecoder
	} else {
		zl.Warn("ADMIN_JWKS_URL not set; admin token signatures are not verified")
	}

	manager := session.NewManager(store, decoder, cfg.Session.TTL, cfg.Session.CookieSecure)
	tracker := viewstate.NewTracker(m)
	client := adminapi.NewClient(adminapi.Config{
		BaseURL: cfg.AdminAPI.BaseURL,
		Timeout: cfg.AdminAPI.Timeout,
	}, session.TokenFromContext, zl, m)

	renderer, err := handlers.NewRenderer()
	if err != nil {
		zl.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Debug = !cfg.App.IsProduction()
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.ErrorHandler(zl)

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestIDContext())
	e.Use(echoMiddleware.Secure())
	e.Use(middleware.RequestLogger(zl))
	e.Use(echoMiddleware.CSRFWithConfig(echoMiddleware.CSRFConfig{
		TokenLookup:    "form:csrf_token",
		ContextKey:     handlers.CSRFContextKey,
		CookieName:     "ma_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(middleware.SessionLoader(manager, zl))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.Service = cfg.App.Name
	handlers.Version = cfg.App.Version
	h := handlers.New(handlers.NewBase(tracker, manager, zl), client, checks)
	handlers.RegisterRoutes(e, h,
		middleware.RequireRoles(cfg.Session.RequiredRoles...),
		middleware.AuditActions(zl),
	)

	// Background jobs
	sweeper, err := jobs.NewSessionSweeper(store, tracker, m, cfg.Session.SweepInterval, zl)
	if err != nil {
		zl.Fatal("Failed to create session sweeper", zap.Error(err))
	}
	if err := sweeper.Start(); err != nil {
		zl.Fatal("Failed to start session sweeper", zap.Error(err))
	}

	go func() {
		zl.Info("admin console starting",
			zap.String("app", cfg.App.Name),
			zap.String("version", cfg.App.Version),
			zap.String("port", cfg.Server.Port),
			zap.String("session_store", cfg.Session.Store))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
	if err := sweeper.Stop(); err != nil {
		zl.Error("session sweeper shutdown failed", zap.Error(err))
	}
}
