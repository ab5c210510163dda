package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"reviewhub/docs"
	"reviewhub/internal/audit"
	"reviewhub/internal/auth"
	"reviewhub/internal/cache"
	"reviewhub/internal/config"
	"reviewhub/internal/db"
	"reviewhub/internal/handler"
	"reviewhub/internal/logger"
	"reviewhub/internal/repository"
	"reviewhub/internal/router"
	"reviewhub/internal/service"
	"reviewhub/internal/tracing"
)

// @title Restaurant Reviews API
// @version 1.0
// @description Restaurant review service with customer reviews, owner replies and admin-managed restaurant ownership.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log, "reviewhub", cfg.Environment)
	if err != nil {
		log.Error("tracing init", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gormDB, err := db.Open(db.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Error("database init", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Error("reset database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Error("auto-migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	auditLog := audit.NewLogger(log)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	restaurantRepo := repository.NewRestaurantRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	templateRepo := repository.NewResponseTemplateRepository(gormDB)
	uow := repository.NewUnitOfWork(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, restaurantRepo, jwtService, tokenStore, auditLog)
	userService := service.NewUserService(userRepo, restaurantRepo, auditLog)
	restaurantService := service.NewRestaurantService(uow, restaurantRepo, cacheClient, cfg.RestaurantCacheTTL, auditLog)
	reviewService := service.NewReviewService(reviewRepo, restaurantRepo, userRepo, templateRepo, auditLog)
	templateService := service.NewResponseTemplateService(templateRepo)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, cfg, log, authService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Restaurant: handler.NewRestaurantHandler(restaurantService),
		Review:     handler.NewReviewHandler(reviewService),
		Template:   handler.NewTemplateHandler(templateService),
		Health:     handler.NewHealthHandler(gormDB, cacheClient),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Info("swagger documentation available", slog.String("url", swaggerURL(cfg)))

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(e, "reviewhub"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", slog.String("addr", server.Addr), slog.String("db_driver", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", slog.String("error", err.Error()))
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
