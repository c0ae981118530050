// Package main is the entry point for the POS service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/config"
	"github.com/GunarsK-portfolio/pos-service/internal/handlers"
	"github.com/GunarsK-portfolio/pos-service/internal/mailer"
	"github.com/GunarsK-portfolio/pos-service/internal/metrics"
	"github.com/GunarsK-portfolio/pos-service/internal/middleware"
	"github.com/GunarsK-portfolio/pos-service/internal/repository"
	"github.com/GunarsK-portfolio/pos-service/internal/routes"
	"github.com/GunarsK-portfolio/pos-service/internal/service"
	"github.com/GunarsK-portfolio/pos-service/pkg/logger"
	"github.com/GunarsK-portfolio/pos-service/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const serviceName = "pos-service"

// @title Soto Lamongan POS API
// @version 1.0
// @description Point-of-sale backend: staff login, password reset codes, menu and user administration
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.JWTSecretDefault {
		log.Warn("JWT_SECRET is not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize tracing
	if cfg.OTELEndpoint != "" {
		tp, err := middleware.InitTracer(ctx, cfg.OTELEndpoint, serviceName, cfg.Environment)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("failed to flush traces", zap.Error(err))
			}
		}()
		log.Info("tracing enabled", zap.String("endpoint", cfg.OTELEndpoint))
	}

	// Initialize store
	store, err := repository.NewFileStore(cfg.DataFile, log)
	if err != nil {
		return err
	}

	// Initialize OTP registry
	var otpRepo repository.OTPRepository
	switch cfg.OTPBackend {
	case config.OTPBackendRedis:
		client, err := redis.NewClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		otpRepo = repository.NewRedisOTPRepository(client, cfg.OTPRetention)
	default:
		memory := repository.NewMemoryOTPRepository()
		go memory.RunSweeper(ctx, cfg.OTPSweepInterval, cfg.OTPRetention, log)
		otpRepo = memory
	}
	log.Info("otp registry ready", zap.String("backend", cfg.OTPBackend))

	// Initialize mailer
	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, log)
	} else {
		log.Warn("SMTP_HOST is not set, OTP codes will be written to the log")
		sender = mailer.NewLogSender(log)
	}

	// Initialize services
	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(store, jwtService)
	otpService := service.NewOTPService(store, otpRepo, cfg.OTPTTL)

	// Initialize handlers
	m := metrics.New("pos")
	h := routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService, otpService, sender, cfg.OTPTTL, m, log),
		Data:   handlers.NewDataHandler(store, store, store, m, log),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{"store": store, "otp": otpRepo}, log),
	}

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.Setup(router, h, jwtService, cfg, m, log)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:         600,
	}).Handler(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting pos service", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
