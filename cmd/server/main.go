package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetora/fleetora/infrastructure/config"
	fleetorahttp "github.com/fleetora/fleetora/infrastructure/http"
	"github.com/fleetora/fleetora/infrastructure/metrics"
	"github.com/fleetora/fleetora/infrastructure/postgres"
	"github.com/fleetora/fleetora/infrastructure/service/jwt"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/infrastructure/service/password"
	"github.com/fleetora/fleetora/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "fleetora",
	})
	structuredLogger.Info("application starting", logger.Fields{"env": cfg.Environment})

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		structuredLogger.Error("failed to connect to database", err, nil)
		os.Exit(1)
	}
	defer db.Close()
	structuredLogger.Info("database connection established", nil)

	limiter := ratelimit.NewNoopLimiter()
	if cfg.RateLimitEnabled {
		redisLimiter, err := ratelimit.NewRedisLimiter(ctx, ratelimit.Config{
			RedisURL: cfg.RedisURL,
			Attempts: cfg.RateLimitAttempts,
			Window:   cfg.RateLimitWindow,
		})
		if err != nil {
			structuredLogger.Error("failed to initialize rate limiter, continuing without it", err, logger.Fields{
				"redis_url": cfg.RedisURL,
			})
		} else {
			limiter = redisLimiter
			structuredLogger.Info("rate limiting enabled", logger.Fields{
				"attempts": cfg.RateLimitAttempts,
				"window":   cfg.RateLimitWindow.String(),
			})
		}
	}
	defer limiter.Close()

	tokenService, err := jwt.New(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		structuredLogger.Error("failed to initialize JWT service", err, nil)
		os.Exit(1)
	}
	passwordService := password.NewBcryptService(cfg.BcryptCost)

	repos := fleetorahttp.Repositories{
		Clients:      postgres.NewClientRepository(db),
		Vehicles:     postgres.NewVehicleRepository(db),
		Documents:    postgres.NewDocumentRepository(db),
		Trips:        postgres.NewTripRepository(db),
		Expenses:     postgres.NewExpenseRepository(db),
		Invoices:     postgres.NewInvoiceRepository(db),
		Weighbridges: postgres.NewWeighbridgeRepository(db),
		Users:        postgres.NewUserRepository(db),
		Audit:        postgres.NewAuditReader(db),
		Stats:        postgres.NewStatsRepository(db),
	}
	services := fleetorahttp.Services{
		Passwords: passwordService,
		Tokens:    tokenService,
		Limiter:   limiter,
		Metrics:   metrics.New(),
		Log:       structuredLogger,
	}

	server := fleetorahttp.NewServer(fleetorahttp.ServerConfig{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, repos, services)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error("server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error("server forced to shutdown", err, nil)
	}
	structuredLogger.Info("server exited", nil)
}
