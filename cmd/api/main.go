// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/sook/internal/auth"
	"github.com/angelamos/sook/internal/cart"
	"github.com/angelamos/sook/internal/config"
	"github.com/angelamos/sook/internal/core"
	"github.com/angelamos/sook/internal/health"
	"github.com/angelamos/sook/internal/images"
	"github.com/angelamos/sook/internal/mail"
	"github.com/angelamos/sook/internal/middleware"
	"github.com/angelamos/sook/internal/offer"
	"github.com/angelamos/sook/internal/ops"
	"github.com/angelamos/sook/internal/payment"
	"github.com/angelamos/sook/internal/server"
	"github.com/angelamos/sook/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := core.RunMigrations(ctx, db); err != nil {
		return err
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	mailer := mail.New(cfg.Mail, logger)

	var imageStore user.ImageStore
	if cfg.Images.AccessKey != "" {
		store, storeErr := images.NewS3Store(ctx, cfg.Images)
		if storeErr != nil {
			return storeErr
		}
		imageStore = store
		logger.Info("image store initialized",
			"bucket", cfg.Images.Bucket,
		)
	} else {
		logger.Warn("image store not configured, avatar uploads disabled")
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, imageStore)
	userHandler := user.NewHandler(userSvc)

	googleClient := auth.NewGoogleClient(cfg.Google)
	authSvc := auth.NewService(
		userRepo,
		mailer,
		cfg.Mail.SendTimeout,
		googleClient,
		logger,
	)
	authHandler := auth.NewHandler(authSvc)

	offerRepo := offer.NewRepository(db.DB)
	offerSvc := offer.NewService(offerRepo)
	offerHandler := offer.NewHandler(offerSvc)

	cartRepo := cart.NewRepository(db.DB)
	cartSvc := cart.NewService(cartRepo, offerSvc)
	cartHandler := cart.NewHandler(cartSvc)

	stripeClient := payment.NewStripeClient(
		cfg.Stripe.SecretKey,
		cfg.Stripe.Timeout,
	)
	paymentSvc := payment.NewService(stripeClient)
	paymentHandler := payment.NewHandler(paymentSvc)

	healthHandler := health.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if !cfg.IsProduction() {
		ops.NewHandler(ops.HandlerConfig{
			DBStats:    db.Stats,
			RedisStats: redis.PoolStats,
			DBPing:     db.Ping,
			RedisPing:  redis.Ping,
		}).RegisterRoutes(router)
	}

	authenticator := middleware.Authenticator(authSvc)

	router.Group(func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, authenticator)
		offerHandler.RegisterRoutes(r, authenticator)
		cartHandler.RegisterRoutes(r, authenticator)
		paymentHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
