package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"teamhub/config"
	"teamhub/middleware"
	"teamhub/repository"
	"teamhub/routes"
	"teamhub/services"
	"teamhub/utils"
	"teamhub/worker"
)

func main() {
	// Load configuration; a missing signing secret stops the process here
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"port":        cfg.ServerPort,
		"db_driver":   cfg.Database.Driver,
		"redis":       cfg.Redis.Enabled,
		"smtp":        cfg.SMTP.Enabled(),
	}).Info("Loaded configuration")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			log.WithError(err).Warn("Sentry initialization failed")
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := config.ConnectDB(cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	tokens, err := utils.NewTokenService(cfg.JWTSecret, utils.DefaultTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := services.NewActivityHub(0)
	defer hub.Close()

	repos := repository.New(db)
	retryWorker := worker.NewActivityRetryWorker(repos.Activities, hub, log, 0, 0)
	go retryWorker.Start(ctx)

	limiterStorage := middleware.NewRateLimitStorage(cfg.Redis)
	if redisStorage, ok := limiterStorage.(*middleware.RedisStorage); ok {
		if err := redisStorage.Ping(ctx); err != nil {
			log.WithError(err).Warn("Redis is unreachable; auth rate limiting may not apply")
		}
		defer redisStorage.Close()
	}

	app := routes.NewApp(routes.Dependencies{
		Config:         cfg,
		DB:             db,
		Log:            log,
		Tokens:         tokens,
		Hub:            hub,
		Repos:          repos,
		Retry:          retryWorker,
		Mailer:         utils.NewMailer(cfg.SMTP),
		LimiterStorage: limiterStorage,
		AccessLog:      true,
	})

	go func() {
		log.Infof("Server starting on port %s", cfg.ServerPort)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			log.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.WithError(err).Warn("Server shutdown timeout")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
