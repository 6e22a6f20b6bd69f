package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/auth"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/config"
	dbpkg "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/db"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/logger"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/notify"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg)
	defer func() { _ = log.Sync() }()

	db := dbpkg.NewDB(cfg, log)

	// ------------------------------
	// Audit
	// ------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// ------------------------------
	// Redis: availability cache + notification queue
	// ------------------------------
	var (
		availability cache.Availability = cache.Noop{}
		notifier     notify.Notifier    = notify.Noop{}
		queue        *asynq.Client
	)

	if cfg.RedisAddr != "" {
		if rdb, err := cache.NewRedisClient(cfg, cfg.RedisCacheDB); err != nil {
			log.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			defer func() { _ = rdb.Close() }()
			availability = cache.NewRedisAvailability(rdb, cfg.AvailabilityCacheTTL, log)
		}

		queue = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		})
		notifier = notify.NewAsynqNotifier(queue, cfg.ReminderLead, log)
	} else {
		log.Info("REDIS_ADDR not set, running without cache and notifications")
	}

	// ------------------------------
	// HTTP
	// ------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    auditDispatcher,
		Cache:    availability,
		Notifier: notifier,
		Tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
	}); err != nil {
		log.Fatal("failed to register routes", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	auditDispatcher.Close(ctx)

	if queue != nil {
		if err := queue.Close(); err != nil {
			log.Warn("failed to close task queue", zap.Error(err))
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server stopped")
}
