package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"luckyticket/internal/cache"
	"luckyticket/internal/config"
	"luckyticket/internal/database"
	"luckyticket/internal/pkg/logger"
	"luckyticket/internal/server"
	"luckyticket/internal/storage"
	"luckyticket/internal/tracing"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_DIR"))
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("Failed to build logger: %v", err)
	}
	log.WithFields(logrus.Fields{"env": cfg.AppEnv, "addr": cfg.Addr()}).Info("Starting luckyticket service")

	ctx := context.Background()

	shutdownTracer := tracing.Noop
	if cfg.Tracing.Enabled {
		shutdownTracer, err = tracing.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, log)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.WithError(err).Warn("Error shutting down tracer")
		}
	}()

	db, err := database.Connect(cfg.Database.DSN, log)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	deps := server.Deps{Config: cfg, DB: db, Store: store, Log: log}
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisImageCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis cache: %v", err)
		}
		defer redisCache.Close()
		deps.Cache = redisCache
		log.WithField("addr", cfg.Redis.Addr).Info("Redis cache enabled")
	}

	var handler http.Handler = server.NewRouter(deps)
	if cfg.Tracing.Enabled {
		handler = otelhttp.NewHandler(handler, cfg.Tracing.ServiceName)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func newStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (storage.FileStore, error) {
	if cfg.Upload.Backend == config.BackendMinIO {
		store, err := storage.NewMinIOStore(ctx, storage.MinIOOptions{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		}, log)
		if err != nil {
			return nil, err
		}
		log.WithField("bucket", cfg.MinIO.Bucket).Info("Using MinIO blob store")
		return store, nil
	}

	log.WithField("dir", cfg.Upload.Dir).Info("Using local blob store")
	return storage.NewLocalStore(cfg.Upload.Dir), nil
}
