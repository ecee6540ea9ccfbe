package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/promptswipe/backend/internal/router"
	"github.com/anonto42/promptswipe/backend/pkg/cache"
	"github.com/anonto42/promptswipe/backend/pkg/config"
	"github.com/anonto42/promptswipe/backend/pkg/events"
	"github.com/anonto42/promptswipe/backend/pkg/firebase"
	"github.com/anonto42/promptswipe/backend/pkg/logger"
	"github.com/anonto42/promptswipe/backend/pkg/storage"
	"github.com/anonto42/promptswipe/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		log.Fatal("Failed to auto migrate models", zap.Error(err))
	}
	log.Info("PostgreSQL auto-migrations completed")

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize Firebase", zap.Error(err))
	}

	deps := router.Dependencies{
		Postgres:         db.Postgres,
		Verifier:         firebaseApp,
		Logger:           log,
		JWTSecret:        cfg.JWTSecret,
		ModerationToken:  cfg.ModerationToken,
		AutoApprovePosts: cfg.AutoApprovePosts,
	}
	if db.Mongo != nil {
		deps.Mongo = db.Mongo.Database(cfg.MongoDatabase)
	}
	if db.Redis != nil {
		deps.UnreadCache = cache.NewUnreadCounter(db.Redis)
	}

	if cfg.Storage.AccessKey != "" {
		store, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		deps.Storage = store
		log.Info("Object storage ready", zap.String("endpoint", cfg.Storage.Endpoint))
	}

	if cfg.NatsURL != "" {
		publisher, err := events.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		deps.Publisher = publisher
		log.Info("Publishing notification events", zap.String("subject", events.SubjectNotificationCreated))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, log)

	if err := router.SetupRoutes(e, deps); err != nil {
		log.Fatal("Failed to configure routes", zap.Error(err))
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Port))

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
