package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/developia/translation-office/internal/api"
	"github.com/developia/translation-office/internal/core/service"
	"github.com/developia/translation-office/internal/infrastructure/db/mongo"
	"github.com/developia/translation-office/internal/infrastructure/db/redis"
	"github.com/developia/translation-office/internal/infrastructure/notify"
	"github.com/developia/translation-office/internal/infrastructure/queue"
	"github.com/developia/translation-office/internal/pkg/config"
	"github.com/developia/translation-office/pkg/logger"
)

// @title        Translation Office API
// @version      1.0
// @description  Project management service for a translation office.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Str("token_ttl", cfg.TokenTTL).Msg("invalid TOKEN_TTL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	projectRepo := mongo.NewProjectRepository(db)
	feedbackRepo := mongo.NewFeedbackRepository(db)

	fileStorage, err := mongo.NewFileStorage(db)
	if err != nil {
		log.Fatal().Err(err).Msg("gridfs initialisation failed")
	}

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, projectRepo, feedbackRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Event pipeline ---
	dedup := redis.NewNotificationDedup(rdb)
	sender := notify.NewLogSender(log)
	notifier := notify.NewNotifier(userRepo, dedup, sender, log)

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, notifier, log)
	dispatcher.Start(ctx)

	// --- Services ---
	assigner := service.NewAssigner(userRepo, projectRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL)
	userService := service.NewUserService(userRepo, log)
	projectService := service.NewProjectService(projectRepo, userRepo, feedbackRepo, fileStorage, assigner, dispatcher, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, projectRepo, log)

	// --- HTTP ---
	e := api.NewRouter(api.RouterDeps{
		JWTSecret: cfg.JWTSecret,
		Mongo:     db,
		Redis:     rdb,
		Users:     userRepo,
		Auth:      authService,
		UserSvc:   userService,
		Projects:  projectService,
		Feedback:  feedbackService,
		Log:       log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
