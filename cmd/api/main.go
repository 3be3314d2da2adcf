package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/classconnect/classconnect-api/internal/handler"
	"github.com/classconnect/classconnect-api/internal/repository"
	"github.com/classconnect/classconnect-api/internal/router"
	"github.com/classconnect/classconnect-api/internal/service"
	"github.com/classconnect/classconnect-api/pkg/cache"
	"github.com/classconnect/classconnect-api/pkg/config"
	"github.com/classconnect/classconnect-api/pkg/database"
	"github.com/classconnect/classconnect-api/pkg/logger"
	"github.com/classconnect/classconnect-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	uploads, err := storage.NewUploadStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare uploads directory", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "classconnect-api",
	})
	assignmentSvc := service.NewAssignmentService(assignmentRepo, uploads, cacheSvc, validate, logr)
	translationSvc := service.NewTranslationService(service.TranslationConfig{
		Endpoints:        cfg.Translation.Endpoints,
		RequestTimeout:   cfg.Translation.RequestTimeout,
		FailureThreshold: cfg.Translation.FailureThreshold,
	}, logr)
	exerciseSvc := service.NewExerciseService(uploads, logr)

	r := router.New(cfg, logr, authSvc, metricsSvc, uploads, router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Assignments: handler.NewAssignmentHandler(assignmentSvc),
		Upload:      handler.NewUploadHandler(uploads),
		Translation: handler.NewTranslationHandler(translationSvc),
		Exercise:    handler.NewExerciseHandler(exerciseSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
