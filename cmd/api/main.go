package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"go-jobportal-backend/config"
	_ "go-jobportal-backend/docs" // swagger spec registration
	v1 "go-jobportal-backend/internal/delivery/http/v1"
	"go-jobportal-backend/internal/repository/cache"
	"go-jobportal-backend/internal/repository/postgres"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/database"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/redis"
	"go-jobportal-backend/pkg/storage"
	"go-jobportal-backend/pkg/validation"
)

// @title           Job Portal Backend API
// @version         1.0
// @description     Candidate profiles, skill directory and employer search.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting job portal backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
		} else {
			defer redis.Close()
		}
	}

	ctx := context.Background()
	fileStorage, err := storage.NewClient(ctx, storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		PublicBaseURL:   cfg.FileBaseURL,
	})
	if err != nil {
		logger.Log.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	skillRepo := postgres.NewSkillDirectoryRepository(dbPool)
	searchRepo := postgres.NewSearchRepository(dbPool)
	suggestionCache := cache.NewSuggestionCache(redis.Client())

	validate := validator.New()
	validation.RegisterValidators(validate)

	candidateUC := usecase.NewCandidateUsecase(candidateRepo, skillRepo, userRepo, fileStorage, validate)
	skillUC := usecase.NewSkillUsecase(skillRepo, suggestionCache,
		time.Duration(cfg.SkillSuggestTTLSeconds)*time.Second)
	searchUC := usecase.NewSearchUsecase(searchRepo, fileStorage)

	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		SkillUC:     skillUC,
		SearchUC:    searchUC,
		UserRepo:    userRepo,
		Config:      cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
