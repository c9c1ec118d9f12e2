package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hferris/caltrack/backend/config"
	"github.com/hferris/caltrack/backend/internal/api"
	"github.com/hferris/caltrack/backend/internal/database"
	"github.com/hferris/caltrack/backend/internal/middleware"
	"github.com/hferris/caltrack/backend/internal/router"
	"github.com/hferris/caltrack/backend/internal/server"
	"github.com/hferris/caltrack/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	llmService, err := service.NewLLMService(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM service: %v", err)
	}

	// Meal photos are stored when object storage is reachable; the
	// analysis endpoints work without it.
	var (
		photos    api.PhotoStore
		photoURLs api.PhotoURLProvider
	)
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 not configured, meal photos will not be stored: %v", err)
	} else {
		imageService := service.NewImageService(s3Cfg)
		photos = imageService
		photoURLs = imageService
	}

	loc := time.Local
	if cfg.TimeZone != "" {
		loc, err = time.LoadLocation(cfg.TimeZone)
		if err != nil {
			log.Fatalf("Invalid TZ %q: %v", cfg.TimeZone, err)
		}
	}

	profileService := service.NewProfileService(db)
	mealLogService := service.NewMealLogService(db)
	aggregateService := service.NewAggregateService(db, loc)
	settingsService := service.NewSettingsService(db)
	suggestionService := service.NewSuggestionService(llmService, redisClient, profileService)

	handlers := router.Handlers{
		Profile:     api.NewProfileHandler(profileService),
		Meals:       api.NewMealsHandler(mealLogService, photoURLs),
		Dashboard:   api.NewDashboardHandler(profileService, aggregateService),
		Analysis:    api.NewAnalysisHandler(llmService, photos),
		Suggestions: api.NewSuggestionsHandler(suggestionService),
		Settings:    api.NewSettingsHandler(settingsService),
	}
	limiters := router.Limiters{
		Analysis:   middleware.NewAnalysisRateLimiter(redisClient),
		Suggestion: middleware.NewSuggestionRateLimiter(redisClient),
	}

	r := router.SetupRouter(db, handlers, limiters, cfg.CORSOrigins)
	srv := server.New(r, cfg.ServerHost, cfg.ServerPort)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
