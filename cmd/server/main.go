package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitlens/backend/config"
	httpDelivery "github.com/fitlens/backend/internal/delivery/http"
	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/cache"
	"github.com/fitlens/backend/internal/infrastructure/gemini"
	"github.com/fitlens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting FitLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	debug := cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.MaxEntries, 10*time.Minute)
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s, max entries: %d", cfg.Cache.TTL, cfg.Cache.MaxEntries)

	// A nil generator disables extraction and makes the refiner pass input through
	var generator domain.TextGenerator
	if cfg.LLM.Enabled() {
		client, err := gemini.NewClient(context.Background(), gemini.Options{
			APIKey:            cfg.LLM.APIKey,
			Model:             cfg.LLM.Model,
			BaseURL:           cfg.LLM.BaseURL,
			Timeout:           cfg.LLM.Timeout,
			RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		})
		if err != nil {
			log.Fatalf("Failed to create LLM client: %v", err)
		}
		client.SetDebug(debug)
		generator = client
		log.Printf("LLM configured: %s (%d req/min)", client.Model(), cfg.LLM.RequestsPerMinute)
	} else {
		log.Printf("WARNING: LLM API key not configured (set FITLENS_LLM_API_KEY) - extraction disabled, refiner passes input through")
	}

	models := usecase.LoadClassifiers(cfg.Models.Dir)
	log.Printf("Models: %d/%d categories loaded from %s", len(models), len(domain.Categories), cfg.Models.Dir)

	// Initialize usecase layer
	extractor := usecase.NewAttributeExtractor(generator)
	extractor.SetDebug(debug)

	recommendationService := usecase.NewRecommendationService(
		extractor,
		usecase.NewItemPredictor(models),
		usecase.NewQueryRefiner(generator, memoryCache, usecase.QueryRefinerConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: debug,
		}),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService)
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down server... (%d cached queries)", memoryCache.Size())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
