package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/i474232898/crop-recommendation/internal/api/http"
	"github.com/i474232898/crop-recommendation/internal/config"
	"github.com/i474232898/crop-recommendation/internal/crop"
	"github.com/i474232898/crop-recommendation/internal/metrics"
	"github.com/i474232898/crop-recommendation/internal/model"
	"github.com/i474232898/crop-recommendation/internal/scheduler"
	"github.com/i474232898/crop-recommendation/internal/store"
	"github.com/i474232898/crop-recommendation/internal/weather"
	"github.com/i474232898/crop-recommendation/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector("crop", reg)

	// Missing artifacts are tolerated; a corrupt one is fatal.
	artifacts, err := model.LoadArtifacts(cfg.Artifacts())
	if err != nil {
		log.Fatalf("failed to load model artifacts: %v", err)
	}
	collector.SetArtifacts(artifacts.Status())
	recommender := crop.NewRecommender(artifacts)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	var provider weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provider = providers.NewOpenWeatherProvider(httpClient, providers.OpenWeatherConfig{
			APIKey:     cfg.OpenWeatherAPIKey,
			BaseURL:    cfg.OpenWeatherBaseURL,
			Units:      cfg.WeatherUnits,
			MaxRetries: cfg.WeatherMaxRetries,
		})
	} else {
		log.Println("WARNING: OPENWEATHER_API_KEY is not set; weather lookups are disabled")
	}
	service := weather.NewService(memStore, provider, collector)

	if provider != nil {
		sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	app := httpapi.NewApp(httpapi.Options{
		Recommender:  recommender,
		Weather:      service,
		Metrics:      collector,
		Gatherer:     reg,
		AllowOrigins: cfg.CORSAllowOrigins,
	})

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Println("INFO: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
