package config

import (
	"strings"
	"testing"
	"time"

	"github.com/i474232898/crop-recommendation/internal/weather"
)

var envKeys = []string{
	"PORT", "MODEL_PATH", "SCALER_PATH", "LABEL_ENCODER_PATH",
	"OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL", "WEATHER_UNITS",
	"HTTP_TIMEOUT", "WEATHER_MAX_RETRIES", "WEATHER_LOCATION_CITY",
	"WEATHER_LOCATION_COUNTRY", "FETCH_INTERVAL", "STORE_MAX_HISTORY",
	"STORE_MAX_AGE", "CORS_ALLOW_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	paths := cfg.Artifacts()
	if paths.Classifier != "random_forest_crop_model.json" || paths.Scaler != "scaler.json" || paths.LabelEncoder != "label_encoder.json" {
		t.Errorf("Artifacts() = %+v", paths)
	}
	if cfg.WeatherUnits != "metric" {
		t.Errorf("WeatherUnits = %q, want metric", cfg.WeatherUnits)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.WeatherMaxRetries != 0 {
		t.Errorf("WeatherMaxRetries = %d, want 0", cfg.WeatherMaxRetries)
	}
	if cfg.FetchInterval != 15*time.Minute || cfg.StoreMaxHistory != 96 || cfg.StoreMaxAge != 24*time.Hour {
		t.Errorf("scheduler/store defaults = %v, %d, %v", cfg.FetchInterval, cfg.StoreMaxHistory, cfg.StoreMaxAge)
	}
	if cfg.CORSAllowOrigins != "*" {
		t.Errorf("CORSAllowOrigins = %q, want *", cfg.CORSAllowOrigins)
	}
	if len(cfg.Locations) != 0 {
		t.Errorf("Locations = %v, want none", cfg.Locations)
	}
	if cfg.OpenWeatherAPIKey != "" {
		t.Errorf("OpenWeatherAPIKey = %q, want empty", cfg.OpenWeatherAPIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_PATH", "/models/forest.json")
	t.Setenv("WEATHER_UNITS", "imperial")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("WEATHER_MAX_RETRIES", "2")
	t.Setenv("WEATHER_LOCATION_CITY", "Pune, Ludhiana")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "IN,IN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" || cfg.ModelPath != "/models/forest.json" || cfg.WeatherUnits != "imperial" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.HTTPTimeout != 3*time.Second || cfg.WeatherMaxRetries != 2 {
		t.Errorf("HTTPTimeout, WeatherMaxRetries = %v, %d", cfg.HTTPTimeout, cfg.WeatherMaxRetries)
	}

	want := []weather.Location{{City: "Pune", Country: "IN"}, {City: "Ludhiana", Country: "IN"}}
	if len(cfg.Locations) != len(want) {
		t.Fatalf("Locations = %v, want %v", cfg.Locations, want)
	}
	for i := range want {
		if cfg.Locations[i] != want[i] {
			t.Errorf("Locations[%d] = %v, want %v", i, cfg.Locations[i], want[i])
		}
	}
}

func TestLoadCitiesWithoutCountries(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_LOCATION_CITY", "Pune,Nagpur")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Locations) != 2 || cfg.Locations[1].Country != "" {
		t.Errorf("Locations = %v", cfg.Locations)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantText string
	}{
		{"bad duration", map[string]string{"HTTP_TIMEOUT": "soon"}, "HTTP_TIMEOUT"},
		{"zero interval", map[string]string{"FETCH_INTERVAL": "0s"}, "FetchInterval"},
		{"bad units", map[string]string{"WEATHER_UNITS": "kelvin"}, "WeatherUnits"},
		{"bad port", map[string]string{"PORT": "http"}, "Port"},
		{"bad base url", map[string]string{"OPENWEATHER_BASE_URL": "not a url"}, "OpenWeatherBaseURL"},
		{"mismatched locations", map[string]string{"WEATHER_LOCATION_CITY": "Pune,Nagpur", "WEATHER_LOCATION_COUNTRY": "IN"}, "same"},
		{"empty city", map[string]string{"WEATHER_LOCATION_CITY": "Pune,,Nagpur"}, "empty city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Load() error = %q, want it to mention %q", err.Error(), tt.wantText)
			}
		})
	}
}
