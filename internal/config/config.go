package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/crop-recommendation/internal/model"
	"github.com/i474232898/crop-recommendation/internal/weather"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Model artifacts, relative to the working directory unless absolute.
	ModelPath        string `validate:"required"`
	ScalerPath       string `validate:"required"`
	LabelEncoderPath string `validate:"required"`

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string        `validate:"required,url"`
	WeatherUnits       string        `validate:"oneof=standard metric imperial"`
	HTTPTimeout        time.Duration `validate:"gt=0"`
	WeatherMaxRetries  int           `validate:"gte=0,lte=10"`

	// FetchInterval controls how often we fetch data for each location.
	FetchInterval time.Duration `validate:"gt=0"`

	// Locations polled by the scheduler.
	Locations []weather.Location `validate:"dive"`

	// In-memory store retention.
	StoreMaxHistory int           `validate:"gte=0"` // max readings per location (0 = unlimited)
	StoreMaxAge     time.Duration `validate:"gte=0"` // max age of readings (0 = unlimited)

	CORSAllowOrigins string `validate:"required"`
}

// Artifacts returns the configured artifact paths.
func (c *AppConfig) Artifacts() model.Paths {
	return model.Paths{
		Classifier:   c.ModelPath,
		Scaler:       c.ScalerPath,
		LabelEncoder: c.LabelEncoderPath,
	}
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{
		Port:               getenvDefault("PORT", "8080"),
		ModelPath:          getenvDefault("MODEL_PATH", "random_forest_crop_model.json"),
		ScalerPath:         getenvDefault("SCALER_PATH", "scaler.json"),
		LabelEncoderPath:   getenvDefault("LABEL_ENCODER_PATH", "label_encoder.json"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getenvDefault("OPENWEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5/weather"),
		WeatherUnits:       getenvDefault("WEATHER_UNITS", "metric"),
		StoreMaxHistory:    getenvInt("STORE_MAX_HISTORY", 96), // roughly 24h at 15-minute intervals
		WeatherMaxRetries:  getenvInt("WEATHER_MAX_RETRIES", 0),
		CORSAllowOrigins:   getenvDefault("CORS_ALLOW_ORIGINS", "*"),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"FETCH_INTERVAL", "15m", &cfg.FetchInterval},
		{"STORE_MAX_AGE", "24h", &cfg.StoreMaxAge},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadLocations reads the comma-separated WEATHER_LOCATION_CITY and
// WEATHER_LOCATION_COUNTRY lists. An unset city list means no polling.
func loadLocations() ([]weather.Location, error) {
	city := strings.TrimSpace(os.Getenv("WEATHER_LOCATION_CITY"))
	if city == "" {
		return nil, nil
	}
	country := strings.TrimSpace(os.Getenv("WEATHER_LOCATION_COUNTRY"))

	cities := strings.Split(city, ",")
	countries := make([]string, len(cities))
	if country != "" {
		countries = strings.Split(country, ",")
	}
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	locs := make([]weather.Location, 0, len(cities))
	for i := range cities {
		c := strings.TrimSpace(cities[i])
		if c == "" {
			return nil, fmt.Errorf("empty city at position %d in WEATHER_LOCATION_CITY", i)
		}
		locs = append(locs, weather.Location{
			City:    c,
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("WARNING: invalid %s=%q, using default %d", key, v, def)
	}
	return def
}
