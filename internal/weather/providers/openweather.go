package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/crop-recommendation/internal/weather"
)

// DefaultOpenWeatherURL is the current-conditions endpoint.
const DefaultOpenWeatherURL = "http://api.openweathermap.org/data/2.5/weather"

// OpenWeatherConfig configures the OpenWeatherMap provider.
type OpenWeatherConfig struct {
	APIKey     string
	BaseURL    string
	Units      string
	MaxRetries int
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	units   string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

// NewOpenWeatherProvider creates a provider. Empty BaseURL and Units fall back
// to DefaultOpenWeatherURL and "metric".
func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	units := cfg.Units
	if units == "" {
		units = "metric"
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		units:   units,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      retries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newBreaker("openweather"),
		now:     time.Now,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// openWeatherPayload holds the fields read from a current-conditions response.
// Pointers distinguish absent fields from zero values.
type openWeatherPayload struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Rain *struct {
		OneH *float64 `json:"1h"`
	} `json:"rain"`
}

// Fetch performs one current-conditions lookup for loc.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, weather.ErrNotConfigured
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", loc.Query())
		values.Set("appid", p.apiKey)
		values.Set("units", p.units)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return weather.Reading{}, &weather.StatusError{Code: resp.StatusCode}
	}

	var payload openWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}
	if payload.Main == nil || payload.Main.Temp == nil || payload.Main.Humidity == nil {
		return weather.Reading{}, weather.ErrUnavailable
	}

	rainfall := 0.0
	if payload.Rain != nil && payload.Rain.OneH != nil {
		rainfall = *payload.Rain.OneH
	}

	return weather.Reading{
		Location:    loc,
		Timestamp:   p.now().UTC(),
		Temperature: *payload.Main.Temp,
		Humidity:    *payload.Main.Humidity,
		Rainfall:    rainfall,
		Provider:    p.name,
	}, nil
}
