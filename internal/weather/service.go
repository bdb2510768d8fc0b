package weather

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/i474232898/crop-recommendation/internal/metrics"
)

// Service fetches current conditions from a provider and records them in a store.
type Service struct {
	store    Store
	provider Provider
	metrics  *metrics.Collector
}

// NewService creates a new Service. A nil provider makes every fetch fail with
// ErrNotConfigured; a nil collector disables metrics.
func NewService(store Store, provider Provider, collector *metrics.Collector) *Service {
	return &Service{
		store:    store,
		provider: provider,
		metrics:  collector,
	}
}

// Current performs one live provider call for loc. Successful readings are
// appended to the history.
func (s *Service) Current(ctx context.Context, loc Location) (Reading, error) {
	if s.provider == nil {
		return Reading{}, ErrNotConfigured
	}

	timer := s.metrics.WeatherTimer()
	r, err := s.provider.Fetch(ctx, loc)
	timer.ObserveDuration()
	s.metrics.RecordWeatherRequest(Result(err))
	if err != nil {
		return Reading{}, err
	}

	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	if r.Location.City == "" {
		r.Location = loc
	}
	if r.Provider == "" {
		r.Provider = s.provider.Name()
	}
	s.store.Save(r)
	s.metrics.RecordReadingStored()
	return r, nil
}

// FetchAndStore fetches and records a reading for loc. Failures are logged and
// returned; the last good reading is kept.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	r, err := s.Current(ctx, loc)
	if err != nil {
		log.Printf("WARNING: weather fetch from %s failed for %s: %v", s.providerName(), loc.Key(), err)
		return err
	}
	log.Printf("INFO: recorded weather from %s for %s: %.1f C, %.0f%% humidity, %.1f mm rain",
		r.Provider, loc.Key(), r.Temperature, r.Humidity, r.Rainfall)
	return nil
}

func (s *Service) providerName() string {
	if s.provider == nil {
		return "unconfigured provider"
	}
	return s.provider.Name()
}

// Latest delegates to the underlying store.
func (s *Service) Latest(loc Location) (Reading, error) {
	return s.store.Latest(loc)
}

// History delegates to the underlying store.
func (s *Service) History(loc Location, from, to time.Time) ([]Reading, error) {
	return s.store.Range(loc, from, to)
}

// Result classifies a provider error into a short label for metrics.
func Result(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "status_error"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}
