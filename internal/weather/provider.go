package weather

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable is returned when a provider answered but the expected fields were absent.
	ErrUnavailable = errors.New("Weather data unavailable")

	// ErrCircuitOpen is returned while the provider circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("weather provider temporarily unavailable")

	// ErrNotConfigured is returned when no provider credential is configured.
	ErrNotConfigured = errors.New("weather provider is not configured")
)

// StatusError reports a non-200 response from the provider.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Weather API error (%d)", e.Code)
}

// Provider abstracts a current-conditions weather source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// Store is the contract the in-memory reading history must satisfy.
type Store interface {
	Save(r Reading)
	Latest(loc Location) (Reading, error)
	Range(loc Location, from, to time.Time) ([]Reading, error)
}
