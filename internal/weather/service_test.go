package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/crop-recommendation/internal/metrics"
	"github.com/i474232898/crop-recommendation/internal/store"
	"github.com/i474232898/crop-recommendation/internal/weather"
)

type fakeProvider struct {
	reading weather.Reading
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(_ context.Context, loc weather.Location) (weather.Reading, error) {
	f.calls++
	if f.err != nil {
		return weather.Reading{}, f.err
	}
	r := f.reading
	r.Location = loc
	return r, nil
}

func TestServiceCurrent_RecordsReading(t *testing.T) {
	mem := store.NewMemoryStore(10, 0)
	prov := &fakeProvider{reading: weather.Reading{Temperature: 27, Humidity: 65, Rainfall: 1.2}}
	svc := weather.NewService(mem, prov, metrics.NewCollector("test", prometheus.NewRegistry()))

	loc := weather.Location{City: "Pune"}
	got, err := svc.Current(context.Background(), loc)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got.Temperature != 27 || got.Timestamp.IsZero() {
		t.Errorf("Current() = %+v, want temperature 27 with timestamp", got)
	}
	if got.Provider != "fake" {
		t.Errorf("Provider = %q, want the provider's name", got.Provider)
	}

	latest, err := svc.Latest(loc)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest != got {
		t.Errorf("Latest() = %+v, want %+v", latest, got)
	}

	hist, err := svc.History(loc, got.Timestamp.Add(-time.Minute), got.Timestamp.Add(time.Minute))
	if err != nil || len(hist) != 1 {
		t.Errorf("History() = %v, %v; want one reading", hist, err)
	}
}

func TestServiceCurrent_ErrorKeepsHistory(t *testing.T) {
	mem := store.NewMemoryStore(10, 0)
	prov := &fakeProvider{reading: weather.Reading{Temperature: 27}}
	svc := weather.NewService(mem, prov, nil)
	loc := weather.Location{City: "Pune"}

	if err := svc.FetchAndStore(context.Background(), loc); err != nil {
		t.Fatalf("FetchAndStore() error = %v", err)
	}

	prov.err = &weather.StatusError{Code: 500}
	if err := svc.FetchAndStore(context.Background(), loc); err == nil {
		t.Fatal("FetchAndStore() expected error, got nil")
	}

	latest, err := svc.Latest(loc)
	if err != nil || latest.Temperature != 27 {
		t.Errorf("Latest() = %+v, %v; want last good reading", latest, err)
	}
}

func TestServiceCurrent_NoProvider(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(0, 0), nil, nil)
	if _, err := svc.Current(context.Background(), weather.Location{City: "Pune"}); !errors.Is(err, weather.ErrNotConfigured) {
		t.Fatalf("Current() error = %v, want ErrNotConfigured", err)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &weather.StatusError{Code: 404}
	if got, want := err.Error(), "Weather API error (404)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&weather.StatusError{Code: 401}, "status_error"},
		{weather.ErrUnavailable, "unavailable"},
		{weather.ErrCircuitOpen, "circuit_open"},
		{weather.ErrNotConfigured, "not_configured"},
		{context.DeadlineExceeded, "error"},
	}
	for _, tt := range tests {
		if got := weather.Result(tt.err); got != tt.want {
			t.Errorf("Result(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestLocationKeyAndQuery(t *testing.T) {
	loc := weather.Location{City: " Pune ", Country: "in"}
	if got := loc.Key(); got != "pune:IN" {
		t.Errorf("Key() = %q, want pune:IN", got)
	}
	if got := (weather.Location{City: "Pune"}).Query(); got != "Pune" {
		t.Errorf("Query() = %q, want Pune", got)
	}
	if got := (weather.Location{City: "Pune", Country: "IN"}).Query(); got != "Pune,IN" {
		t.Errorf("Query() = %q, want Pune,IN", got)
	}
}
