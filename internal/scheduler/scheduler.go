package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/crop-recommendation/internal/weather"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 15 * time.Minute

// jobTimeout bounds a single location fetch.
const jobTimeout = 30 * time.Second

// Fetcher records a weather reading for a location.
type Fetcher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically records weather readings for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	locations []weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, fetcher Fetcher) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		fetcher:   fetcher,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("INFO: scheduler: no locations configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("INFO: scheduler: polling %d location(s) every %s", len(s.locations), s.interval)
	return nil
}

func (s *Scheduler) run() {
	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc weather.Location) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			// FetchAndStore logs its own failures.
			_ = s.fetcher.FetchAndStore(ctx, loc)
		}(loc)
	}
	wg.Wait()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
