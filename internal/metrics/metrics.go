package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the service's Prometheus instruments.
// All Record methods are no-ops on a nil *Collector.
type Collector struct {
	// Prediction metrics
	PredictionsTotal   *prometheus.CounterVec
	PredictionDuration prometheus.Histogram

	// Weather provider metrics
	WeatherRequestsTotal   *prometheus.CounterVec
	WeatherRequestDuration prometheus.Histogram
	WeatherReadingsStored  prometheus.Counter

	// Artifact state
	ArtifactLoaded *prometheus.GaugeVec
}

// NewCollector registers the collector's instruments with reg.
// A nil reg registers with the default Prometheus registry.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Total number of crop predictions by outcome",
			},
			[]string{"outcome"},
		),

		PredictionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "prediction_duration_seconds",
				Help:      "Duration of the scale, classify and decode pipeline",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		WeatherRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_requests_total",
				Help:      "Total number of weather provider requests by result",
			},
			[]string{"result"},
		),

		WeatherRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "weather_request_duration_seconds",
				Help:      "Duration of weather provider requests in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),

		WeatherReadingsStored: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_readings_stored_total",
				Help:      "Total number of weather readings appended to history",
			},
		),

		ArtifactLoaded: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "artifact_loaded",
				Help:      "Whether a model artifact was loaded at startup (1) or not (0)",
			},
			[]string{"artifact"},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func NewTimer(observer prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: observer,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(d.Seconds())
	}
	return d
}

// PredictionTimer starts a timer that observes PredictionDuration.
func (c *Collector) PredictionTimer() *Timer {
	if c == nil {
		return NewTimer(nil)
	}
	return NewTimer(c.PredictionDuration)
}

// WeatherTimer starts a timer that observes WeatherRequestDuration.
func (c *Collector) WeatherTimer() *Timer {
	if c == nil {
		return NewTimer(nil)
	}
	return NewTimer(c.WeatherRequestDuration)
}

// RecordPrediction increments the prediction counter for outcome.
func (c *Collector) RecordPrediction(outcome string) {
	if c == nil {
		return
	}
	c.PredictionsTotal.WithLabelValues(outcome).Inc()
}

// RecordWeatherRequest increments the provider request counter for result.
func (c *Collector) RecordWeatherRequest(result string) {
	if c == nil {
		return
	}
	c.WeatherRequestsTotal.WithLabelValues(result).Inc()
}

// RecordReadingStored increments the stored readings counter.
func (c *Collector) RecordReadingStored() {
	if c == nil {
		return
	}
	c.WeatherReadingsStored.Inc()
}

// SetArtifacts publishes the load state of each artifact.
func (c *Collector) SetArtifacts(status map[string]bool) {
	if c == nil {
		return
	}
	for name, loaded := range status {
		v := 0.0
		if loaded {
			v = 1
		}
		c.ArtifactLoaded.WithLabelValues(name).Set(v)
	}
}
