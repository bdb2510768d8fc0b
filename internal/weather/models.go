package weather

import (
	"strings"
	"time"
)

// Location identifies a place by free-text city name and optional country code.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
// City matching is case-insensitive.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.City)) + ":" + strings.ToUpper(strings.TrimSpace(l.Country))
}

// Query renders the location as an OpenWeatherMap-style q parameter.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Reading is the subset of current conditions the crop model consumes.
type Reading struct {
	Location    Location  `json:"location"`
	Timestamp   time.Time `json:"timestamp"` // always UTC
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Rainfall    float64   `json:"rainfall"`
	Provider    string    `json:"provider,omitempty"`
}
