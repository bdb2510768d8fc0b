package model

import (
	"errors"
	"fmt"
)

// StandardScaler centres each feature on its training mean and divides by its
// training standard deviation.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("scaler has no features")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean has %d values but scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

// Transform implements Transformer. A zero scale leaves the centred value as is.
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("X has %d features, but StandardScaler is expecting %d features as input", len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for i, v := range row {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

// MinMaxScaler maps each feature linearly into the range seen during fitting.
type MinMaxScaler struct {
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

func (s *MinMaxScaler) validate() error {
	if len(s.Min) == 0 {
		return errors.New("scaler has no features")
	}
	if len(s.Min) != len(s.Scale) {
		return fmt.Errorf("scaler min has %d values but scale has %d", len(s.Min), len(s.Scale))
	}
	return nil
}

// Transform implements Transformer.
func (s *MinMaxScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Min) {
		return nil, fmt.Errorf("X has %d features, but MinMaxScaler is expecting %d features as input", len(row), len(s.Min))
	}
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = v*s.Scale[i] + s.Min[i]
	}
	return out, nil
}
