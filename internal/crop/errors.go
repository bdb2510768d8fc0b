package crop

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a request carries no JSON payload.
var ErrNoData = errors.New("No JSON data received")

// InputError reports a request value that could not be used as a feature.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ModelUnavailableError reports an artifact that was not loaded at startup.
type ModelUnavailableError struct {
	Artifact string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("%s artifact is not loaded", e.Artifact)
}

// ComputationError wraps a failure inside scaling, classification or decoding.
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Kind classifies err into a short label for logs and metrics.
func Kind(err error) string {
	var (
		inputErr *InputError
		modelErr *ModelUnavailableError
		compErr  *ComputationError
	)
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNoData):
		return "no_data"
	case errors.As(err, &inputErr):
		return "input_error"
	case errors.As(err, &modelErr):
		return "model_unavailable"
	case errors.As(err, &compErr):
		return "computation_error"
	default:
		return "internal_error"
	}
}
