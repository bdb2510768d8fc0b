package crop

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseInput decodes a prediction request body and applies field defaults.
// An empty body or a falsy non-object JSON value (null, false, 0, "", [])
// yields ErrNoData; every other failure is an *InputError. An empty object
// is valid and takes every default.
func ParseInput(body []byte) (Input, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Input{}, ErrNoData
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return Input{}, &InputError{Err: fmt.Errorf("invalid JSON body: %w", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Input{}, &InputError{Err: errors.New("invalid JSON body: unexpected data after top-level value")}
	}
	if isEmptyPayload(payload) {
		return Input{}, ErrNoData
	}

	fields, ok := payload.(map[string]any)
	if !ok {
		return Input{}, &InputError{Err: fmt.Errorf("request body must be a JSON object, got %s", jsonType(payload))}
	}

	in := DefaultInput()
	targets := []struct {
		name string
		dst  *float64
	}{
		{"N", &in.N},
		{"P", &in.P},
		{"K", &in.K},
		{"ph", &in.PH},
		{"temperature", &in.Temperature},
		{"humidity", &in.Humidity},
		{"rainfall", &in.Rainfall},
	}
	for _, target := range targets {
		raw, present := fields[target.name]
		if !present {
			continue
		}
		v, err := toFloat(raw)
		if err != nil {
			return Input{}, &InputError{Field: target.name, Err: err}
		}
		*target.dst = v
	}

	if city, present := fields["city_name"]; present {
		in.City = city
	}

	return in, nil
}

// isEmptyPayload reports whether a decoded top-level value carries no data.
func isEmptyPayload(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return err == nil && f == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	default:
		return false
	}
}

// toFloat converts a decoded JSON value to a finite float64.
// Numbers, numeric strings and booleans are accepted.
func toFloat(raw any) (float64, error) {
	var (
		v   float64
		err error
	)
	switch x := raw.(type) {
	case json.Number:
		v, err = strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert number to float: %s", x)
		}
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: %q", x)
		}
	case bool:
		if x {
			v = 1
		}
	default:
		return 0, fmt.Errorf("value must be a number or numeric string, not %s", jsonType(raw))
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value must be a finite number, got %v", v)
	}
	return v, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
