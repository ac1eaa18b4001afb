package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"run-tracker/store"
)

var (
	// ErrNotFound means a referenced run, athlete or item does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrInvalidTransition means the run is not in the state the operation
	// requires.
	ErrInvalidTransition = errors.New("invalid run status transition")
)

// ValidationError carries field-level detail for rejected input.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ValidateCoordinates rejects out-of-range latitude or longitude. Values are
// never clamped. The result is a *ValidationError or a nil error.
func ValidateCoordinates(lat, lon float64) error {
	if verr := checkCoordinates(nil, lat, lon); verr != nil {
		return verr
	}
	return nil
}

// checkCoordinates adds coordinate field errors to verr, allocating it on
// first use.
func checkCoordinates(verr *ValidationError, lat, lon float64) *ValidationError {
	add := func(field, message string) {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.Add(field, message)
	}
	if !(lat >= -90 && lat <= 90) {
		add("latitude", "latitude must be between -90 and 90")
	}
	if !(lon >= -180 && lon <= 180) {
		add("longitude", "longitude must be between -180 and 180")
	}
	return verr
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
