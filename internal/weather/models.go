// Package weather contains the domain model and the query orchestration for
// the weather API: date classification, provider dispatch and answer caching.
package weather

import (
	"errors"
	"fmt"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Domain errors. The error text is the user-facing diagnostic carried in the
// JSON error body, so it must stay stable.
var (
	// ErrWrongDate indicates a malformed or out-of-calendar date string.
	ErrWrongDate = errors.New("wrong date")

	// ErrWrongCity indicates an empty or unregistered city name.
	ErrWrongCity = errors.New("wrong city")

	// ErrNoData indicates the upstream was reachable but the requested
	// day could not be located or parsed.
	ErrNoData = errors.New("no data")
)

// OutOfRangeError indicates a valid date outside the servable window.
type OutOfRangeError struct {
	// First is the earliest servable date (inclusive).
	First string

	// Last is the latest servable date (inclusive).
	Last string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("date must be between %s and %s", e.First, e.Last)
}

// Observation is the normalized per-day weather record shared by all
// provider clients. Temperatures keep the unit the upstream reports,
// pressure is mmHg rounded to an integer, clouds is percent cover 0-100.
type Observation struct {
	TempMax  int
	TempMin  int
	Pressure int
	Clouds   float64
}

// okAnswer is the wire shape of a successful answer.
type okAnswer struct {
	Status   string  `json:"status"`
	TempMax  int     `json:"temp_max"`
	TempMin  int     `json:"temp_min"`
	Pressure int     `json:"pressure"`
	Clouds   float64 `json:"clouds"`
}

// errorAnswer is the wire shape of a failed answer.
type errorAnswer struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
