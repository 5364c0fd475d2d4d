// Package city maps human city names to the numeric codes used by the
// historical archive provider.
package city

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCity is returned when a city name is not in the registry.
var ErrUnknownCity = errors.New("unknown city")

//go:embed cities.json
var citiesJSON []byte

// Registry is an immutable name-to-code lookup table loaded at startup.
type Registry struct {
	codes map[string]int
}

// NewRegistry loads the embedded city table.
func NewRegistry() (*Registry, error) {
	codes := make(map[string]int)
	if err := json.Unmarshal(citiesJSON, &codes); err != nil {
		return nil, fmt.Errorf("parsing embedded city table: %w", err)
	}
	return &Registry{codes: codes}, nil
}

// Resolve returns the provider code for name. Lookup is an exact,
// case-sensitive match.
func (r *Registry) Resolve(name string) (int, error) {
	if name == "" {
		return 0, ErrUnknownCity
	}
	code, ok := r.codes[name]
	if !ok {
		return 0, ErrUnknownCity
	}
	return code, nil
}

// Names returns all registered city names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codes))
	for name := range r.codes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered cities.
func (r *Registry) Len() int {
	return len(r.codes)
}
