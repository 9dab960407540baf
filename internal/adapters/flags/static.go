// Package flags serves feature flags from loaded configuration.
package flags

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quote-lab/internal/platform/config"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// Static is an in-memory ports.FeatureFlags. Values are seeded from config
// and may be replaced at runtime with Set.
type Static struct {
	mu     sync.RWMutex
	values map[string]any
}

var _ ports.FeatureFlags = (*Static)(nil)

// New returns a Static holding a copy of values.
func New(values map[string]any) *Static {
	s := &Static{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}

	return s
}

// FromConfig seeds the quote-lab flags from the api section.
func FromConfig(cfg config.APIConfig) *Static {
	return New(map[string]any{
		ports.FlagStrictNestedAuthor: cfg.StrictNestedAuthor,
		ports.FlagQuoteDepth:         cfg.QuoteDepth,
	})
}

// Set replaces the value of a flag.
func (s *Static) Set(flag string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[flag] = value
}

// IsEnabled returns the boolean flag, or defaultValue when it is unset or
// not a bool.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.values[flag].(bool); ok {
		return v
	}

	return defaultValue
}

// GetInt returns the integer flag, or defaultValue when it is unset or
// not an integer.
func (s *Static) GetInt(_ context.Context, flag string, defaultValue int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch v := s.values[flag].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return defaultValue
	}
}
