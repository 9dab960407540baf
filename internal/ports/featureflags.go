package ports

import (
	"context"
)

// Flags read by quote-lab.
const (
	// FlagStrictNestedAuthor makes nested quote creation reject a body author
	// that differs from the author in the path, and default an absent one to it.
	FlagStrictNestedAuthor = "strict-nested-author"

	// FlagQuoteDepth is the default expansion depth of Quote.author (0 or 1).
	FlagQuoteDepth = "quote-depth"
)

// FeatureFlags defines the contract for feature flag evaluation.
// This port allows the application to check feature enablement without
// knowing where the values come from.
//
// Example usage:
//
//	if flags.IsEnabled(ctx, ports.FlagStrictNestedAuthor, false) {
//	    return s.checkScopedAuthor(scope, patch)
//	}
type FeatureFlags interface {
	// IsEnabled checks if a boolean feature flag is enabled.
	// Returns defaultValue if the flag doesn't exist.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool

	// GetInt retrieves an integer feature flag value.
	// Returns defaultValue if the flag doesn't exist.
	GetInt(ctx context.Context, flag string, defaultValue int) int
}
