// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never storage rows or transport objects
//   - Error returns use domain error types (ErrNotFound, ErrIntegrity, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

// Repository is the CRUD contract shared by every record type.
// Each mutating method runs as a single storage transaction.
type Repository[T any] interface {
	// Create persists record and assigns its ID.
	Create(ctx context.Context, record *T) error

	// Get returns the record with id or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*T, error)

	// List returns every visible record in creation order.
	// Returns an empty slice (not nil) when there are none.
	List(ctx context.Context) ([]T, error)

	// Update writes every field of record.
	// Returns domain.ErrNotFound if no visible record has record's ID.
	Update(ctx context.Context, record *T) error

	// Delete removes the record with id.
	// Returns domain.ErrNotFound if no visible record has that ID.
	Delete(ctx context.Context, id int64) error
}

// AuthorRepository persists authors.
//
// Delete must set the author reference of every quote pointing at the
// deleted author to null inside the same transaction.
type AuthorRepository interface {
	Repository[domain.Author]

	// Exists reports whether an author with id is stored.
	Exists(ctx context.Context, id int64) (bool, error)
}

// QuoteRepository persists quotes. Reads populate Quote.Author.
type QuoteRepository interface {
	Repository[domain.Quote]

	// ForAuthor returns a view whose Get, List, Update and Delete only see
	// quotes attributed to authorID. Create is not filtered.
	ForAuthor(authorID int64) Repository[domain.Quote]
}

// Store bundles the repositories of one storage backend.
type Store interface {
	HealthChecker

	Authors() AuthorRepository
	Quotes() QuoteRepository

	// Close releases the connection pool.
	Close() error
}
