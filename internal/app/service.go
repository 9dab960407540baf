// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Merge inbound changes onto stored records (full and partial updates)
//   - Enforce rules that span entities (a quote's author must exist)
//   - Apply the author scope of nested quote routes
//   - Count record mutations
//
// What does NOT belong here:
//   - HTTP specifics such as status codes or JSON shapes (that's adapters)
//   - SQL or gorm queries (that's storage adapters)
//   - Single-record field rules (that's the domain layer)
package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-lab/internal/platform/logging"
)

// Mutation operations reported to the MutationRecorder.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Resource names reported to the MutationRecorder.
const (
	ResourceAuthor = "author"
	ResourceQuote  = "quote"
)

// MutationRecorder counts successful writes.
// The prometheus adapter in platform/metrics implements it.
type MutationRecorder interface {
	RecordMutation(resource, operation string)
}

type noopRecorder struct{}

func (noopRecorder) RecordMutation(string, string) {}

// recordMutation counts a successful write and marks it on the request span,
// so a trace shows which records a request changed.
func recordMutation(ctx context.Context, rec MutationRecorder, resource, operation string, id int64) {
	rec.RecordMutation(resource, operation)

	trace.SpanFromContext(ctx).AddEvent(resource+"."+operation,
		trace.WithAttributes(attribute.Int64(resource+".id", id)))
}

func defaultRecorder(r MutationRecorder) MutationRecorder {
	if r == nil {
		return noopRecorder{}
	}

	return r
}

func defaultLogger(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}

	return l.With(slog.String("component", component))
}

// requestLogger prefers the request-scoped logger carried by ctx so log lines
// keep their request and trace ids.
func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return logging.FromContextOr(ctx, fallback)
}
