package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// QuoteScope restricts quote operations to one author. The zero value is the
// global scope.
type QuoteScope struct {
	AuthorID *int64
}

// AuthorScope returns the scope of /authors/{author_pk}/quotes/.
func AuthorScope(authorID int64) QuoteScope {
	return QuoteScope{AuthorID: &authorID}
}

// QuotePatch carries inbound quote fields.
type QuotePatch struct {
	// Message is nil when absent from the body.
	Message *string

	// AuthorSet reports whether "author" was present in the body. When it is,
	// AuthorID holds the reference and nil means an explicit null.
	AuthorSet bool
	AuthorID  *int64
}

// QuoteService orchestrates quote use cases, globally or within an author scope.
type QuoteService struct {
	quotes  ports.QuoteRepository
	authors ports.AuthorRepository
	flags   ports.FeatureFlags
	metrics MutationRecorder
	logger  *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Quotes  ports.QuoteRepository
	Authors ports.AuthorRepository
	Flags   ports.FeatureFlags
	Metrics MutationRecorder
	Logger  *slog.Logger
}

// NewQuoteService creates a quote service. It panics without repositories.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Quotes == nil || cfg.Authors == nil {
		panic("app: QuoteServiceConfig.Quotes and Authors are required")
	}

	return &QuoteService{
		quotes:  cfg.Quotes,
		authors: cfg.Authors,
		flags:   cfg.Flags,
		metrics: defaultRecorder(cfg.Metrics),
		logger:  defaultLogger(cfg.Logger, "app.QuoteService"),
	}
}

func (s *QuoteService) repo(scope QuoteScope) ports.Repository[domain.Quote] {
	if scope.AuthorID == nil {
		return s.quotes
	}

	return s.quotes.ForAuthor(*scope.AuthorID)
}

// List returns the quotes visible in scope. An unknown scope author yields an
// empty list.
func (s *QuoteService) List(ctx context.Context, scope QuoteScope) ([]domain.Quote, error) {
	quotes, err := s.repo(scope).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// Get returns one quote. A quote outside scope is not found.
func (s *QuoteService) Get(ctx context.Context, scope QuoteScope, id int64) (*domain.Quote, error) {
	quote, err := s.repo(scope).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return quote, nil
}

// Create validates and stores a new quote. Message is required; an absent
// author leaves the quote unattributed.
func (s *QuoteService) Create(ctx context.Context, scope QuoteScope, patch QuotePatch) (*domain.Quote, error) {
	errs := domain.FieldErrors{}
	if patch.Message == nil {
		errs.Add("message", domain.MsgRequired)
	}

	if scope.AuthorID != nil && s.strictNested(ctx) {
		patch = s.bindScopeAuthor(errs, scope, patch)
	}

	quote := &domain.Quote{}
	patch.applyTo(quote)

	if err := s.validate(ctx, errs, quote); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	// Creation is never filtered by scope.
	if err := s.repo(scope).Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	recordMutation(ctx, s.metrics, ResourceQuote, OpCreate, quote.ID)
	requestLogger(ctx, s.logger).InfoContext(ctx, "quote created",
		slog.Int64("quote_id", quote.ID),
		slog.Any("author_id", quote.AuthorID),
	)

	return s.reload(ctx, quote)
}

// Update merges patch onto the stored quote. The quote must be visible in
// scope; fields absent from patch keep their stored value.
func (s *QuoteService) Update(ctx context.Context, scope QuoteScope, id int64, patch QuotePatch) (*domain.Quote, error) {
	repo := s.repo(scope)

	quote, err := repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("updating quote: %w", err)
	}

	patch.applyTo(quote)

	if err := s.validate(ctx, domain.FieldErrors{}, quote); err != nil {
		return nil, fmt.Errorf("updating quote: %w", err)
	}

	if err := repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("updating quote: %w", err)
	}

	recordMutation(ctx, s.metrics, ResourceQuote, OpUpdate, id)
	requestLogger(ctx, s.logger).InfoContext(ctx, "quote updated", slog.Int64("quote_id", id))

	return s.reload(ctx, quote)
}

// Delete removes a quote visible in scope.
func (s *QuoteService) Delete(ctx context.Context, scope QuoteScope, id int64) error {
	if err := s.repo(scope).Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	recordMutation(ctx, s.metrics, ResourceQuote, OpDelete, id)
	requestLogger(ctx, s.logger).InfoContext(ctx, "quote deleted", slog.Int64("quote_id", id))

	return nil
}

func (s *QuoteService) strictNested(ctx context.Context) bool {
	return s.flags != nil && s.flags.IsEnabled(ctx, ports.FlagStrictNestedAuthor, false)
}

// bindScopeAuthor defaults an absent author to the scope author and rejects
// a different one.
func (s *QuoteService) bindScopeAuthor(errs domain.FieldErrors, scope QuoteScope, patch QuotePatch) QuotePatch {
	scoped := *scope.AuthorID

	switch {
	case !patch.AuthorSet:
		patch.AuthorSet = true
		patch.AuthorID = &scoped
	case patch.AuthorID == nil || *patch.AuthorID != scoped:
		errs.Add("author", fmt.Sprintf("must match the author in the path (%d)", scoped))
	}

	return patch
}

// validate runs the domain rules and checks that the referenced author exists.
func (s *QuoteService) validate(ctx context.Context, errs domain.FieldErrors, q *domain.Quote) error {
	if err := q.Validate(); err != nil {
		mergeFieldErrors(errs, err)
	}

	if q.AuthorID != nil {
		if _, recorded := errs["author"]; !recorded {
			ok, err := s.authors.Exists(ctx, *q.AuthorID)
			if err != nil {
				return fmt.Errorf("checking author reference: %w", err)
			}

			if !ok {
				errs.Add("author", fmt.Sprintf("invalid pk %q - object does not exist", fmt.Sprint(*q.AuthorID)))
			}
		}
	}

	return errs.Err()
}

// reload reads the written quote back without scope so the nested author is
// populated even when the write moved it out of scope.
func (s *QuoteService) reload(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	stored, err := s.quotes.Get(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("reading quote back: %w", err)
	}

	return stored, nil
}

func (p QuotePatch) applyTo(q *domain.Quote) {
	if p.Message != nil {
		q.Message = *p.Message
	}

	if p.AuthorSet {
		q.AuthorID = p.AuthorID
		q.Author = nil
	}
}
