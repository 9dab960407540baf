package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// AuthorPatch carries inbound author fields. A nil field was absent from the
// request body.
type AuthorPatch struct {
	Name    *string
	Surname *string
}

// AuthorService orchestrates author use cases.
type AuthorService struct {
	authors ports.AuthorRepository
	metrics MutationRecorder
	logger  *slog.Logger
}

// AuthorServiceConfig contains the dependencies of the author service.
type AuthorServiceConfig struct {
	Authors ports.AuthorRepository
	Metrics MutationRecorder
	Logger  *slog.Logger
}

// NewAuthorService creates an author service. It panics without a repository.
func NewAuthorService(cfg AuthorServiceConfig) *AuthorService {
	if cfg.Authors == nil {
		panic("app: AuthorServiceConfig.Authors is required")
	}

	return &AuthorService{
		authors: cfg.Authors,
		metrics: defaultRecorder(cfg.Metrics),
		logger:  defaultLogger(cfg.Logger, "app.AuthorService"),
	}
}

// List returns all authors in creation order.
func (s *AuthorService) List(ctx context.Context) ([]domain.Author, error) {
	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}

	return authors, nil
}

// Get returns one author.
func (s *AuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	author, err := s.authors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting author: %w", err)
	}

	return author, nil
}

// Create validates and stores a new author. Both fields are required.
func (s *AuthorService) Create(ctx context.Context, patch AuthorPatch) (*domain.Author, error) {
	errs := domain.FieldErrors{}
	if patch.Name == nil {
		errs.Add("name", domain.MsgRequired)
	}

	if patch.Surname == nil {
		errs.Add("surname", domain.MsgRequired)
	}

	author := &domain.Author{}
	patch.applyTo(author)

	if err := validateAuthor(errs, author); err != nil {
		return nil, fmt.Errorf("creating author: %w", err)
	}

	if err := s.authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("creating author: %w", err)
	}

	recordMutation(ctx, s.metrics, ResourceAuthor, OpCreate, author.ID)
	requestLogger(ctx, s.logger).InfoContext(ctx, "author created", slog.Int64("author_id", author.ID))

	return author, nil
}

// Update merges patch onto the stored author. Fields absent from patch keep
// their stored value. A failed validation leaves the record untouched.
func (s *AuthorService) Update(ctx context.Context, id int64, patch AuthorPatch) (*domain.Author, error) {
	author, err := s.authors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}

	patch.applyTo(author)

	if err := validateAuthor(domain.FieldErrors{}, author); err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}

	if err := s.authors.Update(ctx, author); err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}

	recordMutation(ctx, s.metrics, ResourceAuthor, OpUpdate, id)
	requestLogger(ctx, s.logger).InfoContext(ctx, "author updated", slog.Int64("author_id", id))

	return author, nil
}

// Delete removes an author. Quotes that referenced it keep existing with a
// null author.
func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}

	recordMutation(ctx, s.metrics, ResourceAuthor, OpDelete, id)
	requestLogger(ctx, s.logger).InfoContext(ctx, "author deleted", slog.Int64("author_id", id))

	return nil
}

func (p AuthorPatch) applyTo(a *domain.Author) {
	if p.Name != nil {
		a.Name = *p.Name
	}

	if p.Surname != nil {
		a.Surname = *p.Surname
	}
}

// validateAuthor merges the domain field rules into errs, keeping any
// "required" message already recorded for a field.
func validateAuthor(errs domain.FieldErrors, a *domain.Author) error {
	if err := a.Validate(); err != nil {
		mergeFieldErrors(errs, err)
	}

	return errs.Err()
}

func mergeFieldErrors(dst domain.FieldErrors, err error) {
	var fields domain.FieldErrors
	if !errors.As(err, &fields) {
		dst.Add("non_field_errors", err.Error())
		return
	}

	for field, msg := range fields {
		dst.Add(field, msg)
	}
}
