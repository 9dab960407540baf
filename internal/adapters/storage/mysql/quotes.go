package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// quoteRepo reads and writes quotes. A non-nil authorID restricts reads,
// updates and deletes to that author.
type quoteRepo struct {
	db       *gorm.DB
	authorID *int64
}

func (r *quoteRepo) ForAuthor(authorID int64) ports.Repository[domain.Quote] {
	return &quoteRepo{db: r.db, authorID: &authorID}
}

// scoped starts a query on the quotes table with the author filter applied.
func (r *quoteRepo) scoped(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&quoteModel{})
	if r.authorID != nil {
		tx = tx.Where("author_id = ?", *r.authorID)
	}

	return tx
}

func (r *quoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	m := quoteModel{Message: q.Message, AuthorID: q.AuthorID}

	// Omit the association so gorm never upserts the author row.
	if err := r.db.WithContext(ctx).Omit("Author").Create(&m).Error; err != nil {
		return fmt.Errorf("inserting quote: %w", mapError("quote", err))
	}

	q.ID = m.ID

	return nil
}

func (r *quoteRepo) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	var m quoteModel

	err := r.scoped(ctx).Preload("Author").Where("id = ?", id).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.NewNotFoundError("quote", fmt.Sprint(id))
	case err != nil:
		return nil, fmt.Errorf("getting quote: %w", mapError("quote", err))
	default:
		return m.toDomain(), nil
	}
}

func (r *quoteRepo) List(ctx context.Context) ([]domain.Quote, error) {
	var models []quoteModel
	if err := r.scoped(ctx).Preload("Author").Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing quotes: %w", mapError("quote", err))
	}

	quotes := make([]domain.Quote, 0, len(models))
	for i := range models {
		quotes = append(quotes, *models[i].toDomain())
	}

	return quotes, nil
}

func (r *quoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	res := r.scoped(ctx).
		Where("id = ?", q.ID).
		Updates(map[string]any{"message": q.Message, "author_id": q.AuthorID})
	if res.Error != nil {
		return fmt.Errorf("updating quote: %w", mapError("quote", res.Error))
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", fmt.Sprint(q.ID))
	}

	return nil
}

func (r *quoteRepo) Delete(ctx context.Context, id int64) error {
	res := r.scoped(ctx).Where("id = ?", id).Delete(&quoteModel{})
	if res.Error != nil {
		return fmt.Errorf("deleting quote: %w", mapError("quote", res.Error))
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", fmt.Sprint(id))
	}

	return nil
}
