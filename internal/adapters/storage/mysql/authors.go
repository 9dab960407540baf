package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

type authorRepo struct {
	db *gorm.DB
}

func (r *authorRepo) Create(ctx context.Context, a *domain.Author) error {
	m := authorModel{Name: a.Name, Surname: a.Surname}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("inserting author: %w", mapError("author", err))
	}

	a.ID = m.ID

	return nil
}

func (r *authorRepo) Get(ctx context.Context, id int64) (*domain.Author, error) {
	var m authorModel

	err := r.db.WithContext(ctx).First(&m, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.NewNotFoundError("author", fmt.Sprint(id))
	case err != nil:
		return nil, fmt.Errorf("getting author: %w", mapError("author", err))
	default:
		return m.toDomain(), nil
	}
}

func (r *authorRepo) List(ctx context.Context) ([]domain.Author, error) {
	var models []authorModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing authors: %w", mapError("author", err))
	}

	authors := make([]domain.Author, 0, len(models))
	for i := range models {
		authors = append(authors, *models[i].toDomain())
	}

	return authors, nil
}

func (r *authorRepo) Update(ctx context.Context, a *domain.Author) error {
	res := r.db.WithContext(ctx).Model(&authorModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{"name": a.Name, "surname": a.Surname})
	if res.Error != nil {
		return fmt.Errorf("updating author: %w", mapError("author", res.Error))
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("author", fmt.Sprint(a.ID))
	}

	return nil
}

// Delete detaches the author's quotes and removes the author in one
// transaction.
func (r *authorRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&quoteModel{}).Where("author_id = ?", id).Update("author_id", nil).Error
		if err != nil {
			return fmt.Errorf("detaching quotes: %w", mapError("quote", err))
		}

		res := tx.Delete(&authorModel{}, id)
		if res.Error != nil {
			return fmt.Errorf("deleting author: %w", mapError("author", res.Error))
		}

		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("author", fmt.Sprint(id))
		}

		return nil
	})
}

func (r *authorRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&authorModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking author: %w", mapError("author", err))
	}

	return count > 0, nil
}
