package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

type authorRepo struct {
	db *sql.DB
}

func (r *authorRepo) Create(ctx context.Context, a *domain.Author) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO authors (name, surname) VALUES (?, ?)",
		a.Name, a.Surname,
	)
	if err != nil {
		return fmt.Errorf("inserting author: %w", mapError("author", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading author id: %w", err)
	}

	a.ID = id

	return nil
}

func (r *authorRepo) Get(ctx context.Context, id int64) (*domain.Author, error) {
	a := &domain.Author{}

	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, surname FROM authors WHERE id = ?",
		id,
	).Scan(&a.ID, &a.Name, &a.Surname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("author", fmt.Sprint(id))
	}

	if err != nil {
		return nil, fmt.Errorf("getting author: %w", mapError("author", err))
	}

	return a, nil
}

func (r *authorRepo) List(ctx context.Context) ([]domain.Author, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, surname FROM authors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", mapError("author", err))
	}
	defer rows.Close()

	authors := []domain.Author{}

	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}

		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating authors: %w", err)
	}

	return authors, nil
}

func (r *authorRepo) Update(ctx context.Context, a *domain.Author) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE authors SET name = ?, surname = ? WHERE id = ?",
		a.Name, a.Surname, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating author: %w", mapError("author", err))
	}

	return rowsAffected(res, "author", a.ID)
}

// Delete detaches the author's quotes and removes the author in one
// transaction.
func (r *authorRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE quotes SET author_id = NULL WHERE author_id = ?", id); err != nil {
			return fmt.Errorf("detaching quotes: %w", mapError("quote", err))
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM authors WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting author: %w", mapError("author", err))
		}

		return rowsAffected(res, "author", id)
	})
}

func (r *authorRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM authors WHERE id = ?)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking author: %w", mapError("author", err))
	}

	return exists, nil
}
