package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

const selectQuotes = `
SELECT q.id, q.message, q.author_id, a.name, a.surname
FROM quotes q
LEFT JOIN authors a ON a.id = q.author_id`

// quoteRepo reads and writes quotes. A non-nil authorID restricts reads,
// updates and deletes to that author.
type quoteRepo struct {
	db       *sql.DB
	authorID *int64
}

func (r *quoteRepo) ForAuthor(authorID int64) ports.Repository[domain.Quote] {
	return &quoteRepo{db: r.db, authorID: &authorID}
}

// where appends the scope filter to a condition on the quote id column.
func (r *quoteRepo) where(idColumn, authorColumn string, id int64) (string, []any) {
	if r.authorID == nil {
		return " WHERE " + idColumn + " = ?", []any{id}
	}

	return " WHERE " + idColumn + " = ? AND " + authorColumn + " = ?", []any{id, *r.authorID}
}

func (r *quoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO quotes (message, author_id) VALUES (?, ?)",
		q.Message, nullID(q.AuthorID),
	)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", mapError("quote", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading quote id: %w", err)
	}

	q.ID = id

	return nil
}

func (r *quoteRepo) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	cond, args := r.where("q.id", "q.author_id", id)

	q, err := scanQuote(r.db.QueryRowContext(ctx, selectQuotes+cond, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("quote", fmt.Sprint(id))
	}

	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", mapError("quote", err))
	}

	return q, nil
}

func (r *quoteRepo) List(ctx context.Context) ([]domain.Quote, error) {
	query := selectQuotes

	var args []any
	if r.authorID != nil {
		query += " WHERE q.author_id = ?"
		args = append(args, *r.authorID)
	}

	rows, err := r.db.QueryContext(ctx, query+" ORDER BY q.id", args...)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", mapError("quote", err))
	}
	defer rows.Close()

	quotes := []domain.Quote{}

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		quotes = append(quotes, *q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}

	return quotes, nil
}

func (r *quoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	cond, args := r.where("id", "author_id", q.ID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE quotes SET message = ?, author_id = ?"+cond,
		append([]any{q.Message, nullID(q.AuthorID)}, args...)...,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", mapError("quote", err))
	}

	return rowsAffected(res, "quote", q.ID)
}

func (r *quoteRepo) Delete(ctx context.Context, id int64) error {
	cond, args := r.where("id", "author_id", id)

	res, err := r.db.ExecContext(ctx, "DELETE FROM quotes"+cond, args...)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", mapError("quote", err))
	}

	return rowsAffected(res, "quote", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*domain.Quote, error) {
	var (
		q        domain.Quote
		authorID sql.NullInt64
		name     sql.NullString
		surname  sql.NullString
	)

	if err := row.Scan(&q.ID, &q.Message, &authorID, &name, &surname); err != nil {
		return nil, err
	}

	if authorID.Valid {
		id := authorID.Int64
		q.AuthorID = &id
		q.Author = &domain.Author{ID: id, Name: name.String, Surname: surname.String}
	}

	return &q, nil
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: *id, Valid: true}
}
