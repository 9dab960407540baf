package domain

import "strings"

// Quote is a message optionally attributed to an author.
type Quote struct {
	// ID is assigned by the store on create.
	ID int64

	// Message is the quoted text.
	Message string

	// AuthorID references the author, nil when unattributed or when the
	// author was deleted.
	AuthorID *int64

	// Author is the referenced author as loaded by the store on reads.
	// It is nil when AuthorID is nil and is ignored on writes.
	Author *Author
}

// Validate checks the field rules for a quote.
func (q *Quote) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(q.Message) == "" {
		errs.Add("message", MsgBlank)
	}

	return errs.Err()
}

// HasAuthor reports whether the quote is attributed to authorID.
func (q *Quote) HasAuthor(authorID int64) bool {
	return q.AuthorID != nil && *q.AuthorID == authorID
}
