package dto

import "github.com/jsamuelsen/quote-lab/internal/domain"

// AuthorResponse is the wire form of an author.
type AuthorResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// QuoteResponse is the wire form of a quote. Author holds the author id,
// a nested AuthorResponse or nil depending on the requested depth.
type QuoteResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Author  any    `json:"author"`
}

// LoginRequest is the body of the login call.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token for clients that use Bearer auth.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// NewAuthorResponse converts a domain author.
func NewAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Surname: a.Surname}
}

// NewAuthorListResponse converts a list of authors. It never returns nil.
func NewAuthorListResponse(authors []domain.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, NewAuthorResponse(&authors[i]))
	}

	return out
}

// NewQuoteResponse converts a domain quote. Depth 1 nests the author object
// when the store loaded it; otherwise the author id is rendered.
func NewQuoteResponse(q *domain.Quote, depth int) QuoteResponse {
	resp := QuoteResponse{ID: q.ID, Message: q.Message}

	switch {
	case q.AuthorID == nil:
		resp.Author = nil
	case depth > 0 && q.Author != nil:
		resp.Author = NewAuthorResponse(q.Author)
	default:
		resp.Author = *q.AuthorID
	}

	return resp
}

// NewQuoteListResponse converts a list of quotes. It never returns nil.
func NewQuoteListResponse(quotes []domain.Quote, depth int) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i], depth))
	}

	return out
}
