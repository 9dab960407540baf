package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

const authorField = "author"

// AuthorRequest is the body of author create and update calls. A nil field
// was absent from the body.
type AuthorRequest struct {
	Name    *string `json:"name"    validate:"omitempty,notblank,max=100"`
	Surname *string `json:"surname" validate:"omitempty,notblank,max=100"`
}

// Missing reports required fields absent from a full update or create.
func (r *AuthorRequest) Missing() domain.FieldErrors {
	errs := domain.FieldErrors{}
	if r.Name == nil {
		errs.Add("name", domain.MsgRequired)
	}

	if r.Surname == nil {
		errs.Add("surname", domain.MsgRequired)
	}

	return errs
}

// QuoteRequest is the body of quote create and update calls.
type QuoteRequest struct {
	Message *string   `json:"message" validate:"omitempty,notblank"`
	Author  AuthorRef `json:"author"`
}

// Missing reports required fields absent from a full update or create.
// The author reference is optional.
func (r *QuoteRequest) Missing() domain.FieldErrors {
	errs := domain.FieldErrors{}
	if r.Message == nil {
		errs.Add("message", domain.MsgRequired)
	}

	return errs
}

// AuthorRef is a quote's author reference as sent by clients: an integer
// primary key, a numeric string or null.
type AuthorRef struct {
	// Set is true when the body contained the author key, including null.
	Set bool

	// ID is nil for an explicit null.
	ID *int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *AuthorRef) UnmarshalJSON(data []byte) error {
	r.Set = true
	r.ID = nil

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		raw = strings.TrimSpace(s)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{
			Value: jsonKind(data),
			Type:  reflect.TypeFor[int64](),
			Field: authorField,
		}
	}

	r.ID = &id

	return nil
}

// MarshalJSON renders the reference as an integer or null.
func (r AuthorRef) MarshalJSON() ([]byte, error) {
	if r.ID == nil {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatInt(*r.ID, 10)), nil
}

// jsonKind names the JSON type of a raw value for error messages.
func jsonKind(data []byte) string {
	switch data[0] {
	case '"':
		return "str"
	case '{':
		return "dict"
	case '[':
		return "list"
	case 't', 'f':
		return "bool"
	default:
		return "number"
	}
}

func incorrectPKType(received string) string {
	return "incorrect type, expected pk value but received " + received
}

// DepthQuery selects how Quote.author is rendered.
type DepthQuery struct {
	Depth string `form:"depth" validate:"omitempty,oneof=0 1"`
}

// Resolve returns the requested depth, or fallback when none was given.
func (q DepthQuery) Resolve(fallback int) int {
	switch q.Depth {
	case "0":
		return 0
	case "1":
		return 1
	default:
		return fallback
	}
}
