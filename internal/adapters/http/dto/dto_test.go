package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func ptr[T any](v T) *T { return &v }

// TestHTTPStatusFromCode tests the code to status mapping.
func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

// TestGetTraceID tests extracting trace ID from gin context.
func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name         string
		setupContext func(*gin.Context)
		want         string
	}{
		{
			name:         "trace ID in context",
			setupContext: func(c *gin.Context) { c.Set(TraceIDKey, "context-trace-123") },
			want:         "context-trace-123",
		},
		{
			name:         "trace ID in header",
			setupContext: func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-trace-456") },
			want:         "header-trace-456",
		},
		{
			name: "trace ID in context takes precedence",
			setupContext: func(c *gin.Context) {
				c.Set(TraceIDKey, "context-trace-123")
				c.Request.Header.Set("X-Request-ID", "header-trace-456")
			},
			want: "context-trace-123",
		},
		{
			name:         "no trace ID",
			setupContext: func(*gin.Context) {},
			want:         "",
		},
		{
			name:         "trace ID in context but wrong type",
			setupContext: func(c *gin.Context) { c.Set(TraceIDKey, 12345) },
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "")
			tt.setupContext(c)

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}
}

// TestHandleError tests the status, code and message per error kind.
func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found error",
			err:         fmt.Errorf("getting author: %w", domain.NewNotFoundError("author", "7")),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrorCodeNotFound,
			wantMessage: `author with id "7" not found`,
		},
		{
			name:        "validation error",
			err:         domain.FieldErrors{"name": domain.MsgBlank},
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantMessage: MsgValidationFailed,
		},
		{
			name:        "forbidden error",
			err:         domain.NewForbiddenError("list quotes", ""),
			wantStatus:  http.StatusForbidden,
			wantCode:    ErrorCodeForbidden,
			wantMessage: MsgNotAuthenticated,
		},
		{
			name:        "unavailable error",
			err:         domain.NewUnavailableError("sqlite", "database is locked"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    ErrorCodeUnavailable,
			wantMessage: "temporarily unavailable",
		},
		{
			name:        "integrity error",
			err:         domain.NewIntegrityError("quote", errors.New("FOREIGN KEY constraint failed")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: MsgInternal,
		},
		{
			name:        "internal error",
			err:         errors.New("unexpected error"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrorCodeInternal,
			wantMessage: "internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "")
			c.Set(TraceIDKey, "trace-123")

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			assert.Equal(t, tt.wantCode, response.Error.Code)
			assert.Contains(t, response.Error.Message, tt.wantMessage)
			assert.Equal(t, "trace-123", response.TraceID)
		})
	}
}

func TestMapDomainError_Details(t *testing.T) {
	status, resp := MapDomainError(fmt.Errorf("creating quote: %w",
		domain.FieldErrors{"message": domain.MsgBlank, "author": "bad"}))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]string{"message": domain.MsgBlank, "author": "bad"}, resp.Error.Details)

	_, resp = MapDomainError(domain.NewValidationError("depth", "must be one of: 0 1"))
	assert.Equal(t, map[string]string{"depth": "must be one of: 0 1"}, resp.Error.Details)

	status, resp = MapDomainError(nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp)
}

func TestAbortWithError(t *testing.T) {
	c, w := newContext(http.MethodGet, "")

	AbortWithError(c, domain.NewForbiddenError("list authors", ""))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":{"code":"FORBIDDEN","message":"authentication credentials were not provided"}}`, w.Body.String())
}

func TestBindAndValidate_BodyTooLarge(t *testing.T) {
	c, w := newContext(http.MethodPost, `{"name":"Jane","surname":"Doe"}`)
	c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 8)

	var req AuthorRequest
	err := BindAndValidate(c, &req)

	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))

	HandleError(c, err)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":{"code":"REQUEST_TOO_LARGE","message":"request body exceeds 8 bytes"}}`, w.Body.String())
}

func TestAbortWithCode(t *testing.T) {
	c, w := newContext(http.MethodGet, "")

	AbortWithCode(c, ErrorCodeMethodNotAllowed, "method not allowed")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":{"code":"METHOD_NOT_ALLOWED","message":"method not allowed"}}`, w.Body.String())
}

// TestBindAndValidate tests decoding and field validation of author bodies.
func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     map[string]string
		wantName    *string
		wantSurname *string
	}{
		{
			name:        "valid body",
			body:        `{"name":"Jane","surname":"Doe"}`,
			wantName:    ptr("Jane"),
			wantSurname: ptr("Doe"),
		},
		{
			name:     "partial body",
			body:     `{"name":"Jane"}`,
			wantName: ptr("Jane"),
		},
		{
			name: "empty body",
			body: ``,
		},
		{
			name:    "blank name",
			body:    `{"name":"   ","surname":"Doe"}`,
			wantErr: map[string]string{"name": domain.MsgBlank},
		},
		{
			name:    "name too long",
			body:    `{"name":"` + strings.Repeat("x", 101) + `","surname":"Doe"}`,
			wantErr: map[string]string{"name": "must be at most 100 characters"},
		},
		{
			name:    "wrong type",
			body:    `{"name":123,"surname":"Doe"}`,
			wantErr: map[string]string{"name": "not a valid string"},
		},
		{
			name:    "invalid JSON",
			body:    `{invalid}`,
			wantErr: map[string]string{NonFieldErrors: ""},
		},
		{
			name:    "not an object",
			body:    `["Jane"]`,
			wantErr: map[string]string{NonFieldErrors: "invalid data, expected an object but got array"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, tt.body)

			var req AuthorRequest
			err := BindAndValidate(c, &req)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, req.Name)
				assert.Equal(t, tt.wantSurname, req.Surname)

				return
			}

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))

			details := FieldDetails(err)
			for field, msg := range tt.wantErr {
				require.Contains(t, details, field)
				assert.Contains(t, details[field], msg)
			}
		})
	}
}

func TestBindQueryAndValidate_Depth(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"?depth=0", 0, false},
		{"?depth=1", 1, false},
		{"?depth=2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/quotes/"+tt.query, nil)

			var q DepthQuery
			err := BindQueryAndValidate(c, &q)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, FieldDetails(err), "depth")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Resolve(1))
		})
	}
}

func TestAuthorRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantID  *int64
		wantErr string
	}{
		{name: "absent", body: `{"message":"Hi"}`},
		{name: "integer", body: `{"author":1}`, wantSet: true, wantID: ptr(int64(1))},
		{name: "numeric string", body: `{"author":"42"}`, wantSet: true, wantID: ptr(int64(42))},
		{name: "null", body: `{"author":null}`, wantSet: true},
		{name: "word", body: `{"author":"jane"}`, wantErr: "received str"},
		{name: "object", body: `{"author":{"id":1}}`, wantErr: "received dict"},
		{name: "bool", body: `{"author":true}`, wantErr: "received bool"},
		{name: "float", body: `{"author":1.5}`, wantErr: "received number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, tt.body)

			var req QuoteRequest
			err := BindAndValidate(c, &req)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, FieldDetails(err)["author"], tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, req.Author.Set)
			assert.Equal(t, tt.wantID, req.Author.ID)
		})
	}
}

func TestMissing(t *testing.T) {
	assert.Equal(t, domain.FieldErrors{"name": domain.MsgRequired, "surname": domain.MsgRequired},
		(&AuthorRequest{}).Missing())
	assert.Empty(t, (&AuthorRequest{Name: ptr("a"), Surname: ptr("b")}).Missing())

	assert.Equal(t, domain.FieldErrors{"message": domain.MsgRequired}, (&QuoteRequest{}).Missing())
	assert.Empty(t, (&QuoteRequest{Message: ptr("Hi")}).Missing())
}

func TestNewQuoteResponse(t *testing.T) {
	jane := &domain.Author{ID: 1, Name: "Jane", Surname: "Doe"}

	tests := []struct {
		name  string
		quote domain.Quote
		depth int
		want  string
	}{
		{
			name:  "nested author",
			quote: domain.Quote{ID: 3, Message: "Hi", AuthorID: ptr(int64(1)), Author: jane},
			depth: 1,
			want:  `{"id":3,"message":"Hi","author":{"id":1,"name":"Jane","surname":"Doe"}}`,
		},
		{
			name:  "author id",
			quote: domain.Quote{ID: 3, Message: "Hi", AuthorID: ptr(int64(1)), Author: jane},
			depth: 0,
			want:  `{"id":3,"message":"Hi","author":1}`,
		},
		{
			name:  "null author nested",
			quote: domain.Quote{ID: 4, Message: "Anon"},
			depth: 1,
			want:  `{"id":4,"message":"Anon","author":null}`,
		},
		{
			name:  "author not loaded",
			quote: domain.Quote{ID: 5, Message: "Hi", AuthorID: ptr(int64(2))},
			depth: 1,
			want:  `{"id":5,"message":"Hi","author":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(NewQuoteResponse(&tt.quote, tt.depth))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestListResponses_NeverNil(t *testing.T) {
	authors, err := json.Marshal(NewAuthorListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(authors))

	quotes, err := json.Marshal(NewQuoteListResponse(nil, 1))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(quotes))
}
