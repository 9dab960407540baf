package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-lab/internal/adapters/flags"
	"github.com/jsamuelsen/quote-lab/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-lab/internal/app"
	"github.com/jsamuelsen/quote-lab/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// serve runs one request through router and returns the recorder.
func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// quoteFixture wires the quote and author handlers to a temporary SQLite
// store.
type quoteFixture struct {
	router *gin.Engine
	store  *sqlite.Store
	flags  *flags.Static
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	store, err := sqlite.New(context.Background(), sqlite.Config{Path: filepath.Join(t.TempDir(), "quotes.db")})
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	ff := flags.New(nil)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:  store.Quotes(),
		Authors: store.Authors(),
		Flags:   ff,
		Logger:  discardLogger(),
	})
	authors := app.NewAuthorService(app.AuthorServiceConfig{
		Authors: store.Authors(),
		Logger:  discardLogger(),
	})

	router := gin.New()
	api := router.Group("/api")
	NewAuthorHandler(authors).RegisterAuthorRoutes(api)
	NewQuoteHandler(quotes, ff).RegisterQuoteRoutes(api)

	return &quoteFixture{router: router, store: store, flags: ff}
}

func (f *quoteFixture) author(t *testing.T, name, surname string) int64 {
	t.Helper()

	a := &domain.Author{Name: name, Surname: surname}
	require.NoError(t, f.store.Authors().Create(context.Background(), a))

	return a.ID
}

func (f *quoteFixture) quote(t *testing.T, message string, authorID *int64) int64 {
	t.Helper()

	q := &domain.Quote{Message: message, AuthorID: authorID}
	require.NoError(t, f.store.Quotes().Create(context.Background(), q))

	return q.ID
}
