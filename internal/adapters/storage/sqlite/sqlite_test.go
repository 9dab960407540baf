package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(context.Background(), Config{Path: filepath.Join(t.TempDir(), "nested", "test.db")})
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func createAuthor(t *testing.T, s *Store, name, surname string) *domain.Author {
	t.Helper()

	a := &domain.Author{Name: name, Surname: surname}
	require.NoError(t, s.Authors().Create(context.Background(), a))

	return a
}

func createQuote(t *testing.T, s *Store, message string, authorID *int64) *domain.Quote {
	t.Helper()

	q := &domain.Quote{Message: message, AuthorID: authorID}
	require.NoError(t, s.Quotes().Create(context.Background(), q))

	return q
}

func TestStore_Health(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "sqlite", s.Name())
	require.NoError(t, s.Check(context.Background()))

	require.NoError(t, s.Close())
	assert.True(t, domain.IsUnavailable(s.Check(context.Background())))
}

func TestAuthors_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := createAuthor(t, s, "Jane", "Doe")
	john := createAuthor(t, s, "John", "Roe")
	assert.Equal(t, int64(1), jane.ID)
	assert.Equal(t, int64(2), john.ID)

	got, err := s.Authors().Get(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, jane, got)

	all, err := s.Authors().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Author{*jane, *john}, all)

	jane.Surname = "Smith"
	require.NoError(t, s.Authors().Update(ctx, jane))

	got, err = s.Authors().Get(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smith", got.Surname)

	exists, err := s.Authors().Exists(ctx, john.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Authors().Delete(ctx, john.ID))

	exists, err = s.Authors().Exists(ctx, john.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAuthors_MissingIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Authors().Get(ctx, 42)
	assert.True(t, domain.IsNotFound(err))

	err = s.Authors().Update(ctx, &domain.Author{ID: 42, Name: "x", Surname: "y"})
	assert.True(t, domain.IsNotFound(err))

	err = s.Authors().Delete(ctx, 42)
	assert.True(t, domain.IsNotFound(err))

	all, err := s.Authors().List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestAuthors_DeleteDetachesQuotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := createAuthor(t, s, "Jane", "Doe")
	for _, msg := range []string{"one", "two", "three"} {
		createQuote(t, s, msg, &jane.ID)
	}

	require.NoError(t, s.Authors().Delete(ctx, jane.ID))

	quotes, err := s.Quotes().List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	for _, q := range quotes {
		assert.Nil(t, q.AuthorID)
		assert.Nil(t, q.Author)
	}
}

func TestQuotes_ReadsPopulateAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := createAuthor(t, s, "Jane", "Doe")
	q := createQuote(t, s, "Hi", &jane.ID)
	orphan := createQuote(t, s, "Alone", nil)

	got, err := s.Quotes().Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.Quote{ID: q.ID, Message: "Hi", AuthorID: &jane.ID, Author: jane}, got)

	got, err = s.Quotes().Get(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Author)
}

func TestQuotes_ForeignKeyIsEnforced(t *testing.T) {
	s := newTestStore(t)

	missing := int64(99)
	err := s.Quotes().Create(context.Background(), &domain.Quote{Message: "Hi", AuthorID: &missing})

	require.Error(t, err)
	assert.True(t, domain.IsIntegrity(err))
}

func TestQuotes_ScopedView(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jane := createAuthor(t, s, "Jane", "Doe")
	john := createAuthor(t, s, "John", "Roe")
	janes := createQuote(t, s, "by jane", &jane.ID)
	johns := createQuote(t, s, "by john", &john.ID)
	createQuote(t, s, "by nobody", nil)

	scoped := s.Quotes().ForAuthor(jane.ID)

	list, err := scoped.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, janes.ID, list[0].ID)

	_, err = scoped.Get(ctx, johns.ID)
	assert.True(t, domain.IsNotFound(err))

	johns.Message = "hijacked"
	assert.True(t, domain.IsNotFound(scoped.Update(ctx, johns)))
	assert.True(t, domain.IsNotFound(scoped.Delete(ctx, johns.ID)))

	stored, err := s.Quotes().Get(ctx, johns.ID)
	require.NoError(t, err)
	assert.Equal(t, "by john", stored.Message)

	unknown, err := s.Quotes().ForAuthor(404).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	janes.Message = "edited"
	require.NoError(t, scoped.Update(ctx, janes))
	require.NoError(t, scoped.Delete(ctx, janes.ID))
}

func TestQuotes_UpdateWithSameValuesFindsRow(t *testing.T) {
	s := newTestStore(t)

	q := createQuote(t, s, "same", nil)

	require.NoError(t, s.Quotes().Update(context.Background(), q))
}
