package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/mocks"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingRecorder records mutation counts keyed by "resource/operation".
type countingRecorder map[string]int

func (r countingRecorder) RecordMutation(resource, operation string) {
	r[resource+"/"+operation]++
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewAuthorService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthorService(AuthorServiceConfig{})
	})
}

func TestNewAuthorService_Defaults(t *testing.T) {
	svc := NewAuthorService(AuthorServiceConfig{Authors: mocks.NewMockAuthorRepository(t)})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.logger)
	assert.IsType(t, noopRecorder{}, svc.metrics)
}

func TestAuthorService_Create(t *testing.T) {
	tests := []struct {
		name       string
		patch      AuthorPatch
		setupMock  func(*mocks.MockAuthorRepository)
		wantFields domain.FieldErrors
		wantID     int64
	}{
		{
			name:  "success",
			patch: AuthorPatch{Name: ptr("Jane"), Surname: ptr("Doe")},
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().Create(mock.Anything, &domain.Author{Name: "Jane", Surname: "Doe"}).
					Run(func(_ context.Context, a *domain.Author) { a.ID = 1 }).
					Return(nil)
			},
			wantID: 1,
		},
		{
			name:       "missing fields are required",
			patch:      AuthorPatch{},
			wantFields: domain.FieldErrors{"name": domain.MsgRequired, "surname": domain.MsgRequired},
		},
		{
			name:       "blank surname",
			patch:      AuthorPatch{Name: ptr("Jane"), Surname: ptr(" ")},
			wantFields: domain.FieldErrors{"surname": domain.MsgBlank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAuthorRepository(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			recorder := countingRecorder{}
			svc := NewAuthorService(AuthorServiceConfig{Authors: repo, Metrics: recorder, Logger: discardLogger()})

			author, err := svc.Create(context.Background(), tt.patch)

			if tt.wantFields != nil {
				var fields domain.FieldErrors
				require.ErrorAs(t, err, &fields)
				assert.Equal(t, tt.wantFields, fields)
				assert.Empty(t, recorder)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, author.ID)
			assert.Equal(t, 1, recorder["author/create"])
		})
	}
}

func TestAuthorService_Get(t *testing.T) {
	repo := mocks.NewMockAuthorRepository(t)
	repo.EXPECT().Get(mock.Anything, int64(1)).Return(&domain.Author{ID: 1, Name: "Jane", Surname: "Doe"}, nil)
	repo.EXPECT().Get(mock.Anything, int64(2)).Return(nil, domain.NewNotFoundError("author", "2"))

	svc := NewAuthorService(AuthorServiceConfig{Authors: repo, Logger: discardLogger()})

	author, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Jane", author.Name)

	_, err = svc.Get(context.Background(), 2)
	assert.True(t, domain.IsNotFound(err))
}

func TestAuthorService_List(t *testing.T) {
	repo := mocks.NewMockAuthorRepository(t)
	repo.EXPECT().List(mock.Anything).Return([]domain.Author{{ID: 1}, {ID: 2}}, nil)

	svc := NewAuthorService(AuthorServiceConfig{Authors: repo})

	authors, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, authors, 2)
}

func TestAuthorService_Update(t *testing.T) {
	stored := func() *domain.Author {
		return &domain.Author{ID: 4, Name: "Jane", Surname: "Doe"}
	}

	tests := []struct {
		name      string
		patch     AuthorPatch
		setupMock func(*mocks.MockAuthorRepository)
		want      *domain.Author
		errCheck  func(error) bool
	}{
		{
			name:  "partial update keeps absent fields",
			patch: AuthorPatch{Surname: ptr("Smith")},
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().Get(mock.Anything, int64(4)).Return(stored(), nil)
				m.EXPECT().Update(mock.Anything, &domain.Author{ID: 4, Name: "Jane", Surname: "Smith"}).Return(nil)
			},
			want: &domain.Author{ID: 4, Name: "Jane", Surname: "Smith"},
		},
		{
			name:  "blank value is rejected without writing",
			patch: AuthorPatch{Name: ptr("")},
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().Get(mock.Anything, int64(4)).Return(stored(), nil)
			},
			errCheck: domain.IsValidation,
		},
		{
			name:  "missing author",
			patch: AuthorPatch{Name: ptr("Ann")},
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().Get(mock.Anything, int64(4)).Return(nil, domain.NewNotFoundError("author", "4"))
			},
			errCheck: domain.IsNotFound,
		},
		{
			name:  "storage failure",
			patch: AuthorPatch{Name: ptr("Ann")},
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().Get(mock.Anything, int64(4)).Return(stored(), nil)
				m.EXPECT().Update(mock.Anything, mock.Anything).Return(domain.NewUnavailableError("sqlite", "locked"))
			},
			errCheck: domain.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAuthorRepository(t)
			tt.setupMock(repo)

			svc := NewAuthorService(AuthorServiceConfig{Authors: repo, Logger: discardLogger()})

			author, err := svc.Update(context.Background(), 4, tt.patch)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.Nil(t, author)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, author)
		})
	}
}

func TestAuthorService_Delete(t *testing.T) {
	repo := mocks.NewMockAuthorRepository(t)
	repo.EXPECT().Delete(mock.Anything, int64(1)).Return(nil)
	repo.EXPECT().Delete(mock.Anything, int64(9)).Return(domain.NewNotFoundError("author", "9"))

	recorder := countingRecorder{}
	svc := NewAuthorService(AuthorServiceConfig{Authors: repo, Metrics: recorder, Logger: discardLogger()})

	require.NoError(t, svc.Delete(context.Background(), 1))

	err := svc.Delete(context.Background(), 9)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, countingRecorder{"author/delete": 1}, recorder)
}

func TestMergeFieldErrors_NonFieldError(t *testing.T) {
	dst := domain.FieldErrors{}

	mergeFieldErrors(dst, errors.New("boom"))

	assert.Equal(t, "boom", dst["non_field_errors"])
}

func TestAuthorService_DeleteMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	repo := mocks.NewMockAuthorRepository(t)
	repo.EXPECT().Delete(mock.Anything, int64(4)).Return(nil)

	counts := countingRecorder{}
	svc := NewAuthorService(AuthorServiceConfig{Authors: repo, Metrics: counts, Logger: discardLogger()})

	ctx, span := tracer.Start(context.Background(), "DELETE /api/authors/:id/")
	require.NoError(t, svc.Delete(ctx, 4))
	span.End()

	assert.Equal(t, 1, counts["author/delete"])

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)

	event := spans[0].Events()[0]
	assert.Equal(t, "author.delete", event.Name)
	assert.Contains(t, event.Attributes, attribute.Int64("author.id", 4))
}
