package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/booknest/internal/database/books"
	"github.com/booknest/booknest/internal/entities"
)

type fakeProvider struct {
	suggestions []Suggestion
	err         error
	calls       int
}

func (f *fakeProvider) Search(_ context.Context, _, _ string) ([]Suggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

type fakeStore struct {
	book   *entities.Book
	filled *books.MetadataFields
}

func (f *fakeStore) GetByID(int64) (*entities.Book, error) {
	if f.book == nil {
		return nil, errors.New("not found")
	}
	return f.book, nil
}

func (f *fakeStore) FillMissingMetadata(_ int64, fields books.MetadataFields) error {
	f.filled = &fields
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestEnricher_EnrichBook(t *testing.T) {
	t.Run("fills missing cover and pages", func(t *testing.T) {
		store := &fakeStore{book: &entities.Book{ID: 1, Title: "Dune", Author: strPtr("Frank Herbert")}}
		provider := &fakeProvider{suggestions: []Suggestion{
			{Title: "Dune", CoverURL: "https://covers.openlibrary.org/b/id/1-M.jpg", PageCount: 412},
		}}

		filled, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"cover_url", "page_count"}, filled)
		require.NotNil(t, store.filled)
		assert.Equal(t, "https://covers.openlibrary.org/b/id/1-M.jpg", *store.filled.CoverURL)
		assert.Equal(t, 412, *store.filled.PageCount)
	})

	t.Run("keeps user-entered values", func(t *testing.T) {
		store := &fakeStore{book: &entities.Book{
			ID: 1, Title: "Dune", CoverURL: strPtr("https://covers.example/mine.jpg"),
		}}
		provider := &fakeProvider{suggestions: []Suggestion{
			{Title: "Dune", CoverURL: "https://covers.openlibrary.org/b/id/1-M.jpg", PageCount: 412},
		}}

		filled, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
		require.NoError(t, err)

		assert.Equal(t, []string{"page_count"}, filled)
		require.NotNil(t, store.filled)
		assert.Nil(t, store.filled.CoverURL)
	})

	t.Run("skips lookup when nothing is missing", func(t *testing.T) {
		store := &fakeStore{book: &entities.Book{
			ID: 1, Title: "Dune", CoverURL: strPtr("x"), PageCount: intPtr(412),
		}}
		provider := &fakeProvider{}

		filled, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
		require.NoError(t, err)

		assert.Empty(t, filled)
		assert.Zero(t, provider.calls)
		assert.Nil(t, store.filled)
	})

	t.Run("no matches writes nothing", func(t *testing.T) {
		store := &fakeStore{book: &entities.Book{ID: 1, Title: "zzzzzz"}}
		provider := &fakeProvider{}

		filled, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
		require.NoError(t, err)

		assert.Empty(t, filled)
		assert.Nil(t, store.filled)
	})

	t.Run("lookup failure surfaces", func(t *testing.T) {
		store := &fakeStore{book: &entities.Book{ID: 1, Title: "Dune"}}
		provider := &fakeProvider{err: errors.New("upstream down")}

		_, err := NewEnricher(provider, store).EnrichBook(context.Background(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Dune")
	})
}
