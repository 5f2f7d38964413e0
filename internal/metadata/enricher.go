package metadata

import (
	"context"
	"fmt"

	"github.com/booknest/booknest/internal/database/books"
	"github.com/booknest/booknest/internal/entities"
)

// Provider is the lookup side of enrichment; implemented by Client.
type Provider interface {
	Search(ctx context.Context, title, author string) ([]Suggestion, error)
}

// BookStore is the storage side of enrichment; implemented by the books
// repository.
type BookStore interface {
	GetByID(id int64) (*entities.Book, error)
	FillMissingMetadata(id int64, fields books.MetadataFields) error
}

// Enricher fills a book's missing cover and page count from an external
// metadata source. User-entered values are never overwritten.
type Enricher struct {
	provider Provider
	store    BookStore
}

func NewEnricher(provider Provider, store BookStore) *Enricher {
	return &Enricher{provider: provider, store: store}
}

// EnrichBook looks the book up by title and author and writes whichever of
// the missing fields the best match provides. Returns the names of the fields
// that were filled.
func (e *Enricher) EnrichBook(ctx context.Context, bookID int64) ([]string, error) {
	book, err := e.store.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book.CoverURL != nil && book.PageCount != nil {
		return nil, nil
	}

	author := ""
	if book.Author != nil {
		author = *book.Author
	}
	suggestions, err := e.provider.Search(ctx, book.Title, author)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", book.Title, err)
	}
	if len(suggestions) == 0 {
		return nil, nil
	}
	best := suggestions[0]

	var fields books.MetadataFields
	var filled []string
	if book.CoverURL == nil && best.CoverURL != "" {
		fields.CoverURL = &best.CoverURL
		filled = append(filled, "cover_url")
	}
	if book.PageCount == nil && best.PageCount > 0 {
		fields.PageCount = &best.PageCount
		filled = append(filled, "page_count")
	}
	if len(filled) == 0 {
		return nil, nil
	}
	if err := e.store.FillMissingMetadata(bookID, fields); err != nil {
		return nil, err
	}
	return filled, nil
}
