package http

import (
	"context"

	"github.com/booknest/booknest/internal/entities"
	"github.com/booknest/booknest/internal/metadata"
)

// Store interfaces are declared on the consuming side; the repositories under
// internal/database implement them.

type BookStore interface {
	List(query string) ([]entities.Book, error)
	GetByID(id int64) (*entities.Book, error)
	Create(draft entities.BookDraft) (*entities.Book, error)
	Update(id int64, p entities.BookPatch) (*entities.Book, error)
	Delete(id int64) error
}

type NoteStore interface {
	ListForBook(bookID int64) ([]entities.Note, error)
	Create(bookID int64, content string) (*entities.Note, error)
	Update(noteID int64, content string) (*entities.Note, error)
	Delete(noteID int64) error
}

type SeriesStore interface {
	List() ([]entities.Series, error)
	GetByID(id int64) (*entities.Series, error)
	Create(draft entities.SeriesDraft) (*entities.Series, error)
	Update(id int64, p entities.SeriesPatch) (*entities.Series, error)
	Delete(id int64) error
}

type StatsCollector interface {
	Collect(ctx context.Context) (*entities.Stats, error)
}

type MetadataSearcher interface {
	Search(ctx context.Context, title, author string) ([]metadata.Suggestion, error)
}
