// Package notes provides database operations for per-book notes.
package notes

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/booknest/booknest/internal/apperr"
	"github.com/booknest/booknest/internal/entities"
)

// Repository handles all note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForBook returns a book's notes newest-first.
func (r *Repository) ListForBook(bookID int64) ([]entities.Note, error) {
	var result []entities.Note
	err := r.db.Where("book_id = ?", bookID).
		Order("created_at DESC, id DESC").
		Find(&result).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return result, nil
}

// Create attaches a note to an existing book.
func (r *Repository) Create(bookID int64, content string) (*entities.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("Content is required")
	}

	var book entities.Book
	err := r.db.Select("id").First(&book, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Book")
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	note := entities.Note{BookID: bookID, Content: content}
	if err := r.db.Create(&note).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return &note, nil
}

// Update replaces a note's content and bumps its updated_at timestamp. The
// creation timestamp is never touched.
func (r *Repository) Update(noteID int64, content string) (*entities.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("Content is required")
	}

	res := r.db.Model(&entities.Note{}).Where("id = ?", noteID).Updates(map[string]any{
		"content":    content,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Note")
	}

	var note entities.Note
	if err := r.db.First(&note, noteID).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return &note, nil
}

// Delete removes a single note.
func (r *Repository) Delete(noteID int64) error {
	res := r.db.Delete(&entities.Note{}, noteID)
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Note")
	}
	return nil
}
