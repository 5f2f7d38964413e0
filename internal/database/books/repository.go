// Package books provides database operations for the book catalogue: CRUD,
// case-insensitive search, and the series-name join used by every read.
package books

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/booknest/booknest/internal/apperr"
	"github.com/booknest/booknest/internal/entities"
)

// SeriesResolver turns a series name into a series id, creating the series
// when it does not exist yet. Implemented by the series repository.
type SeriesResolver interface {
	Resolve(name string) (int64, error)
}

// Repository handles all book database operations.
type Repository struct {
	db     *gorm.DB
	series SeriesResolver
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB, series SeriesResolver) *Repository {
	return &Repository{db: db, series: series}
}

// withSeriesName selects book rows along with the joined series name.
func (r *Repository) withSeriesName() *gorm.DB {
	return r.db.Model(&entities.Book{}).
		Select("books.*, series.name AS series_name").
		Joins("LEFT JOIN series ON series.id = books.series_id")
}

// List returns all books newest-first. A non-blank query narrows the result
// to books whose title or author contains the term, case-insensitively.
func (r *Repository) List(query string) ([]entities.Book, error) {
	q := r.withSeriesName().Order("books.created_at DESC, books.id DESC")
	if term := strings.TrimSpace(query); term != "" {
		pattern := "%" + term + "%"
		q = q.Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(books.author) LIKE LOWER(?)", pattern, pattern)
	}

	var result []entities.Book
	if err := q.Find(&result).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return result, nil
}

// GetByID retrieves a single book with its series name.
func (r *Repository) GetByID(id int64) (*entities.Book, error) {
	var book entities.Book
	err := r.withSeriesName().Where("books.id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Book")
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &book, nil
}

// Create validates and stores a new book, resolving the series reference by
// name when one is supplied. Returns the stored row including the joined
// series name.
func (r *Repository) Create(draft entities.BookDraft) (*entities.Book, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}

	status, err := normalizeStatus(draft.Status)
	if err != nil {
		return nil, err
	}
	rating, err := normalizeRating(draft.Rating)
	if err != nil {
		return nil, err
	}
	pageCount, err := normalizePageCount(draft.PageCount)
	if err != nil {
		return nil, err
	}

	var seriesID *int64
	if name := strings.TrimSpace(draft.SeriesName); name != "" {
		id, err := r.series.Resolve(name)
		if err != nil {
			return nil, err
		}
		seriesID = &id
	}

	book := entities.Book{
		Title:          title,
		Author:         entities.TextOrNil(draft.Author),
		Genre:          entities.TextOrNil(draft.Genre),
		Status:         status,
		Rating:         rating,
		CoverURL:       entities.TextOrNil(draft.CoverURL),
		SeriesID:       seriesID,
		SeriesPosition: entities.FloatOrNil(draft.SeriesPosition),
		PageCount:      pageCount,
		Description:    entities.TextOrNil(draft.Description),
	}
	if err := r.db.Create(&book).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return r.GetByID(book.ID)
}

// Update applies a tri-state partial update: absent fields keep the stored
// value, null (or blank, for required fields) keeps or clears according to
// the column's nullability. A present series_name resolves to a new series
// reference; empty or null clears it; absent leaves it untouched.
func (r *Repository) Update(id int64, p entities.BookPatch) (*entities.Book, error) {
	var existing entities.Book
	err := r.db.First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Book")
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	values := map[string]any{}

	if p.Title.Present && p.Title.Valid {
		if title := strings.TrimSpace(p.Title.Value); title != "" {
			values["title"] = title
		}
	}
	if p.Author.Present {
		values["author"] = textValue(p.Author.Valid, p.Author.Value)
	}
	if p.Genre.Present {
		values["genre"] = textValue(p.Genre.Valid, p.Genre.Value)
	}
	if p.CoverURL.Present {
		values["cover_url"] = textValue(p.CoverURL.Valid, p.CoverURL.Value)
	}
	if p.Description.Present {
		values["description"] = textValue(p.Description.Valid, p.Description.Value)
	}
	if p.Status.Present && p.Status.Valid {
		status, err := normalizeStatus(p.Status.Value)
		if err != nil {
			return nil, err
		}
		values["status"] = status
	}
	if p.Rating.Present {
		var rating *int
		if p.Rating.Valid {
			if rating, err = normalizeRating(p.Rating.Value); err != nil {
				return nil, err
			}
		}
		values["rating"] = rating
	}
	if p.SeriesPosition.Present {
		var pos *float64
		if p.SeriesPosition.Valid {
			pos = entities.FloatOrNil(p.SeriesPosition.Value)
		}
		values["series_position"] = pos
	}
	if p.PageCount.Present {
		var pages *int
		if p.PageCount.Valid {
			if pages, err = normalizePageCount(p.PageCount.Value); err != nil {
				return nil, err
			}
		}
		values["page_count"] = pages
	}
	if p.SeriesName.Present {
		name := ""
		if p.SeriesName.Valid {
			name = strings.TrimSpace(p.SeriesName.Value)
		}
		if name == "" {
			values["series_id"] = nil
		} else {
			seriesID, err := r.series.Resolve(name)
			if err != nil {
				return nil, err
			}
			values["series_id"] = seriesID
		}
	}

	if len(values) > 0 {
		if err := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return nil, apperr.Storage(err)
		}
	}
	return r.GetByID(id)
}

// Delete removes a book; the notes foreign key cascades so the book's notes
// go with it.
func (r *Repository) Delete(id int64) error {
	res := r.db.Delete(&entities.Book{}, id)
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// MetadataFields are the columns background enrichment may fill in.
type MetadataFields struct {
	CoverURL    *string
	PageCount   *int
	Description *string
}

// FillMissingMetadata writes enrichment results into columns that are still
// NULL. Values the user has already set are never overwritten.
func (r *Repository) FillMissingMetadata(id int64, fields MetadataFields) error {
	book, err := r.GetByID(id)
	if err != nil {
		return err
	}

	values := map[string]any{}
	if book.CoverURL == nil && fields.CoverURL != nil {
		values["cover_url"] = *fields.CoverURL
	}
	if book.PageCount == nil && fields.PageCount != nil {
		values["page_count"] = *fields.PageCount
	}
	if book.Description == nil && fields.Description != nil {
		values["description"] = *fields.Description
	}
	if len(values) == 0 {
		return nil
	}
	if err := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func textValue(valid bool, s string) *string {
	if !valid {
		return nil
	}
	return entities.TextOrNil(s)
}

func normalizeStatus(raw string) (entities.BookStatus, error) {
	status := entities.BookStatus(strings.TrimSpace(raw))
	if status == "" {
		return entities.StatusUnread, nil
	}
	if !status.Valid() {
		return "", apperr.Validation("Status must be one of unread, reading, read")
	}
	return status, nil
}

// normalizeRating maps zero to absent and rejects anything outside [1,5].
func normalizeRating(n int) (*int, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 1 || n > 5 {
		return nil, apperr.Validation("Rating must be between 1 and 5")
	}
	return &n, nil
}

func normalizePageCount(n int) (*int, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, apperr.Validation("Page count must be positive")
	}
	return &n, nil
}
