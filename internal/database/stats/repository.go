// Package stats computes the dashboard aggregates. The sub-queries are
// independent reads, so they run concurrently and join before returning.
package stats

import (
	"context"
	"database/sql"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/booknest/booknest/internal/apperr"
	"github.com/booknest/booknest/internal/entities"
)

// UntaggedGenre groups books with a blank or absent genre in the histogram.
const UntaggedGenre = "Untagged"

// Repository computes read-only statistics over the catalogue.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Collect gathers all statistics in one logical read. Ties in the genre
// histogram order alphabetically (case-insensitive); the rating histogram
// contains only ratings present in the data, ascending.
func (r *Repository) Collect(ctx context.Context) (*entities.Stats, error) {
	var s entities.Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var row struct {
			TotalBooks int64
			Unread     int64
			Reading    int64
			Read       int64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT COUNT(*) AS total_books,
			       COALESCE(SUM(CASE WHEN status = 'unread'  THEN 1 ELSE 0 END), 0) AS unread,
			       COALESCE(SUM(CASE WHEN status = 'reading' THEN 1 ELSE 0 END), 0) AS reading,
			       COALESCE(SUM(CASE WHEN status = 'read'    THEN 1 ELSE 0 END), 0) AS read
			FROM books`).Scan(&row).Error
		if err != nil {
			return err
		}
		s.TotalBooks = row.TotalBooks
		s.Unread = row.Unread
		s.Reading = row.Reading
		s.Read = row.Read
		return nil
	})

	g.Go(func() error {
		var row struct {
			AvgRating sql.NullFloat64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT ROUND(AVG(rating), 1) AS avg_rating
			FROM books
			WHERE rating IS NOT NULL`).Scan(&row).Error
		if err != nil {
			return err
		}
		if row.AvgRating.Valid {
			avg := row.AvgRating.Float64
			s.AvgRating = &avg
		}
		return nil
	})

	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&entities.Note{}).Count(&s.TotalNotes).Error
	})

	g.Go(func() error {
		return r.db.WithContext(ctx).Raw(`
			SELECT CASE WHEN genre IS NULL OR TRIM(genre) = '' THEN ? ELSE genre END AS genre,
			       COUNT(*) AS count
			FROM books
			GROUP BY 1
			ORDER BY count DESC, genre COLLATE NOCASE ASC
			LIMIT 10`, UntaggedGenre).Scan(&s.ByGenre).Error
	})

	g.Go(func() error {
		return r.db.WithContext(ctx).Raw(`
			SELECT rating, COUNT(*) AS count
			FROM books
			WHERE rating IS NOT NULL
			GROUP BY rating
			ORDER BY rating ASC`).Scan(&s.ByRating).Error
	})

	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&entities.Book{}).
			Select("books.*, series.name AS series_name").
			Joins("LEFT JOIN series ON series.id = books.series_id").
			Order("books.created_at DESC, books.id DESC").
			Limit(5).
			Find(&s.Recent).Error
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Storage(err)
	}

	// Empty aggregates serialize as [] rather than null.
	if s.ByGenre == nil {
		s.ByGenre = []entities.GenreCount{}
	}
	if s.ByRating == nil {
		s.ByRating = []entities.RatingCount{}
	}
	if s.Recent == nil {
		s.Recent = []entities.Book{}
	}
	return &s, nil
}
