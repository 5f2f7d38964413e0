package entities

import (
	"time"

	"github.com/booknest/booknest/internal/patch"
)

type Series struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	TotalBooks *int      `json:"total_books"`
	CreatedAt  time.Time `json:"created_at"`

	// Members, ordered by series position (nulls last), then id.
	Books []Book `gorm:"foreignKey:SeriesID" json:"books"`

	// Derived counts, computed from Books after loading.
	BookCount int `gorm:"-" json:"book_count"`
	ReadCount int `gorm:"-" json:"read_count"`
}

func (Series) TableName() string {
	return "series"
}

// CountBooks fills the derived BookCount/ReadCount from the loaded members.
func (s *Series) CountBooks() {
	s.BookCount = len(s.Books)
	s.ReadCount = 0
	for _, b := range s.Books {
		if b.Status == StatusRead {
			s.ReadCount++
		}
	}
}

type SeriesDraft struct {
	Name       string `json:"name"`
	TotalBooks int    `json:"total_books"`
}

type SeriesPatch struct {
	Name       patch.Field[string] `json:"name"`
	TotalBooks patch.Field[int]    `json:"total_books"`
}
