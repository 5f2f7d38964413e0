package entities

import (
	"time"

	"github.com/booknest/booknest/internal/patch"
)

type BookStatus string

const (
	StatusUnread  BookStatus = "unread"
	StatusReading BookStatus = "reading"
	StatusRead    BookStatus = "read"
)

// Valid reports whether the status is one of the three allowed values.
func (s BookStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusRead:
		return true
	}
	return false
}

type Book struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Title          string     `json:"title"`
	Author         *string    `json:"author"`
	Genre          *string    `json:"genre"`
	Status         BookStatus `json:"status"`
	Rating         *int       `json:"rating"`
	CoverURL       *string    `gorm:"column:cover_url" json:"cover_url"`
	SeriesID       *int64     `json:"series_id"`
	SeriesPosition *float64   `json:"series_position"`
	PageCount      *int       `json:"page_count"`
	Description    *string    `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`

	// SeriesName is populated by the LEFT JOIN in list/get queries; it is not
	// a column of the books table.
	SeriesName *string `gorm:"->;-:migration" json:"series_name"`
}

func (Book) TableName() string {
	return "books"
}

// BookDraft carries the fields accepted when creating a book. Numeric zero
// values are treated as absent (stored NULL), mirroring the form semantics of
// the API's clients.
type BookDraft struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Genre          string  `json:"genre"`
	Status         string  `json:"status"`
	Rating         int     `json:"rating"`
	CoverURL       string  `json:"cover_url"`
	SeriesName     string  `json:"series_name"`
	SeriesPosition float64 `json:"series_position"`
	PageCount      int     `json:"page_count"`
	Description    string  `json:"description"`
}

// BookPatch is the tri-state partial-update payload: absent fields keep the
// stored value, null fields clear nullable columns, set fields replace.
type BookPatch struct {
	Title          patch.Field[string]  `json:"title"`
	Author         patch.Field[string]  `json:"author"`
	Genre          patch.Field[string]  `json:"genre"`
	Status         patch.Field[string]  `json:"status"`
	Rating         patch.Field[int]     `json:"rating"`
	CoverURL       patch.Field[string]  `json:"cover_url"`
	SeriesName     patch.Field[string]  `json:"series_name"`
	SeriesPosition patch.Field[float64] `json:"series_position"`
	PageCount      patch.Field[int]     `json:"page_count"`
	Description    patch.Field[string]  `json:"description"`
}
