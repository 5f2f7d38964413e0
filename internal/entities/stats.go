package entities

type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// Stats is the dashboard aggregate. AvgRating is nil when no book is rated;
// unrated books are excluded from the average entirely.
type Stats struct {
	TotalBooks int64         `json:"total_books"`
	Unread     int64         `json:"unread"`
	Reading    int64         `json:"reading"`
	Read       int64         `json:"read"`
	AvgRating  *float64      `json:"avg_rating"`
	TotalNotes int64         `json:"total_notes"`
	ByGenre    []GenreCount  `json:"by_genre"`
	ByRating   []RatingCount `json:"by_rating"`
	Recent     []Book        `json:"recent"`
}
