package entities

import "time"

type Note struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BookID    int64     `json:"book_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}
