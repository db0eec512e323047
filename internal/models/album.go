package models

import (
	"time"
)

type Album struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Year      int       `json:"year" db:"year"`
	CoverURL  *string   `json:"coverUrl" db:"cover_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Songs     []Song    `json:"songs,omitempty"`
}

type AlbumLike struct {
	ID      string `json:"id" db:"id"`
	UserID  string `json:"user_id" db:"user_id"`
	AlbumID string `json:"album_id" db:"album_id"`
}
