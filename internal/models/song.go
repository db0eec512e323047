package models

import (
	"time"
)

type Song struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Year      int       `json:"year" db:"year"`
	Genre     string    `json:"genre" db:"genre"`
	Performer string    `json:"performer" db:"performer"`
	Duration  *int      `json:"duration,omitempty" db:"duration"`
	AlbumID   *string   `json:"albumId,omitempty" db:"album_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SongSummary is the trimmed shape embedded in playlist and album listings.
type SongSummary struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Performer string `json:"performer" db:"performer"`
}
