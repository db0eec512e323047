package models

import (
	"time"
)

type Playlist struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Owner    string `json:"owner,omitempty" db:"owner"`
	Username string `json:"username,omitempty" db:"username"`
}

// PlaylistWithSongs is the composed read result for GET /playlists/{id}/songs.
type PlaylistWithSongs struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

type PlaylistSong struct {
	ID         string `json:"id" db:"id"`
	PlaylistID string `json:"playlist_id" db:"playlist_id"`
	SongID     string `json:"song_id" db:"song_id"`
}

type Collaboration struct {
	ID         string `json:"id" db:"id"`
	PlaylistID string `json:"playlist_id" db:"playlist_id"`
	UserID     string `json:"user_id" db:"user_id"`
}

// PlaylistActivity is an append-only audit record; rows are never updated or
// deleted individually.
type PlaylistActivity struct {
	ID         string    `json:"id" db:"id"`
	PlaylistID string    `json:"playlist_id" db:"playlist_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	SongID     string    `json:"song_id" db:"song_id"`
	Action     string    `json:"action" db:"action"`
	CreatedAt  time.Time `json:"time" db:"created_at"`
}

// ActivityEntry is the joined view returned by GET /playlists/{id}/activities.
type ActivityEntry struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}
