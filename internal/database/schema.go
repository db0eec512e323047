package database

import (
	"database/sql"
	"fmt"
)

// CreateTables creates all required tables in the database.
//
// user_album_likes carries a UNIQUE (user_id, album_id) constraint and
// playlists_songs a UNIQUE (playlist_id, song_id) constraint: the services keep
// the check-then-insert sequences, so these are the integrity backstop for
// concurrent writers.
func CreateTables(db *sql.DB) error {
	statements := []struct {
		name  string
		query string
	}{
		{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(50) PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			password TEXT NOT NULL,
			fullname TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
		{"authentications", `
		CREATE TABLE IF NOT EXISTS authentications (
			token TEXT NOT NULL
		);`},
		{"albums", `
		CREATE TABLE IF NOT EXISTS albums (
			id VARCHAR(50) PRIMARY KEY,
			name TEXT NOT NULL,
			year INTEGER NOT NULL,
			cover_url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
		{"songs", `
		CREATE TABLE IF NOT EXISTS songs (
			id VARCHAR(50) PRIMARY KEY,
			title TEXT NOT NULL,
			year INTEGER NOT NULL,
			genre TEXT NOT NULL,
			performer TEXT NOT NULL,
			duration INTEGER,
			album_id VARCHAR(50) REFERENCES albums(id) ON DELETE SET NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
		{"playlists", `
		CREATE TABLE IF NOT EXISTS playlists (
			id VARCHAR(50) PRIMARY KEY,
			name TEXT NOT NULL,
			owner VARCHAR(50) NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);`},
		{"playlists_songs", `
		CREATE TABLE IF NOT EXISTS playlists_songs (
			id VARCHAR(50) PRIMARY KEY,
			playlist_id VARCHAR(50) NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			song_id VARCHAR(50) NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			UNIQUE (playlist_id, song_id)
		);`},
		{"collaborations", `
		CREATE TABLE IF NOT EXISTS collaborations (
			id VARCHAR(50) PRIMARY KEY,
			playlist_id VARCHAR(50) NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			user_id VARCHAR(50) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			UNIQUE (playlist_id, user_id)
		);`},
		{"user_album_likes", `
		CREATE TABLE IF NOT EXISTS user_album_likes (
			id VARCHAR(50) PRIMARY KEY,
			user_id VARCHAR(50) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			album_id VARCHAR(50) NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
			UNIQUE (user_id, album_id)
		);`},
		{"playlist_activity", `
		CREATE TABLE IF NOT EXISTS playlist_activity (
			id VARCHAR(50) PRIMARY KEY,
			playlist_id VARCHAR(50) NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			user_id VARCHAR(50) NOT NULL,
			song_id VARCHAR(50) NOT NULL,
			action VARCHAR(10) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.query); err != nil {
			return fmt.Errorf("create %s table: %w", stmt.name, err)
		}
	}

	return nil
}
