package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/models"
)

// SongService handles the song catalog.
type SongService struct {
	db *sql.DB
}

func NewSongService(db *sql.DB) *SongService {
	return &SongService{db: db}
}

type SongPayload struct {
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

func (s *SongService) Add(payload SongPayload) (string, error) {
	id := newID("song")
	now := time.Now().UTC()

	var returnedID string
	err := s.db.QueryRow(
		`INSERT INTO songs (id, title, year, genre, performer, duration, album_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		id, payload.Title, payload.Year, payload.Genre, payload.Performer,
		payload.Duration, payload.AlbumID, now, now,
	).Scan(&returnedID)
	if err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}
	if returnedID == "" {
		return "", NewInvariantError("failed to add song")
	}

	return returnedID, nil
}

// GetAll lists songs, optionally filtered by title and performer substrings
// (case-insensitive, combined with AND when both are present).
func (s *SongService) GetAll(title, performer string) ([]models.SongSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, title, performer FROM songs
		 WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR performer ILIKE '%' || $2 || '%')`,
		title, performer,
	)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.SongSummary{}
	for rows.Next() {
		var song models.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return songs, nil
}

func (s *SongService) GetByID(id string) (*models.Song, error) {
	var song models.Song
	err := s.db.QueryRow(
		`SELECT id, title, year, genre, performer, duration, album_id, created_at, updated_at
		 FROM songs WHERE id = $1`,
		id,
	).Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer,
		&song.Duration, &song.AlbumID, &song.CreatedAt, &song.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, NewNotFoundError("song not found")
	}
	if err != nil {
		return nil, fmt.Errorf("query song %s: %w", id, err)
	}

	return &song, nil
}

func (s *SongService) Edit(id string, payload SongPayload) error {
	var returnedID string
	err := s.db.QueryRow(
		`UPDATE songs
		 SET title = $1, year = $2, genre = $3, performer = $4, duration = $5, album_id = $6, updated_at = $7
		 WHERE id = $8
		 RETURNING id`,
		payload.Title, payload.Year, payload.Genre, payload.Performer,
		payload.Duration, payload.AlbumID, time.Now().UTC(), id,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to update song, id not found")
	}
	if err != nil {
		return fmt.Errorf("update song %s: %w", id, err)
	}

	return nil
}

func (s *SongService) Delete(id string) error {
	var returnedID string
	err := s.db.QueryRow(`DELETE FROM songs WHERE id = $1 RETURNING id`, id).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to delete song, id not found")
	}
	if err != nil {
		return fmt.Errorf("delete song %s: %w", id, err)
	}

	return nil
}
