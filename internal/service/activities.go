package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/models"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so activity rows can be
// recorded inside the playlist mutation transaction.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// ActivityService appends and reads the immutable playlist audit trail.
type ActivityService struct {
	db *sql.DB
}

func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends one audit row. Valid actions are "add" and "delete".
func (s *ActivityService) Record(q rowQuerier, playlistID, songID, userID, action string) error {
	id := newID("activity")

	var returnedID string
	err := q.QueryRow(
		`INSERT INTO playlist_activity (id, playlist_id, user_id, song_id, action, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		id, playlistID, userID, songID, action, time.Now().UTC(),
	).Scan(&returnedID)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	if returnedID == "" {
		return NewInvariantError("failed to record activity")
	}

	return nil
}

// GetByPlaylist returns the audit trail joined with usernames and song titles.
// Zero rows is reported as NotFound, which also covers a nonexistent playlist.
func (s *ActivityService) GetByPlaylist(playlistID string) ([]models.ActivityEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.username, s.title, a.action, a.created_at
		 FROM playlist_activity a
		 JOIN users u ON a.user_id = u.id
		 JOIN songs s ON a.song_id = s.id
		 WHERE a.playlist_id = $1`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("query playlist activities: %w", err)
	}
	defer rows.Close()

	var activities []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(&entry.Username, &entry.Title, &entry.Action, &entry.Time); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	if len(activities) == 0 {
		return nil, NewNotFoundError("activity not found")
	}

	return activities, nil
}
