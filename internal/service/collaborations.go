package service

import (
	"database/sql"
	"fmt"
)

// CollaborationService grants and revokes non-owner playlist access, and answers
// the collaborator check consumed by PlaylistService.VerifyAccess.
type CollaborationService struct {
	db *sql.DB
}

func NewCollaborationService(db *sql.DB) *CollaborationService {
	return &CollaborationService{db: db}
}

func (s *CollaborationService) Add(playlistID, userID string) (string, error) {
	var existingUserID string
	err := s.db.QueryRow(`SELECT id FROM users WHERE id = $1`, userID).Scan(&existingUserID)
	if err == sql.ErrNoRows {
		return "", NewNotFoundError("user not found")
	}
	if err != nil {
		return "", fmt.Errorf("check collaborator user: %w", err)
	}

	id := newID("collab")
	var returnedID string
	err = s.db.QueryRow(
		`INSERT INTO collaborations (id, playlist_id, user_id) VALUES ($1, $2, $3) RETURNING id`,
		id, playlistID, userID,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return "", NewInvariantError("failed to add collaboration")
	}
	if err != nil {
		return "", fmt.Errorf("insert collaboration: %w", err)
	}

	return returnedID, nil
}

func (s *CollaborationService) Delete(playlistID, userID string) error {
	result, err := s.db.Exec(
		`DELETE FROM collaborations WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete collaboration rows affected: %w", err)
	}
	if affected == 0 {
		return NewInvariantError("failed to delete collaboration")
	}

	return nil
}

// Verify reports whether userID is a registered collaborator on playlistID.
func (s *CollaborationService) Verify(playlistID, userID string) error {
	var id string
	err := s.db.QueryRow(
		`SELECT id FROM collaborations WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return NewInvariantError("failed to verify collaboration")
	}
	if err != nil {
		return fmt.Errorf("query collaboration: %w", err)
	}

	return nil
}
