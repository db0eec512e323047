package service

import (
	"database/sql"
	"fmt"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/models"
)

// CollaborationVerifier answers whether a user is a registered collaborator on a
// playlist. Any returned error counts as "not a collaborator" in VerifyAccess.
type CollaborationVerifier interface {
	Verify(playlistID, userID string) error
}

// PlaylistService owns playlist CRUD, the access-control decisions, and the
// song mutation + activity pipeline.
type PlaylistService struct {
	db             *sql.DB
	activities     *ActivityService
	collaborations CollaborationVerifier
}

func NewPlaylistService(db *sql.DB, activities *ActivityService, collaborations CollaborationVerifier) *PlaylistService {
	return &PlaylistService{db: db, activities: activities, collaborations: collaborations}
}

func (s *PlaylistService) Add(name, owner string) (string, error) {
	id := newID("playlist")

	var returnedID string
	err := s.db.QueryRow(
		`INSERT INTO playlists (id, name, owner) VALUES ($1, $2, $3) RETURNING id`,
		id, name, owner,
	).Scan(&returnedID)
	if err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	if returnedID == "" {
		return "", NewInvariantError("failed to add playlist")
	}

	return returnedID, nil
}

// GetAll lists playlists the user owns or collaborates on.
func (s *PlaylistService) GetAll(userID string) ([]models.Playlist, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT p.id, p.name, u.username
		 FROM playlists p
		 JOIN users u ON p.owner = u.id
		 LEFT JOIN collaborations c ON c.playlist_id = p.id
		 WHERE p.owner = $1 OR c.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	return playlists, nil
}

func (s *PlaylistService) Delete(id string) error {
	var returnedID string
	err := s.db.QueryRow(`DELETE FROM playlists WHERE id = $1 RETURNING id`, id).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to delete playlist, id not found")
	}
	if err != nil {
		return fmt.Errorf("delete playlist %s: %w", id, err)
	}

	return nil
}

// VerifyOwner succeeds only for the playlist's owner. A missing playlist is
// NotFound; anyone else is Authorization.
func (s *PlaylistService) VerifyOwner(playlistID, userID string) error {
	var owner string
	err := s.db.QueryRow(`SELECT owner FROM playlists WHERE id = $1`, playlistID).Scan(&owner)
	if err == sql.ErrNoRows {
		return NewNotFoundError("playlist not found")
	}
	if err != nil {
		return fmt.Errorf("query playlist owner: %w", err)
	}

	if owner != userID {
		return NewAuthorizationError("you are not authorized to access this resource")
	}

	return nil
}

// VerifyAccess grants access to the owner or a registered collaborator.
//
// Ownership is checked first. A missing playlist propagates unconditionally.
// When the caller is not the owner, the collaborator check runs as fallback; if
// that fails for any reason the captured ownership error is returned, so the
// caller always sees the same denial regardless of why the fallback failed.
func (s *PlaylistService) VerifyAccess(playlistID, userID string) error {
	ownerErr := s.VerifyOwner(playlistID, userID)
	if ownerErr == nil {
		return nil
	}
	if !IsAuthorization(ownerErr) {
		return ownerErr
	}

	if collabErr := s.collaborations.Verify(playlistID, userID); collabErr != nil {
		return ownerErr
	}

	return nil
}

// AddSong puts a song on a playlist and records the "add" activity. The
// membership insert and the audit row are one transaction, so a successful
// mutation always has exactly one matching activity row.
func (s *PlaylistService) AddSong(playlistID, songID, userID string) error {
	var existingSongID string
	err := s.db.QueryRow(`SELECT id FROM songs WHERE id = $1`, songID).Scan(&existingSongID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("song not found while adding to playlist")
	}
	if err != nil {
		return fmt.Errorf("check song %s: %w", songID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin add song transaction: %w", err)
	}
	defer tx.Rollback()

	id := newID("playlist-song")
	var returnedID string
	err = tx.QueryRow(
		`INSERT INTO playlists_songs (id, playlist_id, song_id) VALUES ($1, $2, $3) RETURNING id`,
		id, playlistID, songID,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewInvariantError("failed to add song to playlist")
	}
	if err != nil {
		return fmt.Errorf("insert playlist song: %w", err)
	}

	if err := s.activities.Record(tx, playlistID, songID, userID, "add"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add song transaction: %w", err)
	}

	return nil
}

// RemoveSong deletes a playlist membership and records the "delete" activity in
// the same transaction.
func (s *PlaylistService) RemoveSong(playlistID, songID, userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin remove song transaction: %w", err)
	}
	defer tx.Rollback()

	var returnedID string
	err = tx.QueryRow(
		`DELETE FROM playlists_songs WHERE playlist_id = $1 AND song_id = $2 RETURNING id`,
		playlistID, songID,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to remove song from playlist, id not found")
	}
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}

	if err := s.activities.Record(tx, playlistID, songID, userID, "delete"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove song transaction: %w", err)
	}

	return nil
}

// GetSongs composes the playlist header (with the owner's username) and its song
// list. The song list may legitimately be empty; a missing header is NotFound.
func (s *PlaylistService) GetSongs(playlistID string) (*models.PlaylistWithSongs, error) {
	rows, err := s.db.Query(
		`SELECT songs.id, songs.title, songs.performer
		 FROM songs
		 JOIN playlists_songs ON songs.id = playlists_songs.song_id
		 WHERE playlists_songs.playlist_id = $1`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("query playlist songs: %w", err)
	}
	defer rows.Close()

	songs := []models.SongSummary{}
	for rows.Next() {
		var song models.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}

	var playlist models.PlaylistWithSongs
	err = s.db.QueryRow(
		`SELECT p.id, p.name, u.username
		 FROM playlists p
		 JOIN users u ON p.owner = u.id
		 WHERE p.id = $1`,
		playlistID,
	).Scan(&playlist.ID, &playlist.Name, &playlist.Username)
	if err == sql.ErrNoRows {
		return nil, NewNotFoundError("playlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("query playlist %s: %w", playlistID, err)
	}

	playlist.Songs = songs
	return &playlist, nil
}

// GetActivities returns the playlist's audit trail.
func (s *PlaylistService) GetActivities(playlistID string) ([]models.ActivityEntry, error) {
	return s.activities.GetByPlaylist(playlistID)
}
