package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/cache"
	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/models"
)

// Source tags for cache-aside reads. Surfaced to the HTTP layer as the
// X-Data-Source header; observability only, never correctness.
const (
	SourceCache = "cache"
	SourceDB    = "db"
)

const albumListKey = "albums"

func albumLikesKey(albumID string) string {
	return "album_likes:" + albumID
}

// AlbumService handles album CRUD, the cached album list, and per-album like
// counts. The cache is a derived view; the database stays the source of truth,
// and every album or like write deletes the keys derived from it.
type AlbumService struct {
	db    *sql.DB
	cache cache.Cache
}

func NewAlbumService(db *sql.DB, c cache.Cache) *AlbumService {
	return &AlbumService{db: db, cache: c}
}

func (s *AlbumService) Add(name string, year int) (string, error) {
	id := newID("album")
	now := time.Now().UTC()

	var returnedID string
	err := s.db.QueryRow(
		`INSERT INTO albums (id, name, year, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		id, name, year, now, now,
	).Scan(&returnedID)
	if err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}
	if returnedID == "" {
		return "", NewInvariantError("failed to add album")
	}

	if err := s.cache.Delete(albumListKey); err != nil {
		return "", fmt.Errorf("invalidate album list cache: %w", err)
	}

	return returnedID, nil
}

// GetAll returns every album, serving from the cache when the albums key is
// present and falling back to the database otherwise.
func (s *AlbumService) GetAll() ([]models.Album, string, error) {
	cached, err := s.cache.Get(albumListKey)
	if err == nil {
		var albums []models.Album
		unmarshalErr := json.Unmarshal(cached, &albums)
		if unmarshalErr == nil {
			return albums, SourceCache, nil
		}
		logger.Warn("discarding undecodable album list cache entry", zap.Error(unmarshalErr))
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("album list cache read failed, falling back to db", zap.Error(err))
	}

	rows, err := s.db.Query(`SELECT id, name, year, cover_url, created_at, updated_at FROM albums`)
	if err != nil {
		return nil, "", fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var album models.Album
		if err := rows.Scan(&album.ID, &album.Name, &album.Year, &album.CoverURL, &album.CreatedAt, &album.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate albums: %w", err)
	}

	payload, err := json.Marshal(albums)
	if err != nil {
		return nil, "", fmt.Errorf("encode album list for cache: %w", err)
	}
	if err := s.cache.Set(albumListKey, payload, cache.DefaultTTL); err != nil {
		return nil, "", fmt.Errorf("cache album list: %w", err)
	}

	return albums, SourceDB, nil
}

func (s *AlbumService) GetByID(id string) (*models.Album, error) {
	var album models.Album
	err := s.db.QueryRow(
		`SELECT id, name, year, cover_url, created_at, updated_at FROM albums WHERE id = $1`,
		id,
	).Scan(&album.ID, &album.Name, &album.Year, &album.CoverURL, &album.CreatedAt, &album.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, NewNotFoundError("album not found")
	}
	if err != nil {
		return nil, fmt.Errorf("query album %s: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT id, title, year, genre, performer, duration, album_id, created_at, updated_at
		 FROM songs WHERE album_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query album songs: %w", err)
	}
	defer rows.Close()

	album.Songs = []models.Song{}
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer,
			&song.Duration, &song.AlbumID, &song.CreatedAt, &song.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan album song: %w", err)
		}
		album.Songs = append(album.Songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album songs: %w", err)
	}

	return &album, nil
}

func (s *AlbumService) Edit(id, name string, year int) error {
	var returnedID string
	err := s.db.QueryRow(
		`UPDATE albums SET name = $1, year = $2, updated_at = $3 WHERE id = $4 RETURNING id`,
		name, year, time.Now().UTC(), id,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to update album, id not found")
	}
	if err != nil {
		return fmt.Errorf("update album %s: %w", id, err)
	}

	return s.invalidateAlbumList()
}

func (s *AlbumService) Delete(id string) error {
	var returnedID string
	err := s.db.QueryRow(`DELETE FROM albums WHERE id = $1 RETURNING id`, id).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to delete album, id not found")
	}
	if err != nil {
		return fmt.Errorf("delete album %s: %w", id, err)
	}

	return s.invalidateAlbumList()
}

// UpdateCover records the uploaded cover location for an album.
func (s *AlbumService) UpdateCover(id, coverURL string) error {
	var returnedID string
	err := s.db.QueryRow(
		`UPDATE albums SET cover_url = $1, updated_at = $2 WHERE id = $3 RETURNING id`,
		coverURL, time.Now().UTC(), id,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return NewNotFoundError("failed to update album, id not found")
	}
	if err != nil {
		return fmt.Errorf("update album cover %s: %w", id, err)
	}

	return s.invalidateAlbumList()
}

// GetLikes returns the like count for an album, cache first. A database read
// writes the count back under the album's key with the default expiry.
func (s *AlbumService) GetLikes(albumID string) (int, string, error) {
	key := albumLikesKey(albumID)

	cached, err := s.cache.Get(key)
	if err == nil {
		count, parseErr := strconv.Atoi(string(cached))
		if parseErr == nil {
			return count, SourceCache, nil
		}
		logger.Warn("discarding undecodable like count cache entry",
			zap.String("key", key), zap.Error(parseErr))
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("like count cache read failed, falling back to db",
			zap.String("key", key), zap.Error(err))
	}

	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_album_likes WHERE album_id = $1`,
		albumID,
	).Scan(&count); err != nil {
		return 0, "", fmt.Errorf("count album likes: %w", err)
	}

	if err := s.cache.Set(key, []byte(strconv.Itoa(count)), cache.DefaultTTL); err != nil {
		return 0, "", fmt.Errorf("cache like count: %w", err)
	}

	return count, SourceDB, nil
}

// AddLike registers a like for (userID, albumID). Liking the same album twice is
// an invariant violation; the unique constraint on user_album_likes backstops the
// check under concurrency.
func (s *AlbumService) AddLike(albumID, userID string) (string, error) {
	var existingID string
	err := s.db.QueryRow(
		`SELECT id FROM user_album_likes WHERE user_id = $1 AND album_id = $2`,
		userID, albumID,
	).Scan(&existingID)
	if err == nil {
		return "", NewInvariantError("failed to add like, album already liked")
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("check existing like: %w", err)
	}

	id := newID("likes")
	var returnedID string
	err = s.db.QueryRow(
		`INSERT INTO user_album_likes (id, user_id, album_id) VALUES ($1, $2, $3) RETURNING id`,
		id, userID, albumID,
	).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return "", NewInvariantError("failed to add like")
	}
	if err != nil {
		return "", fmt.Errorf("insert like: %w", err)
	}

	if err := s.cache.Delete(albumLikesKey(albumID)); err != nil {
		return "", fmt.Errorf("invalidate like count cache: %w", err)
	}

	return returnedID, nil
}

func (s *AlbumService) RemoveLike(userID, albumID string) error {
	result, err := s.db.Exec(
		`DELETE FROM user_album_likes WHERE user_id = $1 AND album_id = $2`,
		userID, albumID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete like rows affected: %w", err)
	}
	if affected == 0 {
		return NewInvariantError("failed to remove like")
	}

	if err := s.cache.Delete(albumLikesKey(albumID)); err != nil {
		return fmt.Errorf("invalidate like count cache: %w", err)
	}

	return nil
}

func (s *AlbumService) invalidateAlbumList() error {
	if err := s.cache.Delete(albumListKey); err != nil {
		return fmt.Errorf("invalidate album list cache: %w", err)
	}
	return nil
}
