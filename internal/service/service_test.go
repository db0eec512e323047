package service

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/cache"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func setupTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewBadgerCache("")
	if err != nil {
		t.Fatalf("cache.NewBadgerCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

// stubVerifier stands in for the collaboration authority in access-control tests.
type stubVerifier struct {
	err   error
	calls int
}

func (s *stubVerifier) Verify(playlistID, userID string) error {
	s.calls++
	return s.err
}
