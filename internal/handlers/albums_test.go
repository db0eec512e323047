package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/service"
)

func newAlbumRouter(t *testing.T, mock func(sqlmock.Sqlmock)) *gin.Engine {
	t.Helper()

	db, sqlMock := setupMockDB(t)
	if mock != nil {
		mock(sqlMock)
	}
	t.Cleanup(func() { expectationsMet(t, sqlMock) })

	handler := NewAlbumHandler(service.NewAlbumService(db, setupTestCache(t)), nil)

	router := gin.New()
	router.POST("/albums", handler.PostAlbum)
	router.GET("/albums/:id", handler.GetAlbumByID)
	router.GET("/albums/:id/likes", handler.GetAlbumLikes)
	router.POST("/albums/:id/likes", withTestUserID("user-1"), handler.PostAlbumLike)
	router.DELETE("/albums/:id/likes", withTestUserID("user-1"), handler.DeleteAlbumLike)
	return router
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestGetAlbumLikesSetsDataSourceHeaderOnlyOnCacheHit(t *testing.T) {
	router := newAlbumRouter(t, func(mock sqlmock.Sqlmock) {
		mock.
			ExpectQuery(`SELECT COUNT\(\*\) FROM user_album_likes`).
			WithArgs("album-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/albums/album-1/likes", nil))
	mustStatus(t, first.Code, http.StatusOK)
	if got := first.Header().Get("X-Data-Source"); got != "" {
		t.Fatalf("database read should not advertise a data source, got %q", got)
	}

	// The first read populated the cache, so no further SQL is expected.
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/albums/album-1/likes", nil))
	mustStatus(t, second.Code, http.StatusOK)
	if got := second.Header().Get("X-Data-Source"); got != "cache" {
		t.Fatalf("expected X-Data-Source: cache, got %q", got)
	}

	var body struct {
		Data struct {
			Likes int `json:"likes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.Likes != 2 {
		t.Fatalf("expected 2 likes, got %d", body.Data.Likes)
	}
}

func TestGetAlbumByIDMissingIs404(t *testing.T) {
	router := newAlbumRouter(t, func(mock sqlmock.Sqlmock) {
		mock.
			ExpectQuery(`SELECT id, name, year, cover_url, created_at, updated_at FROM albums`).
			WithArgs("album-missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "year", "cover_url", "created_at", "updated_at"}))
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/albums/album-missing", nil))
	mustStatus(t, recorder.Code, http.StatusNotFound)
}

func TestPostAlbumLikeTwiceIs400(t *testing.T) {
	now := time.Now().UTC()
	router := newAlbumRouter(t, func(mock sqlmock.Sqlmock) {
		mock.
			ExpectQuery(`SELECT id, name, year, cover_url, created_at, updated_at FROM albums`).
			WithArgs("album-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "year", "cover_url", "created_at", "updated_at"}).
				AddRow("album-1", "Viva la Vida", 2008, nil, now, now))
		mock.
			ExpectQuery(`SELECT id, title, year, genre, performer, duration, album_id, created_at, updated_at`).
			WithArgs("album-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year", "genre", "performer", "duration", "album_id", "created_at", "updated_at"}))
		mock.
			ExpectQuery(`SELECT id FROM user_album_likes`).
			WithArgs("user-1", "album-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("likes-1"))
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/albums/album-1/likes", nil)
	router.ServeHTTP(recorder, request)
	mustStatus(t, recorder.Code, http.StatusBadRequest)

	if !strings.Contains(recorder.Body.String(), "album already liked") {
		t.Fatalf("expected duplicate-like message, got %s", recorder.Body.String())
	}
}

func TestPostAlbumWithoutYearIs400(t *testing.T) {
	router := newAlbumRouter(t, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/albums", strings.NewReader(`{"name":"Viva la Vida"}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	mustStatus(t, recorder.Code, http.StatusBadRequest)
}
