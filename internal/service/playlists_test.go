package service

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestPlaylistService(t *testing.T, verifier CollaborationVerifier) (*PlaylistService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := setupMockDB(t)
	return NewPlaylistService(db, NewActivityService(db), verifier), mock
}

func expectOwnerLookup(mock sqlmock.Sqlmock, playlistID, owner string) {
	rows := sqlmock.NewRows([]string{"owner"})
	if owner != "" {
		rows.AddRow(owner)
	}
	mock.ExpectQuery(`SELECT owner FROM playlists WHERE id`).WithArgs(playlistID).WillReturnRows(rows)
}

func TestVerifyOwner(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	expectOwnerLookup(mock, "pl-1", "user-A")
	if err := svc.VerifyOwner("pl-1", "user-A"); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}

	expectOwnerLookup(mock, "pl-1", "user-A")
	if err := svc.VerifyOwner("pl-1", "user-B"); !IsAuthorization(err) {
		t.Fatalf("non-owner should fail with authorization, got %v", err)
	}

	expectOwnerLookup(mock, "pl-missing", "")
	if err := svc.VerifyOwner("pl-missing", "user-A"); !IsNotFound(err) {
		t.Fatalf("missing playlist should fail with not found, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestVerifyAccessGrantsOwnerWithoutCollaboratorCheck(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("must not be called")}
	svc, mock := newTestPlaylistService(t, verifier)

	expectOwnerLookup(mock, "pl-1", "user-A")
	if err := svc.VerifyAccess("pl-1", "user-A"); err != nil {
		t.Fatalf("VerifyAccess for owner: %v", err)
	}
	if verifier.calls != 0 {
		t.Fatalf("collaborator check ran %d times for the owner", verifier.calls)
	}

	expectationsMet(t, mock)
}

func TestVerifyAccessGrantsCollaborator(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	expectOwnerLookup(mock, "pl-1", "user-A")
	if err := svc.VerifyAccess("pl-1", "user-B"); err != nil {
		t.Fatalf("VerifyAccess for collaborator: %v", err)
	}

	expectationsMet(t, mock)
}

func TestVerifyAccessStrangerGetsTheOwnershipDenial(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{err: NewInvariantError("failed to verify collaboration")})

	expectOwnerLookup(mock, "pl-1", "user-A")
	accessErr := svc.VerifyAccess("pl-1", "user-Y")

	expectOwnerLookup(mock, "pl-1", "user-A")
	ownerErr := svc.VerifyOwner("pl-1", "user-Y")

	if !IsAuthorization(accessErr) {
		t.Fatalf("stranger should be denied with authorization, got %v", accessErr)
	}
	// The denial must be the ownership error, not the collaborator-check error.
	if accessErr.Error() != ownerErr.Error() {
		t.Fatalf("denial message %q differs from ownership denial %q", accessErr.Error(), ownerErr.Error())
	}

	expectationsMet(t, mock)
}

func TestVerifyAccessMissingPlaylistSkipsFallback(t *testing.T) {
	verifier := &stubVerifier{}
	svc, mock := newTestPlaylistService(t, verifier)

	expectOwnerLookup(mock, "pl-missing", "")
	if err := svc.VerifyAccess("pl-missing", "user-B"); !IsNotFound(err) {
		t.Fatalf("missing playlist should propagate not found, got %v", err)
	}
	if verifier.calls != 0 {
		t.Fatalf("collaborator check must not run for a missing playlist")
	}

	expectationsMet(t, mock)
}

func TestAddSongRecordsAddActivityInOneTransaction(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT id FROM songs WHERE id`).
		WithArgs("song-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("song-9"))
	mock.ExpectBegin()
	mock.
		ExpectQuery(`INSERT INTO playlists_songs`).
		WithArgs(sqlmock.AnyArg(), "pl-1", "song-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("playlist-song-1"))
	mock.
		ExpectQuery(`INSERT INTO playlist_activity`).
		WithArgs(sqlmock.AnyArg(), "pl-1", "user-B", "song-9", "add", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("activity-1"))
	mock.ExpectCommit()

	if err := svc.AddSong("pl-1", "song-9", "user-B"); err != nil {
		t.Fatalf("AddSong: %v", err)
	}

	expectationsMet(t, mock)
}

func TestAddSongMissingSong(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT id FROM songs WHERE id`).
		WithArgs("song-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.AddSong("pl-1", "song-missing", "user-A")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "song not found while adding to playlist" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	expectationsMet(t, mock)
}

func TestAddSongRollsBackWhenActivityRecordFails(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT id FROM songs WHERE id`).
		WithArgs("song-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("song-9"))
	mock.ExpectBegin()
	mock.
		ExpectQuery(`INSERT INTO playlists_songs`).
		WithArgs(sqlmock.AnyArg(), "pl-1", "song-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("playlist-song-1"))
	mock.
		ExpectQuery(`INSERT INTO playlist_activity`).
		WithArgs(sqlmock.AnyArg(), "pl-1", "user-B", "song-9", "add", sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := svc.AddSong("pl-1", "song-9", "user-B"); err == nil {
		t.Fatal("expected pipeline failure when the recorder fails")
	}

	expectationsMet(t, mock)
}

func TestRemoveSongRecordsDeleteActivity(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.ExpectBegin()
	mock.
		ExpectQuery(`DELETE FROM playlists_songs`).
		WithArgs("pl-1", "song-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("playlist-song-1"))
	mock.
		ExpectQuery(`INSERT INTO playlist_activity`).
		WithArgs(sqlmock.AnyArg(), "pl-1", "user-B", "song-9", "delete", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("activity-2"))
	mock.ExpectCommit()

	if err := svc.RemoveSong("pl-1", "song-9", "user-B"); err != nil {
		t.Fatalf("RemoveSong: %v", err)
	}

	expectationsMet(t, mock)
}

func TestRemoveSongNotOnPlaylist(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.ExpectBegin()
	mock.
		ExpectQuery(`DELETE FROM playlists_songs`).
		WithArgs("pl-1", "song-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.RemoveSong("pl-1", "song-9", "user-A")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestGetSongsComposesHeaderAndSongs(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT songs.id, songs.title, songs.performer`).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}).
			AddRow("song-1", "Yellow", "Coldplay"))
	mock.
		ExpectQuery(`SELECT p.id, p.name, u.username`).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username"}).
			AddRow("pl-1", "Favorites", "alice"))

	playlist, err := svc.GetSongs("pl-1")
	if err != nil {
		t.Fatalf("GetSongs: %v", err)
	}
	if playlist.Username != "alice" || len(playlist.Songs) != 1 {
		t.Fatalf("unexpected composition: %+v", playlist)
	}

	expectationsMet(t, mock)
}

func TestGetSongsEmptyPlaylistIsNotAnError(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT songs.id, songs.title, songs.performer`).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}))
	mock.
		ExpectQuery(`SELECT p.id, p.name, u.username`).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username"}).
			AddRow("pl-1", "Favorites", "alice"))

	playlist, err := svc.GetSongs("pl-1")
	if err != nil {
		t.Fatalf("GetSongs: %v", err)
	}
	if len(playlist.Songs) != 0 {
		t.Fatalf("expected empty song list, got %+v", playlist.Songs)
	}

	expectationsMet(t, mock)
}

func TestGetSongsMissingPlaylist(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT songs.id, songs.title, songs.performer`).
		WithArgs("pl-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}))
	mock.
		ExpectQuery(`SELECT p.id, p.name, u.username`).
		WithArgs("pl-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username"}))

	_, err := svc.GetSongs("pl-missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestGetActivitiesJoinsUserAndSong(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})
	now := time.Now().UTC()

	mock.
		ExpectQuery(`SELECT u.username, s.title, a.action, a.created_at`).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows([]string{"username", "title", "action", "created_at"}).
			AddRow("bob", "Yellow", "add", now).
			AddRow("bob", "Yellow", "delete", now))

	activities, err := svc.GetActivities("pl-1")
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if len(activities) != 2 || activities[1].Action != "delete" {
		t.Fatalf("unexpected activities: %+v", activities)
	}

	expectationsMet(t, mock)
}

func TestGetActivitiesEmptyIsNotFound(t *testing.T) {
	svc, mock := newTestPlaylistService(t, &stubVerifier{})

	mock.
		ExpectQuery(`SELECT u.username, s.title, a.action, a.created_at`).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows([]string{"username", "title", "action", "created_at"}))

	_, err := svc.GetActivities("pl-1")
	if !IsNotFound(err) {
		t.Fatalf("expected not found for empty activity set, got %v", err)
	}

	expectationsMet(t, mock)
}
