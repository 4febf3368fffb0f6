package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertFavoriteQuery = `
		INSERT INTO favorites (user_id, media_id, media_type, title, artist, genre, release_date, cover_art, preview_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, media_id) DO NOTHING
	`
	selectFavoritesQuery = `
		SELECT id, user_id, media_id, media_type, title, artist, genre, release_date, cover_art, preview_url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`
	deleteFavoriteQuery = `
		DELETE FROM favorites
		WHERE user_id = $1 AND media_id = $2
	`
	countFavoritesQuery = `
			SELECT COUNT(*) FROM favorites WHERE user_id = $1
		`
)

func favoriteRows(favs ...Favorite) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "media_id", "media_type", "title", "artist",
		"genre", "release_date", "cover_art", "preview_url", "created_at",
	})
	for _, f := range favs {
		rows.AddRow(f.ID, f.UserID, f.MediaID, f.MediaType, f.Title, f.Artist,
			f.Genre, f.ReleaseDate, f.CoverArt, f.PreviewURL, f.CreatedAt)
	}
	return rows
}

func TestAddFavoriteSuccess(t *testing.T) {
	s, mock := newMockStore(t)

	entry := Favorite{
		MediaID:     "100",
		MediaType:   "music",
		Title:       "Teardrop",
		Artist:      "Massive Attack",
		Genre:       "Trip Hop",
		ReleaseDate: "1998-04-27",
		CoverArt:    "https://example.com/art.jpg",
		PreviewURL:  "https://example.com/preview.m4a",
	}

	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteQuery)).
		WithArgs(int64(42), entry.MediaID, entry.MediaType, entry.Title, entry.Artist,
			entry.Genre, entry.ReleaseDate, entry.CoverArt, entry.PreviewURL).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stored := entry
	stored.ID = 1
	stored.UserID = 42
	stored.CreatedAt = time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectFavoritesQuery)).
		WithArgs(int64(42)).
		WillReturnRows(favoriteRows(stored))

	list, err := s.AddFavorite(context.Background(), 42, entry)
	if err != nil {
		t.Fatalf("AddFavorite error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(list))
	}
	// Round-trip: every descriptive field survives storage.
	got := list[0]
	if got.MediaID != entry.MediaID || got.Title != entry.Title || got.Artist != entry.Artist ||
		got.Genre != entry.Genre || got.ReleaseDate != entry.ReleaseDate ||
		got.CoverArt != entry.CoverArt || got.PreviewURL != entry.PreviewURL {
		t.Fatalf("favorite fields not preserved: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddFavoriteDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	// ON CONFLICT DO NOTHING: the conflicting insert touches zero rows.
	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteQuery)).
		WithArgs(int64(42), "100", "music", "Teardrop", "Massive Attack", "", "", "", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.AddFavorite(context.Background(), 42, Favorite{
		MediaID:   "100",
		MediaType: "music",
		Title:     "Teardrop",
		Artist:    "Massive Attack",
	})
	if !errors.Is(err, ErrDuplicateFavorite) {
		t.Fatalf("expected ErrDuplicateFavorite, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFavoritesByUserEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectFavoritesQuery)).
		WithArgs(int64(42)).
		WillReturnRows(favoriteRows())

	_, err := s.FavoritesByUser(context.Background(), 42)
	if !errors.Is(err, ErrNoFavorites) {
		t.Fatalf("expected ErrNoFavorites, got %v", err)
	}
}

func TestRemoveFavoriteSuccess(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteFavoriteQuery)).
		WithArgs(int64(42), "100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(selectFavoritesQuery)).
		WithArgs(int64(42)).
		WillReturnRows(favoriteRows())

	list, err := s.RemoveFavorite(context.Background(), 42, "100")
	if err != nil {
		t.Fatalf("RemoveFavorite error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after removing last favorite, got %d", len(list))
	}
	if list == nil {
		t.Fatal("expected empty list, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveFavoriteItemNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteFavoriteQuery)).
		WithArgs(int64(42), "999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// The user has other favorites, just not this one.
	mock.ExpectQuery(regexp.QuoteMeta(countFavoritesQuery)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	_, err := s.RemoveFavorite(context.Background(), 42, "999")
	if !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestRemoveFavoriteNoCollection(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteFavoriteQuery)).
		WithArgs(int64(42), "100").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(regexp.QuoteMeta(countFavoritesQuery)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := s.RemoveFavorite(context.Background(), 42, "100")
	if !errors.Is(err, ErrNoFavorites) {
		t.Fatalf("expected ErrNoFavorites, got %v", err)
	}
}
