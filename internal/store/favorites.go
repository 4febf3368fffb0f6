package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Favorite is one saved media item, keyed by the external catalog identifier.
type Favorite struct {
	ID          int64     `json:"-"`
	UserID      int64     `json:"-"`
	MediaID     string    `json:"mediaId"`
	MediaType   string    `json:"mediaType"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Genre       string    `json:"genre,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	CoverArt    string    `json:"coverArt,omitempty"`
	PreviewURL  string    `json:"previewUrl,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

// AddFavorite saves an entry for the user and returns the refreshed list.
// The (user_id, media_id) unique index doubles as the duplicate check, so
// concurrent adds of the same media cannot both land.
func (s *Store) AddFavorite(ctx context.Context, userID int64, entry Favorite) ([]Favorite, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, media_id, media_type, title, artist, genre, release_date, cover_art, preview_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, media_id) DO NOTHING
	`, userID, entry.MediaID, entry.MediaType, entry.Title, entry.Artist,
		entry.Genre, entry.ReleaseDate, entry.CoverArt, entry.PreviewURL)
	if err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrDuplicateFavorite
	}

	return s.listFavorites(ctx, userID)
}

// FavoritesByUser returns the user's favorites, oldest first. A user who has
// never favorited anything gets ErrNoFavorites rather than an empty list.
func (s *Store) FavoritesByUser(ctx context.Context, userID int64) ([]Favorite, error) {
	favorites, err := s.listFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, ErrNoFavorites
	}
	return favorites, nil
}

// RemoveFavorite deletes the entry matching mediaID and returns the refreshed
// list, which may be empty. "No favorites at all" and "favorites exist but not
// this one" are reported as distinct errors.
func (s *Store) RemoveFavorite(ctx context.Context, userID int64, mediaID string) ([]Favorite, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND media_id = $2
	`, userID, mediaID)
	if err != nil {
		return nil, fmt.Errorf("delete favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var remaining int
		if err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM favorites WHERE user_id = $1
		`, userID).Scan(&remaining); err != nil {
			return nil, fmt.Errorf("count favorites: %w", err)
		}
		if remaining == 0 {
			return nil, ErrNoFavorites
		}
		return nil, ErrFavoriteNotFound
	}

	return s.listFavorites(ctx, userID)
}

func (s *Store) listFavorites(ctx context.Context, userID int64) ([]Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, media_id, media_type, title, artist, genre, release_date, cover_art, preview_url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var fav Favorite
		var genre, releaseDate, coverArt, previewURL sql.NullString
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.MediaID, &fav.MediaType,
			&fav.Title, &fav.Artist, &genre, &releaseDate, &coverArt, &previewURL, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		fav.Genre = genre.String
		fav.ReleaseDate = releaseDate.String
		fav.CoverArt = coverArt.String
		fav.PreviewURL = previewURL.String
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favorites, nil
}
