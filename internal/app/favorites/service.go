package favorites

import (
	"context"
	"errors"

	"tunecrate/internal/store"
)

// ErrMissingFields signals an entry without the required descriptive fields.
var ErrMissingFields = errors.New("missing required fields")

// Store defines persistence operations required for favorites workflows.
type Store interface {
	AddFavorite(ctx context.Context, userID int64, entry store.Favorite) ([]store.Favorite, error)
	FavoritesByUser(ctx context.Context, userID int64) ([]store.Favorite, error)
	RemoveFavorite(ctx context.Context, userID int64, mediaID string) ([]store.Favorite, error)
}

// Service describes high level favorites operations used by HTTP handlers.
type Service interface {
	Add(ctx context.Context, userID int64, entry store.Favorite) ([]store.Favorite, error)
	List(ctx context.Context, userID int64) ([]store.Favorite, error)
	Remove(ctx context.Context, userID int64, mediaID string) ([]store.Favorite, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Add(ctx context.Context, userID int64, entry store.Favorite) ([]store.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if entry.Title == "" || entry.Artist == "" || entry.MediaID == "" || entry.MediaType == "" {
		return nil, ErrMissingFields
	}
	return s.store.AddFavorite(ctx, userID, entry)
}

func (s *service) List(ctx context.Context, userID int64) ([]store.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.FavoritesByUser(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID int64, mediaID string) ([]store.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mediaID == "" {
		return nil, ErrMissingFields
	}
	return s.store.RemoveFavorite(ctx, userID, mediaID)
}
