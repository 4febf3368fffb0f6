package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunecrate/internal/app/favorites"
	"tunecrate/internal/store"
)

type favoriteRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Genre       string `json:"genre"`
	ReleaseDate string `json:"releaseDate"`
	CoverArt    string `json:"coverArt"`
	PreviewURL  string `json:"previewUrl"`
	MediaID     string `json:"mediaId"`
	MediaType   string `json:"mediaType"`
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized access"})
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	entry := store.Favorite{
		MediaID:     req.MediaID,
		MediaType:   req.MediaType,
		Title:       req.Title,
		Artist:      req.Artist,
		Genre:       req.Genre,
		ReleaseDate: req.ReleaseDate,
		CoverArt:    req.CoverArt,
		PreviewURL:  req.PreviewURL,
	}

	updated, err := s.favorites.Add(r.Context(), user.ID, entry)
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		case errors.Is(err, store.ErrDuplicateFavorite):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "this media is already in your favorites"})
		default:
			writeInternalError(w, r, err, "error adding to favorites")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized access"})
		return
	}

	list, err := s.favorites.List(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoFavorites) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no favorites found for this user"})
			return
		}
		writeInternalError(w, r, err, "error fetching favorites")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized access"})
		return
	}

	mediaID := r.PathValue("mediaId")
	if mediaID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing mediaId parameter"})
		return
	}

	updated, err := s.favorites.Remove(r.Context(), user.ID, mediaID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoFavorites):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no favorites found for this user"})
		case errors.Is(err, store.ErrFavoriteNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "favorite item not found"})
		case errors.Is(err, favorites.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing mediaId parameter"})
		default:
			writeInternalError(w, r, err, "error removing from favorites")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
