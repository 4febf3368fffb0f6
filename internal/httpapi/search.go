package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"tunecrate/internal/catalog"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	term := query.Get("term")
	mediaType := query.Get("mediaType")

	page := 1
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page parameter"})
			return
		}
		page = parsed
	}

	results, err := s.catalog.Search(r.Context(), term, mediaType, page)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidMediaType) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid media type"})
			return
		}
		writeInternalError(w, r, err, "failed to fetch search results")
		return
	}

	writeJSON(w, http.StatusOK, results)
}
