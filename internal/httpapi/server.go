package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"tunecrate/internal/catalog"
	"tunecrate/internal/store"
)

// validate checks the struct tags on incoming request payloads.
var validate = validator.New(validator.WithRequiredStructEnabled())

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// FavoritesService coordinates favorites workflows.
type FavoritesService interface {
	Add(ctx context.Context, userID int64, entry store.Favorite) ([]store.Favorite, error)
	List(ctx context.Context, userID int64) ([]store.Favorite, error)
	Remove(ctx context.Context, userID int64, mediaID string) ([]store.Favorite, error)
}

// CatalogService searches the external media catalog.
type CatalogService interface {
	Search(ctx context.Context, term, mediaType string, page int) (catalog.SearchPage, error)
}

// TokenVerifier resolves a bearer token to the user ID it identifies.
type TokenVerifier interface {
	Verify(tokenString string) (int64, error)
}

// IdentityStore resolves verified token subjects to live accounts.
type IdentityStore interface {
	UserByID(ctx context.Context, id int64) (store.User, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	favorites FavoritesService
	catalog   CatalogService
	tokens    TokenVerifier
	identity  IdentityStore
}

// New configures a Server with the given service implementations.
func New(users UserService, favorites FavoritesService, catalog CatalogService, tokens TokenVerifier, identity IdentityStore) *Server {
	return &Server{
		users:     users,
		favorites: favorites,
		catalog:   catalog,
		tokens:    tokens,
		identity:  identity,
	}
}

// Routes exposes the HTTP handlers for auth, search, and favorites.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	mux.HandleFunc("GET /media/search", s.handleSearch)

	mux.Handle("POST /favorites", s.requireUser(s.handleAddFavorite))
	mux.Handle("GET /favorites", s.requireUser(s.handleListFavorites))
	mux.Handle("DELETE /favorites/{mediaId}", s.requireUser(s.handleRemoveFavorite))

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeInternalError hides the failure detail from the client; it is logged
// server-side only.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}

func parseBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
