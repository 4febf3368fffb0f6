package httpapi

import (
	"context"
	"errors"
	"net/http"

	"tunecrate/internal/store"
	"tunecrate/internal/token"
)

type contextKey string

const userContextKey contextKey = "user"

// requireUser validates the bearer token and resolves it to a live account
// before the wrapped handler runs.
func (s *Server) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization header is missing"})
			return
		}

		bearer := parseBearerToken(header)
		if bearer == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "token is missing or malformed"})
			return
		}

		userID, err := s.tokens.Verify(bearer)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, token.ErrExpiredToken) {
				msg = "token has expired"
			}
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: msg})
			return
		}

		// The token may outlive the account it names.
		user, err := s.identity.UserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
				return
			}
			writeInternalError(w, r, err, "authentication failed")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(ctx context.Context) (store.User, bool) {
	user, ok := ctx.Value(userContextKey).(store.User)
	return user, ok
}
