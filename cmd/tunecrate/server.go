package main

import (
	"net/http"
	"strings"

	"tunecrate/internal/app/favorites"
	"tunecrate/internal/app/users"
	"tunecrate/internal/catalog"
	"tunecrate/internal/httpapi"
	"tunecrate/internal/middleware"
	"tunecrate/internal/store"
	"tunecrate/internal/token"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	userSvc := users.New(dataStore, tokens)
	favoritesSvc := favorites.New(dataStore)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)

	handler := httpapi.New(userSvc, favoritesSvc, catalogClient, tokens, dataStore).Routes()

	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(),
		middleware.RequestLogging(),
	}
	for _, wrap := range chain {
		handler = wrap(handler)
	}

	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
