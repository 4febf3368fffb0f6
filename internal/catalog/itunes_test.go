package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidMediaType(t *testing.T) {
	for _, mt := range []string{"music", "movie", "podcast", "audiobook", "shortFilm", "tvShow", "software", "ebook", "all"} {
		require.True(t, ValidMediaType(mt), mt)
	}
	for _, mt := range []string{"", "video", "MUSIC", "albums"} {
		require.False(t, ValidMediaType(mt), mt)
	}
}

func TestSearchInvalidMediaType(t *testing.T) {
	client := NewClient("http://localhost:0")
	_, err := client.Search(context.Background(), "daft punk", "video", 1)
	require.ErrorIs(t, err, ErrInvalidMediaType)
}

func TestSearchConcreteType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "daft punk", q.Get("term"))
		require.Equal(t, "music", q.Get("media"))
		require.Equal(t, "10", q.Get("limit"))
		require.Equal(t, "10", q.Get("offset"))

		json.NewEncoder(w).Encode(map[string]any{
			"resultCount": 25,
			"results": []map[string]any{
				{
					"trackName":        "One More Time",
					"artistName":       "Daft Punk",
					"primaryGenreName": "Electronic",
					"releaseDate":      "2000-11-13",
					"artworkUrl100":    "https://example.com/100.jpg",
					"previewUrl":       "https://example.com/p.m4a",
					"trackId":          100,
				},
				{
					// Collection-shaped item exercising every fallback.
					"collectionName":       "Discovery",
					"collectionArtistName": "Daft Punk",
					"collectionId":         200,
					"artworkUrl60":         "https://example.com/60.jpg",
				},
				{},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.Search(context.Background(), "daft punk", "music", 2)
	require.NoError(t, err)

	require.Equal(t, 2, page.Page)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Results, 3)

	first := page.Results[0]
	require.Equal(t, "One More Time", first.Title)
	require.Equal(t, "Daft Punk", first.Artist)
	require.Equal(t, "Electronic", first.Genre)
	require.Equal(t, "2000-11-13", first.ReleaseDate)
	require.Equal(t, "https://example.com/100.jpg", first.CoverArt)
	require.Equal(t, "https://example.com/p.m4a", first.PreviewURL)
	require.Equal(t, "100", first.MediaID)
	require.Equal(t, "music", first.MediaType)

	second := page.Results[1]
	require.Equal(t, "Discovery", second.Title)
	require.Equal(t, "Daft Punk", second.Artist)
	require.Equal(t, "200", second.MediaID)
	require.Equal(t, "https://example.com/60.jpg", second.CoverArt)

	third := page.Results[2]
	require.Equal(t, "Unknown Title", third.Title)
	require.Equal(t, "Unknown Artist", third.Artist)
	require.Equal(t, "N/A", third.Genre)
	require.Equal(t, "N/A", third.ReleaseDate)
	require.Equal(t, "No description available", third.Description)
	require.Empty(t, third.MediaID)
}

func TestSearchAllFansOutPerType(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		media := r.URL.Query().Get("media")
		json.NewEncoder(w).Encode(map[string]any{
			"resultCount": 1,
			"results": []map[string]any{
				{
					"trackName":      "result for " + media,
					"artistName":     "Artist",
					"trackId":        7,
					"collectionType": "Album",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.Search(context.Background(), "something", "all", 1)
	require.NoError(t, err)

	require.Equal(t, int64(8), requests.Load(), "one request per concrete media type")
	require.Len(t, page.Results, 8)
	require.Equal(t, 1, page.TotalPages)
	for _, result := range page.Results {
		require.Equal(t, "Album", result.MediaType)
	}
}

func TestSearchAllFailsWhenOneLegFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("media") == "podcast" {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"resultCount": 0, "results": []any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Search(context.Background(), "something", "all", 1)
	require.Error(t, err)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Search(context.Background(), "something", "music", 1)
	require.Error(t, err)
}

func TestSearchPageBelowOneTreatedAsFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "0", r.URL.Query().Get("offset"))
		json.NewEncoder(w).Encode(map[string]any{"resultCount": 0, "results": []any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.Search(context.Background(), "x", "music", 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 0, page.TotalPages)
}
