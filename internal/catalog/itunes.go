// Package catalog queries the iTunes Search API and normalizes its
// heterogeneous result shapes into a single entry format.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// DefaultBaseURL is the public iTunes Search API endpoint.
const DefaultBaseURL = "https://itunes.apple.com"

// pageSize is the fixed number of results per page.
const pageSize = 10

// ErrInvalidMediaType signals a media type outside the supported set.
var ErrInvalidMediaType = errors.New("invalid media type")

// concreteMediaTypes are the media kinds the upstream API understands. "all"
// is handled by fanning out one request per concrete type.
var concreteMediaTypes = []string{
	"music", "movie", "podcast", "audiobook",
	"shortFilm", "tvShow", "software", "ebook",
}

// ValidMediaType reports whether mediaType can be searched.
func ValidMediaType(mediaType string) bool {
	if mediaType == "all" {
		return true
	}
	for _, t := range concreteMediaTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

// Client talks to the iTunes Search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client against baseURL, or the public API when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Result is one normalized catalog entry.
type Result struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Genre       string `json:"genre"`
	ReleaseDate string `json:"releaseDate"`
	Description string `json:"description"`
	CoverArt    string `json:"coverArt,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	MediaID     string `json:"mediaId"`
	MediaType   string `json:"mediaType"`
}

// SearchPage is one page of normalized search results.
type SearchPage struct {
	Results    []Result `json:"results"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
}

// iTunes Search API response structures.
type itunesResponse struct {
	ResultCount int          `json:"resultCount"`
	Results     []itunesItem `json:"results"`
}

type itunesItem struct {
	TrackName            string `json:"trackName"`
	CollectionName       string `json:"collectionName"`
	ArtistName           string `json:"artistName"`
	CollectionArtistName string `json:"collectionArtistName"`
	PrimaryGenreName     string `json:"primaryGenreName"`
	ReleaseDate          string `json:"releaseDate"`
	Description          string `json:"description"`
	ArtworkURL100        string `json:"artworkUrl100"`
	ArtworkURL60         string `json:"artworkUrl60"`
	PreviewURL           string `json:"previewUrl"`
	TrackID              int64  `json:"trackId"`
	CollectionID         int64  `json:"collectionId"`
	CollectionType       string `json:"collectionType"`
}

// Search runs a paginated catalog search. mediaType "all" queries every
// concrete type concurrently and merges the results; any failed leg fails the
// whole search.
func (c *Client) Search(ctx context.Context, term, mediaType string, page int) (SearchPage, error) {
	if !ValidMediaType(mediaType) {
		return SearchPage{}, ErrInvalidMediaType
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	if mediaType != "all" {
		resp, err := c.fetch(ctx, term, mediaType, offset)
		if err != nil {
			return SearchPage{}, err
		}

		results := make([]Result, 0, len(resp.Results))
		for _, item := range resp.Results {
			results = append(results, normalize(item, mediaType))
		}
		return SearchPage{
			Results:    results,
			Page:       page,
			TotalPages: totalPages(resp.ResultCount),
		}, nil
	}

	// Fan out one request per concrete media type and merge.
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []Result
		errs    []error
	)

	for _, mt := range concreteMediaTypes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.fetch(ctx, term, mt, offset)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", mt, err))
				mu.Unlock()
				return
			}

			normalized := make([]Result, 0, len(resp.Results))
			for _, item := range resp.Results {
				normalized = append(normalized, normalizeAny(item))
			}

			mu.Lock()
			results = append(results, normalized...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		return SearchPage{}, errs[0]
	}

	return SearchPage{
		Results:    results,
		Page:       page,
		TotalPages: totalPages(len(results)),
	}, nil
}

func (c *Client) fetch(ctx context.Context, term, mediaType string, offset int) (*itunesResponse, error) {
	params := url.Values{
		"term":   []string{term},
		"media":  []string{mediaType},
		"limit":  []string{strconv.Itoa(pageSize)},
		"offset": []string{strconv.Itoa(offset)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog api error: %s - %s", resp.Status, string(body))
	}

	var decoded itunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &decoded, nil
}

// normalize maps an upstream item onto the canonical entry shape using
// ordered fallbacks per field.
func normalize(item itunesItem, mediaType string) Result {
	r := Result{
		Title:       fallback(item.TrackName, item.CollectionName, "Unknown Title"),
		Artist:      fallback(item.ArtistName, item.CollectionArtistName, "Unknown Artist"),
		Genre:       fallback(item.PrimaryGenreName, "", "N/A"),
		ReleaseDate: fallback(item.ReleaseDate, "", "N/A"),
		Description: fallback(item.Description, "", "No description available"),
		CoverArt:    fallback(item.ArtworkURL100, item.ArtworkURL60, ""),
		PreviewURL:  item.PreviewURL,
		MediaType:   mediaType,
	}

	switch {
	case item.TrackID != 0:
		r.MediaID = strconv.FormatInt(item.TrackID, 10)
	case item.CollectionID != 0:
		r.MediaID = strconv.FormatInt(item.CollectionID, 10)
	}

	return r
}

// normalizeAny is the merged-search variant: the item's own collection type
// stands in for the requested media type.
func normalizeAny(item itunesItem) Result {
	return normalize(item, fallback(item.CollectionType, "", "unknown"))
}

func fallback(primary, secondary, last string) string {
	if primary != "" {
		return primary
	}
	if secondary != "" {
		return secondary
	}
	return last
}

func totalPages(count int) int {
	return (count + pageSize - 1) / pageSize
}
