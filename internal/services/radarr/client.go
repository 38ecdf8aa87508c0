package radarr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user/autoradarr/internal/config"
)

// Movie is one entry of Radarr's current library inventory
type Movie struct {
	ImdbID string `json:"imdbId"`
	Title  string `json:"title"`
}

// NewMovie is the payload for adding a film to Radarr
type NewMovie struct {
	Title            string `json:"title"`
	OriginalTitle    string `json:"originalTitle"`
	ImdbID           string `json:"imdbId"`
	TmdbID           int    `json:"tmdbId"`
	Year             int    `json:"year"`
	FolderName       string `json:"folderName"`
	RootFolderPath   string `json:"rootFolderPath"`
	Path             string `json:"path"`
	QualityProfileID int    `json:"qualityProfileId"`
}

// Client handles communication with the Radarr v3 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Radarr client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.RadarrURL == "" {
		return nil, fmt.Errorf("radarr URL is required")
	}
	if cfg.RadarrAPIKey == "" {
		return nil, fmt.Errorf("radarr API key is required")
	}

	return &Client{
		baseURL:    cfg.RadarrURL,
		apiKey:     cfg.RadarrAPIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// Movies fetches the current library inventory. Success is exactly 200.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.movieURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("radarr api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("radarr api returned status %d", resp.StatusCode)
	}

	var movies []Movie
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		return nil, fmt.Errorf("failed to decode radarr response: %w", err)
	}

	return movies, nil
}

// AddMovie submits a new film for acquisition. Success is exactly 201.
func (c *Client) AddMovie(ctx context.Context, movie NewMovie) error {
	body, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("failed to marshal movie: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.movieURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("radarr api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("radarr api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (c *Client) movieURL() string {
	return c.baseURL + "/api/v3/movie?apiKey=" + c.apiKey
}

// InventoryIDs builds the IMDB id membership set from an inventory listing.
// Entries without an imdbId map to the "0" sentinel, which never matches a
// real candidate.
func InventoryIDs(movies []Movie) map[string]bool {
	ids := make(map[string]bool, len(movies))
	for _, m := range movies {
		id := m.ImdbID
		if id == "" {
			id = "0"
		}
		ids[id] = true
	}
	return ids
}
