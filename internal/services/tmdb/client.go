package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user/autoradarr/internal/config"
)

// Client handles communication with the TMDB API, used only to resolve IMDB
// ids into Radarr's native TMDB id namespace
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new TMDB client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB API key is required")
	}

	return &Client{
		baseURL:    cfg.TMDBURL,
		apiKey:     cfg.TMDBAPIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// FindByIMDBID resolves an IMDB id to a TMDB id. Returns 0 when the id has
// no match; 0 is a valid "unresolved" marker, not an error.
func (c *Client) FindByIMDBID(ctx context.Context, imdbID string) (int, error) {
	url := fmt.Sprintf("%s/find/%s?api_key=%s&language=en-US&external_source=imdb_id",
		c.baseURL, imdbID, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("tmdb api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tmdb api returned status %d", resp.StatusCode)
	}

	var payload struct {
		MovieResults []struct {
			ID int `json:"id"`
		} `json:"movie_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode tmdb response: %w", err)
	}

	if len(payload.MovieResults) == 0 {
		return 0, nil
	}
	return payload.MovieResults[0].ID, nil
}
