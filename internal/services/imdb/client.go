package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/user/autoradarr/internal/config"
	"github.com/user/autoradarr/internal/models"
)

// Client handles communication with the imdb-api.com rating provider
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	detailCache *cache.Cache
	logger      *logrus.Logger
}

// NewClient creates a new rating provider client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.IMDBAPIKey == "" {
		return nil, fmt.Errorf("IMDB API key is required")
	}

	return &Client{
		baseURL:    cfg.IMDBURL,
		apiKey:     cfg.IMDBAPIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		// Title details change rarely; memoize them well under the daily
		// scan cadence so every scheduled scan still re-fetches
		detailCache: cache.New(1*time.Hour, 2*time.Hour),
		logger:      logger,
	}, nil
}

// PopularMovies fetches the provider's most-popular list
func (c *Client) PopularMovies(ctx context.Context) ([]models.Candidate, error) {
	var payload struct {
		Items        []models.Candidate `json:"items"`
		ErrorMessage string             `json:"errorMessage"`
	}

	url := c.baseURL + "/MostPopularMovies/" + c.apiKey
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(payload.Items)).Debug("Popular list fetched")
	return payload.Items, nil
}

// TitleGenres fetches the genre list for one title. The provider reports
// genres as a single comma-separated string; an empty string means none.
func (c *Client) TitleGenres(ctx context.Context, imdbID string) ([]string, error) {
	if cached, found := c.detailCache.Get(imdbID); found {
		return cached.([]string), nil
	}

	var payload struct {
		Genres string `json:"genres"`
	}

	url := c.baseURL + "/Title/" + c.apiKey + "/" + imdbID
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	var genres []string
	if payload.Genres != "" {
		genres = strings.Split(payload.Genres, ", ")
	}

	c.detailCache.Set(imdbID, genres, cache.DefaultExpiration)
	return genres, nil
}

// get performs a GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("imdb api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("imdb api returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode imdb response: %w", err)
	}

	return nil
}
