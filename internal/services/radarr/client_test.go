package radarr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     "testkey",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logrus.New(),
	}
}

func TestMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/movie" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("apiKey") != "testkey" {
			t.Errorf("missing apiKey parameter")
		}
		w.Write([]byte(`[
			{"imdbId":"tt0133093","title":"The Matrix"},
			{"title":"No IMDB Id Here"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	movies, err := client.Movies(context.Background())
	if err != nil {
		t.Fatalf("Movies failed: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].ImdbID != "tt0133093" {
		t.Errorf("unexpected first movie: %+v", movies[0])
	}
}

func TestMoviesNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.Movies(context.Background()); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestAddMovie(t *testing.T) {
	var received NewMovie
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	movie := NewMovie{
		Title:            "Some Film",
		OriginalTitle:    "Some Film",
		ImdbID:           "tt0123",
		TmdbID:           603,
		Year:             2019,
		FolderName:       "/movies/Some Film (2019)",
		RootFolderPath:   "/movies",
		Path:             "/movies/Some Film (2019)",
		QualityProfileID: 4,
	}
	if err := client.AddMovie(context.Background(), movie); err != nil {
		t.Fatalf("AddMovie failed: %v", err)
	}
	if received.ImdbID != "tt0123" || received.QualityProfileID != 4 {
		t.Errorf("server received %+v", received)
	}
}

func TestAddMovieNonCreated(t *testing.T) {
	// 200 is not success for the add endpoint, only 201 is
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if err := client.AddMovie(context.Background(), NewMovie{ImdbID: "tt1"}); err == nil {
		t.Error("expected error for non-201 response")
	}
}

func TestInventoryIDs(t *testing.T) {
	movies := []Movie{
		{ImdbID: "tt1", Title: "A"},
		{Title: "B"}, // no id, maps to the sentinel
		{ImdbID: "tt3", Title: "C"},
	}

	ids := InventoryIDs(movies)
	if !ids["tt1"] || !ids["tt3"] {
		t.Errorf("expected real ids present, got %v", ids)
	}
	if !ids["0"] {
		t.Errorf("expected sentinel for missing id, got %v", ids)
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 entries, got %d", len(ids))
	}
}
