package tmdb

import (
	"context"
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

func TestFindByIMDBID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/tt0133093" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("external_source") != "imdb_id" {
			t.Errorf("missing external_source parameter")
		}
		if query.Get("api_key") != "testkey" {
			t.Errorf("missing api_key parameter")
		}
		w.Write([]byte(`{"movie_results":[{"id":603},{"id":604}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	id, err := client.FindByIMDBID(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("FindByIMDBID failed: %v", err)
	}
	if id != 603 {
		t.Errorf("expected first match 603, got %d", id)
	}
}

func TestFindByIMDBIDNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"movie_results":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	id, err := client.FindByIMDBID(context.Background(), "tt0000001")
	if err != nil {
		t.Fatalf("FindByIMDBID failed: %v", err)
	}
	if id != 0 {
		t.Errorf("expected 0 for no match, got %d", id)
	}
}

func TestFindByIMDBIDNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.FindByIMDBID(context.Background(), "tt1"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
