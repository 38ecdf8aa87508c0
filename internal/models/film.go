package models

import "time"

// Film is the persistent ledger entry for a title this scanner has already
// dealt with. Records are append-only: one per IMDB id, never updated.
type Film struct {
	ID     uint64 `boltholdKey:"ID"`
	IMDBID string `boltholdIndex:"IMDBID"`

	OriginalTitle string

	// Why the film landed in the ledger. Neither flag set means it was
	// submitted to Radarr by a previous scan.
	Filtered bool // rejected by policy, skip on every future scan
	InRadarr bool // already present in Radarr's library

	Added time.Time
}

// Candidate is one film as reported by the rating provider's popular list.
// Candidates live only for the duration of a single scan; the numeric fields
// arrive as strings and are validated by the filter stages.
type Candidate struct {
	IMDBID      string `json:"id"`
	Title       string `json:"title"`
	FullTitle   string `json:"fullTitle"`
	Year        string `json:"year"`
	Rating      string `json:"imDbRating"`
	RatingCount string `json:"imDbRatingCount"`

	// Filled in by the detail stage
	Genres         []string `json:"-"`
	RootFolderPath string   `json:"-"`
	FolderName     string   `json:"-"`
}
