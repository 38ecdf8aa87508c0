package pipeline

import (
	"strconv"
	"time"

	"github.com/user/autoradarr/internal/models"
	"github.com/user/autoradarr/internal/utils"
)

const (
	minRating      = 6.5
	minRatingCount = 5000
)

var (
	acceptedGenres = []string{"Action", "Adventure", "Sci-Fi", "Animation", "Comedy"}
	badGenres      = []string{"Drama"}
)

// Reason explains why a candidate left the pipeline
type Reason string

const (
	// ReasonFiltered marks a permanent policy rejection
	ReasonFiltered Reason = "filtered"
	// ReasonInRadarr marks a film already present in Radarr's library
	ReasonInRadarr Reason = "in_radarr"
)

// Rejection is emitted by a filter stage for every candidate it removes.
// Stages never touch the ledger themselves; the caller records rejections so
// the policy stays testable without a store.
type Rejection struct {
	IMDBID string
	Title  string
	Reason Reason
}

// FilterByRating keeps candidates that clear the rating, vote-count and
// recency thresholds. A missing, empty or unparseable rating or vote count
// rejects the candidate; an unparseable year skips it entirely. Order is
// preserved. referenceYear 0 means the current UTC year.
func FilterByRating(candidates []models.Candidate, referenceYear int) []models.Candidate {
	year := referenceYear
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	var kept []models.Candidate
	for _, c := range candidates {
		remove := false

		rating, err := strconv.ParseFloat(c.Rating, 64)
		if c.Rating == "" || err != nil || rating < minRating {
			remove = true
		}

		votes, err := strconv.Atoi(c.RatingCount)
		if c.RatingCount == "" || err != nil || votes < minRatingCount {
			remove = true
		}

		if c.Year == "" {
			remove = true
		} else {
			releaseYear, err := strconv.Atoi(c.Year)
			if err != nil {
				// Year format unreadable, drop the film
				continue
			}
			if releaseYear < year-1 {
				remove = true
			}
		}

		if !remove {
			kept = append(kept, c)
		}
	}

	return kept
}

// FilterSeen removes candidates whose IMDB id is already in the seen set.
// This is the dedup gate across scans; no rejections are emitted because the
// ledger already holds these films.
func FilterSeen(candidates []models.Candidate, seen map[string]bool) []models.Candidate {
	var kept []models.Candidate
	for _, c := range candidates {
		if seen[c.IMDBID] {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// FilterInRadarr removes candidates already present in Radarr's inventory,
// emitting a rejection for each so the next scan skips them without asking
// Radarr again.
func FilterInRadarr(candidates []models.Candidate, inventory map[string]bool) ([]models.Candidate, []Rejection) {
	var kept []models.Candidate
	var rejections []Rejection
	for _, c := range candidates {
		if inventory[c.IMDBID] {
			rejections = append(rejections, Rejection{
				IMDBID: c.IMDBID,
				Title:  c.Title,
				Reason: ReasonInRadarr,
			})
			continue
		}
		kept = append(kept, c)
	}
	return kept, rejections
}

// FilterByDetail applies the genre policy. genres maps IMDB id to the genre
// list fetched from the provider; candidates absent from the map had a failed
// detail lookup and are dropped without a rejection so the next scan retries
// them. A film is accepted when an accepted genre is present, unless a bad
// genre is present and the rating is below 7; that second check runs
// unconditionally, so Action+Drama at 6.9 is rejected. Default is reject.
func FilterByDetail(candidates []models.Candidate, genres map[string][]string) ([]models.Candidate, []Rejection) {
	var kept []models.Candidate
	var rejections []Rejection

	for _, c := range candidates {
		genreList, ok := genres[c.IMDBID]
		if !ok {
			continue
		}

		// Validated by the rating stage
		rating, _ := strconv.ParseFloat(c.Rating, 64)

		remove := true
		if intersects(acceptedGenres, genreList) {
			remove = false
		}
		if intersects(badGenres, genreList) && rating < 7 {
			remove = true
		}

		if remove {
			rejections = append(rejections, Rejection{
				IMDBID: c.IMDBID,
				Title:  c.Title,
				Reason: ReasonFiltered,
			})
			continue
		}

		c.Genres = genreList
		kept = append(kept, c)
	}

	return kept, rejections
}

// AssignRootFolders derives each surviving candidate's destination from its
// full title: the animations root when the film has the Animation genre, the
// default root otherwise. A title that normalizes to nothing aborts the scan,
// since submitting it would corrupt the library layout.
func AssignRootFolders(candidates []models.Candidate, rootOther, rootAnimations string) ([]models.Candidate, error) {
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		folder, err := utils.NormalizeFilepath(c.FullTitle)
		if err != nil {
			return nil, err
		}

		root := rootOther
		if intersects([]string{"Animation"}, c.Genres) {
			root = rootAnimations
		}
		c.RootFolderPath = root
		c.FolderName = root + "/" + folder
		out = append(out, c)
	}
	return out, nil
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
