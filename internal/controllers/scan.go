package controllers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/user/autoradarr/internal/config"
	"github.com/user/autoradarr/internal/metrics"
	"github.com/user/autoradarr/internal/models"
	"github.com/user/autoradarr/internal/pipeline"
	"github.com/user/autoradarr/internal/services/imdb"
	"github.com/user/autoradarr/internal/services/radarr"
	"github.com/user/autoradarr/internal/services/tmdb"
)

// detailWorkers bounds concurrent detail lookups against the rating provider
const detailWorkers = 4

// ScanController runs the discover-filter-submit pipeline
type ScanController struct {
	db           *models.Database
	imdbClient   *imdb.Client
	radarrClient *radarr.Client
	tmdbClient   *tmdb.Client
	cfg          *config.Config
	logger       *logrus.Logger

	mu        sync.Mutex
	lastScan  time.Time
	lastCount int
}

// NewScanController creates a new scan controller
func NewScanController(
	db *models.Database,
	imdbClient *imdb.Client,
	radarrClient *radarr.Client,
	tmdbClient *tmdb.Client,
	cfg *config.Config,
	logger *logrus.Logger,
) *ScanController {
	return &ScanController{
		db:           db,
		imdbClient:   imdbClient,
		radarrClient: radarrClient,
		tmdbClient:   tmdbClient,
		cfg:          cfg,
		logger:       logger,
	}
}

// Run executes one full scan and returns the number of films submitted to
// Radarr. Zero is a normal outcome; errors are reserved for store failures
// and the empty-folder-name invariant.
func (c *ScanController) Run(ctx context.Context) (int, error) {
	c.logger.WithField("started_at", time.Now().UTC()).Info("Starting scan")
	metrics.ScansTotal.Inc()

	candidates, err := c.imdbClient.PopularMovies(ctx)
	if err != nil {
		// No popular list means nothing to do this run
		c.logger.WithError(err).Warn("Popular list unavailable, scan yields nothing")
		c.finish(0)
		return 0, nil
	}
	c.logger.WithField("candidates", len(candidates)).Info("Popular list fetched")

	filtered := pipeline.FilterByRating(candidates, 0)

	filtered, err = c.filterSeen(filtered)
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return 0, err
	}

	filtered, err = c.filterInRadarr(ctx, filtered)
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return 0, err
	}

	filtered, err = c.filterByDetail(ctx, filtered)
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return 0, err
	}

	filtered, err = pipeline.AssignRootFolders(filtered, c.cfg.RootFolderOther, c.cfg.RootFolderAnimations)
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return 0, fmt.Errorf("failed to assign destination folders: %w", err)
	}

	count, err := c.submit(ctx, pipeline.ConvertToRadarr(filtered))
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return count, err
	}

	if count == 0 {
		c.logger.Info("No new films found")
	}
	c.finish(count)
	return count, nil
}

// LastScan reports when the last scan finished and how many films it
// submitted; the zero time means no scan has completed yet
func (c *ScanController) LastScan() (time.Time, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastScan, c.lastCount
}

func (c *ScanController) finish(count int) {
	c.mu.Lock()
	c.lastScan = time.Now().UTC()
	c.lastCount = count
	c.mu.Unlock()
}

// filterSeen drops candidates already recorded in the ledger
func (c *ScanController) filterSeen(candidates []models.Candidate) ([]models.Candidate, error) {
	seen := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		found, err := c.db.HasFilm(cand.IMDBID)
		if err != nil {
			return nil, fmt.Errorf("ledger lookup failed for %s: %w", cand.IMDBID, err)
		}
		seen[cand.IMDBID] = found
	}
	return pipeline.FilterSeen(candidates, seen), nil
}

// filterInRadarr drops candidates Radarr already has, recording them in the
// ledger. An inventory read failure must not block genuinely new titles, so
// the stage is skipped when the listing fails.
func (c *ScanController) filterInRadarr(ctx context.Context, candidates []models.Candidate) ([]models.Candidate, error) {
	movies, err := c.radarrClient.Movies(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Radarr inventory unavailable, skipping presence filter")
		return candidates, nil
	}

	kept, rejections := pipeline.FilterInRadarr(candidates, radarr.InventoryIDs(movies))
	if err := c.applyRejections(rejections); err != nil {
		return nil, err
	}
	return kept, nil
}

// filterByDetail fetches per-title genres and applies the genre policy.
// Lookups fan out through a bounded worker group; evaluation stays in input
// order so the stage contract is unchanged.
func (c *ScanController) filterByDetail(ctx context.Context, candidates []models.Candidate) ([]models.Candidate, error) {
	results := make([][]string, len(candidates))
	fetched := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailWorkers)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			genres, err := c.imdbClient.TitleGenres(gctx, cand.IMDBID)
			if err != nil {
				// Dropped for this scan only, retried on the next one
				c.logger.WithError(err).WithField("imdb_id", cand.IMDBID).
					Debug("Detail lookup failed, will retry next scan")
				return nil
			}
			results[i] = genres
			fetched[i] = true
			return nil
		})
	}
	// Workers swallow their errors, Wait cannot fail
	_ = g.Wait()

	genres := make(map[string][]string, len(candidates))
	for i, cand := range candidates {
		if fetched[i] {
			genres[cand.IMDBID] = results[i]
		}
	}

	kept, rejections := pipeline.FilterByDetail(candidates, genres)
	if err := c.applyRejections(rejections); err != nil {
		return nil, err
	}
	return kept, nil
}

// applyRejections writes one ledger entry per rejection so future scans skip
// these films without re-fetching anything
func (c *ScanController) applyRejections(rejections []pipeline.Rejection) error {
	for _, r := range rejections {
		film := &models.Film{
			IMDBID:        r.IMDBID,
			OriginalTitle: r.Title,
			Filtered:      r.Reason == pipeline.ReasonFiltered,
			InRadarr:      r.Reason == pipeline.ReasonInRadarr,
		}
		written, err := c.db.MarkSeen(film)
		if err != nil {
			return fmt.Errorf("failed to record rejection for %s: %w", r.IMDBID, err)
		}
		metrics.FilmsRejected.WithLabelValues(string(r.Reason)).Inc()
		c.logger.WithFields(logrus.Fields{
			"imdb_id":  r.IMDBID,
			"title":    r.Title,
			"reason":   string(r.Reason),
			"recorded": written,
		}).Debug("Candidate rejected")
	}
	return nil
}

// submit completes each film with its TMDB id and quality profile and posts
// it to Radarr. A failed submission is skipped silently; a successful one is
// recorded in the ledger and counted.
func (c *ScanController) submit(ctx context.Context, movies []radarr.NewMovie) (int, error) {
	count := 0
	for _, movie := range movies {
		tmdbID, err := c.tmdbClient.FindByIMDBID(ctx, movie.ImdbID)
		if err != nil {
			// Zero is a valid unresolved marker
			c.logger.WithError(err).WithField("imdb_id", movie.ImdbID).
				Debug("TMDB lookup failed, submitting unresolved")
			tmdbID = 0
		}

		movie.TmdbID = tmdbID
		movie.QualityProfileID = c.cfg.RadarrDefaultQuality
		movie.Path = movie.FolderName
		movie.Title = movie.OriginalTitle

		if err := c.radarrClient.AddMovie(ctx, movie); err != nil {
			c.logger.WithError(err).WithField("title", movie.OriginalTitle).
				Warn("Radarr rejected submission, skipping")
			continue
		}

		if _, err := c.db.MarkSeen(&models.Film{
			IMDBID:        movie.ImdbID,
			OriginalTitle: movie.OriginalTitle,
		}); err != nil {
			return count, fmt.Errorf("failed to record submission for %s: %w", movie.ImdbID, err)
		}

		metrics.FilmsSubmitted.Inc()
		c.logger.WithFields(logrus.Fields{
			"title":   movie.OriginalTitle,
			"imdb_id": movie.ImdbID,
			"tmdb_id": movie.TmdbID,
		}).Info("Film submitted to Radarr")
		count++
	}
	return count, nil
}
