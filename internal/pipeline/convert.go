package pipeline

import (
	"strconv"

	"github.com/user/autoradarr/internal/models"
	"github.com/user/autoradarr/internal/services/radarr"
)

// ConvertToRadarr projects surviving candidates into Radarr's submission
// shape. Pure field renames plus the year coercion; the rating stage already
// guaranteed a numeric year. The service-specific fields (tmdbId, path,
// title, quality profile) are completed at submission time.
func ConvertToRadarr(candidates []models.Candidate) []radarr.NewMovie {
	movies := make([]radarr.NewMovie, 0, len(candidates))
	for _, c := range candidates {
		year, _ := strconv.Atoi(c.Year)
		movies = append(movies, radarr.NewMovie{
			OriginalTitle:  c.Title,
			ImdbID:         c.IMDBID,
			Year:           year,
			FolderName:     c.FolderName,
			RootFolderPath: c.RootFolderPath,
		})
	}
	return movies
}
