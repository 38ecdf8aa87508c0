package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal counts scans started
	ScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoradarr_scans_total",
		Help: "Number of scans started.",
	})

	// ScanErrorsTotal counts scans aborted by an error
	ScanErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoradarr_scan_errors_total",
		Help: "Number of scans that aborted with an error.",
	})

	// FilmsSubmitted counts films accepted by Radarr
	FilmsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoradarr_films_submitted_total",
		Help: "Number of films submitted to Radarr.",
	})

	// FilmsRejected counts pipeline rejections by reason
	FilmsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoradarr_films_rejected_total",
		Help: "Number of candidates rejected by the filter pipeline.",
	}, []string{"reason"})
)
