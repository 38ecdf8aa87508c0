package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user/autoradarr/internal/controllers"
	"github.com/user/autoradarr/internal/models"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db       *models.Database
	scanCtrl *controllers.ScanController
	logger   *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, scanCtrl *controllers.ScanController, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:       db,
		scanCtrl: scanCtrl,
		logger:   logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Ledger        models.LedgerCounts `json:"ledger"`
	LastScan      *time.Time          `json:"last_scan,omitempty"`
	LastScanCount int                 `json:"last_scan_count"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts, err := h.db.CountFilms()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count ledger entries")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{Ledger: counts}

	lastScan, lastCount := h.scanCtrl.LastScan()
	if !lastScan.IsZero() {
		response.LastScan = &lastScan
		response.LastScanCount = lastCount
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
