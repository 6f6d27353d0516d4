package api

import (
	"net/http"
	"time"

	"github.com/mazid79/MemoraTodoApp/config"
	"github.com/mazid79/MemoraTodoApp/logger"
)

var startTime = time.Now()

// HealthResponse provides detailed health information
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Storage   string `json:"storage"`
	Version   string `json:"version,omitempty"`
}

// NewHealthHandler returns a health check handler
func NewHealthHandler(cfg *config.Config, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
			Storage:   cfg.Storage,
			Version:   cfg.Version,
		}

		respondJSON(w, http.StatusOK, response, lg)
	}
}
