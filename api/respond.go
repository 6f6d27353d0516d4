package api

import (
	"encoding/json"
	"net/http"

	"github.com/mazid79/MemoraTodoApp/errors"
	"github.com/mazid79/MemoraTodoApp/logger"
)

// errorResponse defines the JSON structure for error responses
type errorResponse struct {
	Error   string         `json:"error"`
	Type    string         `json:"type,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// respondJSON writes a JSON body with the given status code.
func respondJSON(w http.ResponseWriter, status int, body any, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		lg.Error("failed to encode response", map[string]any{
			"error": err.Error(),
		})
	}
}

// respondWithError sends a structured error response
func respondWithError(w http.ResponseWriter, storeErr *errors.StoreError, lg *logger.Logger) {
	lg.Error("HTTP error response", map[string]any{
		"error_type":    string(storeErr.Type),
		"error_message": storeErr.Message,
		"status_code":   storeErr.Code,
		"error_details": storeErr.Details,
	})

	respondJSON(w, storeErr.Code, errorResponse{
		Error:   storeErr.Message,
		Type:    string(storeErr.Type),
		Details: storeErr.Details,
	}, lg)
}
