package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"crossmarket/internal/application/usecases"
	"crossmarket/internal/catalog"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps selection errors to 400 and everything else, which can
// only come from the store, to 502.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory),
		errors.Is(err, catalog.ErrUnknownQuery),
		errors.Is(err, usecases.ErrUnknownAsset),
		errors.Is(err, usecases.ErrNoAssets):
		status = http.StatusBadRequest
	default:
		logger.Error("Failed to process request", "error", err)
	}

	writeJSON(w, status, map[string]interface{}{
		"error": err.Error(),
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error": msg,
	})
}
