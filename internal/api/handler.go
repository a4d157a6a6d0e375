// Package api provides HTTP handlers for the Matter API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashureev/matter/internal/identity"
	"github.com/ashureev/matter/internal/journal"
	"github.com/ashureev/matter/internal/progress"
)

const maxBodyBytes = 1 << 20

// Handler provides common handler utilities.
type Handler struct {
	journal  *journal.Service
	location *time.Location
}

// NewHandler creates a new Handler. loc is used for clients that send no
// time zone.
func NewHandler(svc *journal.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{journal: svc, location: loc}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Rejected writes the response for an operation the engine declined.
func Rejected(w http.ResponseWriter, reason progress.Reason) {
	JSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error":  reason.Message(),
		"reason": string(reason),
	})
}

// ServiceError maps a journal error to a status code.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	userID := identity.UserIDFromContext(r.Context())
	switch {
	case errors.Is(err, journal.ErrCompletionInProgress):
		slog.Warn("Completion already in progress", "user_id", userID)
		Error(w, http.StatusConflict, "completion_in_progress")
	case errors.Is(err, journal.ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, journal.ErrStorageUnavailable):
		Error(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		slog.Error("Request failed", "error", err, "user_id", userID, "path", r.URL.Path)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) loc(r *http.Request) *time.Location {
	return identity.LocationFromContext(r.Context(), h.location)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}
