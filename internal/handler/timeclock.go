package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/protektor-crm/orderdesk/internal/middleware"
	"github.com/protektor-crm/orderdesk/internal/store"
)

// TimeclockStore defines the store methods needed by timeclock handlers.
// Satisfied by *store.Store; narrow interface for testability.
type TimeclockStore interface {
	StartWorkSession(ctx context.Context, userID uuid.UUID) (store.WorkSession, error)
	EndWorkSession(ctx context.Context, userID uuid.UUID) error
}

// TimeclockHandler handles work-session start/stop. Mutating order and client
// endpoints are gated on an open session.
type TimeclockHandler struct {
	store TimeclockStore
}

// NewTimeclockHandler creates a new TimeclockHandler.
func NewTimeclockHandler(store TimeclockStore) *TimeclockHandler {
	return &TimeclockHandler{store: store}
}

// RegisterRoutes registers timeclock endpoints on the given Chi router.
// Expected to be mounted behind authentication.
func (h *TimeclockHandler) RegisterRoutes(r chi.Router) {
	r.Post("/timeclock/start", h.Start)
	r.Post("/timeclock/stop", h.Stop)
}

type startSessionResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// Start opens a work session for the authenticated operator. Starting while
// one is open is idempotent.
func (h *TimeclockHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	ws, err := h.store.StartWorkSession(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("ERROR: start work session: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, startSessionResponse{Status: "success", StartedAt: ws.StartedAt})
}

// Stop closes the operator's open work session.
func (h *TimeclockHandler) Stop(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	if err := h.store.EndWorkSession(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status":  "error",
				"message": "no open work session",
			})
			return
		}
		log.Printf("ERROR: end work session: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
