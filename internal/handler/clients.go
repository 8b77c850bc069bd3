package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/protektor-crm/orderdesk/internal/enum"
	"github.com/protektor-crm/orderdesk/internal/store"
)

// ClientStore defines the store methods needed by client handlers.
// Satisfied by *store.Store; narrow interface for testability.
type ClientStore interface {
	GetClient(ctx context.Context, id uuid.UUID) (store.Client, error)
	FindClientByPhone(ctx context.Context, phone string) (store.Client, error)
	CreateClient(ctx context.Context, c store.Client) (store.Client, error)
}

// ClientHandler handles client lookup and creation.
type ClientHandler struct {
	store ClientStore
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(store ClientStore) *ClientHandler {
	return &ClientHandler{store: store}
}

// --- Request / Response types ---

type createClientRequest struct {
	ClientType     string `json:"client_type"`
	Phone          string `json:"phone"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Address        string `json:"address"`
	AddressComment string `json:"address_comment"`
}

// clientLookupResponse is flat on purpose: the form reads the fields straight
// off the top level next to the status marker.
type clientLookupResponse struct {
	Status         string    `json:"status"`
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	City           string    `json:"city"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	AddressComment string    `json:"address_comment"`
}

func toLookupResponse(c store.Client) clientLookupResponse {
	return clientLookupResponse{
		Status:         "success",
		ID:             c.ID,
		Name:           c.Name,
		City:           c.City,
		Phone:          c.Phone,
		Address:        c.Address,
		AddressComment: c.AddressComment,
	}
}

// --- Handlers ---

// Lookup resolves a client by id or by phone. A miss is 404 with
// {"status":"not_found"}; the form treats that as a silent non-match.
func (h *ClientHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if idStr := q.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid client id"})
			return
		}
		client, err := h.store.GetClient(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"status": "not_found"})
				return
			}
			log.Printf("ERROR: get client: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, toLookupResponse(client))
		return
	}

	if phone := q.Get("phone"); phone != "" {
		client, err := h.store.FindClientByPhone(r.Context(), phone)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"status": "not_found"})
				return
			}
			log.Printf("ERROR: find client by phone: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, toLookupResponse(client))
		return
	}

	writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "id or phone is required"})
}

// Create adds a new client.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid request body"})
		return
	}

	if req.Name == "" || req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "name and phone are required"})
		return
	}

	clientType := req.ClientType
	if clientType == "" {
		clientType = enum.ClientIndividual
	}

	client, err := h.store.CreateClient(r.Context(), store.Client{
		ClientType:     clientType,
		Name:           req.Name,
		City:           req.City,
		Phone:          req.Phone,
		Address:        req.Address,
		AddressComment: req.AddressComment,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePhone) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "client with this phone already exists"})
			return
		}
		log.Printf("ERROR: create client: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"client_id": client.ID.String(),
	})
}
