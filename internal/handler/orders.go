package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/protektor-crm/orderdesk/internal/enum"
	"github.com/protektor-crm/orderdesk/internal/middleware"
	"github.com/protektor-crm/orderdesk/internal/status"
	"github.com/protektor-crm/orderdesk/internal/store"
	"github.com/protektor-crm/orderdesk/internal/ws"
	"github.com/shopspring/decimal"
)

// OrderStore defines the store methods needed by order handlers.
// Satisfied by *store.Store; narrow interface for testability.
type OrderStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (store.Product, error)
	GetClient(ctx context.Context, id uuid.UUID) (store.Client, error)
	CreateOrder(ctx context.Context, o store.Order) (store.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (store.Order, error)
	UpdateOrder(ctx context.Context, o store.Order) (store.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (store.Order, error)
}

// Notifier publishes order events to the live feed.
// Satisfied by *ws.Hub; narrow interface for testability.
type Notifier interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order creation, editing and status updates.
type OrderHandler struct {
	store    OrderStore
	notifier Notifier
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, notifier Notifier) *OrderHandler {
	return &OrderHandler{store: store, notifier: notifier}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted behind authentication and the work-session gate.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/add/", h.Create)
	r.Post("/{id}/edit/", h.Edit)
	r.Post("/{id}/status/", h.UpdateStatus)
}

// promoRate is the storewide promo discount applied server-side; the form
// only previews it.
var promoRate = decimal.RequireFromString("0.9")

// --- Request / Response types ---

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	City      string `json:"city"`
}

type orderRequest struct {
	ClientID             string             `json:"client_id"`
	Status               string             `json:"status"`
	Source               string             `json:"source"`
	PaymentMethod        string             `json:"payment_method"`
	DeliveryMethod       string             `json:"delivery_method"`
	PriceLevel           string             `json:"price_level"`
	IsPromo              bool               `json:"is_promo"`
	SaleNumber           string             `json:"sale_number"`
	Notes                string             `json:"notes"`
	ClientPhone          string             `json:"client_phone"`
	ClientName           string             `json:"client_name"`
	ClientCity           string             `json:"client_city"`
	ClientAddressComment string             `json:"client_address_comment"`
	Items                []orderItemRequest `json:"items"`
}

type orderSubmitResponse struct {
	Status      string `json:"status"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	RedirectURL string `json:"redirect_url"`
}

type orderEventPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Total       string `json:"total"`
}

// resolvePrice picks the unit price for the order's price level, falling back
// to the base price when the product has no such tier.
func resolvePrice(p store.Product, level string) decimal.Decimal {
	switch level {
	case enum.PriceLevelWholesale:
		if p.WholesalePrice != nil {
			return *p.WholesalePrice
		}
	case enum.PriceLevelPromotional:
		if p.PromotionalPrice != nil {
			return *p.PromotionalPrice
		}
	case enum.PriceLevelRetail:
		if p.RetailPrice != nil {
			return *p.RetailPrice
		}
	}
	return p.Price
}

func errorResponse(w http.ResponseWriter, httpStatus int, message string) {
	writeJSON(w, httpStatus, map[string]string{"status": "error", "message": message})
}

// buildOrder validates the request against the store and prices the lines.
// Prices are never taken from the client: each line is re-priced from the
// product's tier for the order's price level.
func (h *OrderHandler) buildOrder(ctx context.Context, req orderRequest) (store.Order, string, error) {
	if req.ClientID == "" {
		return store.Order{}, "client is required", errors.New("validation")
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return store.Order{}, "invalid client id", errors.New("validation")
	}
	if _, err := h.store.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Order{}, "client not found", errors.New("validation")
		}
		return store.Order{}, "", err
	}

	if len(req.Items) == 0 {
		return store.Order{}, "order must contain at least one item", errors.New("validation")
	}

	wireStatus := req.Status
	if wireStatus == "" {
		wireStatus = enum.StatusNew
	}
	// Normalize legacy aliases before storing.
	st, err := status.FromWire(wireStatus)
	if err != nil {
		return store.Order{}, "unknown status", errors.New("validation")
	}
	wireStatus, err = st.Wire()
	if err != nil {
		return store.Order{}, "cancellation requires a reason", errors.New("validation")
	}

	priceLevel := req.PriceLevel
	if priceLevel == "" {
		priceLevel = enum.PriceLevelRetail
	}

	items := make([]store.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return store.Order{}, "item quantity must be at least 1", errors.New("validation")
		}
		if it.City == "" {
			return store.Order{}, "item city is required", errors.New("validation")
		}
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return store.Order{}, "invalid product id", errors.New("validation")
		}
		product, err := h.store.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Order{}, "product " + it.ProductID + " not found", errors.New("validation")
			}
			return store.Order{}, "", err
		}

		price := resolvePrice(product, priceLevel)
		items = append(items, store.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Code:      product.Code,
			Price:     price,
			Quantity:  it.Quantity,
			City:      it.City,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if req.IsPromo {
		total = total.Mul(promoRate).Round(2)
	}

	return store.Order{
		ClientID:             clientID,
		Status:               wireStatus,
		Source:               req.Source,
		PaymentMethod:        req.PaymentMethod,
		DeliveryMethod:       req.DeliveryMethod,
		PriceLevel:           priceLevel,
		IsPromo:              req.IsPromo,
		Notes:                req.Notes,
		ClientPhone:          req.ClientPhone,
		ClientName:           req.ClientName,
		ClientCity:           req.ClientCity,
		ClientAddressComment: req.ClientAddressComment,
		Items:                items,
		Total:                total,
	}, "", nil
}

func (h *OrderHandler) notify(eventType string, o store.Order) {
	payload, err := json.Marshal(orderEventPayload{
		OrderID:     o.ID.String(),
		OrderNumber: o.Number,
		Status:      o.Status,
		Total:       o.Total.String(),
	})
	if err != nil {
		return
	}
	h.notifier.Broadcast(ws.Event{Type: eventType, Payload: payload})
}

// --- Handlers ---

// Create handles POST /orders/add/.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, msg, err := h.buildOrder(r.Context(), req)
	if err != nil {
		if msg != "" {
			errorResponse(w, http.StatusBadRequest, msg)
			return
		}
		log.Printf("ERROR: build order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		order.CreatedBy = claims.UserID
	}

	created, err := h.store.CreateOrder(r.Context(), order)
	if err != nil {
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify(ws.EventOrderCreated, created)

	writeJSON(w, http.StatusOK, orderSubmitResponse{
		Status:      "success",
		OrderID:     created.ID.String(),
		OrderNumber: created.Number,
		RedirectURL: "/orders/",
	})
}

// Edit handles POST /orders/{id}/edit/. The whole order is re-submitted: the
// request replaces the stored items and fields after the same validation and
// re-pricing as creation.
func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid order id")
		return
	}

	existing, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, msg, err := h.buildOrder(r.Context(), req)
	if err != nil {
		if msg != "" {
			errorResponse(w, http.StatusBadRequest, msg)
			return
		}
		log.Printf("ERROR: build order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	order.ID = existing.ID
	updated, err := h.store.UpdateOrder(r.Context(), order)
	if err != nil {
		log.Printf("ERROR: update order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify(ws.EventOrderUpdated, updated)

	writeJSON(w, http.StatusOK, orderSubmitResponse{
		Status:      "success",
		OrderID:     updated.ID.String(),
		OrderNumber: updated.Number,
		RedirectURL: "/orders/",
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /orders/{id}/status/. Any value in the flat wire
// domain is accepted; there is no transition matrix.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := status.FromWire(req.Status)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "unknown status")
		return
	}
	wireStatus, err := st.Wire()
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "cancellation requires a reason")
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), orderID, wireStatus)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify(ws.EventOrderUpdated, updated)

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// --- Edit-mode snapshot ---

type snapshotItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	City      string          `json:"city"`
}

type snapshotOrderResponse struct {
	ClientID       string                 `json:"client_id"`
	Status         string                 `json:"status"`
	Source         string                 `json:"source"`
	PaymentMethod  string                 `json:"payment_method"`
	DeliveryMethod string                 `json:"delivery_method"`
	IsPromo        bool                   `json:"is_promo"`
	Notes          string                 `json:"notes"`
	Items          []snapshotItemResponse `json:"items"`
}

type clientInitialResponse struct {
	Phone          string `json:"phone"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Address        string `json:"address"`
	AddressComment string `json:"address_comment"`
}

type snapshotResponse struct {
	Order         snapshotOrderResponse `json:"order"`
	ClientInitial clientInitialResponse `json:"client_initial"`
}

// Snapshot handles GET /orders/{id}/ and returns the state the edit wizard
// hydrates from: the order with its lines plus the client's contact fields.
func (h *OrderHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items := make([]snapshotItemResponse, len(order.Items))
	for i, it := range order.Items {
		items[i] = snapshotItemResponse{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Code:      it.Code,
			Price:     it.Price,
			Quantity:  it.Quantity,
			City:      it.City,
		}
	}

	initial := clientInitialResponse{
		Phone: order.ClientPhone,
		Name:  order.ClientName,
		City:  order.ClientCity,
	}
	if client, err := h.store.GetClient(r.Context(), order.ClientID); err == nil {
		initial.Phone = client.Phone
		initial.Name = client.Name
		initial.City = client.City
		initial.Address = client.Address
		initial.AddressComment = client.AddressComment
	}

	writeJSON(w, http.StatusOK, snapshotResponse{
		Order: snapshotOrderResponse{
			ClientID:       order.ClientID.String(),
			Status:         order.Status,
			Source:         order.Source,
			PaymentMethod:  order.PaymentMethod,
			DeliveryMethod: order.DeliveryMethod,
			IsPromo:        order.IsPromo,
			Notes:          order.Notes,
			Items:          items,
		},
		ClientInitial: initial,
	})
}
