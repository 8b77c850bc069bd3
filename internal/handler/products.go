package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/protektor-crm/orderdesk/internal/store"
	"github.com/shopspring/decimal"
)

// ProductStore defines the store methods needed by product handlers.
// Satisfied by *store.Store; narrow interface for testability.
type ProductStore interface {
	SearchProducts(ctx context.Context, arg store.SearchProductsParams) ([]store.Product, error)
}

// ProductHandler handles the product-search endpoint.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

const searchLimit = 50

type productResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Code             string           `json:"code"`
	Price            decimal.Decimal  `json:"price"`
	RetailPrice      *decimal.Decimal `json:"retail_price"`
	PromotionalPrice *decimal.Decimal `json:"promotional_price"`
	WholesalePrice   *decimal.Decimal `json:"wholesale_price"`
	Season           string           `json:"season,omitempty"`
	SeasonTags       []string         `json:"season_tags,omitempty"`
	BranchCity       string           `json:"branch_city"`
	AssortmentGroup  string           `json:"assortment_group"`
	TireType         string           `json:"tire_type"`
}

type productSearchResponse struct {
	Products []productResponse `json:"products"`
}

func toProductResponse(p store.Product) productResponse {
	return productResponse{
		ID:               p.ID,
		Name:             p.Name,
		Code:             p.Code,
		Price:            p.Price,
		RetailPrice:      p.RetailPrice,
		PromotionalPrice: p.PromotionalPrice,
		WholesalePrice:   p.WholesalePrice,
		Season:           p.Season,
		SeasonTags:       p.SeasonTags,
		BranchCity:       p.BranchCity,
		AssortmentGroup:  p.AssortmentGroup,
		TireType:         p.TireType,
	}
}

// Search answers GET product-search queries. Season filtering is the
// caller's job; the server matches query, size and city only. An empty query
// with no size yields an empty result, not a full catalog dump.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	size := q.Get("size")

	if query == "" && size == "" {
		writeJSON(w, http.StatusOK, productSearchResponse{Products: []productResponse{}})
		return
	}

	products, err := h.store.SearchProducts(r.Context(), store.SearchProductsParams{
		Query:       query,
		Size:        size,
		City:        q.Get("city"),
		SearchField: q.Get("search_field"),
		Limit:       searchLimit,
	})
	if err != nil {
		log.Printf("ERROR: product search: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, productSearchResponse{Products: resp})
}
