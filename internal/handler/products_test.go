package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/protektor-crm/orderdesk/internal/handler"
	"github.com/protektor-crm/orderdesk/internal/store"
	"github.com/shopspring/decimal"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

type productSearchBody struct {
	Products []struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	} `json:"products"`
}

func TestProductSearchEmptyQuery(t *testing.T) {
	st := store.New()
	st.AddProduct(store.Product{ID: uuid.New(), Name: "Cordiant 205/55", Price: mustDec(t, "100")})
	h := handler.NewProductHandler(st)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/orders/product-search/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body productSearchBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Products == nil {
		t.Fatal(`expected "products" to be an empty array, not null`)
	}
	if len(body.Products) != 0 {
		t.Errorf("blank query must not dump the catalog, got %d products", len(body.Products))
	}
}

func TestProductSearchMatches(t *testing.T) {
	st := store.New()
	st.AddProduct(store.Product{ID: uuid.New(), Name: "Cordiant Snow Cross 205/55", Code: "CRD-205", Price: mustDec(t, "32000")})
	st.AddProduct(store.Product{ID: uuid.New(), Name: "Nokian Hakka 185/65", Code: "NOK-185", Price: mustDec(t, "27500")})
	h := handler.NewProductHandler(st)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/orders/product-search/?q=cordiant", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body productSearchBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Products) != 1 {
		t.Fatalf("expected 1 match, got %d", len(body.Products))
	}
	if body.Products[0].Name != "Cordiant Snow Cross 205/55" {
		t.Errorf("wrong product: %s", body.Products[0].Name)
	}
	if !body.Products[0].Price.Equal(mustDec(t, "32000")) {
		t.Errorf("price mangled: %s", body.Products[0].Price)
	}
}

func TestProductSearchNameScoped(t *testing.T) {
	st := store.New()
	st.AddProduct(store.Product{ID: uuid.New(), Name: "Nokian Hakka", Code: "CRD-999", Price: mustDec(t, "1")})
	h := handler.NewProductHandler(st)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/orders/product-search/?q=crd&search_field=name", nil))

	var body productSearchBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Products) != 0 {
		t.Errorf("name-scoped search must not match codes, got %d", len(body.Products))
	}
}
