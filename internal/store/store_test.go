package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+7 (701) 123-45-67", "77011234567"},
		{"87011234567", "77011234567"},
		{"7011234567", "7011234567"},
		{"8 701 123 45 67", "77011234567"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindClientByPhoneSuffixMatch(t *testing.T) {
	s := New()
	ctx := context.Background()
	created, err := s.CreateClient(ctx, Client{Name: "Ivanov", Phone: "+7 (701) 123-45-67"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	// Same number in every format the operators actually type.
	for _, phone := range []string{"87011234567", "+77011234567", "701 123 45 67"} {
		got, err := s.FindClientByPhone(ctx, phone)
		if err != nil {
			t.Errorf("phone %q: %v", phone, err)
			continue
		}
		if got.ID != created.ID {
			t.Errorf("phone %q matched wrong client", phone)
		}
	}
}

func TestFindClientByPhoneTooShort(t *testing.T) {
	s := New()
	s.CreateClient(context.Background(), Client{Name: "Ivanov", Phone: "+77011234567"})
	if _, err := s.FindClientByPhone(context.Background(), "12345"); !errors.Is(err, ErrNotFound) {
		t.Errorf("short numbers must not match, got %v", err)
	}
}

func TestCreateClientDuplicatePhone(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateClient(ctx, Client{Name: "A", Phone: "+77011234567"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.CreateClient(ctx, Client{Name: "B", Phone: "8 701 123 45 67"}); !errors.Is(err, ErrDuplicatePhone) {
		t.Errorf("expected ErrDuplicatePhone for same number in another format, got %v", err)
	}
}

func TestSearchProductsNameScoping(t *testing.T) {
	s := New()
	s.AddProduct(Product{ID: uuid.New(), Name: "Cordiant Snow Cross", Code: "CRD-205", Price: dec("100")})
	s.AddProduct(Product{ID: uuid.New(), Name: "Nokian Hakka", Code: "CRD-999", Price: dec("100")})

	ctx := context.Background()

	// Default search matches name and code.
	both, err := s.SearchProducts(ctx, SearchProductsParams{Query: "crd"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(both) != 2 {
		t.Errorf("expected 2 matches across name+code, got %d", len(both))
	}

	// Name-scoped search ignores the code column.
	nameOnly, err := s.SearchProducts(ctx, SearchProductsParams{Query: "crd", SearchField: "name"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(nameOnly) != 0 {
		t.Errorf("name-scoped search must ignore codes, got %d matches", len(nameOnly))
	}
}

func TestSearchProductsCityFilter(t *testing.T) {
	s := New()
	s.AddProduct(Product{ID: uuid.New(), Name: "TireA 205/55", BranchCity: "Алматы", Price: dec("1")})
	s.AddProduct(Product{ID: uuid.New(), Name: "TireA 205/55", BranchCity: "Астана", Price: dec("1")})

	got, err := s.SearchProducts(context.Background(), SearchProductsParams{Query: "tirea", City: "Астана"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].BranchCity != "Астана" {
		t.Errorf("city filter not applied: %+v", got)
	}
}

func TestOrderNumbering(t *testing.T) {
	s := New()
	ctx := context.Background()
	first, _ := s.CreateOrder(ctx, Order{Status: "new"})
	second, _ := s.CreateOrder(ctx, Order{Status: "new"})
	if first.Number != "ORD-00001" || second.Number != "ORD-00002" {
		t.Errorf("unexpected numbers %s, %s", first.Number, second.Number)
	}
}

func TestUpdateOrderKeepsIdentity(t *testing.T) {
	s := New()
	ctx := context.Background()
	o, _ := s.CreateOrder(ctx, Order{Status: "new", CreatedBy: uuid.New()})

	changed := o
	changed.Status = "reserve"
	changed.Number = "SHOULD-NOT-STICK"
	updated, err := s.UpdateOrder(ctx, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Number != o.Number {
		t.Errorf("order number must survive updates, got %s", updated.Number)
	}
	if updated.Status != "reserve" {
		t.Errorf("status not updated, got %s", updated.Status)
	}
	if updated.CreatedBy != o.CreatedBy {
		t.Error("created-by must survive updates")
	}
}

func TestWorkSessionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	if s.HasOpenWorkSession(ctx, userID) {
		t.Fatal("no session yet")
	}

	ws1, err := s.StartWorkSession(ctx, userID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.HasOpenWorkSession(ctx, userID) {
		t.Fatal("session should be open")
	}

	// Starting again while open is idempotent.
	ws2, _ := s.StartWorkSession(ctx, userID)
	if ws1.ID != ws2.ID {
		t.Error("double start must return the open session")
	}

	if err := s.EndWorkSession(ctx, userID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if s.HasOpenWorkSession(ctx, userID) {
		t.Error("session should be closed")
	}
	if err := s.EndWorkSession(ctx, userID); !errors.Is(err, ErrNotFound) {
		t.Errorf("ending a closed session: expected ErrNotFound, got %v", err)
	}
}
