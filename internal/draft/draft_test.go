package draft

import (
	"errors"
	"testing"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func tieredProduct() api.Product {
	return api.Product{
		ID:               "p1",
		Name:             "ShinaX 205/55 ЗИМ",
		Code:             "SX-205",
		Price:            dec("100"),
		WholesalePrice:   decPtr("80"),
		PromotionalPrice: decPtr("90"),
	}
}

func TestAddItemValidation(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		level   string
		qty     int
		wantErr error
	}{
		{"missing city", "", "retail", 1, ErrCityRequired},
		{"missing price level", "Almaty", "", 1, ErrPriceLevelRequired},
		{"zero quantity", "Almaty", "retail", 0, ErrInvalidQuantity},
		{"negative quantity", "Almaty", "retail", -3, ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			if _, err := d.AddItem(tieredProduct(), tt.city, tt.level, tt.qty); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if d.ItemCount() != 0 {
				t.Error("failed add must leave the draft unchanged")
			}
		})
	}
}

func TestAddItemAcceptsQuantityOneAndUp(t *testing.T) {
	d := New()
	for _, qty := range []int{1, 2, 500} {
		if _, err := d.AddItem(tieredProduct(), "Almaty", "retail", qty); err != nil {
			t.Fatalf("quantity %d rejected: %v", qty, err)
		}
	}
	if d.ItemCount() != 3 {
		t.Errorf("expected 3 items, got %d", d.ItemCount())
	}
}

func TestResolvePrice(t *testing.T) {
	p := tieredProduct()
	tests := []struct {
		level string
		want  string
	}{
		{"wholesale", "80"},
		{"promotional", "90"},
		{"retail", "100"}, // no retail tier: falls back to base
		{"vip", "100"},    // unrecognized level: base
	}
	for _, tt := range tests {
		if got := ResolvePrice(p, tt.level); !got.Equal(dec(tt.want)) {
			t.Errorf("level %s: expected %s, got %s", tt.level, tt.want, got)
		}
	}
}

func TestResolvePriceRetailTier(t *testing.T) {
	p := tieredProduct()
	p.RetailPrice = decPtr("110")
	if got := ResolvePrice(p, "retail"); !got.Equal(dec("110")) {
		t.Errorf("expected retail tier 110, got %s", got)
	}
}

func TestResolvePriceMissingTierFallsBack(t *testing.T) {
	p := api.Product{ID: "p2", Price: dec("100")}
	for _, level := range []string{"wholesale", "promotional", "retail"} {
		if got := ResolvePrice(p, level); !got.Equal(dec("100")) {
			t.Errorf("level %s without tier: expected base 100, got %s", level, got)
		}
	}
}

func TestTotalTracksMutations(t *testing.T) {
	d := New()
	d.AddItem(tieredProduct(), "Almaty", "wholesale", 2)   // 160
	d.AddItem(tieredProduct(), "Astana", "promotional", 1) // 90
	d.AddItem(tieredProduct(), "Almaty", "retail", 3)      // 300

	if got := d.Total(); !got.Equal(dec("550")) {
		t.Fatalf("expected total 550, got %s", got)
	}

	d.RemoveItem(1)
	if got := d.Total(); !got.Equal(dec("460")) {
		t.Errorf("after removal expected 460, got %s", got)
	}
	if d.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d", d.ItemCount())
	}
	// Remaining items keep insertion order.
	items := d.Items()
	if items[0].City != "Almaty" || items[1].Quantity != 3 {
		t.Error("remaining items reordered after removal")
	}
}

func TestRemoveItemOutOfRange(t *testing.T) {
	d := New()
	d.AddItem(tieredProduct(), "Almaty", "retail", 1)
	d.RemoveItem(-1)
	d.RemoveItem(5)
	if d.ItemCount() != 1 {
		t.Error("out-of-range removal must be a no-op")
	}
}

func TestTotalEmptyDraft(t *testing.T) {
	if !New().Total().Equal(decimal.Zero) {
		t.Error("empty draft total must be zero")
	}
}

func TestHydrateSnapshot(t *testing.T) {
	snap := api.OrderSnapshot{
		Order: api.SnapshotOrder{
			ClientID:       "c9",
			Status:         "cancel_no_answer",
			Source:         "kaspi",
			PaymentMethod:  "card",
			DeliveryMethod: "courier",
			IsPromo:        true,
			Notes:          "call after 18:00",
			Items: []api.SnapshotItem{
				{ProductID: "p1", Name: "A", Code: "a", Price: dec("100"), Quantity: 2, City: "Almaty"},
				{ProductID: "p2", Name: "B", Code: "b", Price: dec("250"), Quantity: 1, City: "Astana"},
			},
		},
		ClientInitial: api.ClientInitial{
			Phone:          "+77001112233",
			Name:           "Ivanov",
			City:           "Almaty",
			Address:        "Abay 10",
			AddressComment: "entrance 2",
		},
	}

	d, err := Hydrate(snap)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	items := d.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[1].ProductID != "p2" {
		t.Error("item order not preserved")
	}
	if got := d.Total(); !got.Equal(dec("450")) {
		t.Errorf("expected total 450, got %s", got)
	}
	if d.Status.Display() != "cancelled" || d.Status.Reason() != "cancel_no_answer" {
		t.Errorf("cancellation-family status not mapped: display=%s reason=%s",
			d.Status.Display(), d.Status.Reason())
	}
	if d.ClientAddressComment != "Abay 10 | entrance 2" {
		t.Errorf("address not joined: %q", d.ClientAddressComment)
	}
}

func TestHydrateUnknownStatus(t *testing.T) {
	snap := api.OrderSnapshot{Order: api.SnapshotOrder{Status: "bogus"}}
	if _, err := Hydrate(snap); err == nil {
		t.Error("expected error for unknown snapshot status")
	}
}

func TestPayloadCollapsesItems(t *testing.T) {
	d := New()
	d.ClientID = "c1"
	d.AddItem(tieredProduct(), "Almaty", "wholesale", 2)

	p, err := d.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if len(p.Items) != 1 {
		t.Fatalf("expected 1 payload item, got %d", len(p.Items))
	}
	it := p.Items[0]
	if it.ProductID != "p1" || it.Quantity != 2 || it.City != "Almaty" {
		t.Errorf("unexpected payload item %+v", it)
	}
	if p.Status != "new" {
		t.Errorf("expected default status new, got %s", p.Status)
	}
	if p.SaleNumber != "" {
		t.Error("sale_number must be sent blank")
	}
}

func TestPayloadCancellationReason(t *testing.T) {
	d := New()
	d.ClientID = "c1"
	d.AddItem(tieredProduct(), "Almaty", "retail", 1)
	d.Status = d.Status.WithReason("cancel_no_answer")

	p, err := d.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if p.Status != "cancel_no_answer" {
		t.Errorf(`expected wire status "cancel_no_answer", got %q`, p.Status)
	}
}

func TestApplyClient(t *testing.T) {
	d := New()
	d.ApplyClient(api.ClientRecord{
		ID: "c7", Name: "Petrov", City: "Astana", Phone: "+77010000000",
		Address: "Left bank", AddressComment: "",
	})
	if d.ClientID != "c7" || d.ClientName != "Petrov" {
		t.Error("client fields not applied")
	}
	if d.ClientAddressComment != "Left bank" {
		t.Errorf("address join wrong: %q", d.ClientAddressComment)
	}
}
