// Package draft holds the in-memory state of an order being built or edited:
// an ordered list of line items plus order metadata. It is pure state — no
// HTTP, no rendering — so every transition is directly testable.
package draft

import (
	"errors"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/protektor-crm/orderdesk/internal/enum"
	"github.com/protektor-crm/orderdesk/internal/status"
	"github.com/shopspring/decimal"
)

// Validation errors surfaced to the operator before an item enters the cart.
var (
	ErrCityRequired       = errors.New("choose a city before adding the product")
	ErrPriceLevelRequired = errors.New("choose a price level before adding the product")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

// Item is a single draft line. Items are never mutated in place; correcting
// one means removing it and adding a fresh line.
type Item struct {
	ProductID string
	Name      string
	Code      string
	UnitPrice decimal.Decimal
	Quantity  int
	City      string
}

// Amount is the line total.
func (it Item) Amount() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Draft is an order in progress. It lives only for the wizard session:
// constructed fresh for create, hydrated from a snapshot for edit, and
// discarded after a successful submission.
type Draft struct {
	ClientID             string
	Status               status.Status
	Source               string
	PaymentMethod        string
	DeliveryMethod       string
	PriceLevel           string
	IsPromo              bool
	Notes                string
	ClientPhone          string
	ClientName           string
	ClientCity           string
	ClientAddressComment string

	items []Item
}

// New returns an empty draft with the form's default selections.
func New() *Draft {
	return &Draft{
		Source:         enum.SourceWebsite,
		PaymentMethod:  enum.PaymentCash,
		DeliveryMethod: enum.DeliveryPickup,
		PriceLevel:     enum.PriceLevelRetail,
	}
}

// Hydrate builds a draft from a server-provided edit-mode snapshot,
// preserving item order.
func Hydrate(snap api.OrderSnapshot) (*Draft, error) {
	st, err := status.FromWire(snap.Order.Status)
	if err != nil {
		return nil, err
	}

	d := New()
	d.ClientID = snap.Order.ClientID
	d.Status = st
	if snap.Order.Source != "" {
		d.Source = snap.Order.Source
	}
	if snap.Order.PaymentMethod != "" {
		d.PaymentMethod = snap.Order.PaymentMethod
	}
	if snap.Order.DeliveryMethod != "" {
		d.DeliveryMethod = snap.Order.DeliveryMethod
	}
	d.IsPromo = snap.Order.IsPromo
	d.Notes = snap.Order.Notes

	for _, it := range snap.Order.Items {
		d.items = append(d.items, Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Code:      it.Code,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			City:      it.City,
		})
	}

	ci := snap.ClientInitial
	d.ClientPhone = ci.Phone
	d.ClientName = ci.Name
	d.ClientCity = ci.City
	d.ClientAddressComment = joinAddress(ci.Address, ci.AddressComment)

	return d, nil
}

func joinAddress(address, comment string) string {
	switch {
	case address != "" && comment != "":
		return address + " | " + comment
	case address != "":
		return address
	default:
		return comment
	}
}

// ResolvePrice picks the unit price for the chosen price level, falling back
// to the base price when the product has no such tier (or the level is
// unrecognized).
func ResolvePrice(p api.Product, level string) decimal.Decimal {
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

// AddItem validates the selection, resolves the unit price for the chosen
// price level, and appends a line to the draft.
func (d *Draft) AddItem(p api.Product, city, priceLevel string, quantity int) (Item, error) {
	if city == "" {
		return Item{}, ErrCityRequired
	}
	if priceLevel == "" {
		return Item{}, ErrPriceLevelRequired
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}

	it := Item{
		ProductID: p.ID,
		Name:      p.Name,
		Code:      p.Code,
		UnitPrice: ResolvePrice(p, priceLevel),
		Quantity:  quantity,
		City:      city,
	}
	d.items = append(d.items, it)
	return it, nil
}

// RemoveItem deletes the line at index; remaining lines keep their order.
// Out-of-range indexes are ignored.
func (d *Draft) RemoveItem(index int) {
	if index < 0 || index >= len(d.items) {
		return
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
}

// Items returns a copy of the draft lines in display order.
func (d *Draft) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

// ItemCount returns the number of draft lines.
func (d *Draft) ItemCount() int { return len(d.items) }

// Total is the sum of line amounts over the current items.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.items {
		total = total.Add(it.Amount())
	}
	return total
}

// Payload collapses the draft for submission. Items carry only
// {product_id, quantity, city}: prices are resolved server-side and never
// re-sent. A cancellation without a chosen reason fails here, before any
// network traffic.
func (d *Draft) Payload() (api.OrderPayload, error) {
	wireStatus, err := d.Status.Wire()
	if err != nil {
		return api.OrderPayload{}, err
	}

	items := make([]api.PayloadItem, len(d.items))
	for i, it := range d.items {
		items[i] = api.PayloadItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			City:      it.City,
		}
	}

	return api.OrderPayload{
		ClientID:             d.ClientID,
		Status:               wireStatus,
		Source:               d.Source,
		PaymentMethod:        d.PaymentMethod,
		DeliveryMethod:       d.DeliveryMethod,
		PriceLevel:           d.PriceLevel,
		IsPromo:              d.IsPromo,
		SaleNumber:           "",
		Notes:                d.Notes,
		ClientPhone:          d.ClientPhone,
		ClientName:           d.ClientName,
		ClientCity:           d.ClientCity,
		ClientAddressComment: d.ClientAddressComment,
		Items:                items,
	}, nil
}

// ApplyClient copies a looked-up client record into the draft's client
// fields and selects it.
func (d *Draft) ApplyClient(rec api.ClientRecord) {
	d.ClientID = rec.ID
	d.ClientName = rec.Name
	d.ClientCity = rec.City
	d.ClientPhone = rec.Phone
	d.ClientAddressComment = joinAddress(rec.Address, rec.AddressComment)
}
