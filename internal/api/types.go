package api

import "github.com/shopspring/decimal"

// Product is a product-search result with multi-tier pricing. Price is the
// base price; the tier prices are nil when the product has no such tier.
type Product struct {
	ID               string           `json:"id"`
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

// SearchQuery carries the product-search parameters. All fields are sent even
// when blank; SearchField is included only when set (name-scoped searches).
type SearchQuery struct {
	Query       string
	Size        string
	Season      string
	City        string
	PriceLevel  string
	SearchField string
}

// ClientRecord is a client as returned by the lookup endpoint.
type ClientRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	AddressComment string `json:"address_comment"`
}

// NewClient is the body of a create-client request.
type NewClient struct {
	ClientType     string `json:"client_type"`
	Phone          string `json:"phone"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Address        string `json:"address"`
	AddressComment string `json:"address_comment"`
}

// PayloadItem is an order line collapsed for submission. Price is omitted on
// purpose: the server resolves it from the order's price level.
type PayloadItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	City      string `json:"city"`
}

// OrderPayload is the JSON body posted to the add/edit order endpoints.
type OrderPayload struct {
	ClientID             string        `json:"client_id"`
	Status               string        `json:"status"`
	Source               string        `json:"source"`
	PaymentMethod        string        `json:"payment_method"`
	DeliveryMethod       string        `json:"delivery_method"`
	PriceLevel           string        `json:"price_level"`
	IsPromo              bool          `json:"is_promo"`
	SaleNumber           string        `json:"sale_number"`
	Notes                string        `json:"notes"`
	ClientPhone          string        `json:"client_phone"`
	ClientName           string        `json:"client_name"`
	ClientCity           string        `json:"client_city"`
	ClientAddressComment string        `json:"client_address_comment"`
	Items                []PayloadItem `json:"items"`
}

// SubmitResult is the success response of an order submission.
type SubmitResult struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	RedirectURL string `json:"redirect_url"`
}

// OrderSnapshot is the server-provided state for edit mode: the order with
// its pre-populated items plus the client's initial contact fields.
type OrderSnapshot struct {
	Order         SnapshotOrder `json:"order"`
	ClientInitial ClientInitial `json:"client_initial"`
}

// SnapshotOrder is the order half of an edit-mode snapshot.
type SnapshotOrder struct {
	ClientID       string          `json:"client_id"`
	Status         string          `json:"status"`
	Source         string          `json:"source"`
	PaymentMethod  string          `json:"payment_method"`
	DeliveryMethod string          `json:"delivery_method"`
	IsPromo        bool            `json:"is_promo"`
	Notes          string          `json:"notes"`
	Items          []SnapshotItem  `json:"items"`
}

// SnapshotItem is a pre-populated order line in an edit-mode snapshot.
type SnapshotItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	City      string          `json:"city"`
}

// ClientInitial is the client half of an edit-mode snapshot.
type ClientInitial struct {
	Phone          string `json:"phone"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Address        string `json:"address"`
	AddressComment string `json:"address_comment"`
}
