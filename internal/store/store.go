// Package store is the in-memory data layer of the demo backend. Everything
// lives in process memory and is reset on restart; Seed loads a working data
// set for local development.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicatePhone = errors.New("phone already exists")
)

// --- Records ---

type User struct {
	ID             uuid.UUID
	Login          string
	FullName       string
	Role           string
	HashedPassword string
}

type Product struct {
	ID               uuid.UUID
	Name             string
	Code             string
	Price            decimal.Decimal
	RetailPrice      *decimal.Decimal
	PromotionalPrice *decimal.Decimal
	WholesalePrice   *decimal.Decimal
	Season           string
	SeasonTags       []string
	BranchCity       string
	AssortmentGroup  string
	TireType         string
}

type Client struct {
	ID             uuid.UUID
	ClientType     string
	Name           string
	City           string
	Phone          string
	Address        string
	AddressComment string
	CreatedAt      time.Time
}

type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Code      string
	Price     decimal.Decimal
	Quantity  int
	City      string
}

type Order struct {
	ID                   uuid.UUID
	Number               string
	ClientID             uuid.UUID
	Status               string
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
	Items                []OrderItem
	Total                decimal.Decimal
	CreatedBy            uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type WorkSession struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StartedAt time.Time
	EndedAt   *time.Time
}

// SearchProductsParams mirrors the product-search query string. SearchField
// set to "name" restricts matching to the name column.
type SearchProductsParams struct {
	Query       string
	Size        string
	City        string
	SearchField string
	Limit       int
}

// Store holds all backend state behind one mutex.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]User
	products    map[uuid.UUID]Product
	clients     map[uuid.UUID]Client
	orders      map[uuid.UUID]Order
	sessions    map[uuid.UUID]WorkSession // keyed by user ID; only the open one is kept
	orderSerial int
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]User),
		products: make(map[uuid.UUID]Product),
		clients:  make(map[uuid.UUID]Client),
		orders:   make(map[uuid.UUID]Order),
		sessions: make(map[uuid.UUID]WorkSession),
	}
}

// --- Users ---

func (s *Store) GetUserByLogin(_ context.Context, login string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Login == login {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Store) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// --- Work sessions ---

// StartWorkSession opens a session for the user. Starting while one is
// already open is idempotent and returns the open session.
func (s *Store) StartWorkSession(_ context.Context, userID uuid.UUID) (WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws, ok := s.sessions[userID]; ok && ws.EndedAt == nil {
		return ws, nil
	}
	ws := WorkSession{ID: uuid.New(), UserID: userID, StartedAt: time.Now()}
	s.sessions[userID] = ws
	return ws, nil
}

func (s *Store) EndWorkSession(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.sessions[userID]
	if !ok || ws.EndedAt != nil {
		return ErrNotFound
	}
	now := time.Now()
	ws.EndedAt = &now
	s.sessions[userID] = ws
	return nil
}

func (s *Store) HasOpenWorkSession(_ context.Context, userID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.sessions[userID]
	return ok && ws.EndedAt == nil
}

// --- Products ---

func (s *Store) GetProduct(_ context.Context, id uuid.UUID) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (s *Store) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SearchProducts matches the query (and size, when given) against name and
// code, case-insensitively. SearchField "name" narrows matching to the name
// column. Season is deliberately not a server-side filter.
func (s *Store) SearchProducts(_ context.Context, arg SearchProductsParams) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := arg.Limit
	if limit <= 0 {
		limit = 50
	}
	query := strings.ToLower(strings.TrimSpace(arg.Query))
	size := strings.ToLower(strings.TrimSpace(arg.Size))

	var result []Product
	for _, p := range s.products {
		if arg.City != "" && !strings.EqualFold(p.BranchCity, arg.City) {
			continue
		}
		haystack := strings.ToLower(p.Name)
		if arg.SearchField != "name" {
			haystack += " " + strings.ToLower(p.Code)
		}
		if query != "" && !strings.Contains(haystack, query) {
			continue
		}
		if size != "" && !strings.Contains(strings.ToLower(p.Name), size) {
			continue
		}
		result = append(result, p)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// --- Clients ---

func (s *Store) GetClient(_ context.Context, id uuid.UUID) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

// NormalizePhone reduces a phone to its digits and folds the legacy leading 8
// into 7, so +7 (701) 123-45-67 and 87011234567 compare equal.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	return digits
}

// FindClientByPhone matches on the last 10 digits of the normalized number,
// so stored and searched numbers agree regardless of formatting or prefix.
func (s *Store) FindClientByPhone(_ context.Context, phone string) (Client, error) {
	digits := NormalizePhone(phone)
	if len(digits) < 10 {
		return Client{}, ErrNotFound
	}
	suffix := digits[len(digits)-10:]

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		stored := NormalizePhone(c.Phone)
		if len(stored) >= 10 && strings.HasSuffix(stored, suffix) {
			return c, nil
		}
	}
	return Client{}, ErrNotFound
}

func (s *Store) CreateClient(_ context.Context, c Client) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	digits := NormalizePhone(c.Phone)
	for _, existing := range s.clients {
		if NormalizePhone(existing.Phone) == digits {
			return Client{}, ErrDuplicatePhone
		}
	}

	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	s.clients[c.ID] = c
	return c, nil
}

// --- Orders ---

func (s *Store) GetOrder(_ context.Context, id uuid.UUID) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Store) CreateOrder(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderSerial++
	o.ID = uuid.New()
	o.Number = fmt.Sprintf("ORD-%05d", s.orderSerial)
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	s.orders[o.ID] = o
	return o, nil
}

// UpdateOrder replaces the stored order's mutable fields; number, creation
// metadata and identity are kept.
func (s *Store) UpdateOrder(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.Number = stored.Number
	o.CreatedBy = stored.CreatedBy
	o.CreatedAt = stored.CreatedAt
	o.UpdatedAt = time.Now()
	s.orders[o.ID] = o
	return o, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, id uuid.UUID, status string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	return o, nil
}

func (s *Store) ListOrders(_ context.Context) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}
