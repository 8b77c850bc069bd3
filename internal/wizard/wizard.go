// Package wizard implements the order-entry wizard controller: step gating,
// product search with season filtering, client selection, and submission.
// Rendering is a projection of this state and lives elsewhere (orderctl, or
// whatever front end drives it).
package wizard

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/protektor-crm/orderdesk/internal/draft"
	"github.com/protektor-crm/orderdesk/internal/lookup"
	"github.com/protektor-crm/orderdesk/internal/season"
)

// Step-gate and submission errors, each with its own operator-facing reason.
var (
	ErrNoItems        = errors.New("add at least one item")
	ErrNoClient       = errors.New("select a client or enter a phone for auto-match")
	ErrSubmitInFlight = errors.New("submission already in progress")
)

// Service is the collaborator surface the controller needs.
// Satisfied by *api.Client; narrow interface for testability.
type Service interface {
	SearchProducts(ctx context.Context, q api.SearchQuery) ([]api.Product, error)
	LookupClientByID(ctx context.Context, id string) (*api.ClientRecord, error)
	LookupClientByPhone(ctx context.Context, phone string) (*api.ClientRecord, error)
	CreateClient(ctx context.Context, nc api.NewClient) (string, error)
	SubmitOrder(ctx context.Context, endpoint string, p api.OrderPayload) (*api.SubmitResult, error)
	Endpoints() api.Endpoints
}

// Mode selects the wizard flavor: creating a fresh order or editing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// SearchResult distinguishes "search failed" from "no results": Failed is set
// on transport errors, non-success responses, and malformed bodies, all of
// which degrade to an empty product list rather than an error.
type SearchResult struct {
	Products []api.Product
	Failed   bool
}

// Result is the outcome of a submission: where to navigate and, for the
// no-session case, the message to show on the way out.
type Result struct {
	Redirect string
	Message  string
}

// Controller drives one wizard session over a single draft.
type Controller struct {
	mode    Mode
	svc     Service
	draft   *draft.Draft
	current int
	last    int

	// mu guards the draft and the client set: the debounced phone lookup
	// applies its winning response from the timer goroutine, concurrent with
	// the caller's own accesses.
	mu sync.Mutex

	clients    []api.ClientRecord
	phoneDeb   *lookup.Debouncer
	submitting atomic.Bool
}

// NewCreate starts a three-step wizard over an empty draft.
func NewCreate(svc Service) *Controller {
	return newController(ModeCreate, svc, draft.New(), 3)
}

// NewEdit starts a four-step wizard hydrated from a server snapshot.
func NewEdit(svc Service, snap api.OrderSnapshot) (*Controller, error) {
	d, err := draft.Hydrate(snap)
	if err != nil {
		return nil, err
	}
	return newController(ModeEdit, svc, d, 4), nil
}

func newController(mode Mode, svc Service, d *draft.Draft, steps int) *Controller {
	c := &Controller{mode: mode, svc: svc, draft: d, current: 1, last: steps}
	c.phoneDeb = lookup.New(lookup.DefaultDelay, svc.LookupClientByPhone, func(rec *api.ClientRecord) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.draft.ApplyClient(*rec)
	})
	return c
}

// Draft exposes the wizard's draft for reading and direct field edits
// (status, payment method, notes and the like are plain selections). Client
// fields must go through the controller methods, which share a lock with the
// debounced phone lookup.
func (c *Controller) Draft() *draft.Draft { return c.draft }

// Mode returns the wizard flavor.
func (c *Controller) Mode() Mode { return c.mode }

// Step returns the current step, 1-based.
func (c *Controller) Step() int { return c.current }

// LastStep returns the final step number (3 for create, 4 for edit).
func (c *Controller) LastStep() int { return c.last }

// Clients returns the selectable client set accumulated this session.
func (c *Controller) Clients() []api.ClientRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.ClientRecord, len(c.clients))
	copy(out, c.clients)
	return out
}

// GoTo moves to the target step. Moving backward is always permitted; moving
// forward is gated: step 1 cannot be left with an empty cart and step 2
// cannot be left without a selected client, each with its own reason.
func (c *Controller) GoTo(target int) error {
	if target < 1 {
		target = 1
	}
	if target > c.last {
		target = c.last
	}
	if target <= c.current {
		c.current = target
		return nil
	}
	c.mu.Lock()
	items, clientID := c.draft.ItemCount(), c.draft.ClientID
	c.mu.Unlock()
	if c.current <= 1 && target > 1 && items == 0 {
		return ErrNoItems
	}
	if c.current <= 2 && target > 2 && clientID == "" {
		return ErrNoClient
	}
	c.current = target
	return nil
}

// Next advances one step, subject to the gates.
func (c *Controller) Next() error { return c.GoTo(c.current + 1) }

// Prev moves one step back; never gated.
func (c *Controller) Prev() { _ = c.GoTo(c.current - 1) }

// SearchProducts runs a single-round-trip product search and filters the
// results by season tag client-side. When nameQuery is set the search is
// name-scoped (search_field=name) and the size parameter is deliberately left
// blank — the search endpoint documents that behavior for name-only queries.
// Failures degrade to an empty, Failed result; this never returns an error.
func (c *Controller) SearchProducts(ctx context.Context, query, nameQuery, size, seasonTag, city string) SearchResult {
	q := api.SearchQuery{
		Query:      query,
		Size:       size,
		Season:     seasonTag,
		City:       city,
		PriceLevel: c.draft.PriceLevel,
	}
	if nameQuery != "" {
		q.Query = nameQuery
		q.Size = ""
		q.SearchField = "name"
	}

	products, err := c.svc.SearchProducts(ctx, q)
	if err != nil {
		log.Printf("ERROR: product search: %v", err)
		return SearchResult{Failed: true}
	}

	if seasonTag == "" {
		return SearchResult{Products: products}
	}
	var filtered []api.Product
	for _, p := range products {
		if season.Matches(season.Tagged{
			Name:       p.Name,
			Code:       p.Code,
			Season:     p.Season,
			SeasonTags: p.SeasonTags,
		}, seasonTag) {
			filtered = append(filtered, p)
		}
	}
	return SearchResult{Products: filtered}
}

// SelectClient marks the client as chosen and fills the draft's client
// fields from the lookup endpoint. Lookup failures leave the fields as they
// were; the selection itself stands.
func (c *Controller) SelectClient(ctx context.Context, id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	c.draft.ClientID = id
	c.mu.Unlock()
	rec, err := c.svc.LookupClientByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: client lookup: %v", err)
		return
	}
	if rec != nil {
		c.mu.Lock()
		c.draft.ApplyClient(*rec)
		c.mu.Unlock()
	}
}

// PhoneInput feeds a keystroke to the debounced phone lookup. Only the last
// value within the debounce window is issued, and only the newest response
// is applied to the draft.
func (c *Controller) PhoneInput(ctx context.Context, phone string) {
	c.mu.Lock()
	c.draft.ClientPhone = phone
	c.mu.Unlock()
	c.phoneDeb.Input(ctx, phone)
}

// FlushPhoneLookup issues any pending phone lookup immediately.
func (c *Controller) FlushPhoneLookup(ctx context.Context) {
	c.phoneDeb.Flush(ctx)
}

// CreateClient submits new client fields. On success the client joins the
// selectable set, becomes the draft's selected client, and its fields are
// copied in; on failure the error carries the server message and nothing in
// the draft changes.
func (c *Controller) CreateClient(ctx context.Context, nc api.NewClient) (string, error) {
	id, err := c.svc.CreateClient(ctx, nc)
	if err != nil {
		return "", err
	}
	rec := api.ClientRecord{
		ID:             id,
		Name:           nc.Name,
		City:           nc.City,
		Phone:          nc.Phone,
		Address:        nc.Address,
		AddressComment: nc.AddressComment,
	}
	c.mu.Lock()
	c.clients = append(c.clients, rec)
	c.draft.ApplyClient(rec)
	c.mu.Unlock()
	return id, nil
}

// Submit re-checks the step gates regardless of the current step, builds the
// wire payload, and posts it. Edit mode posts to the update endpoint when one
// was provided and deliberately falls back to the create endpoint otherwise.
// At most one submission is in flight at a time.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return Result{}, ErrSubmitInFlight
	}
	defer c.submitting.Store(false)

	c.mu.Lock()
	items, clientID := c.draft.ItemCount(), c.draft.ClientID
	c.mu.Unlock()
	if items == 0 {
		c.current = 1
		return Result{}, ErrNoItems
	}
	if clientID == "" {
		c.current = 2
		return Result{}, ErrNoClient
	}

	c.mu.Lock()
	payload, err := c.draft.Payload()
	c.mu.Unlock()
	if err != nil {
		return Result{}, err
	}

	eps := c.svc.Endpoints()
	endpoint := eps.AddOrder
	if c.mode == ModeEdit && eps.EditOrder != "" {
		endpoint = eps.EditOrder
	}

	if _, err := c.svc.SubmitOrder(ctx, endpoint, payload); err != nil {
		var sessErr *api.SessionError
		if errors.As(err, &sessErr) {
			// Not a local failure: the operator has no open work session.
			// Send them to the dashboard with the server's explanation.
			return Result{Redirect: eps.Dashboard, Message: sessErr.Error()}, nil
		}
		// Draft stays intact for correction; message is the server's, verbatim.
		return Result{}, err
	}

	return Result{Redirect: eps.OrdersList}, nil
}
