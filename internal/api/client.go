// Package api implements the HTTP clients for the collaborator services the
// order wizard consumes: product search, client lookup/create, and order
// submission. Endpoints and the underlying http.Client are injected so tests
// can substitute fakes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SessionError is the distinguished "no active work session" signal: the
// server answered 403 and the caller must redirect the operator to the
// dashboard instead of treating it as a validation failure.
type SessionError struct {
	Message string
}

func (e *SessionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "no active work session"
}

// ServerError carries a non-success server response. Message holds the
// server-provided text verbatim when one was given.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Endpoints is the injected endpoint configuration. EditOrder is empty unless
// the server provided an update endpoint for the order being edited.
type Endpoints struct {
	ProductSearch string
	ClientLookup  string
	AddClient     string
	AddOrder      string
	EditOrder     string
	OrdersList    string
	Dashboard     string
}

// Client talks to the collaborator services.
type Client struct {
	http  *http.Client
	eps   Endpoints
	token string
}

// New creates a Client. A nil httpClient falls back to http.DefaultClient.
func New(eps Endpoints, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, eps: eps}
}

// SetToken sets the bearer work-session token attached to every request.
func (c *Client) SetToken(token string) { c.token = token }

// Endpoints returns the injected endpoint configuration.
func (c *Client) Endpoints() Endpoints { return c.eps }

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}

// SearchProducts performs a single-round-trip product search. The query
// parameters are sent exactly as the form does: size is present even when
// blank, search_field only when scoping to name.
func (c *Client) SearchProducts(ctx context.Context, q SearchQuery) ([]Product, error) {
	params := url.Values{}
	params.Set("q", q.Query)
	params.Set("size", q.Size)
	params.Set("season", q.Season)
	params.Set("city", q.City)
	params.Set("price_level", q.PriceLevel)
	if q.SearchField != "" {
		params.Set("search_field", q.SearchField)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.eps.ProductSearch+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &ServerError{StatusCode: res.StatusCode}
	}

	var body struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return body.Products, nil
}

// LookupClientByID fetches a client record by id. Not-found is a normal
// outcome and returns (nil, nil).
func (c *Client) LookupClientByID(ctx context.Context, id string) (*ClientRecord, error) {
	return c.lookup(ctx, url.Values{"id": {id}})
}

// LookupClientByPhone fetches a client record by phone. Not-found is a normal
// outcome and returns (nil, nil).
func (c *Client) LookupClientByPhone(ctx context.Context, phone string) (*ClientRecord, error) {
	return c.lookup(ctx, url.Values{"phone": {phone}})
}

func (c *Client) lookup(ctx context.Context, params url.Values) (*ClientRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.eps.ClientLookup+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, &ServerError{StatusCode: res.StatusCode}
	}

	var body struct {
		Status string `json:"status"`
		ClientRecord
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode client: %w", err)
	}
	if body.Status != "success" {
		return nil, nil
	}
	rec := body.ClientRecord
	return &rec, nil
}

// CreateClient submits new client fields and returns the new client id. On
// failure the server-provided message is surfaced via *ServerError.
func (c *Client) CreateClient(ctx context.Context, nc NewClient) (string, error) {
	res, err := c.postJSON(ctx, c.eps.AddClient, nc)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var body struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		ClientID string `json:"client_id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode add-client response: %w", err)
	}
	if res.StatusCode != http.StatusOK || body.Status != "success" {
		return "", &ServerError{StatusCode: res.StatusCode, Message: body.Message}
	}
	return body.ClientID, nil
}

// SubmitOrder posts an order payload to the given endpoint. A 403 response is
// the distinguished no-session signal and comes back as *SessionError; any
// other non-success is a *ServerError with the server message verbatim.
func (c *Client) SubmitOrder(ctx context.Context, endpoint string, p OrderPayload) (*SubmitResult, error) {
	res, err := c.postJSON(ctx, endpoint, p)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		SubmitResult
	}
	// A malformed body on an error status must not mask the status itself.
	_ = json.NewDecoder(res.Body).Decode(&body)

	if res.StatusCode == http.StatusForbidden {
		return nil, &SessionError{Message: body.Message}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 || body.Status != "success" {
		return nil, &ServerError{StatusCode: res.StatusCode, Message: body.Message}
	}
	result := body.SubmitResult
	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, v any) (*http.Response, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}
