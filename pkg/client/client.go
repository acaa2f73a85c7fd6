// Package client is a Go client for the order management API. It owns
// the token lifecycle: tokens are persisted through a pluggable
// storage, renewed before expiry, and a rejected request is retried
// once after a refresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/kittiBank/order-manage-web/pkg/client/session"
	"github.com/kittiBank/order-manage-web/pkg/client/tokenstore"
)

// DefaultBaseURL is used when neither WithBaseURL nor ORDER_API_URL
// selects an API origin.
const DefaultBaseURL = "http://localhost:8080"

// Client talks to the order management API.
type Client struct {
	baseURL     string
	store       *tokenstore.Store
	session     *session.Manager
	httpClient  *http.Client
	plainClient *http.Client

	storage       tokenstore.Storage
	baseTransport http.RoundTripper
	onAuthLost    func()
}

// option is a function that configures the Client.
type option func(*Client)

//goland:noinspection GoExportedFuncWithUnexportedType
func WithBaseURL(baseURL string) option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithStorage selects where tokens are persisted. Defaults to an
// in-memory storage scoped to the process.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStorage(storage tokenstore.Storage) option {
	return func(c *Client) {
		c.storage = storage
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithTransport(base http.RoundTripper) option {
	return func(c *Client) {
		c.baseTransport = base
	}
}

// WithOnAuthLost registers a callback fired when the session cannot be
// recovered, the place to prompt for a new login.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOnAuthLost(fn func()) option {
	return func(c *Client) {
		c.onAuthLost = fn
	}
}

// New creates a client and restores any session the storage holds.
func New(opts ...option) *Client {
	c := &Client{
		baseURL:       os.Getenv("ORDER_API_URL"),
		storage:       tokenstore.NewMemoryStorage(),
		baseTransport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}

	c.store = tokenstore.NewStore(c.storage)
	c.session = session.NewManager(c.store, c)

	c.httpClient = &http.Client{
		Transport: &authTransport{
			base:       c.baseTransport,
			store:      c.store,
			refresher:  c.session,
			onAuthLost: c.onAuthLost,
		},
	}
	c.plainClient = &http.Client{Transport: c.baseTransport}

	c.session.Rehydrate(context.Background())

	return c
}

// Session returns a snapshot of the authentication state.
func (c *Client) Session() session.Session {
	return c.session.Session()
}

// Close stops the token renewal timer. The stored session survives.
func (c *Client) Close() {
	c.session.Close()
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*tokenstore.User, error) {
	var res struct {
		Message string          `json:"message"`
		User    tokenstore.User `json:"user"`
	}
	if err := c.do(ctx, c.plainClient, http.MethodPost, "/api/v1/auth/register", nil, req, &res); err != nil {
		return nil, err
	}

	return &res.User, nil
}

// Login authenticates and starts a managed session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res LoginResult
	if err := c.do(ctx, c.plainClient, http.MethodPost, "/api/v1/auth/login", nil, body, &res); err != nil {
		return nil, err
	}

	c.session.Login(res.User, res.AccessToken, res.RefreshToken, res.ExpiresIn)

	return &res, nil
}

// Logout ends the session. The server call is best-effort; local state
// is always cleared.
func (c *Client) Logout(ctx context.Context) {
	c.session.Logout(ctx)
}

// Profile fetches the account behind the current session.
func (c *Client) Profile(ctx context.Context) (*tokenstore.User, error) {
	var res struct {
		User tokenstore.User `json:"user"`
	}
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/v1/auth/profile", nil, nil, &res); err != nil {
		return nil, err
	}

	return &res.User, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
// Most callers want the managed renewal instead; this is the raw call.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refreshToken": refreshToken}

	var res struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, c.plainClient, http.MethodPost, "/api/v1/auth/refresh", nil, body, &res); err != nil {
		return "", err
	}

	return res.AccessToken, nil
}

// ServerLogout invalidates the session server-side.
func (c *Client) ServerLogout(ctx context.Context) error {
	return c.do(ctx, c.httpClient, http.MethodPost, "/api/v1/auth/logout", nil, nil, nil)
}

// ListOrders returns one page of orders.
func (c *Client) ListOrders(ctx context.Context, query ListOrdersQuery) (*OrderPage, error) {
	var page OrderPage
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/v1/orders", query.values(), nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// CreateOrder creates an order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var o Order
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/api/v1/orders", nil, req, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/v1/orders/"+url.PathEscape(id), nil, nil, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

// UpdateOrder applies a partial update to one order.
func (c *Client) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	var o Order
	if err := c.do(ctx, c.httpClient, http.MethodPatch, "/api/v1/orders/"+url.PathEscape(id), nil, req, &o); err != nil {
		return nil, err
	}

	return &o, nil
}

// DeleteOrder removes one order.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, c.httpClient, http.MethodDelete, "/api/v1/orders/"+url.PathEscape(id), nil, nil, nil)
}

// do sends one JSON request and decodes the answer into out. A non-2xx
// status decodes into an *APIError.
func (c *Client) do(
	ctx context.Context,
	httpClient *http.Client,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
