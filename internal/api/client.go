// Package api provides the HTTP client for the pantry receipt and budget API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pantry/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

var (
	// ErrUnauthorized indicates the session token is missing, expired, or invalid.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("api: not found")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("api: rate limited")
)

// Client talks to the pantry backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the given base URL and optional token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Me validates the current token and returns the account it belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RefreshToken exchanges the current token for a fresh session.
func (c *Client) RefreshToken(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListReceipts returns receipts matching the given filters.
func (c *Client) ListReceipts(ctx context.Context, filters model.ReceiptFilters) ([]model.Receipt, error) {
	path := "/receipts"
	if q := filterQuery(filters); q != "" {
		path += "?" + q
	}

	var receipts []model.Receipt
	if err := c.do(ctx, http.MethodGet, path, nil, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// GetReceipt fetches a single receipt by ID.
func (c *Client) GetReceipt(ctx context.Context, id string) (*model.Receipt, error) {
	var r model.Receipt
	if err := c.do(ctx, http.MethodGet, "/receipts/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReceipt posts a new receipt and returns the stored copy.
func (c *Client) CreateReceipt(ctx context.Context, r model.Receipt) (*model.Receipt, error) {
	var created model.Receipt
	if err := c.do(ctx, http.MethodPost, "/receipts", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateReceipt replaces a receipt on the server.
func (c *Client) UpdateReceipt(ctx context.Context, r model.Receipt) (*model.Receipt, error) {
	var updated model.Receipt
	if err := c.do(ctx, http.MethodPut, "/receipts/"+url.PathEscape(r.ID), r, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteReceipt removes a receipt.
func (c *Client) DeleteReceipt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/receipts/"+url.PathEscape(id), nil, nil)
}

// ReceiptStats returns server-side summary statistics.
func (c *Client) ReceiptStats(ctx context.Context) (*model.ReceiptStats, error) {
	var stats model.ReceiptStats
	if err := c.do(ctx, http.MethodGet, "/receipts/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListBudgets returns all budgets for the account.
func (c *Client) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	var budgets []model.Budget
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// CreateBudget posts a new budget and returns the stored copy.
func (c *Client) CreateBudget(ctx context.Context, b model.Budget) (*model.Budget, error) {
	var created model.Budget
	if err := c.do(ctx, http.MethodPost, "/budgets", b, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBudget replaces a budget on the server.
func (c *Client) UpdateBudget(ctx context.Context, b model.Budget) (*model.Budget, error) {
	var updated model.Budget
	if err := c.do(ctx, http.MethodPut, "/budgets/"+url.PathEscape(b.ID), b, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBudget removes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+url.PathEscape(id), nil, nil)
}

// do performs a JSON request and decodes the response envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("api: parsing response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if env.Error != "" {
			return fmt.Errorf("api: %s", env.Error)
		}
		return fmt.Errorf("api: unexpected status %d", resp.StatusCode)
	}

	if !env.Success && env.Error != "" {
		return fmt.Errorf("api: %s", env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: parsing payload: %w", err)
		}
	}
	return nil
}

// filterQuery encodes receipt filters as URL query parameters.
func filterQuery(f model.ReceiptFilters) string {
	q := url.Values{}
	for _, s := range f.Statuses {
		q.Add("status", string(s))
	}
	if f.StoreName != "" {
		q.Set("store", f.StoreName)
	}
	return q.Encode()
}
