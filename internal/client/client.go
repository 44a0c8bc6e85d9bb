// Package client is a Go client for the mycashnest HTTP API, covering
// auth and the transaction ledger.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a mycashnest server. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token attached to every ledger request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// AuthResponse is the register/login response shape.
type AuthResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// CreateTransactionRequest is the body for creating a transaction.
type CreateTransactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Date        *string `json:"date,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// UpdateTransactionRequest is the body for a full-row update.
type UpdateTransactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Status      string  `json:"status"`
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Transactions fetches the full transaction list, most recent date first.
func (c *Client) Transactions(ctx context.Context) ([]models.TransactionDB, error) {
	var transactions []models.TransactionDB
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateTransaction inserts a ledger entry and returns the persisted row.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*models.TransactionDB, error) {
	var txn models.TransactionDB
	if err := c.do(ctx, http.MethodPost, "/api/transactions", req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransaction replaces all mutable fields of a ledger entry.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, req UpdateTransactionRequest) (*models.TransactionDB, error) {
	var txn models.TransactionDB
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateStatus transitions only the status of a ledger entry.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status string) (*models.TransactionDB, error) {
	body := map[string]string{"status": status}
	var txn models.TransactionDB
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/transactions/%d/status", id), body, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeleteTransaction deletes a ledger entry.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), nil, nil)
}

// Dashboard fetches the dashboard summary.
func (c *Client) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/transactions/dashboard", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
