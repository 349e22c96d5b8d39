// Package client talks to the nonbon HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Item struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Area   string `json:"area"`
	Status string `json:"status"`
}

type CreateItemRequest struct {
	Title  string `json:"title"`
	Area   string `json:"area"`
	Status string `json:"status,omitempty"`
}

type Health struct {
	Status string         `json:"status"`
	Counts map[string]int `json:"counts"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) ListAll(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.do(ctx, http.MethodGet, "/items", nil, &items)
	return items, err
}

func (c *Client) ListActive(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.do(ctx, http.MethodGet, "/items/active", nil, &items)
	return items, err
}

// ListBacklog filters the full listing; the API has no backlog route.
func (c *Client) ListBacklog(ctx context.Context) ([]Item, error) {
	items, err := c.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	backlog := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Status == "Backlog" {
			backlog = append(backlog, item)
		}
	}
	return backlog, nil
}

func (c *Client) RandomBacklog(ctx context.Context) (Item, error) {
	var item Item
	err := c.do(ctx, http.MethodGet, "/items/backlog/random", nil, &item)
	return item, err
}

func (c *Client) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	var item Item
	err := c.do(ctx, http.MethodPost, "/items", req, &item)
	return item, err
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, status string) error {
	return c.do(ctx, http.MethodPut, "/items/"+strconv.FormatInt(id, 10)+"/status", status, nil)
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := *c.baseURL
	u.Path += path

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return apiErr
}
