// Package rest implements the remote gateway against a PostgREST-style
// HTTP API: one route per table, filters in the query string, and upserts
// negotiated through Prefer headers.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/satchel/internal/gateway"
)

const restPathPrefix = "/rest/v1/"

// Client talks to the remote backend's table API.
//
// The client carries no retry or backoff policy: failures surface to the
// caller immediately so the sync layer can fall back to cached data.
type Client struct {
	baseURL    string
	apiKey     string
	token      func() string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTokenProvider sets the bearer-token source, typically the active
// session. A nil or empty token sends only the API key.
func WithTokenProvider(token func() string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a REST gateway client for the given base URL and API key.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// eq renders a PostgREST equality filter value.
func eq(value string) string {
	return "eq." + value
}

// get performs a filtered table read and decodes the JSON array into out.
func (c *Client) get(ctx context.Context, table string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, table, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s: %w", table, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

// write performs a mutating table request with an optional JSON body and
// Prefer header.
func (c *Client) write(ctx context.Context, method, table string, query url.Values, body any, prefer string) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", table, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, table, query, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer == "" {
		prefer = "return=minimal"
	}
	req.Header.Set("Prefer", prefer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s: %w", table, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, table string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := c.baseURL + restPathPrefix + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", table, err)
	}
	req.Header.Set("apikey", c.apiKey)
	if c.token != nil {
		if token := strings.TrimSpace(c.token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func decodeError(resp *http.Response) error {
	gwErr := &gateway.Error{Status: resp.StatusCode}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		if json.Unmarshal(raw, &payload) == nil {
			gwErr.Code = payload.Code
			gwErr.Message = payload.Message
		}
		if gwErr.Message == "" {
			gwErr.Message = strings.TrimSpace(string(raw))
		}
	}
	if gwErr.Message == "" {
		gwErr.Message = http.StatusText(resp.StatusCode)
	}
	return gwErr
}

var _ gateway.Gateway = (*Client)(nil)
