// Package search talks to the remote user search endpoint.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"usersearch/internal/domain"
)

const (
	// maxErrorBody bounds how much of a failed response body is kept.
	maxErrorBody = 512
	// DefaultMaxResponseBytes bounds a successful response body.
	DefaultMaxResponseBytes = 8 << 20
)

// Searcher performs a single search round-trip.
type Searcher interface {
	Search(ctx context.Context, endpoint string, criteria domain.SearchCriteria) ([]domain.UserRecord, error)
}

// Client is an HTTP client for the search endpoint.
type Client struct {
	httpClient *http.Client
	maxBody    int64
}

// Config configures the search client.
type Config struct {
	// Timeout of zero means a request may stay in flight until cancelled.
	Timeout   time.Duration
	Transport http.RoundTripper
	// MaxResponseBytes defaults to DefaultMaxResponseBytes when zero.
	MaxResponseBytes int64
}

// NewClient creates a new search client.
func NewClient(cfg Config) *Client {
	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		maxBody: maxBody,
	}
}

// Search POSTs criteria as JSON to endpoint and decodes the returned list.
// A cancelled ctx yields an error matching ErrCanceled.
func (c *Client) Search(ctx context.Context, endpoint string, criteria domain.SearchCriteria) ([]domain.UserRecord, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrNoEndpoint
	}

	body, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, canceled(fmt.Errorf("search request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, canceled(fmt.Errorf("failed to read search response: %w", err))
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrResponseTooLarge, c.maxBody)
	}

	var records []domain.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if records == nil {
		records = []domain.UserRecord{}
	}
	return records, nil
}
