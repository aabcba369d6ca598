// internal/airtable/client.go
// Thin REST client for the Airtable-backed profile store.
// Every entity in the system (hosts, nannies, matches, shortlists,
// interview requests, conversations, messages, users) lives in an
// Airtable table; there is no local persistence.

package airtable

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
	"time"
)

var (
	// ErrRecordNotFound is returned when a record ID does not exist
	ErrRecordNotFound = errors.New("airtable record not found")
)

// Record is a single row in an Airtable table. Fields are the raw
// key-value pairs; feature repositories map them into typed models.
type Record struct {
	ID          string                 `json:"id"`
	Fields      map[string]interface{} `json:"fields"`
	CreatedTime time.Time              `json:"createdTime"`
}

// ListOptions narrow a ListRecords call.
type ListOptions struct {
	FilterByFormula string
	MaxRecords      int
}

// Client talks to one Airtable base.
type Client struct {
	baseURL    string
	baseID     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given base. Timeouts are delegated
// to the HTTP client; there is no retry or backoff (a failed call
// propagates to the caller).
func NewClient(baseURL, baseID, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		baseID:  baseID,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, table, recordID string) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table), url.PathEscape(recordID))

	var record Record
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecords fetches records from a table, optionally filtered.
// Pagination is followed until Airtable stops returning an offset or
// MaxRecords is reached.
func (c *Client) ListRecords(ctx context.Context, table string, opts *ListOptions) ([]*Record, error) {
	var records []*Record
	offset := ""

	for {
		endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))

		query := url.Values{}
		if opts != nil && opts.FilterByFormula != "" {
			query.Set("filterByFormula", opts.FilterByFormula)
		}
		if opts != nil && opts.MaxRecords > 0 {
			query.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
		}
		if offset != "" {
			query.Set("offset", offset)
		}
		if len(query) > 0 {
			endpoint += "?" + query.Encode()
		}

		var page struct {
			Records []*Record `json:"records"`
			Offset  string    `json:"offset"`
		}
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}

		records = append(records, page.Records...)

		if page.Offset == "" {
			break
		}
		if opts != nil && opts.MaxRecords > 0 && len(records) >= opts.MaxRecords {
			records = records[:opts.MaxRecords]
			break
		}
		offset = page.Offset
	}

	return records, nil
}

// CreateRecord inserts a new record and returns it with its server-assigned ID.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))

	body := map[string]interface{}{"fields": fields}

	var record Record
	if err := c.do(ctx, http.MethodPost, endpoint, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord applies a partial update (PATCH) to an existing record.
func (c *Client) UpdateRecord(ctx context.Context, table, recordID string, fields map[string]interface{}) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table), url.PathEscape(recordID))

	body := map[string]interface{}{"fields": fields}

	var record Record
	if err := c.do(ctx, http.MethodPatch, endpoint, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("airtable request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("airtable error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("airtable error (%d)", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode airtable response: %w", err)
		}
	}

	return nil
}
