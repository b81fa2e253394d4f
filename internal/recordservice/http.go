package recordservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ianroy/makerflowPM/internal/models"
)

// HTTPClient talks to a hosted record service over its JSON API
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// Compile-time verification that *HTTPClient implements Service
var _ Service = (*HTTPClient)(nil)

// NewHTTPClient creates a client for baseURL (e.g. "https://pm.example.edu")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List performs a full-refresh fetch
func (c *HTTPClient) List(ctx context.Context, kind models.EntityKind, params ListParams) ([]*models.Record, error) {
	q := url.Values{}
	if params.Scope != "" {
		q.Set("scope", params.Scope)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	path := "/api/" + url.PathEscape(string(kind))
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	return DecodeRecords(kind, resp.Records), nil
}

// Save sends a partial update and returns the canonical fields
func (c *HTTPClient) Save(ctx context.Context, kind models.EntityKind, id int64, changed map[string]string) (*SaveResult, error) {
	body := WireSaveRequest{ID: id, Fields: changed}
	resp, err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(string(kind))+"/save", body)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Canonical: resp.Fields}, nil
}

// Delete removes a record
func (c *HTTPClient) Delete(ctx context.Context, kind models.EntityKind, id int64) error {
	body := WireDeleteRequest{ID: id}
	_, err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(string(kind))+"/delete", body)
	return err
}

// Lookups fetches the option sets and permission flags
func (c *HTTPClient) Lookups(ctx context.Context) (*models.Lookups, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/lookups", nil)
	if err != nil {
		return nil, err
	}
	if resp.Lookups == nil {
		return models.DefaultLookups(), nil
	}

	return resp.Lookups.Decode(), nil
}

// do performs one request. Transport failures wrap ErrTransport; a
// structured error body becomes a *RemoteError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*WireResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	var out WireResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		if res.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: status %d", ErrTransport, res.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode response (status %d): %w", res.StatusCode, err)
	}

	if out.Error != nil {
		return nil, &RemoteError{Code: out.Error.Code, Message: out.Error.Message, Params: out.Error.Params}
	}
	if !out.OK {
		if res.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: status %d", ErrTransport, res.StatusCode)
		}
		return nil, &RemoteError{Code: "unknown", Message: fmt.Sprintf("request failed with status %d", res.StatusCode)}
	}
	return &out, nil
}
