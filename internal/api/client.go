package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	EndpointOrganization   = "/organization/info"
	EndpointPartnerDevices = "/partner/devices"
	EndpointDevices        = "/devices"
	EndpointSpaces         = "/spaces"
	EndpointIncidents      = "/incidents"
	EndpointTickets        = "/tickets"
)

// maxBodyBytes caps how much of a response is read. A var so tests can shrink it.
var maxBodyBytes int64 = 8 << 20

// Client is the subset of the vendor API the screens consume. Results are
// decoded JSON (maps, slices, json.Number, strings, bools, nil).
type Client interface {
	GetOrganizationInfo(ctx context.Context) (any, error)
	ListPartnerDevices(ctx context.Context) (any, error)
	ListDevices(ctx context.Context) (any, error)
	ListSpaces(ctx context.Context) (any, error)
	ListIncidents(ctx context.Context) (any, error)
	ListTickets(ctx context.Context) (any, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient creates a client for baseURL authenticating with apiKey.
// An empty apiKey is allowed; every call then fails with a missing-key error.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) GetOrganizationInfo(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointOrganization)
}

func (c *HTTPClient) ListPartnerDevices(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointPartnerDevices)
}

func (c *HTTPClient) ListDevices(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointDevices)
}

func (c *HTTPClient) ListSpaces(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointSpaces)
}

func (c *HTTPClient) ListIncidents(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointIncidents)
}

func (c *HTTPClient) ListTickets(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointTickets)
}

func (c *HTTPClient) get(ctx context.Context, endpoint string) (any, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, NewMissingKeyError(endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, endpoint, maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
			Endpoint:   endpoint,
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return out, nil
}

// errorMessage pulls a human message out of an error body, falling back to status.
func errorMessage(body []byte, status string) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, k := range []string{"error", "message", "detail"} {
			if s, ok := payload[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) <= 200 {
		return trimmed
	}
	return status
}
