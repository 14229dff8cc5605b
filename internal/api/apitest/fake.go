// Package apitest provides an in-memory api.Client for tests.
package apitest

import (
	"context"
	"sync"

	"xytectl/internal/api"
)

// FakeClient answers every endpoint from canned payloads and errors.
type FakeClient struct {
	mu       sync.Mutex
	payloads map[string]any
	errs     map[string]error
	calls    map[string]int

	// Hook runs before each call returns; tests use it to block or count.
	Hook func(ctx context.Context, endpoint string) error
}

var _ api.Client = (*FakeClient)(nil)

// NewFakeClient creates a client with no payloads; unset endpoints return nil, nil.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		payloads: make(map[string]any),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

// Set registers the payload returned by endpoint.
func (f *FakeClient) Set(endpoint string, payload any) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[endpoint] = payload
	delete(f.errs, endpoint)
	return f
}

// Fail makes endpoint return err.
func (f *FakeClient) Fail(endpoint string, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[endpoint] = err
	return f
}

// Calls reports how often endpoint was hit.
func (f *FakeClient) Calls(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *FakeClient) do(ctx context.Context, endpoint string) (any, error) {
	f.mu.Lock()
	f.calls[endpoint]++
	hook := f.Hook
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, endpoint); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[endpoint]; ok {
		return nil, err
	}
	return f.payloads[endpoint], nil
}

func (f *FakeClient) GetOrganizationInfo(ctx context.Context) (any, error) {
	return f.do(ctx, api.EndpointOrganization)
}

func (f *FakeClient) ListPartnerDevices(ctx context.Context) (any, error) {
	return f.do(ctx, api.EndpointPartnerDevices)
}

func (f *FakeClient) ListDevices(ctx context.Context) (any, error) {
	return f.do(ctx, api.EndpointDevices)
}

func (f *FakeClient) ListSpaces(ctx context.Context) (any, error) {
	return f.do(ctx, api.EndpointSpaces)
}

func (f *FakeClient) ListIncidents(ctx context.Context) (any, error) {
	return f.do(ctx, api.EndpointIncidents)
}

func (f *FakeClient) ListTickets(ctx context.Context) (any, error) {
	return f.do(ctx, api.EndpointTickets)
}
