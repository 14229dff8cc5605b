package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_MissingKey(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", "  ", time.Second)

	_, err := c.GetOrganizationInfo(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.Equal(t, EndpointOrganization, apiErr.Endpoint)
}

func TestHTTPClient_DecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, EndpointDevices, r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"d1","online":true,"count":12}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "secret", time.Second)
	out, err := c.ListDevices(context.Background())
	require.NoError(t, err)

	m, ok := out.(map[string]any)
	require.True(t, ok)
	items := m["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, json.Number("12"), items[0].(map[string]any)["count"])
}

func TestHTTPClient_ResponseTooLarge(t *testing.T) {
	original := maxBodyBytes
	defer func() { maxBodyBytes = original }()
	maxBodyBytes = 16

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":["0123456789","0123456789"]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", time.Second)
	_, err := c.ListDevices(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotContains(t, err.Error(), "EOF")
}

func TestHTTPClient_BodyAtLimit(t *testing.T) {
	original := maxBodyBytes
	defer func() { maxBodyBytes = original }()
	body := `{"id":"d1"}`
	maxBodyBytes = int64(len(body))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	out, err := NewHTTPClient(srv.URL, "secret", time.Second).GetOrganizationInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "d1"}, out)
}

func TestHTTPClient_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error field", 403, `{"error":"forbidden tenant"}`, "forbidden tenant"},
		{"json message field", 429, `{"message":"slow down"}`, "slow down"},
		{"plain text", 500, `upstream exploded`, "upstream exploded"},
		{"empty body", 502, ``, "502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, "k", time.Second).ListTickets(context.Background())
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestHTTPClient_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := NewHTTPClient(srv.URL, "k", time.Second).ListSpaces(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out)
}
