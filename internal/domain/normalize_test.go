package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"xytectl/internal/api"
	"xytectl/internal/api/apitest"
	"xytectl/internal/screen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElements(t *testing.T) {
	list := []any{map[string]any{"id": "a"}}
	tests := []struct {
		name    string
		payload any
		want    int
	}{
		{"nil", nil, 0},
		{"bare array", list, 1},
		{"data envelope", map[string]any{"data": list}, 1},
		{"nested envelope", map[string]any{"data": map[string]any{"items": []any{1, 2}}}, 2},
		{"single object", map[string]any{"id": "x"}, 1},
		{"scalar", "weird", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Elements(tt.payload), tt.want)
		})
	}
}

func TestNormalizeDevices(t *testing.T) {
	payload := map[string]any{"data": []any{
		map[string]any{
			"id":        json.Number("42"),
			"name":      "  Lobby Display ",
			"status":    "online",
			"space_id":  "sp-1",
			"is_online": "yes",
		},
		map[string]any{"label": "no id here"},
		"not-an-object",
	}}

	got := NormalizeDevices(payload)
	require.Len(t, got, 3)

	assert.True(t, got[0].Recognized())
	assert.Equal(t, "42", got[0].ID)
	assert.Equal(t, "Lobby Display", got[0].Name)
	assert.Equal(t, "sp-1", got[0].SpaceID)
	require.NotNil(t, got[0].Online)
	assert.True(t, *got[0].Online)
	assert.True(t, DeviceOnline(got[0]))

	assert.False(t, got[1].Recognized())
	assert.Equal(t, map[string]any{"label": "no id here"}, got[1].Raw())

	assert.Equal(t, KindOpaque, got[2].Kind)
	assert.Equal(t, "not-an-object", got[2].Raw())
	assert.False(t, DeviceOnline(got[2]))
}

func TestNormalizeOrganization(t *testing.T) {
	org := NormalizeOrganization(map[string]any{"data": map[string]any{
		"id": "org-1", "name": "Acme", "devices": []any{1, 2, 3}, "space_count": json.Number("4"),
	}})
	assert.True(t, org.Recognized())
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, 3, org.DeviceCount)
	assert.Equal(t, 4, org.SpaceCount)

	opaque := NormalizeOrganization([]any{"x"})
	assert.Equal(t, KindOpaque, opaque.Kind)
	assert.Equal(t, []any{"x"}, opaque.Raw())
}

func TestOpenStatus(t *testing.T) {
	assert.True(t, Incident{Status: "open"}.Open())
	assert.True(t, Incident{}.Open())
	assert.False(t, Incident{Status: "Resolved"}.Open())
	assert.False(t, Ticket{Status: "closed"}.Open())
}

func TestNormalizeIncidentsAndTickets(t *testing.T) {
	inc := NormalizeIncidents([]any{map[string]any{"id": "i1", "summary": "Projector offline", "severity": "high", "device": "42"}})
	require.Len(t, inc, 1)
	assert.Equal(t, "Projector offline", inc[0].Title)
	assert.Equal(t, "high", inc[0].Severity)
	assert.Equal(t, "42", inc[0].DeviceID)

	tk := NormalizeTickets(map[string]any{"tickets": []any{map[string]any{"number": 7.0, "title": "Replace lamp", "assigned_to": "sam"}}})
	require.Len(t, tk, 1)
	assert.Equal(t, "7", tk[0].ID)
	assert.Equal(t, "Replace lamp", tk[0].Subject)
	assert.Equal(t, "sam", tk[0].Assignee)
}

func TestLoader_Dashboard(t *testing.T) {
	fake := apitest.NewFakeClient().
		Set(api.EndpointOrganization, map[string]any{"id": "org-1", "name": "Acme"}).
		Set(api.EndpointDevices, []any{map[string]any{"id": "d1"}}).
		Set(api.EndpointSpaces, []any{}).
		Set(api.EndpointIncidents, []any{map[string]any{"id": "i1"}}).
		Set(api.EndpointTickets, nil)

	st, err := Loader{Client: fake}.Load(context.Background(), screen.Dashboard)
	require.NoError(t, err)
	dash, ok := st.(DashboardState)
	require.True(t, ok)
	assert.Equal(t, "Acme", dash.Organization.Name)
	assert.Len(t, dash.Devices, 1)
	assert.Len(t, dash.Incidents, 1)
	assert.Empty(t, dash.Tickets)
	assert.Equal(t, screen.Dashboard, dash.ScreenID())
}

func TestLoader_Errors(t *testing.T) {
	boom := errors.New("boom")
	fake := apitest.NewFakeClient().Fail(api.EndpointTickets, boom)

	_, err := Loader{Client: fake}.Load(context.Background(), screen.Tickets)
	assert.ErrorIs(t, err, boom)

	_, err = Loader{Client: fake}.Load(context.Background(), screen.Setup)
	assert.Error(t, err)

	_, err = Loader{}.Load(context.Background(), screen.Devices)
	assert.ErrorIs(t, err, api.ErrMissingAPIKey)
}

func TestLoader_ListViewStartsUnselected(t *testing.T) {
	fake := apitest.NewFakeClient().Set(api.EndpointDevices, []any{})
	st, err := Loader{Client: fake}.Load(context.Background(), screen.Devices)
	require.NoError(t, err)
	assert.Equal(t, -1, st.(DevicesState).Selected)
}
