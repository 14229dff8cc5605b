package screen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"setup", "config", "dashboard", "spaces", "devices", "incidents", "tickets", "copilot"},
		TabOrderStrings())

	order := TabOrder()
	order[0] = "mutated"
	assert.Equal(t, Setup, TabOrder()[0], "TabOrder must return a copy")
}

func TestIsOperational(t *testing.T) {
	assert.False(t, IsOperational(Setup))
	assert.False(t, IsOperational(Config))
	assert.False(t, IsOperational("nope"))
	for _, id := range []ID{Dashboard, Spaces, Devices, Incidents, Tickets, Copilot} {
		assert.True(t, IsOperational(id), id)
	}
}

func TestNeighbor(t *testing.T) {
	tests := []struct {
		name     string
		from     ID
		delta    int
		want     ID
		boundary string
	}{
		{"right from setup", Setup, 1, Config, ""},
		{"left at start", Setup, -1, Setup, "left"},
		{"right at end", Copilot, 1, Copilot, "right"},
		{"left from devices", Devices, -1, Spaces, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, boundary := Neighbor(tt.from, tt.delta)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.boundary, boundary)
		})
	}
}

func TestParse(t *testing.T) {
	id, err := Parse(" Dashboard ")
	require.NoError(t, err)
	assert.Equal(t, Dashboard, id)

	_, err = Parse("dashbord")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownScreen))
	assert.Contains(t, err.Error(), `did you mean "dashboard"`)

	_, err = Parse("zzzzzzzzzzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: setup")
}

func TestPanes(t *testing.T) {
	assert.Equal(t, "stats", DefaultPane(Dashboard))
	assert.Equal(t, []string{"list", "detail"}, Panes(Devices))
	assert.Equal(t, "", DefaultPane("unknown"))
}
