// Package screen defines the screen identifiers shared by the TUI and the
// headless frame protocol.
package screen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ID identifies one screen (tab).
type ID string

const (
	Setup     ID = "setup"
	Config    ID = "config"
	Dashboard ID = "dashboard"
	Spaces    ID = "spaces"
	Devices   ID = "devices"
	Incidents ID = "incidents"
	Tickets   ID = "tickets"
	Copilot   ID = "copilot"
)

// ErrUnknownScreen is returned by Parse for identifiers outside TabOrder.
var ErrUnknownScreen = errors.New("unknown screen")

var tabOrder = []ID{Setup, Config, Dashboard, Spaces, Devices, Incidents, Tickets, Copilot}

var titles = map[ID]string{
	Setup:     "Setup",
	Config:    "Config",
	Dashboard: "Dashboard",
	Spaces:    "Spaces",
	Devices:   "Devices",
	Incidents: "Incidents",
	Tickets:   "Tickets",
	Copilot:   "Copilot",
}

// panes lists the navigable panes per screen. The first entry is the default focus.
var panes = map[ID][]string{
	Setup:     {"status", "actions"},
	Config:    {"profiles", "keys"},
	Dashboard: {"stats", "incidents"},
	Spaces:    {"list", "detail"},
	Devices:   {"list", "detail"},
	Incidents: {"list", "detail"},
	Tickets:   {"list", "detail"},
	Copilot:   {"prompt", "response"},
}

// TabOrder returns the full ordered list of screens.
func TabOrder() []ID {
	out := make([]ID, len(tabOrder))
	copy(out, tabOrder)
	return out
}

// TabOrderStrings is TabOrder as plain strings, the form frames carry.
func TabOrderStrings() []string {
	out := make([]string, len(tabOrder))
	for i, id := range tabOrder {
		out[i] = string(id)
	}
	return out
}

// IsOperational reports whether id needs readiness before it can render data.
func IsOperational(id ID) bool {
	return id != Setup && id != Config && Valid(id)
}

// Valid reports whether id is a known screen.
func Valid(id ID) bool {
	_, ok := titles[id]
	return ok
}

// Title returns the display title.
func Title(id ID) string {
	if t, ok := titles[id]; ok {
		return t
	}
	return string(id)
}

// Panes returns the panes of id.
func Panes(id ID) []string {
	p := panes[id]
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// DefaultPane returns the pane focused when id is mounted.
func DefaultPane(id ID) string {
	if p := panes[id]; len(p) > 0 {
		return p[0]
	}
	return ""
}

// Index returns the position of id in TabOrder, or -1.
func Index(id ID) int {
	for i, t := range tabOrder {
		if t == id {
			return i
		}
	}
	return -1
}

// Neighbor moves delta tabs from id. It clamps at either end and reports the
// boundary that was hit ("left", "right" or "").
func Neighbor(id ID, delta int) (ID, string) {
	idx := Index(id)
	if idx < 0 {
		return tabOrder[0], ""
	}
	next := idx + delta
	switch {
	case next < 0:
		return tabOrder[0], "left"
	case next >= len(tabOrder):
		return tabOrder[len(tabOrder)-1], "right"
	}
	return tabOrder[next], ""
}

// Parse validates a user supplied screen identifier.
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if Valid(id) {
		return id, nil
	}
	if hint := Suggest(s); hint != "" {
		return "", fmt.Errorf("%w %q, did you mean %q?", ErrUnknownScreen, s, hint)
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownScreen, s, strings.Join(TabOrderStrings(), ", "))
}

// Suggest returns the closest known screen id within edit distance 3, or "".
func Suggest(s string) ID {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	type candidate struct {
		id   ID
		dist int
	}
	var candidates []candidate
	for _, id := range tabOrder {
		d := levenshtein.ComputeDistance(s, string(id))
		if d <= 3 {
			candidates = append(candidates, candidate{id, d})
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	return candidates[0].id
}
