package domain

import (
	"xytectl/internal/readiness"
	"xytectl/internal/screen"
)

// State is the normalized data behind one screen.
type State interface {
	ScreenID() screen.ID
}

// ListView carries the operator's filter and selection over a list screen.
type ListView struct {
	Filter   string `json:"filter,omitempty"`
	Selected int    `json:"selected"`
}

// SetupState drives the setup screen.
type SetupState struct {
	Readiness      readiness.Result `json:"readiness"`
	RedirectedFrom screen.ID        `json:"redirectedFrom,omitempty"`
}

// ConfigState summarizes the effective configuration.
type ConfigState struct {
	BaseURL      string           `json:"baseUrl"`
	ProfilesPath string           `json:"profilesPath"`
	ActiveTenant string           `json:"activeTenant,omitempty"`
	Tenants      []string         `json:"tenants"`
	Settings     map[string]any   `json:"settings"`
	Readiness    readiness.Result `json:"readiness"`
}

// DashboardState aggregates every listing for the overview.
type DashboardState struct {
	Organization Organization `json:"organization"`
	Devices      []Device     `json:"devices"`
	Spaces       []Space      `json:"spaces"`
	Incidents    []Incident   `json:"incidents"`
	Tickets      []Ticket     `json:"tickets"`
}

type SpacesState struct {
	ListView
	Spaces  []Space  `json:"spaces"`
	Devices []Device `json:"devices"`
}

type DevicesState struct {
	ListView
	Devices []Device `json:"devices"`
}

type IncidentsState struct {
	ListView
	Incidents []Incident `json:"incidents"`
}

type TicketsState struct {
	ListView
	Tickets []Ticket `json:"tickets"`
}

// CopilotState holds the prompt context offered to the assistant pane.
type CopilotState struct {
	Organization Organization `json:"organization"`
	Prompt       string       `json:"prompt,omitempty"`
	Transcript   []string     `json:"transcript"`
	Context      any          `json:"context,omitempty"`
}

func (SetupState) ScreenID() screen.ID     { return screen.Setup }
func (ConfigState) ScreenID() screen.ID    { return screen.Config }
func (DashboardState) ScreenID() screen.ID { return screen.Dashboard }
func (SpacesState) ScreenID() screen.ID    { return screen.Spaces }
func (DevicesState) ScreenID() screen.ID   { return screen.Devices }
func (IncidentsState) ScreenID() screen.ID { return screen.Incidents }
func (TicketsState) ScreenID() screen.ID   { return screen.Tickets }
func (CopilotState) ScreenID() screen.ID   { return screen.Copilot }
