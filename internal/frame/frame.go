// Package frame assembles and writes headless protocol frames.
//
// A frame is one versioned snapshot of a screen. Frames of one Emitter share a
// session id and carry sequence numbers 0, 1, 2, ... in emission order.
package frame

import (
	"time"

	"xytectl/internal/connectivity"
	"xytectl/internal/readiness"
	"xytectl/internal/retry"
	"xytectl/internal/screen"
	"xytectl/internal/tablefmt"
)

// Protocol constants.
const (
	SchemaVersion  = "xyte.headless.frame.v1"
	ModeHeadless   = "headless"
	NavigationMode = "pane-focus"
	Logo           = "[x]yte"
)

// Input states.
const (
	InputIdle  = "idle"
	InputModal = "modal"
	InputBusy  = "busy"
)

// Transition states.
const (
	TransitionIdle      = "idle"
	TransitionSwitching = "switching"
)

// RefreshState is the refresh phase reported in meta.refreshState.
type RefreshState string

const (
	RefreshIdle     RefreshState = "idle"
	RefreshLoading  RefreshState = "loading"
	RefreshRetrying RefreshState = "retrying"
	RefreshError    RefreshState = "error"
)

// Render safety values.
const (
	RenderOK        = "ok"
	RenderTruncated = "truncated"
)

// Frame is one emitted unit of state. Frames are not modified after Build.
type Frame struct {
	SchemaVersion string  `json:"schemaVersion"`
	Timestamp     string  `json:"timestamp"`
	SessionID     string  `json:"sessionId"`
	Sequence      int     `json:"sequence"`
	Mode          string  `json:"mode"`
	Screen        string  `json:"screen"`
	Title         string  `json:"title"`
	Status        string  `json:"status"`
	TenantID      string  `json:"tenantId,omitempty"`
	MotionEnabled bool    `json:"motionEnabled"`
	MotionPhase   float64 `json:"motionPhase"`
	Logo          string  `json:"logo"`
	Panels        []Panel `json:"panels"`
	Meta          Meta    `json:"meta"`
}

// Contract echoes the protocol versions a consumer must understand.
type Contract struct {
	FrameVersion   string `json:"frameVersion"`
	TableFormat    string `json:"tableFormat"`
	NavigationMode string `json:"navigationMode"`
}

// Meta is the auxiliary state of a frame.
type Meta struct {
	Startup         bool         `json:"startup,omitempty"`
	InputState      string       `json:"inputState"`
	QueueDepth      int          `json:"queueDepth"`
	DroppedEvents   int64        `json:"droppedEvents"`
	TransitionState string       `json:"transitionState"`
	RefreshState    RefreshState `json:"refreshState"`
	NavigationMode  string       `json:"navigationMode"`
	ActivePane      string       `json:"activePane"`
	AvailablePanes  []string     `json:"availablePanes"`
	TabID           string       `json:"tabId"`
	TabOrder        []string     `json:"tabOrder"`
	TabNavBoundary  *string      `json:"tabNavBoundary"`
	RenderSafety    string       `json:"renderSafety"`
	TableFormat     string       `json:"tableFormat"`
	Contract        Contract     `json:"contract"`

	Readiness      *readiness.Result    `json:"readiness,omitempty"`
	Connection     *connectivity.Result `json:"connection,omitempty"`
	Retry          *retry.State         `json:"retry,omitempty"`
	Blocking       string               `json:"blocking,omitempty"`
	RedirectedFrom string               `json:"redirectedFrom,omitempty"`
}

// Envelope is everything about a frame except its identity fields.
type Envelope struct {
	Screen   screen.ID
	TenantID string
	Status   string
	Panels   []Panel
	Startup  bool

	InputState      string
	TransitionState string
	RefreshState    RefreshState
	QueueDepth      int
	DroppedEvents   int64
	ActivePane      string
	TabNavBoundary  string
	RenderTruncated bool
	MotionEnabled   bool
	MotionPhase     float64

	Readiness      *readiness.Result
	Connection     *connectivity.Result
	Retry          *retry.State
	Blocking       string
	RedirectedFrom screen.ID
}

// Title returns the frame title for a screen.
func Title(id screen.ID) string {
	return "Xyte · " + screen.Title(id)
}

// assemble fills defaults and builds the frame body.
func assemble(env Envelope, sessionID string, sequence int, at time.Time) Frame {
	panels := env.Panels
	if panels == nil {
		panels = []Panel{}
	}
	input := env.InputState
	if input == "" {
		input = InputIdle
	}
	transition := env.TransitionState
	if transition == "" {
		transition = TransitionIdle
	}
	refresh := env.RefreshState
	if refresh == "" {
		refresh = RefreshIdle
	}
	pane := env.ActivePane
	if pane == "" {
		pane = screen.DefaultPane(env.Screen)
	}
	panes := screen.Panes(env.Screen)
	if panes == nil {
		panes = []string{}
	}
	safety := RenderOK
	if env.RenderTruncated {
		safety = RenderTruncated
	}
	var boundary *string
	if env.TabNavBoundary != "" {
		b := env.TabNavBoundary
		boundary = &b
	}

	return Frame{
		SchemaVersion: SchemaVersion,
		Timestamp:     at.UTC().Format(time.RFC3339Nano),
		SessionID:     sessionID,
		Sequence:      sequence,
		Mode:          ModeHeadless,
		Screen:        string(env.Screen),
		Title:         Title(env.Screen),
		Status:        env.Status,
		TenantID:      env.TenantID,
		MotionEnabled: env.MotionEnabled,
		MotionPhase:   env.MotionPhase,
		Logo:          Logo,
		Panels:        panels,
		Meta: Meta{
			Startup:         env.Startup,
			InputState:      input,
			QueueDepth:      env.QueueDepth,
			DroppedEvents:   env.DroppedEvents,
			TransitionState: transition,
			RefreshState:    refresh,
			NavigationMode:  NavigationMode,
			ActivePane:      pane,
			AvailablePanes:  panes,
			TabID:           string(env.Screen),
			TabOrder:        screen.TabOrderStrings(),
			TabNavBoundary:  boundary,
			RenderSafety:    safety,
			TableFormat:     tablefmt.Format,
			Contract: Contract{
				FrameVersion:   SchemaVersion,
				TableFormat:    tablefmt.Format,
				NavigationMode: NavigationMode,
			},
			Readiness:      env.Readiness,
			Connection:     env.Connection,
			Retry:          env.Retry,
			Blocking:       env.Blocking,
			RedirectedFrom: string(env.RedirectedFrom),
		},
	}
}

// StatusPhrase is the human status line of a frame.
func StatusPhrase(refresh RefreshState, r *readiness.Result, redirected bool) string {
	if redirected {
		return "Setup required"
	}
	switch refresh {
	case RefreshLoading:
		return "Loading…"
	case RefreshRetrying:
		return "Retrying…"
	case RefreshError:
		return "Refresh failed"
	}
	if r != nil && r.State == readiness.StateDegraded {
		return "Degraded connectivity"
	}
	if r != nil && r.State == readiness.StateNeedsSetup {
		return "Setup required"
	}
	return "Ready"
}
