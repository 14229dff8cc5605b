package model

import (
	"time"

	"xytectl/internal/frame"
	"xytectl/internal/headless"
	"xytectl/internal/screen"
	"xytectl/internal/screenruntime"
	"xytectl/pkg/logging"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Constants for UI
const (
	MaxActivityLogLines = 1000
	// ActivityLogHeight is how many log lines the view shows under the panels.
	ActivityLogHeight = 4
	DefaultStatusTTL  = 3 * time.Second
)

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Tab         key.Binding
	ShiftTab    key.Binding
	Up          key.Binding
	Down        key.Binding
	Refresh     key.Binding
	CopyFrame   key.Binding
	Help        key.Binding
	ToggleDebug key.Binding
	Quit        key.Binding
}

// ShortHelp lists the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Refresh, k.Help, k.Quit}
}

// FullHelp lists the bindings of the help overlay, one column per group.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Tab, k.ShiftTab, k.Up, k.Down},
		{k.Refresh, k.CopyFrame, k.ToggleDebug, k.Help, k.Quit},
	}
}

// Model is the state of the interactive UI. The controller owns mutation;
// the view only reads it.
type Model struct {
	// Terminal dimensions
	Width  int
	Height int

	QuitApp   bool
	DebugMode bool
	ShowHelp  bool

	// Requested is the tab the user is on. Served is what the last completion
	// actually rendered, which differs while setup is required.
	Requested  screen.ID
	Served     screen.ID
	ActivePane int
	Selected   int
	Filter     string

	// Latest runtime output
	Frame      *frame.Frame
	Outcome    *headless.Outcome
	RefreshErr error
	Runtime    screenruntime.Status
	ErrorStorm screenruntime.ErrorStorm

	// Status bar
	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	// Logging
	ActivityLog []string
	LogChannel  <-chan logging.LogEntry

	Keys    KeyMap
	Spinner spinner.Model
}

// NewLogEntryMsg carries one entry from the logger's TUI channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// RefreshCompletedMsg carries a completion the runtime accepted as current.
type RefreshCompletedMsg struct {
	Completion screenruntime.Completion[headless.Outcome]
}

// RefreshTickMsg fires the periodic refresh.
type RefreshTickMsg struct {
	At time.Time
}

// ClearStatusBarMsg clears the transient status bar message.
type ClearStatusBarMsg struct{}

// SetStatusMessage shows message until clearAfter elapses or another message
// replaces it.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// ClearStatusMessage drops the status message without cancelling its timer.
func (m *Model) ClearStatusMessage() {
	m.StatusBarMessage = ""
	m.StatusBarClearCancel = nil
}

// Panes returns the pane ids of the served screen.
func (m *Model) Panes() []string {
	return screen.Panes(m.Served)
}

// ActivePaneID returns the focused pane, or "" when the screen has none.
func (m *Model) ActivePaneID() string {
	panes := m.Panes()
	if len(panes) == 0 {
		return ""
	}
	return panes[m.ActivePane%len(panes)]
}

// AppendActivityLog adds line and keeps the log bounded.
func (m *Model) AppendActivityLog(line string) {
	m.ActivityLog = append(m.ActivityLog, line)
	if over := len(m.ActivityLog) - MaxActivityLogLines; over > 0 {
		m.ActivityLog = m.ActivityLog[over:]
	}
}

// Refreshing reports whether a refresh is in flight.
func (m *Model) Refreshing() bool {
	return m.Runtime.RefreshInFlight
}
