package controller

import (
	"fmt"

	"xytectl/internal/frame"
	"xytectl/internal/screen"
	"xytectl/internal/screenruntime"
	"xytectl/internal/tui/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func (a *AppModel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	m := a.model
	keys := m.Keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.QuitApp = true
		return tea.Quit

	case key.Matches(msg, keys.Help):
		m.ShowHelp = !m.ShowHelp
		return nil
	}

	if m.ShowHelp {
		if msg.Type == tea.KeyEsc {
			m.ShowHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Left):
		return a.switchTab(-1)
	case key.Matches(msg, keys.Right):
		return a.switchTab(1)
	case key.Matches(msg, keys.Tab):
		a.cyclePane(1)
	case key.Matches(msg, keys.ShiftTab):
		a.cyclePane(-1)
	case key.Matches(msg, keys.Up):
		a.moveSelection(-1)
	case key.Matches(msg, keys.Down):
		a.moveSelection(1)
	case key.Matches(msg, keys.Refresh):
		return a.requestRefresh()
	case key.Matches(msg, keys.CopyFrame):
		return a.copyFrame()
	case key.Matches(msg, keys.ToggleDebug):
		m.DebugMode = !m.DebugMode
		state := "off"
		if m.DebugMode {
			state = "on"
		}
		return m.SetStatusMessage("Debug log "+state, model.StatusBarInfo, model.DefaultStatusTTL)
	}
	return nil
}

func (a *AppModel) switchTab(delta int) tea.Cmd {
	m := a.model
	next, boundary := screen.Neighbor(m.Requested, delta)
	if next == m.Requested {
		if boundary == "" {
			return nil
		}
		return m.SetStatusMessage(fmt.Sprintf("Already at the %s-most tab", boundary), model.StatusBarWarning, model.DefaultStatusTTL)
	}

	m.Requested = next
	m.Selected = -1
	m.Filter = ""
	m.ActivePane = 0
	a.mount()
	return nil
}

func (a *AppModel) cyclePane(delta int) {
	m := a.model
	n := len(m.Panes())
	if n == 0 {
		return
	}
	m.ActivePane = ((m.ActivePane+delta)%n + n) % n
	a.render(false)
}

// moveSelection walks the list panel rows. Selection is local, so no fetch
// is needed to show the new detail.
func (a *AppModel) moveSelection(delta int) {
	m := a.model
	rows := listRows(m.Frame)
	if rows == 0 {
		return
	}
	sel := m.Selected + delta
	switch {
	case sel < -1:
		sel = -1
	case sel >= rows:
		sel = rows - 1
	}
	if sel == m.Selected {
		return
	}
	m.Selected = sel
	a.setTarget()
	a.render(false)
}

func listRows(f *frame.Frame) int {
	if f == nil {
		return 0
	}
	for _, p := range f.Panels {
		if p.ID == "list" && p.Table != nil {
			return len(p.Table.Rows)
		}
	}
	return 0
}

func (a *AppModel) requestRefresh() tea.Cmd {
	m := a.model
	started := a.runtime.RunRefresh(screenruntime.IntentManual)
	m.Runtime = a.runtime.GetStatus()
	if started {
		return m.SetStatusMessage("Refreshing…", model.StatusBarInfo, model.DefaultStatusTTL)
	}
	return m.SetStatusMessage("Refresh queued", model.StatusBarInfo, model.DefaultStatusTTL)
}

func (a *AppModel) copyFrame() tea.Cmd {
	m := a.model
	if m.Frame == nil {
		return m.SetStatusMessage("Nothing to copy yet", model.StatusBarWarning, model.DefaultStatusTTL)
	}
	b, err := frame.Pretty(*m.Frame)
	if err == nil {
		err = writeClipboard(string(b))
	}
	if err != nil {
		a.log.Error(err, "copy frame to clipboard")
		return m.SetStatusMessage("Copy failed: "+err.Error(), model.StatusBarError, model.DefaultStatusTTL)
	}
	return m.SetStatusMessage(fmt.Sprintf("Frame #%d copied to clipboard", m.Frame.Sequence), model.StatusBarSuccess, model.DefaultStatusTTL)
}
