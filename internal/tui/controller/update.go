package controller

import (
	"fmt"

	"xytectl/internal/headless"
	"xytectl/internal/screenruntime"
	"xytectl/internal/tui/model"
	"xytectl/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *AppModel) dispatch(msg tea.Msg) tea.Cmd {
	m := a.model
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKeyMsg(msg))

	case model.RefreshCompletedMsg:
		cmds = append(cmds, a.handleRefreshCompleted(msg.Completion))

	case model.RefreshTickMsg:
		a.runtime.RunRefresh(screenruntime.IntentFollow)
		m.Runtime = a.runtime.GetStatus()
		cmds = append(cmds, a.scheduleRefreshTick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.Runtime = a.runtime.GetStatus()
		cmds = append(cmds, cmd)

	case model.ClearStatusBarMsg:
		m.ClearStatusMessage()

	case model.NewLogEntryMsg:
		handleNewLogEntry(m, msg)
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))
	}

	return tea.Batch(cmds...)
}

func (a *AppModel) handleRefreshCompleted(c screenruntime.Completion[headless.Outcome]) tea.Cmd {
	m := a.model
	if c.Token != a.runtime.MountToken() {
		a.runtime.DiscardStale(c.Token)
		m.Runtime = a.runtime.GetStatus()
		return nil
	}
	o := c.Value
	m.Outcome = &o
	m.RefreshErr = c.Err
	if o.Decision.Screen != "" && o.Decision.Screen != m.Served {
		m.Served = o.Decision.Screen
		m.ActivePane = 0
	}

	cmd := a.trackErrors(c)
	a.render(true)
	return cmd
}

// trackErrors announces a failure once and afterwards only bumps the counter
// while the same message keeps repeating inside the storm window.
func (a *AppModel) trackErrors(c screenruntime.Completion[headless.Outcome]) tea.Cmd {
	m := a.model
	if c.Err == nil {
		a.runtime.ClearErrors()
		m.ErrorStorm = screenruntime.ErrorStorm{}
		return nil
	}

	storm := a.runtime.RecordError(c.Err.Error())
	m.ErrorStorm = storm
	if storm.Suppressed() {
		return m.SetStatusMessage(fmt.Sprintf("Refresh failed: %s (×%d)", storm.Message, storm.Count), model.StatusBarError, model.DefaultStatusTTL)
	}
	a.log.Error(c.Err, "refresh of %s failed", m.Served)
	return m.SetStatusMessage("Refresh failed: "+storm.Message, model.StatusBarError, model.DefaultStatusTTL)
}

func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) {
	entry := msg.Entry
	if entry.Level < logging.LevelInfo && !m.DebugMode {
		return
	}
	line := fmt.Sprintf("%s [%s] [%s] %s",
		entry.Timestamp.Format("15:04:05.000"),
		entry.Level.String(),
		entry.Subsystem,
		entry.Message)
	if entry.Err != nil {
		line += ": " + entry.Err.Error()
	}
	m.AppendActivityLog(line)
}
