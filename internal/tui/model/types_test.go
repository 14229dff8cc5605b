package model

import (
	"fmt"
	"testing"
	"time"

	"xytectl/internal/screen"
	"xytectl/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeModel(t *testing.T) {
	m := InitializeModel("bogus", false, nil)
	assert.Equal(t, screen.Dashboard, m.Requested)
	assert.Equal(t, -1, m.Selected)

	m = InitializeModel(screen.Devices, true, nil)
	assert.Equal(t, screen.Devices, m.Served)
	assert.True(t, m.DebugMode)
}

func TestModel_ActivePaneID(t *testing.T) {
	tests := []struct {
		name   string
		served screen.ID
		pane   int
		want   string
	}{
		{"default pane", screen.Devices, 0, "list"},
		{"second pane", screen.Devices, 1, "detail"},
		{"wraps", screen.Copilot, 2, "prompt"},
		{"dashboard", screen.Dashboard, 1, "incidents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{Served: tt.served, ActivePane: tt.pane}
			assert.Equal(t, tt.want, m.ActivePaneID())
		})
	}
}

func TestModel_AppendActivityLogIsBounded(t *testing.T) {
	m := &Model{}
	for i := 0; i < MaxActivityLogLines+10; i++ {
		m.AppendActivityLog(fmt.Sprintf("line %d", i))
	}
	require.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.Equal(t, "line 10", m.ActivityLog[0])
}

func TestModel_SetStatusMessage(t *testing.T) {
	m := &Model{}
	first := m.SetStatusMessage("one", StatusBarInfo, time.Millisecond)
	firstCancel := m.StatusBarClearCancel
	second := m.SetStatusMessage("two", StatusBarError, time.Millisecond)

	assert.Equal(t, "two", m.StatusBarMessage)
	assert.Equal(t, StatusBarError, m.StatusBarMessageType)

	_, open := <-firstCancel
	assert.False(t, open, "replacing a message cancels the previous timer")
	assert.Nil(t, first(), "a cancelled timer clears nothing")
	assert.Equal(t, ClearStatusBarMsg{}, second())
}

func TestListenForLogEntriesCmd(t *testing.T) {
	assert.Nil(t, ListenForLogEntriesCmd(nil))

	ch := make(chan logging.LogEntry, 1)
	ch <- logging.LogEntry{Message: "hello"}
	msg := ListenForLogEntriesCmd(ch)()
	entry, ok := msg.(NewLogEntryMsg)
	require.True(t, ok)
	assert.Equal(t, "hello", entry.Entry.Message)

	close(ch)
	assert.Nil(t, ListenForLogEntriesCmd(ch)())
}
