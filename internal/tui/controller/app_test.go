package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"xytectl/internal/api"
	"xytectl/internal/api/apitest"
	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/headless"
	"xytectl/internal/profile"
	"xytectl/internal/readiness"
	"xytectl/internal/retry"
	"xytectl/internal/screen"
	"xytectl/internal/tui/model"
	"xytectl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app  *AppModel
	fake *apitest.FakeClient
	msgs chan tea.Msg
}

func newTestApp(t *testing.T, active string, start screen.ID) *testApp {
	t.Helper()
	store := profile.NewStore(active, []profile.Tenant{{
		ID: "acme",
		KeySlots: map[string][]profile.KeySlot{
			profile.ProviderOrg: {{ID: "primary", Active: true}},
		},
	}})
	secrets := profile.NewMemorySecretStore()
	secrets.Set("acme", profile.ProviderOrg, "primary", "sk-test")

	fake := apitest.NewFakeClient().
		Set(api.EndpointOrganization, map[string]any{"id": "org-1", "name": "Acme"}).
		Set(api.EndpointSpaces, []any{map[string]any{"id": "sp-1", "name": "HQ"}}).
		Set(api.EndpointDevices, []any{
			map[string]any{"id": "dev-1", "name": "Lobby", "status": "online"},
			map[string]any{"id": "dev-2", "name": "Hall", "status": "offline"},
		})

	fetcher := &headless.Fetcher{
		Gate: &readiness.Gate{
			Profiles:  store,
			Secrets:   secrets,
			NewClient: func(readiness.Credential) api.Client { return fake },
		},
		Retry: retry.Runner{
			Policy: retry.Policy{MaxAttempts: 1},
			Sleep:  func(context.Context, time.Duration) error { return nil },
		},
		Loader: func(readiness.Credential) domain.Loader { return domain.Loader{Client: fake} },
		Logger: logging.Discard(),
	}

	app := NewAppModel(context.Background(), Deps{
		Fetcher: fetcher,
		Emitter: frame.NewEmitter(nil),
		Logger:  logging.Discard(),
		Start:   start,
	})
	msgs := make(chan tea.Msg, 16)
	app.send = func(msg tea.Msg) { msgs <- msg }
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &testApp{app: app, fake: fake, msgs: msgs}
}

// settle feeds the next refresh completion into the app.
func (ta *testApp) settle(t *testing.T) model.RefreshCompletedMsg {
	t.Helper()
	select {
	case msg := <-ta.msgs:
		done, ok := msg.(model.RefreshCompletedMsg)
		require.True(t, ok, "unexpected message %T", msg)
		ta.app.Update(done)
		return done
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a refresh completion")
	}
	return model.RefreshCompletedMsg{}
}

func press(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_RedirectsToSetupWithoutTenant(t *testing.T) {
	ta := newTestApp(t, "", screen.Dashboard)
	ta.app.Init()
	ta.settle(t)

	m := ta.app.Model()
	assert.Equal(t, screen.Dashboard, m.Requested)
	assert.Equal(t, screen.Setup, m.Served)
	require.NotNil(t, m.Frame)
	assert.Equal(t, "setup", m.Frame.Screen)
	assert.Equal(t, "dashboard", m.Frame.Meta.RedirectedFrom)
	assert.Equal(t, frame.ModeHeadless, m.Frame.Mode)
	assert.Equal(t, "Setup required", m.Frame.Status)
	assert.Equal(t, 0, ta.fake.Calls(api.EndpointOrganization))
}

func TestApp_TabSwitchRemounts(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Dashboard)
	ta.app.Init()
	ta.settle(t)
	token := ta.app.runtime.MountToken()

	ta.app.Update(press("right"))
	m := ta.app.Model()
	assert.Equal(t, screen.Spaces, m.Requested)
	assert.Equal(t, token+1, ta.app.runtime.MountToken())

	ta.settle(t)
	assert.Equal(t, screen.Spaces, m.Served)
	require.NotNil(t, m.Frame)
	assert.Equal(t, "spaces", m.Frame.Screen)
	assert.Equal(t, "list", m.Frame.Meta.ActivePane)

	ta.app.Update(press("l"))
	assert.Equal(t, screen.Devices, m.Requested)
	ta.settle(t)
	assert.Equal(t, "devices", m.Frame.Screen)
}

func TestApp_BoundaryDoesNotRemount(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Setup)
	ta.app.Init()
	ta.settle(t)
	token := ta.app.runtime.MountToken()

	ta.app.Update(press("left"))
	m := ta.app.Model()
	assert.Equal(t, screen.Setup, m.Requested)
	assert.Equal(t, token, ta.app.runtime.MountToken())
	assert.Contains(t, m.StatusBarMessage, "left")
	assert.Equal(t, model.StatusBarWarning, m.StatusBarMessageType)
	require.NotNil(t, m.Frame.Meta.TabNavBoundary)
	assert.Equal(t, "left", *m.Frame.Meta.TabNavBoundary)
}

func TestApp_DiscardsCompletionFromPreviousTab(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Dashboard)
	release := make(chan struct{})
	var once sync.Once
	ta.fake.Hook = func(ctx context.Context, endpoint string) error {
		if endpoint == api.EndpointOrganization {
			once.Do(func() { <-release })
		}
		return nil
	}

	ta.app.Init()
	require.Eventually(t, func() bool {
		return ta.fake.Calls(api.EndpointOrganization) == 1
	}, time.Second, 5*time.Millisecond)

	ta.app.Update(press("right"))
	close(release)

	done := ta.settle(t)
	assert.Equal(t, screen.Spaces, done.Completion.Value.Decision.Screen)
	assert.Equal(t, "spaces", ta.app.Model().Frame.Screen)

	require.NoError(t, ta.app.runtime.WaitIdle(context.Background()))
	assert.Equal(t, 1, ta.app.runtime.GetStatus().StaleDiscarded)
}

func TestApp_DropsCompletionQueuedBeforeTabSwitch(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Dashboard)
	ta.app.Init()

	var pending model.RefreshCompletedMsg
	select {
	case msg := <-ta.msgs:
		var ok bool
		pending, ok = msg.(model.RefreshCompletedMsg)
		require.True(t, ok, "unexpected message %T", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the dashboard completion")
	}

	ta.app.Update(press("right"))
	ta.app.Update(pending)

	m := ta.app.Model()
	assert.Equal(t, screen.Spaces, m.Requested)
	assert.Equal(t, screen.Dashboard, m.Served, "served screen is unchanged by the dropped completion")
	assert.Nil(t, m.Outcome)
	assert.Nil(t, m.Frame)
	assert.Equal(t, 1, ta.app.runtime.GetStatus().StaleDiscarded)

	done := ta.settle(t)
	assert.Equal(t, screen.Spaces, done.Completion.Value.Decision.Screen)
	require.NotNil(t, m.Frame)
	assert.Equal(t, "spaces", m.Frame.Screen)
	assert.Equal(t, 1, ta.app.runtime.GetStatus().StaleDiscarded)
}

func TestApp_RepeatedErrorsOnlyBumpCounter(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Devices)
	ta.fake.Fail(api.EndpointDevices, errors.New("connection refused"))

	ta.app.Init()
	ta.settle(t)
	m := ta.app.Model()
	assert.Equal(t, 1, m.ErrorStorm.Count)
	assert.Equal(t, "Refresh failed: connection refused", m.StatusBarMessage)
	assert.Equal(t, "error", m.Frame.Panels[0].ID)

	ta.app.Update(press("r"))
	ta.settle(t)
	assert.Equal(t, 2, m.ErrorStorm.Count)
	assert.Equal(t, "Refresh failed: connection refused (×2)", m.StatusBarMessage)

	ta.fake.Set(api.EndpointDevices, []any{})
	ta.app.Update(press("r"))
	ta.settle(t)
	assert.Zero(t, m.ErrorStorm.Count)
	assert.Nil(t, m.RefreshErr)
}

func TestApp_PaneFocusAndSelection(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Devices)
	ta.app.Init()
	ta.settle(t)
	m := ta.app.Model()

	ta.app.Update(press("tab"))
	assert.Equal(t, "detail", m.Frame.Meta.ActivePane)
	ta.app.Update(press("tab"))
	assert.Equal(t, "list", m.Frame.Meta.ActivePane)

	ta.app.Update(press("down"))
	assert.Equal(t, 0, m.Selected)
	ta.app.Update(press("j"))
	assert.Equal(t, 1, m.Selected)
	ta.app.Update(press("j"))
	assert.Equal(t, 1, m.Selected, "selection stops at the last row")

	var detail frame.Panel
	for _, p := range m.Frame.Panels {
		if p.ID == "detail" {
			detail = p
		}
	}
	require.NotNil(t, detail.Text)
	assert.Contains(t, detail.Text.Lines, `  "id": "dev-2",`)
}

func TestApp_LocalRerenderKeepsSequence(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		wantPane string
		wantSel  int
	}{
		{"pane cycle", []string{"tab"}, "detail", -1},
		{"pane cycle back", []string{"tab", "tab"}, "list", -1},
		{"selection", []string{"down", "j"}, "list", 1},
		{"pane and selection", []string{"tab", "down"}, "detail", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ta := newTestApp(t, "acme", screen.Devices)
			ta.app.Init()
			ta.settle(t)
			m := ta.app.Model()
			require.NotNil(t, m.Frame)
			seq := m.Frame.Sequence

			for _, k := range tc.keys {
				ta.app.Update(press(k))
			}
			assert.Equal(t, seq, m.Frame.Sequence)
			assert.Equal(t, tc.wantPane, m.Frame.Meta.ActivePane)
			assert.Equal(t, tc.wantSel, m.Selected)

			ta.app.Update(press("r"))
			ta.settle(t)
			assert.Equal(t, seq+1, m.Frame.Sequence, "an applied refresh takes the next sequence")
		})
	}
}

func TestApp_CopyFrame(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	ta := newTestApp(t, "acme", screen.Config)
	ta.app.Update(press("y"))
	assert.Equal(t, "Nothing to copy yet", ta.app.Model().StatusBarMessage)

	ta.app.Init()
	ta.settle(t)
	ta.app.Update(press("y"))
	m := ta.app.Model()
	assert.Equal(t, model.StatusBarSuccess, m.StatusBarMessageType)
	assert.Contains(t, copied, `"schemaVersion": "xyte.headless.frame.v1"`)
	assert.Contains(t, copied, `"screen": "config"`)

	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	ta.app.Update(press("y"))
	assert.Equal(t, model.StatusBarError, m.StatusBarMessageType)
}

func TestApp_HelpAndQuit(t *testing.T) {
	ta := newTestApp(t, "acme", screen.Setup)
	m := ta.app.Model()

	ta.app.Update(press("?"))
	assert.True(t, m.ShowHelp)
	ta.app.Update(press("right"))
	assert.Equal(t, screen.Setup, m.Requested, "navigation is disabled while help is shown")
	ta.app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ShowHelp)

	_, cmd := ta.app.Update(press("q"))
	assert.True(t, m.QuitApp)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, ta.app.View())
}

func TestHandleNewLogEntry(t *testing.T) {
	m := model.InitializeModel(screen.Setup, false, nil)
	at := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	handleNewLogEntry(m, model.NewLogEntryMsg{Entry: logging.LogEntry{Timestamp: at, Level: logging.LevelDebug, Subsystem: "TUI", Message: "hidden"}})
	assert.Empty(t, m.ActivityLog)

	handleNewLogEntry(m, model.NewLogEntryMsg{Entry: logging.LogEntry{
		Timestamp: at,
		Level:     logging.LevelError,
		Subsystem: "Headless",
		Message:   "refresh failed",
		Err:       errors.New("boom"),
	}})
	require.Len(t, m.ActivityLog, 1)
	assert.Equal(t, "03:04:05.006 [ERROR] [Headless] refresh failed: boom", m.ActivityLog[0])

	m.DebugMode = true
	handleNewLogEntry(m, model.NewLogEntryMsg{Entry: logging.LogEntry{Timestamp: at, Level: logging.LevelDebug, Subsystem: "TUI", Message: "shown"}})
	assert.Len(t, m.ActivityLog, 2)
}
