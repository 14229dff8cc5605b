package controller

import (
	"context"
	"sync"
	"time"

	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/headless"
	"xytectl/internal/screenruntime"
	"xytectl/internal/tui/model"
	"xytectl/internal/tui/view"
	"xytectl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

const controllerSubsystem = "TUI"

// AppModel is the bubbletea model. It owns the screen runtime and is the
// only writer of model.Model.
type AppModel struct {
	model   *model.Model
	deps    Deps
	log     *logging.SubLogger
	runtime *screenruntime.Runtime[headless.Outcome]
	send    func(tea.Msg)

	mu     sync.Mutex
	target headless.Target
}

// NewAppModel creates the app model. Nothing is fetched before Init.
func NewAppModel(ctx context.Context, deps Deps) *AppModel {
	if deps.Emitter == nil {
		deps.Emitter = frame.NewEmitter(nil)
	}
	a := &AppModel{
		model: model.InitializeModel(deps.Start, deps.Debug, deps.Logger.Entries()),
		deps:  deps,
		log:   deps.Logger.With(controllerSubsystem),
		send:  func(tea.Msg) {},
	}
	a.runtime = screenruntime.New(screenruntime.Options[headless.Outcome]{
		Refresh: a.refresh,
		Apply:   a.apply,
		Context: ctx,
		Logger:  deps.Logger,
	})
	return a
}

// Init mounts the first screen and starts the background listeners.
func (a *AppModel) Init() tea.Cmd {
	a.mount()
	return tea.Batch(
		a.model.Spinner.Tick,
		model.ListenForLogEntriesCmd(a.model.LogChannel),
		a.scheduleRefreshTick(),
	)
}

// Update handles one message.
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.dispatch(msg)
	if a.model.QuitApp {
		return a, tea.Quit
	}
	return a, cmd
}

// View renders the current model.
func (a *AppModel) View() string {
	if a.model.QuitApp {
		return ""
	}
	return view.Render(a.model)
}

// Model exposes the UI state for tests.
func (a *AppModel) Model() *model.Model {
	return a.model
}

// mount starts a new mount generation for the requested tab. Completions
// from earlier tabs are discarded by the runtime.
func (a *AppModel) mount() {
	a.runtime.NextMountToken()
	a.setTarget()
	a.runtime.RunRefresh(screenruntime.IntentMount)
	a.model.Runtime = a.runtime.GetStatus()
	a.log.Debug("mounted %s (token=%d)", a.model.Requested, a.model.Runtime.MountToken)
}

func (a *AppModel) setTarget() {
	m := a.model
	a.mu.Lock()
	defer a.mu.Unlock()
	a.target = headless.Target{
		Screen:            m.Requested,
		CheckConnectivity: a.deps.CheckConnectivity,
		View:              a.listView(),
	}
}

func (a *AppModel) listView() domain.ListView {
	return domain.ListView{Filter: a.model.Filter, Selected: a.model.Selected}
}

func (a *AppModel) refresh(ctx context.Context, _ screenruntime.Intent) (headless.Outcome, error) {
	a.mu.Lock()
	t := a.target
	a.mu.Unlock()
	return a.deps.Fetcher.Fetch(ctx, t)
}

// apply runs on the refresh goroutine and hands the completion to the event loop.
func (a *AppModel) apply(c screenruntime.Completion[headless.Outcome]) {
	a.send(model.RefreshCompletedMsg{Completion: c})
}

func (a *AppModel) scheduleRefreshTick() tea.Cmd {
	if a.deps.Interval <= 0 {
		return nil
	}
	return tea.Tick(a.deps.Interval, func(t time.Time) tea.Msg {
		return model.RefreshTickMsg{At: t}
	})
}

// render rebuilds the current frame from the last outcome and the local view state.
// render rebuilds the frame. Only an applied completion takes a new sequence
// number; local pane and selection changes reuse the current one.
func (a *AppModel) render(fresh bool) {
	m := a.model
	m.Runtime = a.runtime.GetStatus()
	if m.Outcome == nil {
		return
	}
	o := *m.Outcome
	o.State = headless.WithView(o.State, a.listView())

	env := headless.BuildEnvelope(headless.EnvelopeInput{
		Outcome: o,
		Err:     m.RefreshErr,
		Runtime: m.Runtime,
		Dropped: a.deps.Logger.Dropped(),
		Scene:   a.deps.Scene,
	})
	env.ActivePane = m.ActivePaneID()
	var f frame.Frame
	if fresh || m.Frame == nil {
		f = a.deps.Emitter.Build(env)
	} else {
		f = a.deps.Emitter.Rebuild(*m.Frame, env)
	}
	m.Frame = &f
}
