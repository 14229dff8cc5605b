package controller

import (
	"context"
	"time"

	"xytectl/internal/frame"
	"xytectl/internal/headless"
	"xytectl/internal/scene"
	"xytectl/internal/screen"
	"xytectl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps are the collaborators of the interactive UI.
type Deps struct {
	Fetcher *headless.Fetcher
	Emitter *frame.Emitter
	Scene   scene.Options
	Logger  *logging.Logger

	Start             screen.ID
	Interval          time.Duration
	CheckConnectivity bool
	Debug             bool
}

// NewProgram creates the bubbletea program. Refresh completions reach the
// event loop through Program.Send.
func NewProgram(ctx context.Context, deps Deps) *tea.Program {
	app := NewAppModel(ctx, deps)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.send = p.Send
	return p
}
