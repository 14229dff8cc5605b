// Package headless drives the screen runtime without a terminal and writes
// protocol frames for automated consumers.
package headless

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/readiness"
	"xytectl/internal/retry"
	"xytectl/internal/scene"
	"xytectl/internal/screen"
	"xytectl/internal/screenruntime"
	"xytectl/pkg/logging"
)

const subsystem = "Headless"

// DefaultInterval separates frames in follow mode when none is given.
const DefaultInterval = 5 * time.Second

// Deps are the collaborators of a Session.
type Deps struct {
	Gate    *readiness.Gate
	Emitter *frame.Emitter
	Retry   retry.Runner
	Scene   scene.Options
	Config  ConfigSummary
	Logger  *logging.Logger
	// Loader builds the API loader for a resolved credential.
	Loader func(c readiness.Credential) domain.Loader
}

// Request describes one headless run.
type Request struct {
	Screen            screen.ID
	Follow            bool
	Interval          time.Duration
	CheckConnectivity bool
	// Filter and Selected (1-based, 0 for none) apply to list screens.
	Filter   string
	Selected int
	// MaxFrames stops follow mode after that many runtime frames. Zero means
	// until the context ends.
	MaxFrames int
}

// Session owns the one screen runtime of a headless process.
type Session struct {
	deps    Deps
	fetcher *Fetcher
	log     *logging.SubLogger
	runtime *screenruntime.Runtime[Outcome]

	mu      sync.Mutex
	mounted screen.ID
	target  Target
	last    *screenruntime.Completion[Outcome]
}

// New creates a Session.
func New(ctx context.Context, deps Deps) *Session {
	if deps.Emitter == nil {
		deps.Emitter = frame.NewEmitter(nil)
	}
	s := &Session{
		deps: deps,
		fetcher: &Fetcher{
			Gate:   deps.Gate,
			Retry:  deps.Retry,
			Config: deps.Config,
			Loader: deps.Loader,
			Logger: deps.Logger,
		},
		log: deps.Logger.With(subsystem),
	}
	s.runtime = screenruntime.New(screenruntime.Options[Outcome]{
		Refresh: s.refresh,
		Apply:   s.apply,
		Context: ctx,
		Logger:  deps.Logger,
	})
	return s
}

// Status returns the runtime snapshot.
func (s *Session) Status() screenruntime.Status {
	return s.runtime.GetStatus()
}

// SessionID returns the frame session id.
func (s *Session) SessionID() string {
	return s.deps.Emitter.SessionID()
}

// Run emits a startup frame and then one runtime frame, or a frame per
// interval in follow mode. A consumer closing the output ends the run without
// error, as does ctx ending in follow mode.
func (s *Session) Run(ctx context.Context, req Request) error {
	if !screen.Valid(req.Screen) {
		return fmt.Errorf("%w: %q", screen.ErrUnknownScreen, req.Screen)
	}
	if _, err := s.deps.Emitter.Emit(s.startupEnvelope(req)); err != nil {
		return sinkResult(err)
	}

	interval := req.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	intent := screenruntime.IntentMount
	for n := 1; ; n++ {
		if _, err := s.frame(ctx, req, intent); err != nil {
			if req.Follow && ctx.Err() != nil {
				return nil
			}
			return sinkResult(err)
		}
		if !req.Follow || (req.MaxFrames > 0 && n >= req.MaxFrames) {
			return nil
		}
		intent = screenruntime.IntentFollow

		t := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
			s.log.Debug("follow stopped: %v", ctx.Err())
			return nil
		case <-t.C:
		}
	}
}

// Frame refreshes and emits one runtime frame for req.Screen.
func (s *Session) Frame(ctx context.Context, req Request) (frame.Frame, error) {
	if !screen.Valid(req.Screen) {
		return frame.Frame{}, fmt.Errorf("%w: %q", screen.ErrUnknownScreen, req.Screen)
	}
	return s.frame(ctx, req, screenruntime.IntentManual)
}

func (s *Session) frame(ctx context.Context, req Request, intent screenruntime.Intent) (frame.Frame, error) {
	sel := -1
	if req.Selected > 0 {
		sel = req.Selected - 1
	}

	s.mu.Lock()
	remount := s.mounted != req.Screen
	s.mounted = req.Screen
	s.target = Target{
		Screen:            req.Screen,
		CheckConnectivity: req.CheckConnectivity,
		View:              domain.ListView{Filter: req.Filter, Selected: sel},
	}
	s.last = nil
	s.mu.Unlock()

	if remount {
		s.runtime.NextMountToken()
		intent = screenruntime.IntentMount
	}
	s.runtime.RunRefresh(intent)
	if err := s.runtime.WaitIdle(ctx); err != nil {
		return frame.Frame{}, err
	}

	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	in := EnvelopeInput{
		Runtime: s.runtime.GetStatus(),
		Dropped: s.deps.Logger.Dropped(),
		Scene:   s.deps.Scene,
	}
	if last == nil {
		in.Missing = true
	} else {
		in.Outcome = last.Value
		in.Err = last.Err
		s.trackErrors(last)
	}
	return s.deps.Emitter.Emit(BuildEnvelope(in))
}

func (s *Session) trackErrors(c *screenruntime.Completion[Outcome]) {
	if c.Err == nil {
		s.runtime.ClearErrors()
		return
	}
	storm := s.runtime.RecordError(c.Err.Error())
	if storm.Suppressed() {
		s.log.Debug("repeated refresh error (%d in window)", storm.Count)
		return
	}
	s.log.Error(c.Err, "refresh of %s failed", c.Value.Decision.Screen)
}

func (s *Session) apply(c screenruntime.Completion[Outcome]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &c
}

func (s *Session) refresh(ctx context.Context, _ screenruntime.Intent) (Outcome, error) {
	s.mu.Lock()
	t := s.target
	s.mu.Unlock()
	return s.fetcher.Fetch(ctx, t)
}

func (s *Session) startupEnvelope(req Request) frame.Envelope {
	return frame.Envelope{
		Screen:       req.Screen,
		Startup:      true,
		Status:       "Starting",
		InputState:   frame.InputBusy,
		RefreshState: frame.RefreshLoading,
		Panels: []frame.Panel{frame.TextPanel("startup", "Starting",
			fmt.Sprintf("Session %s", s.deps.Emitter.SessionID()),
			fmt.Sprintf("Loading %s…", screen.Title(req.Screen)),
		)},
	}
}

func sinkResult(err error) error {
	if errors.Is(err, frame.ErrSinkClosed) {
		return nil
	}
	return err
}
