package headless

import (
	"errors"

	"xytectl/internal/connectivity"
	"xytectl/internal/frame"
	"xytectl/internal/scene"
	"xytectl/internal/screen"
	"xytectl/internal/screenruntime"
)

// ErrDiscarded stands in for a refresh whose result never arrived.
var ErrDiscarded = errors.New("refresh result was discarded")

// EnvelopeInput is everything BuildEnvelope reads.
type EnvelopeInput struct {
	Outcome Outcome
	Err     error
	// Missing is set when no completion was applied for this frame.
	Missing bool
	Runtime screenruntime.Status
	Dropped int64
	Scene   scene.Options
}

// BuildEnvelope renders an outcome into a runtime frame envelope.
func BuildEnvelope(in EnvelopeInput) frame.Envelope {
	o := in.Outcome
	d := o.Decision
	res := o.Readiness

	env := frame.Envelope{
		Screen:         d.Screen,
		TenantID:       res.TenantID,
		DroppedEvents:  in.Dropped,
		TabNavBoundary: Boundary(d.Screen),
		Readiness:      &res,
		RedirectedFrom: d.RedirectedFrom,
	}
	if in.Runtime.RefreshQueued {
		env.QueueDepth = 1
	}
	if in.Runtime.RefreshInFlight {
		env.InputState = frame.InputBusy
	}
	if res.Connectivity.State != "" && res.Connectivity.State != connectivity.StateNotChecked {
		conn := res.Connectivity
		env.Connection = &conn
	}
	if d.Redirected() {
		env.Blocking = "setup required"
	}
	if o.Retry.Attempts > 0 {
		rs := o.Retry
		env.Retry = &rs
	}

	var sc scene.Scene
	switch {
	case in.Missing:
		env.RefreshState = frame.RefreshError
		sc = scene.Error(ErrDiscarded)
	case in.Err != nil:
		env.RefreshState = frame.RefreshError
		sc = scene.Error(in.Err)
	case in.Runtime.RefreshInFlight:
		env.RefreshState = frame.RefreshLoading
		sc = scene.Build(o.State, in.Scene)
	default:
		env.RefreshState = frame.RefreshIdle
		sc = scene.Build(o.State, in.Scene)
	}

	env.Panels = sc.Panels
	env.RenderTruncated = sc.Truncated
	env.Status = frame.StatusPhrase(env.RefreshState, &res, d.Redirected())
	return env
}

// Boundary reports whether id sits at either end of the tab order.
func Boundary(id screen.ID) string {
	order := screen.TabOrder()
	switch screen.Index(id) {
	case 0:
		return "left"
	case len(order) - 1:
		return "right"
	}
	return ""
}
