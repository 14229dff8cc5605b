package headless

import (
	"context"
	"errors"

	"xytectl/internal/domain"
	"xytectl/internal/readiness"
	"xytectl/internal/retry"
	"xytectl/internal/screen"
	"xytectl/pkg/logging"
)

// ConfigSummary is what the config screen shows about the running setup.
type ConfigSummary struct {
	BaseURL      string
	ProfilesPath string
	Tenants      []string
	Settings     map[string]any
}

// Target is one screen request as the refresh function sees it.
type Target struct {
	Screen            screen.ID
	CheckConnectivity bool
	View              domain.ListView
}

// Outcome is the result of one refresh: what was served and the state behind it.
type Outcome struct {
	Decision  readiness.Decision
	Readiness readiness.Result
	State     domain.State
	Retry     retry.State
}

// Fetcher evaluates readiness, gates the requested screen, and loads the
// state of the screen actually served.
type Fetcher struct {
	Gate   *readiness.Gate
	Retry  retry.Runner
	Config ConfigSummary
	// Loader builds the API loader for a resolved credential.
	Loader func(c readiness.Credential) domain.Loader
	Logger *logging.Logger
}

// Fetch never fails for setup and config. For operational screens the
// returned Outcome is filled up to the failing step.
func (f *Fetcher) Fetch(ctx context.Context, t Target) (Outcome, error) {
	res := f.Gate.Evaluate(ctx, readiness.Options{CheckConnectivity: t.CheckConnectivity})
	d := readiness.Route(t.Screen, res)
	o := Outcome{Decision: d, Readiness: res}
	if d.Redirected() {
		f.Logger.Info(subsystem, "%s is not ready (%s); serving %s", d.RedirectedFrom, res.State, d.Screen)
	}

	switch d.Screen {
	case screen.Setup:
		o.State = domain.SetupState{Readiness: res, RedirectedFrom: d.RedirectedFrom}
		return o, nil
	case screen.Config:
		c := f.Config
		o.State = domain.ConfigState{
			BaseURL:      c.BaseURL,
			ProfilesPath: c.ProfilesPath,
			ActiveTenant: res.TenantID,
			Tenants:      c.Tenants,
			Settings:     c.Settings,
			Readiness:    res,
		}
		return o, nil
	}

	cred, ok := res.Credential()
	if !ok || f.Loader == nil {
		return o, errors.New("no credential resolved for an operational screen")
	}
	loader := f.Loader(cred)

	runner := f.Retry
	onRetry := runner.OnRetry
	runner.OnRetry = func(st retry.State, err error) {
		f.Logger.Warn(subsystem, "attempt %d for %s failed (%s), retrying in %dms: %v", st.Attempts, d.Screen, st.LastClass, *st.NextRetryMs, err)
		if onRetry != nil {
			onRetry(st, err)
		}
	}

	var state domain.State
	rs, err := runner.Do(ctx, func(ctx context.Context, _ int) error {
		var lerr error
		state, lerr = loader.Load(ctx, d.Screen)
		return lerr
	})
	o.Retry = rs
	if err != nil {
		return o, err
	}
	o.State = WithView(state, t.View)
	return o, nil
}

// WithView applies a filter and selection to list states.
func WithView(st domain.State, v domain.ListView) domain.State {
	switch t := st.(type) {
	case domain.SpacesState:
		t.ListView = v
		return t
	case domain.DevicesState:
		t.ListView = v
		return t
	case domain.IncidentsState:
		t.ListView = v
		return t
	case domain.TicketsState:
		t.ListView = v
		return t
	}
	return st
}
