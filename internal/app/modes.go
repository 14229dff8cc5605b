package app

import (
	"context"
	"fmt"

	"xytectl/internal/agent"
	"xytectl/internal/frame"
	"xytectl/internal/headless"
	"xytectl/internal/tui/controller"
	"xytectl/internal/tui/design"
)

func newSession(ctx context.Context, svc *Services, writer frame.Writer) *headless.Session {
	return headless.New(ctx, headless.Deps{
		Gate:    svc.Gate,
		Emitter: frame.NewEmitter(writer),
		Retry:   svc.Retry,
		Scene:   svc.Scene,
		Config:  svc.Summary,
		Logger:  svc.Logger,
		Loader:  svc.Fetcher.Loader,
	})
}

// runHeadlessMode writes frames for the requested screen to cfg.Out.
func runHeadlessMode(ctx context.Context, cfg *Config, svc *Services) error {
	opts := cfg.Headless
	var writer frame.Writer
	switch opts.Format {
	case "", "json":
		writer = frame.NewNDJSONWriter(cfg.Out)
	case "text":
		writer = frame.NewTextWriter(cfg.Out)
	default:
		return fmt.Errorf("unknown output format %q (want json or text)", opts.Format)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = cfg.Xyte.Headless.FollowInterval
	}

	session := newSession(ctx, svc, writer)
	svc.Logger.Debug("Headless", "session %s serving %s", session.SessionID(), opts.Screen)
	return session.Run(ctx, headless.Request{
		Screen:            opts.Screen,
		Follow:            opts.Follow,
		Interval:          interval,
		CheckConnectivity: opts.CheckConnectivity || cfg.Xyte.Headless.CheckConnectivity,
		Filter:            opts.Filter,
		Selected:          opts.Selected,
	})
}

// runMCPMode serves the agent tools over stdio until the client disconnects.
func runMCPMode(ctx context.Context, cfg *Config, svc *Services) error {
	session := newSession(ctx, svc, nil)
	srv := agent.NewServer(session, cfg.Version, cfg.Xyte.Headless.CheckConnectivity, svc.Logger)
	svc.Logger.Info("Agent", "Serving MCP tools over stdio")
	return srv.Serve(ctx, cfg.In, cfg.Out)
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, svc *Services) error {
	design.Initialize(true)

	p := controller.NewProgram(ctx, controller.Deps{
		Fetcher:           svc.Fetcher,
		Emitter:           frame.NewEmitter(nil),
		Scene:             svc.Scene,
		Logger:            svc.Logger,
		Start:             cfg.Start,
		Interval:          cfg.Xyte.Headless.FollowInterval,
		CheckConnectivity: cfg.Xyte.Headless.CheckConnectivity,
		Debug:             cfg.Debug,
	})
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
