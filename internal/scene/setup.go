package scene

import (
	"fmt"

	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/readiness"
	"xytectl/internal/safeview"
	"xytectl/internal/screen"
	"xytectl/internal/tablefmt"
)

// FromSetupState renders readiness, what is missing, and how to fix it.
func FromSetupState(st domain.SetupState, opts Options) Scene {
	r := st.Readiness
	var panels []frame.Panel

	if st.RedirectedFrom != "" {
		panels = append(panels, frame.TextPanel("redirect", "Setup required",
			fmt.Sprintf("%s needs setup before it can load.", screen.Title(st.RedirectedFrom))))
	}

	usable := 0
	for _, p := range r.Providers {
		if p.HasSecret {
			usable++
		}
	}
	tenant := r.TenantID
	if r.TenantName != "" && tenant != "" {
		tenant = fmt.Sprintf("%s (%s)", r.TenantName, r.TenantID)
	}
	panels = append(panels, frame.StatsPanel("status", "Readiness",
		frame.Stat{Label: "State", Value: string(r.State)},
		frame.Stat{Label: "Tenant", Value: tablefmt.SanitizePrintable(orNA(tenant))},
		frame.Stat{Label: "Providers ready", Value: fmt.Sprintf("%d/%d", usable, len(r.Providers))},
		frame.Stat{Label: "Connectivity", Value: string(r.Connectivity.State)},
	))

	missing := make([]string, 0, len(r.MissingItems))
	for _, m := range r.MissingItems {
		missing = append(missing, "- "+m)
	}
	if len(missing) == 0 {
		missing = append(missing, "Nothing missing.")
	}
	if r.Connectivity.Message != "" {
		missing = append(missing, "", "Last probe: "+tablefmt.SanitizePrintable(r.Connectivity.Message))
	}
	panels = append(panels, frame.TextPanel("missing", "Missing", missing...))

	panels = append(panels, actionsTable(r.RecommendedActions, opts))
	panels = append(panels, providersTable(r.Providers))
	return Scene{Panels: panels}
}

func actionsTable(actions []readiness.Action, opts Options) frame.Panel {
	cols := []tablefmt.Column{
		{Title: "Action", Width: 18, Mode: tablefmt.ModeEnd},
		{Title: "Next step", Width: opts.cellWidth() * 3, Mode: tablefmt.ModeEnd},
	}
	cells := make([][]any, 0, len(actions))
	for _, a := range actions {
		cells = append(cells, []any{a.ID, a.Label})
	}
	return table("actions", "Recommended actions", cols, cells)
}

func providersTable(providers []readiness.ProviderStatus) frame.Panel {
	cols := []tablefmt.Column{
		{Title: "Provider", Width: 14, Mode: tablefmt.ModeEnd},
		{Title: "Slots", Width: 5, Mode: tablefmt.ModeEnd},
		{Title: "Active slot", Width: 16, Mode: tablefmt.ModeMiddle},
		{Title: "Secret", Width: 6, Mode: tablefmt.ModeEnd},
	}
	cells := make([][]any, 0, len(providers))
	for _, p := range providers {
		cells = append(cells, []any{p.Provider, p.SlotCount, orNA(p.ActiveSlot), tablefmt.FormatBoolTag(p.HasSecret)})
	}
	return table("providers", "Credential providers", cols, cells)
}

// FromConfigState renders profiles, key slots, and effective settings.
func FromConfigState(st domain.ConfigState, opts Options) Scene {
	cols := []tablefmt.Column{
		{Title: "Tenant", Width: opts.cellWidth(), Mode: tablefmt.ModeMiddle},
		{Title: "Active", Width: 6, Mode: tablefmt.ModeEnd},
	}
	cells := make([][]any, 0, len(st.Tenants))
	for _, id := range st.Tenants {
		cells = append(cells, []any{id, tablefmt.FormatBoolTag(id == st.ActiveTenant)})
	}
	profiles := table("profiles", "Profiles ("+st.ProfilesPath+")", cols, cells)

	keys := providersTable(st.Readiness.Providers)
	keys.ID = "keys"
	keys.Title = "Key slots"

	settings := map[string]any{"api.baseUrl": st.BaseURL}
	for k, v := range st.Settings {
		settings[k] = v
	}
	p := safeview.PreviewLines(settings, opts.Render)

	return Scene{
		Panels:    []frame.Panel{profiles, keys, frame.TextPanel("settings", "Effective settings", p.Lines...)},
		Truncated: p.Truncated,
	}
}
