package scene

import (
	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/tablefmt"
)

// FromDashboardState renders fleet totals and the most recent open incidents.
func FromDashboardState(st domain.DashboardState, opts Options) Scene {
	online := 0
	for _, d := range st.Devices {
		if domain.DeviceOnline(d) {
			online++
		}
	}
	var open []domain.Incident
	for _, i := range st.Incidents {
		if i.Open() {
			open = append(open, i)
		}
	}
	openTickets := 0
	for _, t := range st.Tickets {
		if t.Open() {
			openTickets++
		}
	}

	devices := len(st.Devices)
	if devices == 0 && st.Organization.DeviceCount > 0 {
		devices = st.Organization.DeviceCount
	}
	spaces := len(st.Spaces)
	if spaces == 0 && st.Organization.SpaceCount > 0 {
		spaces = st.Organization.SpaceCount
	}

	name := st.Organization.Name
	if name == "" {
		name = "Organization"
	}
	stats := frame.StatsPanel("stats", name,
		frame.Stat{Label: "Devices", Value: count(devices)},
		frame.Stat{Label: "Online", Value: count(online)},
		frame.Stat{Label: "Spaces", Value: count(spaces)},
		frame.Stat{Label: "Open incidents", Value: count(len(open))},
		frame.Stat{Label: "Open tickets", Value: count(openTickets)},
	)

	if len(open) > dashboardRecent {
		open = open[:dashboardRecent]
	}
	cols := []tablefmt.Column{
		{Title: "ID", Width: idWidth, Mode: tablefmt.ModeMiddle},
		{Title: "Severity", Width: statusWidth, Mode: tablefmt.ModeEnd},
		{Title: "Title", Width: opts.cellWidth(), Mode: tablefmt.ModeEnd},
	}
	cells := make([][]any, 0, len(open))
	for _, i := range open {
		cells = append(cells, []any{orNA(i.ID), orNA(i.Severity), incidentTitle(i, opts)})
	}
	incidents := table("incidents", "Recent open incidents", cols, cells)

	return Scene{Panels: []frame.Panel{stats, incidents}}
}

func incidentTitle(i domain.Incident, opts Options) any {
	if !i.Recognized() && i.Title == "" {
		return opaqueLabel(i.Record, opts.cellWidth())
	}
	return orNA(i.Title)
}
