package scene

import (
	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/safeview"
	"xytectl/internal/tablefmt"
)

// listing is the shared shape of the list+detail screens.
type listing struct {
	noun   string
	hint   string
	view   domain.ListView
	cols   []tablefmt.Column
	total  int
	record func(i int) domain.Record
	cells  func(i int) []any
}

func (l listing) build(opts Options) Scene {
	var shown []int
	for i := 0; i < l.total; i++ {
		if matches(l.record(i), l.view.Filter) {
			shown = append(shown, i)
		}
	}

	cells := make([][]any, 0, len(shown))
	for _, i := range shown {
		if len(cells) == maxListRows {
			break
		}
		cells = append(cells, l.cells(i))
	}
	title := listTitle(l.noun, len(shown), l.total, l.view.Filter)
	list := table("list", title, l.cols, cells)
	if len(shown) > maxListRows {
		list.Table.Rows = append(list.Table.Rows, tablefmt.FitRow(l.cols, []any{safeview.TruncatedMarker(len(shown) - maxListRows)}))
	}

	var sel *domain.Record
	if l.view.Selected >= 0 && l.view.Selected < len(shown) {
		rec := l.record(shown[l.view.Selected])
		sel = &rec
	}
	d, truncated := detail("Detail", sel, l.hint, opts)
	return Scene{Panels: []frame.Panel{list, d}, Truncated: truncated}
}

func nameCell(rec domain.Record, name string, opts Options) any {
	if !rec.Recognized() && name == "" {
		return opaqueLabel(rec, opts.cellWidth())
	}
	return orNA(name)
}

// FromSpacesState renders the space listing with per-space device counts.
func FromSpacesState(st domain.SpacesState, opts Options) Scene {
	perSpace := make(map[string]int)
	for _, d := range st.Devices {
		if d.SpaceID != "" {
			perSpace[d.SpaceID]++
		}
	}
	return listing{
		noun: "Spaces",
		hint: "Select a space to inspect it.",
		view: st.ListView,
		cols: []tablefmt.Column{
			{Title: "ID", Width: idWidth, Mode: tablefmt.ModeMiddle},
			{Title: "Name", Width: opts.cellWidth(), Mode: tablefmt.ModeEnd},
			{Title: "Type", Width: statusWidth, Mode: tablefmt.ModeEnd},
			{Title: "Devices", Width: 7, Mode: tablefmt.ModeEnd},
		},
		total:  len(st.Spaces),
		record: func(i int) domain.Record { return st.Spaces[i].Record },
		cells: func(i int) []any {
			s := st.Spaces[i]
			n := s.DeviceCount
			if c, ok := perSpace[s.ID]; ok && c > n {
				n = c
			}
			return []any{orNA(s.ID), nameCell(s.Record, s.Name, opts), orNA(s.Type), count(n)}
		},
	}.build(opts)
}

// FromDevicesState renders the device listing.
func FromDevicesState(st domain.DevicesState, opts Options) Scene {
	return listing{
		noun: "Devices",
		hint: "Select a device to inspect it.",
		view: st.ListView,
		cols: []tablefmt.Column{
			{Title: "ID", Width: idWidth, Mode: tablefmt.ModeMiddle},
			{Title: "Name", Width: opts.cellWidth(), Mode: tablefmt.ModeEnd},
			{Title: "Status", Width: statusWidth, Mode: tablefmt.ModeEnd},
			{Title: "Online", Width: 6, Mode: tablefmt.ModeEnd},
			{Title: "Space", Width: idWidth, Mode: tablefmt.ModeMiddle},
		},
		total:  len(st.Devices),
		record: func(i int) domain.Record { return st.Devices[i].Record },
		cells: func(i int) []any {
			d := st.Devices[i]
			return []any{orNA(d.ID), nameCell(d.Record, d.Name, opts), orNA(d.Status), tablefmt.FormatBoolTag(domain.DeviceOnline(d)), orNA(d.SpaceID)}
		},
	}.build(opts)
}

// FromIncidentsState renders the incident listing.
func FromIncidentsState(st domain.IncidentsState, opts Options) Scene {
	return listing{
		noun: "Incidents",
		hint: "Select an incident to inspect it.",
		view: st.ListView,
		cols: []tablefmt.Column{
			{Title: "ID", Width: idWidth, Mode: tablefmt.ModeMiddle},
			{Title: "Severity", Width: statusWidth, Mode: tablefmt.ModeEnd},
			{Title: "Status", Width: statusWidth, Mode: tablefmt.ModeEnd},
			{Title: "Title", Width: opts.cellWidth(), Mode: tablefmt.ModeEnd},
			{Title: "Device", Width: idWidth, Mode: tablefmt.ModeMiddle},
		},
		total:  len(st.Incidents),
		record: func(i int) domain.Record { return st.Incidents[i].Record },
		cells: func(i int) []any {
			in := st.Incidents[i]
			return []any{orNA(in.ID), orNA(in.Severity), orNA(in.Status), incidentTitle(in, opts), orNA(in.DeviceID)}
		},
	}.build(opts)
}

// FromTicketsState renders the ticket listing.
func FromTicketsState(st domain.TicketsState, opts Options) Scene {
	return listing{
		noun: "Tickets",
		hint: "Select a ticket to inspect it.",
		view: st.ListView,
		cols: []tablefmt.Column{
			{Title: "ID", Width: idWidth, Mode: tablefmt.ModeMiddle},
			{Title: "Priority", Width: statusWidth, Mode: tablefmt.ModeEnd},
			{Title: "Status", Width: statusWidth, Mode: tablefmt.ModeEnd},
			{Title: "Subject", Width: opts.cellWidth(), Mode: tablefmt.ModeEnd},
			{Title: "Assignee", Width: 14, Mode: tablefmt.ModeEnd},
		},
		total:  len(st.Tickets),
		record: func(i int) domain.Record { return st.Tickets[i].Record },
		cells: func(i int) []any {
			t := st.Tickets[i]
			return []any{orNA(t.ID), orNA(t.Priority), orNA(t.Status), nameCell(t.Record, t.Subject, opts), orNA(t.Assignee)}
		},
	}.build(opts)
}
