// Package scene maps normalized screen state onto frame panels.
//
// Builders are deterministic: the same state and options always yield the
// same panels, so output can be compared line for line in tests.
package scene

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/safeview"
	"xytectl/internal/tablefmt"
)

const (
	idWidth         = 12
	statusWidth     = 10
	maxListRows     = 200
	dashboardRecent = 5
)

// Options bounds the rendering of one scene.
type Options struct {
	// CellWidth is the width of free-text table columns.
	CellWidth int
	Render    safeview.Options
}

func (o Options) cellWidth() int {
	if o.CellWidth <= 0 {
		return 24
	}
	return o.CellWidth
}

// Scene is the panel list for one screen.
type Scene struct {
	Panels []frame.Panel
	// Truncated is set when a detail panel was cut short by the safe serializer.
	Truncated bool
}

// Build dispatches to the builder for state's screen.
func Build(state domain.State, opts Options) Scene {
	switch st := state.(type) {
	case domain.SetupState:
		return FromSetupState(st, opts)
	case domain.ConfigState:
		return FromConfigState(st, opts)
	case domain.DashboardState:
		return FromDashboardState(st, opts)
	case domain.SpacesState:
		return FromSpacesState(st, opts)
	case domain.DevicesState:
		return FromDevicesState(st, opts)
	case domain.IncidentsState:
		return FromIncidentsState(st, opts)
	case domain.TicketsState:
		return FromTicketsState(st, opts)
	case domain.CopilotState:
		return FromCopilotState(st, opts)
	default:
		return Scene{Panels: []frame.Panel{frame.TextPanel("empty", "Nothing to show", "No data for this screen.")}}
	}
}

// Error renders a refresh failure in place of the screen's panels.
func Error(err error) Scene {
	msg := "unknown error"
	if err != nil {
		msg = tablefmt.SanitizePrintable(err.Error())
	}
	return Scene{Panels: []frame.Panel{frame.TextPanel("error", "Refresh failed", msg)}}
}

func table(id, title string, cols []tablefmt.Column, cells [][]any) frame.Panel {
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, tablefmt.FitRow(cols, c))
	}
	return frame.TablePanel(id, title, tablefmt.Titles(cols), rows)
}

// detail renders the selected record, or a hint when nothing is selected.
func detail(title string, rec *domain.Record, hint string, opts Options) (frame.Panel, bool) {
	if rec == nil {
		return frame.TextPanel("detail", title, hint), false
	}
	p := safeview.PreviewLines(rec.Raw(), opts.Render)
	return frame.TextPanel("detail", title, p.Lines...), p.Truncated
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func orNA(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// opaqueLabel summarizes an element that had no recognizable shape.
func opaqueLabel(rec domain.Record, width int) string {
	text := safeview.SearchTextWith(rec.Raw(), safeview.Options{MaxDepth: 2, MaxOutputChars: width * 4})
	if text == "" {
		text = "empty"
	}
	return "(opaque) " + text
}

// matches reports whether a record passes the operator's substring filter.
func matches(rec domain.Record, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	return strings.Contains(safeview.SearchText(rec.Raw()), filter)
}

func listTitle(noun string, shown, total int, filter string) string {
	if strings.TrimSpace(filter) == "" {
		return fmt.Sprintf("%s (%s)", noun, count(total))
	}
	return fmt.Sprintf("%s (%s of %s matching %q)", noun, count(shown), count(total), filter)
}
