package view

import (
	"fmt"
	"strings"

	"xytectl/internal/frame"
	"xytectl/internal/screen"
	"xytectl/internal/tablefmt"
	"xytectl/internal/tui/components"
	"xytectl/internal/tui/design"
	"xytectl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// sideBySideMinWidth is the terminal width from which two panels share a row.
const sideBySideMinWidth = 100

// Render draws the whole screen.
func Render(m *model.Model) string {
	if m.Width == 0 || m.Height == 0 {
		return "Initializing…"
	}

	header := renderHeader(m)
	status := renderStatusBar(m)
	logs := renderActivityLog(m)

	bodyHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(status)
	if logs != "" {
		bodyHeight -= lipgloss.Height(logs)
	}
	var body string
	if m.ShowHelp {
		body = renderHelp(m, bodyHeight)
	} else {
		body = renderPanels(m, bodyHeight)
	}

	sections := []string{header}
	for _, s := range []string{body, logs} {
		if s != "" {
			sections = append(sections, s)
		}
	}
	sections = append(sections, status)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(m *model.Model) string {
	h := components.NewHeader(frame.Logo, screen.TabOrder()).
		WithActive(m.Requested).
		WithWidth(m.Width)

	if m.Outcome != nil && !m.Outcome.Readiness.Ready() {
		locked := map[screen.ID]bool{}
		for _, id := range screen.TabOrder() {
			if screen.IsOperational(id) {
				locked[id] = true
			}
		}
		h.WithLocked(locked)
	}
	if m.Refreshing() {
		h.WithSpinner(m.Spinner.View())
	}
	if m.Outcome != nil {
		res := m.Outcome.Readiness
		tenant := res.TenantID
		if tenant == "" {
			tenant = "no tenant"
		}
		h.WithRightContent(tenant + " " + design.GetStateStyle(string(res.State)).Render(string(res.State)))
	}
	return h.Render()
}

func renderPanels(m *model.Model, height int) string {
	if height < design.MinPanelHeight {
		return ""
	}
	if m.Frame == nil {
		return components.NewPanel(screen.Title(m.Requested)).
			WithContent("Loading…").
			WithDimensions(m.Width, height).
			Render()
	}

	panels := m.Frame.Panels
	if len(panels) == 0 {
		return components.NewPanel(m.Frame.Title).
			WithContent(m.Frame.Status).
			WithDimensions(m.Width, height).
			Render()
	}

	active := m.Frame.Meta.ActivePane
	if m.Width >= sideBySideMinWidth && len(panels) == 2 {
		left := m.Width / 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			renderPanel(panels[0], active, left, height),
			renderPanel(panels[1], active, m.Width-left, height),
		)
	}

	rows := make([]string, 0, len(panels))
	each := height / len(panels)
	for i, p := range panels {
		h := each
		if i == len(panels)-1 {
			h = height - each*(len(panels)-1)
		}
		if h < design.MinPanelHeight {
			break
		}
		rows = append(rows, renderPanel(p, active, m.Width, h))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderPanel(p frame.Panel, active string, width, height int) string {
	return components.NewPanel(p.Title).
		WithLines(p.Lines(tablefmt.RenderLines)).
		WithDimensions(width, height).
		WithType(panelType(p)).
		SetFocused(p.ID == active).
		Render()
}

func panelType(p frame.Panel) components.PanelType {
	switch p.ID {
	case "error":
		return components.PanelTypeError
	case "redirect", "missing":
		return components.PanelTypeWarning
	}
	return components.PanelTypeDefault
}

func renderActivityLog(m *model.Model) string {
	if len(m.ActivityLog) == 0 {
		return ""
	}
	start := max(len(m.ActivityLog)-model.ActivityLogHeight, 0)
	lines := make([]string, 0, model.ActivityLogHeight)
	for _, line := range m.ActivityLog[start:] {
		lines = append(lines, logLineStyle(line).Render(tablefmt.EllipsizeEnd(line, max(m.Width, 1))))
	}
	return strings.Join(lines, "\n")
}

func logLineStyle(line string) lipgloss.Style {
	switch {
	case strings.Contains(line, "[ERROR]"):
		return design.LogErrorStyle
	case strings.Contains(line, "[WARN]"):
		return design.LogWarnStyle
	case strings.Contains(line, "[DEBUG]"):
		return design.LogDebugStyle
	default:
		return design.LogInfoStyle
	}
}

func renderStatusBar(m *model.Model) string {
	left := ""
	if m.Frame != nil {
		left = m.Frame.Status
		if from := m.Frame.Meta.RedirectedFrom; from != "" {
			left = fmt.Sprintf("%s · %s needs setup", left, screen.Title(screen.ID(from)))
		}
	}

	var hints []string
	for _, b := range m.Keys.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}

	return components.NewStatusBar(m.Width).
		WithLeftText(left).
		WithRightText(design.DimStyle.Render(strings.Join(hints, " · "))).
		WithMessage(m.StatusBarMessage, m.StatusBarMessageType).
		Render()
}

func renderHelp(m *model.Model, height int) string {
	var b strings.Builder
	b.WriteString(design.HelpTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, group := range m.Keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "%-12s %s\n", h.Key, design.TextSecondaryStyle.Render(h.Desc))
		}
		b.WriteString("\n")
	}
	overlay := design.CenteredOverlayContainerStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(m.Width, max(height, 1), lipgloss.Center, lipgloss.Center, overlay)
}
