package components

import (
	"strings"

	"xytectl/internal/tablefmt"
	"xytectl/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// PanelType defines the visual style of a panel
type PanelType int

const (
	PanelTypeDefault PanelType = iota
	PanelTypeSuccess
	PanelTypeError
	PanelTypeWarning
)

// Panel is a bordered box with a title line and clipped content.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focused bool
	Type    PanelType
}

// NewPanel creates a new panel with default settings
func NewPanel(title string) *Panel {
	return &Panel{
		Title:  title,
		Width:  design.MinPanelWidth,
		Height: design.MinPanelHeight,
		Type:   PanelTypeDefault,
	}
}

// WithContent sets the panel content
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithLines sets the panel content from pre-rendered lines.
func (p *Panel) WithLines(lines []string) *Panel {
	p.Content = strings.Join(lines, "\n")
	return p
}

// WithDimensions sets the panel dimensions
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// WithType sets the panel type for styling
func (p *Panel) WithType(panelType PanelType) *Panel {
	p.Type = panelType
	return p
}

// SetFocused updates the focus state
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// Render returns the styled panel. Content that does not fit is clipped,
// with the last visible line replaced by an ellipsis.
func (p *Panel) Render() string {
	if p.Width < design.MinPanelWidth {
		p.Width = design.MinPanelWidth
	}
	if p.Height < design.MinPanelHeight {
		p.Height = design.MinPanelHeight
	}

	style := p.getStyle()
	innerWidth := max(p.Width-style.GetHorizontalFrameSize(), 1)
	innerHeight := max(p.Height-style.GetVerticalFrameSize(), 1)

	var lines []string
	if p.Title != "" {
		titleStyle := design.TitleStyle
		if p.Focused {
			titleStyle = titleStyle.Foreground(design.ColorAccent)
		}
		lines = append(lines, titleStyle.Render(tablefmt.EllipsizeEnd(p.Title, innerWidth)))
	}

	if p.Content != "" {
		content := strings.Split(p.Content, "\n")
		available := innerHeight - len(lines)
		if available > 0 {
			if len(content) > available {
				content = append(content[:available-1], tablefmt.Ellipsis)
			}
			for _, line := range content {
				if lipgloss.Width(line) > innerWidth {
					line = tablefmt.EllipsizeEnd(line, innerWidth)
				}
				lines = append(lines, line)
			}
		}
	}

	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	return style.
		Width(p.Width - style.GetHorizontalBorderSize()).
		Height(innerHeight).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) getStyle() lipgloss.Style {
	base := design.PanelStyle
	if p.Focused {
		base = design.PanelFocusedStyle
	}

	switch p.Type {
	case PanelTypeSuccess:
		return base.BorderForeground(design.ColorOK)
	case PanelTypeError:
		return base.BorderForeground(design.ColorFailure)
	case PanelTypeWarning:
		return base.BorderForeground(design.ColorCaution)
	default:
		return base
	}
}
