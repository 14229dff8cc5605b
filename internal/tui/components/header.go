package components

import (
	"strings"

	"xytectl/internal/screen"
	"xytectl/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// Header is the top line: logo, one tab per screen, and right aligned info.
type Header struct {
	Logo         string
	Tabs         []screen.ID
	Active       screen.ID
	Locked       map[screen.ID]bool
	SpinnerView  string
	RightContent string
	Width        int
}

// NewHeader creates a header over the given tabs.
func NewHeader(logo string, tabs []screen.ID) *Header {
	return &Header{Logo: logo, Tabs: tabs, Width: 80}
}

// WithActive marks the current tab.
func (h *Header) WithActive(id screen.ID) *Header {
	h.Active = id
	return h
}

// WithLocked dims tabs that are gated behind setup.
func (h *Header) WithLocked(locked map[screen.ID]bool) *Header {
	h.Locked = locked
	return h
}

// WithSpinner shows a spinner before the tabs
func (h *Header) WithSpinner(spinnerView string) *Header {
	h.SpinnerView = spinnerView
	return h
}

// WithRightContent adds content to the right side
func (h *Header) WithRightContent(content string) *Header {
	h.RightContent = content
	return h
}

// WithWidth sets the header width
func (h *Header) WithWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header
func (h *Header) Render() string {
	parts := []string{design.LogoStyle.Render(h.Logo)}
	for _, id := range h.Tabs {
		label := screen.Title(id)
		switch {
		case id == h.Active:
			parts = append(parts, design.TabActiveStyle.Render(label))
		case h.Locked[id]:
			parts = append(parts, design.TabLockedStyle.Render(label))
		default:
			parts = append(parts, design.TabStyle.Render(label))
		}
	}
	if h.SpinnerView != "" {
		parts = append(parts, h.SpinnerView)
	}
	left := strings.Join(parts, " ")

	content := left
	if h.RightContent != "" {
		available := h.Width - design.SpaceSM*2
		padding := available - lipgloss.Width(left) - lipgloss.Width(h.RightContent)
		if padding > 1 {
			content = left + strings.Repeat(" ", padding) + h.RightContent
		}
	}

	return design.HeaderStyle.
		Width(h.Width).
		MaxWidth(h.Width).
		Render(content)
}
