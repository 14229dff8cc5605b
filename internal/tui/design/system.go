// Package design holds the palette and the lipgloss styles of the TUI.
package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Spacing in terminal cells.
const (
	SpaceXS = 1
	SpaceSM = 2

	MinPanelHeight = 4
	MinPanelWidth  = 20
)

// palette pairs a light and a dark variant of one semantic color.
func palette(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Colors
var (
	ColorAccent  = palette("#0E7490", "#22D3EE")
	ColorOK      = palette("#15803D", "#4ADE80")
	ColorFailure = palette("#B91C1C", "#F87171")
	ColorCaution = palette("#B45309", "#FBBF24")
	ColorNotice  = palette("#1D4ED8", "#60A5FA")

	ColorInk      = palette("#0F172A", "#E2E8F0")
	ColorInkSoft  = palette("#475569", "#94A3B8")
	ColorInkFaint = palette("#94A3B8", "#64748B")
	ColorPaper    = palette("#FFFFFF", "#0B1120")
	ColorBar      = palette("#E2E8F0", "#1E293B")
	ColorRule     = palette("#CBD5E1", "#334155")
	ColorActiveBg = palette("#CFFAFE", "#164E63")
	ColorOverlay  = palette("#F8FAFC", "#111827")
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles
var (
	TextStyle          = fg(ColorInk)
	TextSecondaryStyle = fg(ColorInkSoft)
	TextOKStyle        = fg(ColorOK)
	TextFailureStyle   = fg(ColorFailure)
	TextCautionStyle   = fg(ColorCaution)
	DimStyle           = fg(ColorInkFaint)
	TitleStyle         = fg(ColorInk).Bold(true)
)

// Frame chrome
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRule).
			Foreground(ColorInk).
			Padding(0, SpaceXS)

	// PanelFocusedStyle marks the active pane.
	PanelFocusedStyle = PanelStyle.
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorInk).
			Bold(true).
			Padding(0, SpaceSM)

	LogoStyle = fg(ColorAccent).Bold(true)

	TabStyle       = fg(ColorInkSoft).Padding(0, SpaceXS)
	TabActiveStyle = TabStyle.Foreground(ColorAccent).Background(ColorActiveBg).Bold(true)
	// TabLockedStyle is used for operational tabs while setup is incomplete.
	TabLockedStyle = TabStyle.Foreground(ColorInkFaint).Italic(true)
)

// Status bar
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorInk).
			Padding(0, SpaceSM).
			Height(1)

	StatusBarSuccessStyle = StatusBarStyle.Background(ColorOK).Foreground(ColorPaper)
	StatusBarErrorStyle   = StatusBarStyle.Background(ColorFailure).Foreground(ColorPaper)
	StatusBarWarningStyle = StatusBarStyle.Background(ColorCaution).Foreground(ColorPaper)
	StatusBarInfoStyle    = StatusBarStyle.Background(ColorNotice).Foreground(ColorPaper)
)

// Overlays
var (
	HelpTitleStyle = TitleStyle.
			MarginBottom(1).
			Align(lipgloss.Center)

	CenteredOverlayContainerStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(ColorRule).
					Background(ColorOverlay).
					Foreground(ColorInk).
					Padding(1, 2)
)

// Activity log
var (
	LogInfoStyle  = fg(ColorInk)
	LogWarnStyle  = fg(ColorCaution)
	LogErrorStyle = fg(ColorFailure)
	LogDebugStyle = fg(ColorInkFaint).Italic(true)
)

// GetStateStyle colors readiness, connectivity and refresh states.
func GetStateStyle(state string) lipgloss.Style {
	switch state {
	case "ready", "connected":
		return TextOKStyle
	case "needs_setup", "auth_required", "missing_key", "unknown_error", "error":
		return TextFailureStyle
	case "degraded", "network_error", "timeout", "rate_limited", "loading", "retrying":
		return TextCautionStyle
	case "not_checked", "idle":
		return TextSecondaryStyle
	}
	return TextStyle
}

// Initialize tells lipgloss which adaptive variant to use.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}
