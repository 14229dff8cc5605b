package view

import (
	"testing"

	"xytectl/internal/frame"
	"xytectl/internal/headless"
	"xytectl/internal/readiness"
	"xytectl/internal/screen"
	"xytectl/internal/tui/model"

	"github.com/stretchr/testify/assert"
)

func testModel(width, height int) *model.Model {
	m := model.InitializeModel(screen.Devices, false, nil)
	m.Width = width
	m.Height = height
	m.Outcome = &headless.Outcome{
		Decision:  readiness.Decision{Screen: screen.Devices},
		Readiness: readiness.Result{State: readiness.StateReady, TenantID: "acme"},
	}
	m.Frame = &frame.Frame{
		Title:  "Xyte · Devices",
		Status: "Ready",
		Panels: []frame.Panel{
			frame.TablePanel("list", "Devices (2)", []string{"ID", "Name"}, [][]string{{"dev-1", "Lobby"}, {"dev-2", "Hall"}}),
			frame.TextPanel("detail", "Detail", "Select a device to inspect it."),
		},
		Meta: frame.Meta{ActivePane: "list"},
	}
	return m
}

func TestRender_BeforeFirstResize(t *testing.T) {
	assert.Equal(t, "Initializing…", Render(model.InitializeModel(screen.Setup, false, nil)))
}

func TestRender_Layouts(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantTenant bool
	}{
		{"side by side", 140, 30, true},
		{"stacked", 80, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(testModel(tt.width, tt.height))
			assert.Contains(t, out, "[x]yte")
			assert.Contains(t, out, "Devices (2)")
			assert.Contains(t, out, "Lobby")
			assert.Contains(t, out, "Select a device")
			assert.Contains(t, out, "Ready")
			if tt.wantTenant {
				assert.Contains(t, out, "acme")
			}
		})
	}
}

func TestRender_LoadingBeforeFrame(t *testing.T) {
	m := model.InitializeModel(screen.Tickets, false, nil)
	m.Width, m.Height = 80, 20
	assert.Contains(t, Render(m), "Loading…")
}

func TestRender_HelpOverlay(t *testing.T) {
	m := testModel(100, 40)
	m.ShowHelp = true
	out := Render(m)
	assert.Contains(t, out, "Keyboard shortcuts")
	assert.Contains(t, out, "copy frame")
	assert.NotContains(t, out, "Lobby")
}

func TestRender_RedirectAndActivityLog(t *testing.T) {
	m := testModel(120, 30)
	m.Frame.Status = "Setup required"
	m.Frame.Meta.RedirectedFrom = "devices"
	m.AppendActivityLog("03:04:05.000 [WARN] [Headless] devices is not ready")
	out := Render(m)
	assert.Contains(t, out, "Devices needs setup")
	assert.Contains(t, out, "devices is not ready")
}

func TestPanelType(t *testing.T) {
	assert.NotEqual(t, panelType(frame.TextPanel("error", "Refresh failed")), panelType(frame.TextPanel("detail", "Detail")))
}
