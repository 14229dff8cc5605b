package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"xytectl/internal/headless"
	"xytectl/internal/screen"
)

type screenInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Operational bool     `json:"operational"`
	Panes       []string `json:"panes"`
}

func (s *Server) handleScreens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order := screen.TabOrder()
	out := make([]screenInfo, 0, len(order))
	for _, id := range order {
		out = append(out, screenInfo{
			ID:          string(id),
			Title:       screen.Title(id),
			Operational: screen.IsOperational(id),
			Panes:       screen.Panes(id),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleFrame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("screen")
	if err != nil {
		return mcp.NewToolResultError("screen parameter is required"), nil
	}
	id, err := screen.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := s.session.Frame(ctx, headless.Request{
		Screen:            id,
		CheckConnectivity: s.checkConnectivity,
		Filter:            request.GetString("filter", ""),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.Error(subsystem, err, "frame for %s failed", id)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render %s: %v", id, err)), nil
	}
	return jsonResult(f)
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(struct {
		SessionID string `json:"sessionId"`
		Runtime   any    `json:"runtime"`
	}{s.session.SessionID(), s.session.Status()})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
