package agent

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"xytectl/internal/headless"
	"xytectl/internal/screen"
	"xytectl/pkg/logging"
)

const subsystem = "Agent"

// ServerName is advertised during the MCP handshake.
const ServerName = "xytectl"

// Server is the MCP bridge.
type Server struct {
	session           *headless.Session
	checkConnectivity bool
	logger            *logging.Logger
	mcp               *server.MCPServer
}

// NewServer registers the xyte tools on a fresh MCP server.
func NewServer(session *headless.Session, version string, checkConnectivity bool, logger *logging.Logger) *Server {
	s := &Server{
		session:           session,
		checkConnectivity: checkConnectivity,
		logger:            logger,
		mcp: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(false),
		),
	}

	s.mcp.AddTool(mcp.NewTool("xyte_screens",
		mcp.WithDescription("List the screens in tab order and whether each needs a ready tenant"),
	), s.handleScreens)

	s.mcp.AddTool(mcp.NewTool("xyte_frame",
		mcp.WithDescription("Render one headless frame for a screen"),
		mcp.WithString("screen",
			mcp.Required(),
			mcp.Description("Screen id"),
			mcp.Enum(screen.TabOrderStrings()...),
		),
		mcp.WithString("filter",
			mcp.Description("Substring filter for list screens"),
		),
	), s.handleFrame)

	s.mcp.AddTool(mcp.NewTool("xyte_status",
		mcp.WithDescription("Report the screen runtime refresh status"),
	), s.handleStatus)

	return s
}

// MCPServer returns the underlying server, mainly for tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given streams until ctx ends or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info(subsystem, "serving MCP on stdio (session %s)", s.session.SessionID())
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
