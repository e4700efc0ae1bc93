package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

const (
	serverName    = "lifx"
	serverVersion = "1.0.0"
)

// Server wraps the MCP server exposing the LIFX tools
type Server struct {
	mcpServer  *server.MCPServer
	dispatcher *tools.Dispatcher
}

// NewServer creates a new MCP server over the dispatcher's tools
func NewServer(dispatcher *tools.Dispatcher) *Server {
	s := &Server{
		dispatcher: dispatcher,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the MCP server using stdio transport and blocks
// until the host closes stdin.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
