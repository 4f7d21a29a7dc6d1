package mcpsrv

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/packsnap/packsnap/internal/output"
)

const (
	// ServerName is the MCP server name reported to clients.
	ServerName = "packsnap-mcp"
	// ServerVersion is the current server version.
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the Sink every tool handler reports
// through.
type Server struct {
	mcp  *server.MCPServer
	sink output.Sink
}

// NewServer creates a Server with pack_status, list_changed_files, and
// trigger_rebuild registered.
func NewServer(sink output.Sink) *Server {
	if sink == nil {
		sink = output.NopSink{}
	}

	s := &Server{
		mcp:  server.NewMCPServer(ServerName, ServerVersion),
		sink: sink,
	}
	s.registerTools()
	return s
}

// Serve starts the server on stdio and blocks until ctx is canceled or
// the transport closes.
func (s *Server) Serve(ctx context.Context) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(packStatusTool(), s.handlePackStatus)
	s.mcp.AddTool(listChangedFilesTool(), s.handleListChangedFiles)
	s.mcp.AddTool(triggerRebuildTool(), s.handleTriggerRebuild)
}
