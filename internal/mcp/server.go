// ABOUTME: MCP server setup for the fitlog workout store.
// ABOUTME: Wraps the MCP server with a storage Repository connection.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/fitlog/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer    *mcp.Server
	repo         storage.Repository
	progressDays int
	recordLimit  int
}

// Option configures a Server.
type Option func(*Server)

// WithProgressDays sets the progress window used when a tool call omits it.
func WithProgressDays(days int) Option {
	return func(s *Server) {
		if days > 0 {
			s.progressDays = days
		}
	}
}

// WithRecordLimit sets the record list size used when a tool call omits it.
func WithRecordLimit(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.recordLimit = limit
		}
	}
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitlog",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer:    mcpServer,
		repo:         repo,
		progressDays: storage.DefaultProgressDays,
		recordLimit:  storage.DefaultRecordLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	logrus.Info("fitlog MCP server listening on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
