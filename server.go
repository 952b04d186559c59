package mcp

import (
	"context"
	"log/slog"

	"github.com/localrivet/gomcp/server"

	"github.com/siteflow-tools/siteflow-mcp/internal/siteflow"
)

// Server wires the Siteflow client into a gomcp tool server
type Server struct {
	api    *siteflow.Client
	spec   map[string]any
	srv    server.Server
	logger *slog.Logger
	ctx    context.Context
}

// NewServer constructs an MCP server around the provided Siteflow client
func NewServer(
	client *siteflow.Client, logger *slog.Logger,
) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	spec, err := loadAPISpec()
	if err != nil {
		return nil, err
	}

	s := &Server{
		api:    client,
		spec:   spec,
		logger: logger,
		ctx:    context.Background(),
	}
	srv := server.NewServer(Name)
	s.registerTools(srv)
	s.srv = srv
	return s, nil
}

// MCPServer exposes the underlying gomcp server so callers can attach
// alternate transports
func (s *Server) MCPServer() server.Server {
	return s.srv
}

// Run serves MCP over stdio until the host disconnects
func (s *Server) Run() error {
	return s.RunContext(context.Background())
}

// RunContext serves MCP over stdio; ctx cancellation propagates into
// every in-flight Siteflow call
func (s *Server) RunContext(ctx context.Context) error {
	s.ctx = ctx
	return s.srv.AsStdio().Run()
}
