// Package mcpserver exposes the repository audit over the Model Context
// Protocol so agents can run audits and cost estimates as tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repoquant/repoquant/pkg/cocomo"
	"github.com/repoquant/repoquant/pkg/config"
)

// Server wraps the MCP server and registers the audit tools.
type Server struct {
	server    *mcp.Server
	cfg       *config.Config
	estimator *cocomo.Estimator
}

// NewServer creates an MCP server bound to the given configuration.
func NewServer(version string, cfg *config.Config) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "repoquant",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server:    server,
		cfg:       cfg,
		estimator: cocomo.New(),
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "audit_repository",
		Description: describeAudit(),
	}, s.handleAuditRepository)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "estimate_cost",
		Description: describeEstimate(),
	}, s.handleEstimateCost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collectors",
		Description: describeCollectors(),
	}, s.handleListCollectors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_regions",
		Description: describeRegions(),
	}, s.handleListRegions)
}
