package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/archtidy/archtidy/internal/domain"
)

// ProbeFactory builds a fresh probe set. Each tool call gets its own.
type ProbeFactory func() []domain.Probe

// NewArchtidyMCPServer creates an MCP server exposing the check phase.
// Fixes are never applied over MCP regardless of cfg.Apply.
func NewArchtidyMCPServer(cfg domain.Config, newProbes ProbeFactory, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"archtidy",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	cfg = cfg.Clone()
	cfg.Apply = false

	registerTools(s, cfg, newProbes)
	registerResources(s, cfg)

	return s
}
