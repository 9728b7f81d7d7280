package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archtidy/archtidy/internal/adapters/outbound/probes"
	"github.com/archtidy/archtidy/internal/application"
	"github.com/archtidy/archtidy/internal/domain"
)

// registerTools registers all archtidy MCP tools on the given server.
func registerTools(s *server.MCPServer, cfg domain.Config, newProbes ProbeFactory) {
	// 1. archtidy_check
	s.AddTool(
		mcplib.NewTool("archtidy_check",
			mcplib.WithDescription("Runs the maintenance checks and returns their results as JSON. Never applies fixes."),
			mcplib.WithString("probe",
				mcplib.Description("Run only this probe (see archtidy_probes)"),
			),
		),
		handleCheck(cfg, newProbes),
	)

	// 2. archtidy_probes
	s.AddTool(
		mcplib.NewTool("archtidy_probes",
			mcplib.WithDescription("Lists the registered probes and whether the configuration skips them"),
		),
		handleProbes(cfg, newProbes),
	)
}

type checkResult struct {
	Probe string `json:"probe"`
	domain.Result
}

type checkFailure struct {
	Probe string `json:"probe"`
	Error string `json:"error"`
}

type checkResponse struct {
	Results  []checkResult  `json:"results"`
	Failures []checkFailure `json:"failures"`
}

func handleCheck(cfg domain.Config, newProbes ProbeFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, _ := request.GetArguments()["probe"].(string)

		selected := probes.Enabled(newProbes(), cfg)
		if name != "" {
			selected = probes.Only(newProbes(), name)
			if len(selected) == 0 {
				return errorResult(fmt.Sprintf("unknown probe %q", name)), nil
			}
		}

		run := application.NewMaintenanceService(selected, nil, nil).CheckAll(ctx, cfg)

		resp := checkResponse{Results: []checkResult{}, Failures: []checkFailure{}}
		for _, e := range run.Entries {
			resp.Results = append(resp.Results, checkResult{Probe: e.Probe.Name(), Result: e.Result})
		}
		for _, f := range run.Failures {
			resp.Failures = append(resp.Failures, checkFailure{Probe: f.Probe, Error: f.Err.Error()})
		}
		return jsonResult(resp)
	}
}

type probeInfo struct {
	Name    string `json:"name"`
	Skipped bool   `json:"skipped"`
}

func handleProbes(cfg domain.Config, newProbes ProbeFactory) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var out []probeInfo
		for _, name := range domain.ProbeNames(newProbes()) {
			out = append(out, probeInfo{Name: name, Skipped: cfg.IsSkipped(name)})
		}
		return jsonResult(out)
	}
}

// jsonResult marshals v into an indented JSON text result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
