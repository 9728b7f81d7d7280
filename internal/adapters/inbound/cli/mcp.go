package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/archtidy/archtidy/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *options, newProbes ProbeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the archtidy MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts, newProbes))
	return cmd
}

func newMCPServeCmd(opts *options, newProbes ProbeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start archtidy MCP server (stdio)",
		Long:  "Start the archtidy MCP server using stdio transport. Clients can run the checks and read the results; fixes are never applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, newProbes)
			if err != nil {
				return err
			}
			s := mcpadapter.NewArchtidyMCPServer(cfg, mcpadapter.ProbeFactory(newProbes), version)
			return server.ServeStdio(s)
		},
	}
}
