package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/repoquant/repoquant/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes the audit as
tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "repoquant": {
        "command": "repoquant",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - audit_repository   Full collect-score-classify run on a local path
  - estimate_cost      COCOMO II rebuild estimate from known figures
  - list_collectors    The collector roster an audit would run
  - list_regions       The hourly rate card behind the estimator`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the MCP server manifest (server.json) and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		manifest, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Println(string(manifest))
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version, cfg)
	return server.Run(context.Background())
}
