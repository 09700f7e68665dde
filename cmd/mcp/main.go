// Command mcp exposes an A2A agent as MCP tools over stdio.
//
// It registers send_message and send_batch, allowing MCP clients (like
// Claude Desktop or other AI assistants) to message the agent. Configuration
// is read the same way as cmd/serve; A2A_SERVER_URL is required.
//
// Usage:
//
//	A2A_SERVER_URL=http://localhost:9999/agent go run ./cmd/mcp
//
// Configuration for an MCP client:
//
//	{
//	    "mcpServers": {
//	        "a2abatch": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "env": {"A2A_SERVER_URL": "http://localhost:9999/agent"}
//	        }
//	    }
//	}
package main

import (
	"log"

	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/batch"
	"github.com/spetersoncode/a2abatch/internal/config"
	"github.com/spetersoncode/a2abatch/internal/logging"
	"github.com/spetersoncode/a2abatch/mcp"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client := a2a.NewClient(cfg.ServerURL,
		a2a.WithTimeout(cfg.Timeout),
		a2a.WithLogger(logger),
	)

	if err := mcp.ServeStdio(client,
		mcp.WithName("a2abatch"),
		mcp.WithVersion("1.0.0"),
		mcp.WithMode(batch.ModeFor(cfg.ContinueOnFail)),
		mcp.WithLogger(logger),
	); err != nil {
		log.Fatal(err)
	}
}
