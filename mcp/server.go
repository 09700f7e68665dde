// Package mcp exposes an A2A agent as MCP (Model Context Protocol) tools.
//
// MCP is a protocol that enables AI assistants to access external tools and
// data. NewServer registers two tools backed by an *a2a.Client:
//
//   - send_message: send one message, returns the task JSON
//   - send_batch: send a batch of messages, returns the output array
//
// To expose an agent to MCP clients over stdio:
//
//	client := a2a.NewClient("http://localhost:8000/agent")
//	if err := mcp.ServeStdio(client); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/batch"
	"github.com/spetersoncode/a2abatch/internal/logging"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	mode    batch.Mode
	logger  logrus.FieldLogger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithMode sets the batch mode used when send_batch is called without
// continueOnFail.
func WithMode(m batch.Mode) ServerOption {
	return func(c *serverConfig) {
		c.mode = m
	}
}

// WithLogger sets the logger. It must not write to stdout when serving
// over stdio.
func WithLogger(l logrus.FieldLogger) ServerOption {
	return func(c *serverConfig) {
		c.logger = l
	}
}

type handlers struct {
	client *a2a.Client
	mode   batch.Mode
	logger logrus.FieldLogger
}

// NewServer creates an MCP server whose tools dispatch to client.
func NewServer(client *a2a.Client, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "a2abatch",
		version: "1.0.0",
		mode:    batch.FailFast,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Discard()
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	h := &handlers{client: client, mode: cfg.mode, logger: cfg.logger}

	s.AddTool(
		mcp.NewToolWithRawSchema(ToolSendMessage,
			"Send a text message to the A2A agent and return the resulting task as JSON.",
			sendMessageSchema),
		h.sendMessage,
	)
	s.AddTool(
		mcp.NewToolWithRawSchema(ToolSendBatch,
			"Send a batch of text messages to the A2A agent, in order, and return one output per message.",
			sendBatchSchema),
		h.sendBatch,
	)

	return s
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(client *a2a.Client, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(client, opts...))
}
