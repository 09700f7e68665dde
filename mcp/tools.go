package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/batch"
)

// Tool names registered by NewServer.
const (
	ToolSendMessage = "send_message"
	ToolSendBatch   = "send_batch"
)

var sendMessageSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"message": {"type": "string", "description": "Text to send to the agent"},
		"contextId": {"type": "string", "description": "Conversation context to continue (optional)"}
	},
	"required": ["message"]
}`)

var sendBatchSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"items": {
			"type": "array",
			"description": "Messages to send, in order",
			"items": {
				"type": "object",
				"properties": {
					"message": {"type": "string"},
					"contextId": {"type": "string"}
				},
				"required": ["message"]
			}
		},
		"continueOnFail": {"type": "boolean", "description": "Record failures in place instead of aborting"}
	},
	"required": ["items"]
}`)

// SendBatchArgs are the arguments of the send_batch tool.
type SendBatchArgs struct {
	Items          []ab.Item `json:"items"`
	ContinueOnFail *bool     `json:"continueOnFail,omitempty"`
}

// decodeArgs converts MCP tool arguments into v.
func decodeArgs(req mcp.CallToolRequest, v any) error {
	args := req.Params.Arguments
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (h *handlers) sendMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var item ab.Item
	if err := decodeArgs(req, &item); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := h.client.Send(ctx, item)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(task.Raw())), nil
}

func (h *handlers) sendBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args SendBatchArgs
	if err := decodeArgs(req, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Items == nil {
		return mcp.NewToolResultError("items is required"), nil
	}

	mode := h.mode
	if args.ContinueOnFail != nil {
		mode = batch.ModeFor(*args.ContinueOnFail)
	}

	runner := batch.NewRunner(h.client, batch.WithMode(mode), batch.WithLogger(h.logger))
	report, err := runner.Run(ctx, args.Items)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(report.Outputs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode outputs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
