// Package a2a implements the client side of the A2A (Agent-to-Agent)
// protocol's message/send call.
//
// A2A uses JSON-RPC 2.0 over HTTP(S). A request carries one [Message] made of
// [Part] values; the agent answers with a task under "result" or with a
// JSON-RPC "error".
//
// # Overview
//
// The package is split along the three stages of a call:
//
//   - [Builder] turns an input item into a [Request] envelope. Request and
//     message ids come from an [IDGenerator] ([UUIDGenerator] by default).
//   - [Dispatcher] posts the envelope to the configured endpoint, exactly
//     once, and returns the raw body.
//   - [ParseResponse] and [MapResponse] discriminate the body into a task or
//     a protocol error.
//
// [Client] chains the three and is what most callers want:
//
//	client := a2a.NewClient(serverURL, a2a.WithTimeout(30*time.Second))
//	task, err := client.SendText(ctx, "Hello", "")
//
// # Discovery
//
// [FetchAgentCard] reads the agent card from [AgentCardPath] below the base
// URL. It is used to validate connectivity only.
//
// # Protocol Compliance
//
// Requests follow the A2A JSON schema: messages carry "kind":"message", a
// "messageId" and parts tagged with "kind". Streaming, push notifications
// and task polling are not implemented.
package a2a
