// Package agui streams batch progress using the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol
// that standardizes how agents connect to user-facing applications. This
// package maps batch lifecycle events to AG-UI events and writes them as
// Server-Sent Events, so an AG-UI frontend can follow a batch item by item.
//
// # Usage
//
// Create a Mapper for each run and plug an SSEWriter into the runner:
//
//	agui.SetSSEHeaders(w.Header())
//	sse := agui.NewSSEWriter(w)
//	mapper := agui.NewMapper(threadID, runID)
//
//	report, err := runner.RunWithObserver(ctx, items, sse.Observer(mapper))
//
// # Event Mapping
//
//   - run start → RUN_STARTED
//   - item start → STEP_STARTED (step name "item-<index>")
//   - item end or failure → TEXT_MESSAGE_START, TEXT_MESSAGE_CONTENT (the
//     item's output JSON), TEXT_MESSAGE_END, STEP_FINISHED
//   - run end → RUN_FINISHED
//   - fail-fast abort → RUN_ERROR
//
// # Thread Safety
//
// Mapper and SSEWriter are NOT safe for concurrent use. Each run should
// have its own instances.
package agui
