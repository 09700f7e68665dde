// Package a2abatch sends batches of text messages to an agent over the A2A
// (Agent-to-Agent) protocol and pairs every response with its input.
//
// Each input [Item] becomes one JSON-RPC 2.0 "message/send" request. The
// agent's answer, a [Task], or the failure that prevented it, is placed in
// the output slot with the same index, so len(outputs) == len(items) always
// holds when the batch runs to completion.
//
// This package holds the shared core types: [Item], [Task], [Output],
// [ErrorRecord] and the error taxonomy. The protocol lives in
// [github.com/spetersoncode/a2abatch/a2a] and batch execution in
// [github.com/spetersoncode/a2abatch/batch].
//
// # Basic Usage
//
//	client := a2a.NewClient("https://agents.example.com/my-agent")
//	runner := batch.NewRunner(client, batch.WithMode(batch.ContinueOnFailure))
//
//	report, err := runner.Run(ctx, []a2abatch.Item{
//	    a2abatch.NewItem("Hello", ""),
//	    a2abatch.NewItem("Hi again", "ctx-42"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, out := range report.Outputs {
//	    fmt.Println(i, out.Failed())
//	}
//
// # Errors
//
// Failures are classified by stage:
//
//   - [KindValidation]: malformed input record
//   - [KindTransport]: connection, timeout or non-2xx status
//   - [KindProtocol]: the response has no interpretable result, or is a
//     JSON-RPC error
//
// Use [IsTransport], [IsProtocol] and [IsValidation] to inspect an error
// chain. Nothing is retried.
package a2abatch
