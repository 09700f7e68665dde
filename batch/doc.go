// Package batch runs a batch of items through an A2A pipeline and applies
// the batch error policy.
//
// Items are processed one at a time in input order, and every output is
// stored at its item's position, so outputs[i] always belongs to items[i].
// What happens on a failed item depends on the Mode:
//
//   - FailFast (default): the batch stops at the first failure and Run
//     returns an *AbortError carrying the item index and its cause.
//   - ContinueOnFailure: the failure is recorded as {"error": "..."} in the
//     item's slot and the batch carries on.
//
// The policy itself is the pure function Apply, which turns per-item
// Results into outputs.
//
// Example:
//
//	client := a2a.NewClient("http://localhost:8000/agent")
//	runner := batch.NewRunner(client, batch.WithMode(batch.ContinueOnFailure))
//
//	report, err := runner.Run(ctx, items)
//	if err != nil {
//	    var abort *batch.AbortError
//	    if errors.As(err, &abort) {
//	        log.Printf("item %d failed: %v", abort.Index, abort.Cause)
//	    }
//	    return err
//	}
package batch
