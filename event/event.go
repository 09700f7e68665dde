// Package event defines the lifecycle events a batch run emits. Surfaces
// such as logging and the AG-UI stream follow a run by observing them. The
// event types are designed for 1:1 mapping with the AG-UI protocol.
package event

import (
	"fmt"
	"time"

	ab "github.com/spetersoncode/a2abatch"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when a batch begins.
	RunStart Type = "run_start"

	// RunEnd fires when every item has been processed.
	RunEnd Type = "run_end"

	// RunError fires when a fail-fast batch aborts.
	RunError Type = "run_error"
)

// Step lifecycle events, one step per item
const (
	// StepStart fires before an item is built.
	StepStart Type = "step_start"

	// StepEnd fires when an item produced a task.
	StepEnd Type = "step_end"

	// StepFailed fires when an item failed at any stage.
	StepFailed Type = "step_failed"
)

// Event represents an observable occurrence during a batch run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Index is the item position for step events.
	Index int

	// StepName identifies the step for step events.
	StepName string

	// Total is the number of items, set on RunStart.
	Total int

	// Task is the mapped task for StepEnd events.
	Task ab.Task

	// Stage names the pipeline stage an item failed at, for StepFailed.
	Stage string

	// Error contains the error for StepFailed and RunError events.
	Error error

	// Succeeded and Failed count items, set on RunEnd and RunError.
	Succeeded int
	Failed    int

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Output returns the output slot a step event stands for. It returns false
// for events that carry no item result.
func (e Event) Output() (ab.Output, bool) {
	switch e.Type {
	case StepEnd:
		return ab.TaskOutput(e.Task), true
	case StepFailed:
		return ab.ErrorOutput(e.Error), true
	default:
		return ab.Output{}, false
	}
}

// Handler observes events. Handlers run synchronously on the goroutine that
// emits the event.
type Handler func(Event)

// StepName returns the step name used for the item at index.
func StepName(index int) string {
	return fmt.Sprintf("item-%d", index)
}

// Emit stamps e and delivers it to every handler in order.
func Emit(handlers []Handler, e Event) {
	if len(handlers) == 0 {
		return
	}
	e.Timestamp = time.Now()
	for _, h := range handlers {
		h(e)
	}
}

// Collect returns a handler that appends every event to dst.
func Collect(dst *[]Event) Handler {
	return func(e Event) {
		*dst = append(*dst, e)
	}
}
