package batch

import (
	"fmt"
	"strings"

	ab "github.com/spetersoncode/a2abatch"
)

// Mode selects how a batch reacts to a failed item.
type Mode int

const (
	// FailFast aborts the batch on the first failed item.
	FailFast Mode = iota
	// ContinueOnFailure records an error in the failed item's slot and
	// carries on with the next item.
	ContinueOnFailure
)

func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case ContinueOnFailure:
		return "continue"
	default:
		return "unknown"
	}
}

// ModeFor maps the continue-on-fail switch to a Mode.
func ModeFor(continueOnFail bool) Mode {
	if continueOnFail {
		return ContinueOnFailure
	}
	return FailFast
}

// ParseMode parses "fail-fast" or "continue".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "continue", "continue-on-failure":
		return ContinueOnFailure, nil
	default:
		return FailFast, ab.NewConfigError(fmt.Sprintf("unknown batch mode %q", s), nil)
	}
}

// AbortError is returned when a fail-fast batch stops at a failed item.
type AbortError struct {
	Index int
	Cause error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("batch aborted at item %d: %v", e.Index, e.Cause)
}

// Unwrap returns the error of the failed item.
func (e *AbortError) Unwrap() error {
	return e.Cause
}

// ShouldStop reports whether the batch must stop after r.
func ShouldStop(mode Mode, r Result) bool {
	return mode == FailFast && !r.OK()
}

// Apply turns per-item results into the output batch. results must be
// ordered by index.
//
// In FailFast mode the first failed result yields an *AbortError and no
// outputs. In ContinueOnFailure mode every failed result becomes an
// ErrorRecord in its own slot, so len(outputs) == len(results).
func Apply(mode Mode, results []Result) ([]ab.Output, error) {
	outputs := make([]ab.Output, len(results))
	for i, r := range results {
		if r.OK() {
			outputs[i] = ab.TaskOutput(r.Task)
			continue
		}
		if mode == FailFast {
			return nil, &AbortError{Index: r.Index, Cause: r.Err}
		}
		outputs[i] = ab.ErrorOutput(r.Err)
	}
	return outputs, nil
}
