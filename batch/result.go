package batch

import (
	ab "github.com/spetersoncode/a2abatch"
)

// Stage is the lifecycle stage of a single item.
type Stage int

const (
	// StagePending is the stage of an item that has not been built yet.
	StagePending Stage = iota
	// StageBuilt means the request envelope was built.
	StageBuilt
	// StageDispatched means a response body was received.
	StageDispatched
	// StageSucceeded means the response mapped to a task.
	StageSucceeded
	// StageFailed means the item failed; Result.FailedAt tells where.
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageBuilt:
		return "built"
	case StageDispatched:
		return "dispatched"
	case StageSucceeded:
		return "succeeded"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one item: either a Task or an error tagged
// with the stage the item had reached when it failed.
type Result struct {
	Index int
	Stage Stage

	// FailedAt is the last stage the item completed before failing:
	// StagePending for build failures, StageBuilt for dispatch failures and
	// StageDispatched for mapping failures.
	FailedAt Stage

	Task ab.Task
	Err  error
}

// Succeeded creates a successful result.
func Succeeded(index int, task ab.Task) Result {
	return Result{Index: index, Stage: StageSucceeded, Task: task}
}

// Failed creates a failed result.
func Failed(index int, at Stage, err error) Result {
	return Result{Index: index, Stage: StageFailed, FailedAt: at, Err: err}
}

// OK reports whether the item produced a task.
func (r Result) OK() bool {
	return r.Stage == StageSucceeded
}
