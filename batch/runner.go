package batch

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/event"
)

// Pipeline is the per-item build, dispatch and map chain. *a2a.Client
// satisfies it.
type Pipeline interface {
	Build(item ab.Item) (*a2a.Request, error)
	Dispatch(ctx context.Context, req *a2a.Request) ([]byte, error)
	Map(req *a2a.Request, body []byte) (ab.Task, error)
}

// Status is the state of a batch.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// Report summarizes a finished batch. Outputs is nil when the batch aborted.
type Report struct {
	Status    Status      `json:"status"`
	Outputs   []ab.Output `json:"outputs"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// Runner processes a batch of items sequentially against one pipeline.
// A Runner holds no per-batch state and may be reused.
type Runner struct {
	pipeline  Pipeline
	mode      Mode
	logger    logrus.FieldLogger
	observers []event.Handler
}

// Option configures a Runner.
type Option func(*Runner)

// WithMode sets the failure mode. The default is FailFast.
func WithMode(m Mode) Option {
	return func(r *Runner) {
		r.mode = m
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithObserver adds an event handler. Handlers are called synchronously,
// in registration order, from the goroutine calling Run.
func WithObserver(h event.Handler) Option {
	return func(r *Runner) {
		if h != nil {
			r.observers = append(r.observers, h)
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(p Pipeline, opts ...Option) *Runner {
	r := &Runner{pipeline: p, mode: FailFast}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.logger = l
	}
	return r
}

// Mode returns the failure mode of the runner.
func (r *Runner) Mode() Mode {
	return r.mode
}

// Run processes items in input order with one item in flight at a time.
//
// In ContinueOnFailure mode the report always holds exactly one output per
// item, at the item's position. In FailFast mode processing stops at the
// first failure: no later item is built or dispatched, and Run returns a
// report with StatusAborted together with an *AbortError.
func (r *Runner) Run(ctx context.Context, items []ab.Item) (*Report, error) {
	return r.run(ctx, items, r.observers)
}

// RunWithObserver is Run with an extra handler for this call only.
func (r *Runner) RunWithObserver(ctx context.Context, items []ab.Item, h event.Handler) (*Report, error) {
	observers := append([]event.Handler(nil), r.observers...)
	if h != nil {
		observers = append(observers, h)
	}
	return r.run(ctx, items, observers)
}

func (r *Runner) run(ctx context.Context, items []ab.Item, observers []event.Handler) (*Report, error) {
	log := r.logger.WithFields(logrus.Fields{
		"items": len(items),
		"mode":  r.mode.String(),
	})
	log.Debug("batch started")
	event.Emit(observers, event.Event{Type: event.RunStart, Total: len(items)})

	report := &Report{Status: StatusRunning}
	results := make([]Result, 0, len(items))

	for i, item := range items {
		event.Emit(observers, event.Event{Type: event.StepStart, Index: i, StepName: event.StepName(i)})

		res := r.runItem(ctx, i, item)
		results = append(results, res)

		if res.OK() {
			report.Succeeded++
			event.Emit(observers, event.Event{
				Type:     event.StepEnd,
				Index:    i,
				StepName: event.StepName(i),
				Task:     res.Task,
			})
		} else {
			report.Failed++
			log.WithFields(logrus.Fields{
				"index": i,
				"stage": res.FailedAt.String(),
				"kind":  string(ab.KindOf(res.Err)),
			}).WithError(res.Err).Warn("item failed")
			event.Emit(observers, event.Event{
				Type:     event.StepFailed,
				Index:    i,
				StepName: event.StepName(i),
				Stage:    res.FailedAt.String(),
				Error:    res.Err,
			})
		}

		if ShouldStop(r.mode, res) {
			break
		}
	}

	outputs, err := Apply(r.mode, results)
	if err != nil {
		report.Status = StatusAborted
		var abortErr *AbortError
		if errors.As(err, &abortErr) {
			log = log.WithField("index", abortErr.Index)
		}
		log.WithError(err).Error("batch aborted")
		event.Emit(observers, event.Event{
			Type:      event.RunError,
			Error:     err,
			Succeeded: report.Succeeded,
			Failed:    report.Failed,
		})
		return report, err
	}

	report.Status = StatusCompleted
	report.Outputs = outputs
	log.WithFields(logrus.Fields{
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	}).Info("batch completed")
	event.Emit(observers, event.Event{
		Type:      event.RunEnd,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	})
	return report, nil
}

func (r *Runner) runItem(ctx context.Context, index int, item ab.Item) Result {
	req, err := r.pipeline.Build(item)
	if err != nil {
		return Failed(index, StagePending, err)
	}

	body, err := r.pipeline.Dispatch(ctx, req)
	if err != nil {
		return Failed(index, StageBuilt, err)
	}

	task, err := r.pipeline.Map(req, body)
	if err != nil {
		return Failed(index, StageDispatched, err)
	}

	r.logger.WithFields(logrus.Fields{
		"index":   index,
		"task_id": task.ID(),
		"state":   task.State(),
	}).Debug("item succeeded")
	return Succeeded(index, task)
}
