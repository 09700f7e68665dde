package agui

import (
	"encoding/json"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/event"
)

// RoleAssistant is the AG-UI role used for item output messages.
const RoleAssistant = "assistant"

// Mapper converts batch events to AG-UI events.
//
// Create a new Mapper for each run using NewMapper. The Mapper is not
// safe for concurrent use - each goroutine should have its own Mapper.
type Mapper struct {
	threadID string
	runID    string
}

// NewMapper creates a new Mapper for a single run.
// The threadID and runID are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event.
func (m *Mapper) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return events.NewRunErrorEvent(msg)
}

// MapEvent converts a batch event to AG-UI events.
//
// Item steps map to STEP_STARTED / STEP_FINISHED. A finished step is
// preceded by a TEXT_MESSAGE_START, TEXT_MESSAGE_CONTENT, TEXT_MESSAGE_END
// sequence whose content is the item's output JSON (the task or the error
// record). Returns nil for events that have no AG-UI equivalent.
func (m *Mapper) MapEvent(e event.Event) []events.Event {
	switch e.Type {
	// Run lifecycle
	case event.RunStart:
		return []events.Event{m.RunStarted()}
	case event.RunEnd:
		return []events.Event{m.RunFinished()}
	case event.RunError:
		return []events.Event{m.RunError(e.Error)}

	// Step lifecycle
	case event.StepStart:
		return []events.Event{events.NewStepStartedEvent(e.StepName)}
	case event.StepEnd, event.StepFailed:
		out, _ := e.Output()
		msgs := m.outputMessage(out)
		return append(msgs, events.NewStepFinishedEvent(e.StepName))

	default:
		return nil
	}
}

func (m *Mapper) outputMessage(out ab.Output) []events.Event {
	data, err := json.Marshal(out)
	if err != nil {
		data, _ = json.Marshal(ab.ErrorOutput(err))
	}

	messageID := events.GenerateMessageID()
	return []events.Event{
		events.NewTextMessageStartEvent(messageID, events.WithRole(RoleAssistant)),
		events.NewTextMessageContentEvent(messageID, string(data)),
		events.NewTextMessageEndEvent(messageID),
	}
}
