package agui

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/event"
)

func TestSSEWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	sse := NewSSEWriter(rec)

	if err := sse.Write(events.NewStepStartedEvent("item-0")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "event: STEP_STARTED\ndata: {") {
		t.Errorf("unexpected frame: %q", body)
	}
	if !strings.HasSuffix(body, "}\n\n") {
		t.Errorf("frame not terminated: %q", body)
	}
	if !rec.Flushed {
		t.Error("expected writer to be flushed")
	}
	if sse.Count() != 1 {
		t.Errorf("expected count 1, got %d", sse.Count())
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("broken pipe")
}

func TestSSEWriter_StopsAfterError(t *testing.T) {
	w := &failingWriter{}
	sse := NewSSEWriter(w)

	if err := sse.Write(events.NewStepStartedEvent("item-0")); err == nil {
		t.Fatal("expected error")
	}
	if err := sse.Write(events.NewStepFinishedEvent("item-0")); err == nil {
		t.Fatal("expected sticky error")
	}
	if w.calls != 1 {
		t.Errorf("expected 1 write attempt, got %d", w.calls)
	}
	if sse.Err() == nil || !strings.Contains(sse.Err().Error(), "broken pipe") {
		t.Errorf("unexpected Err: %v", sse.Err())
	}
}

func TestSSEWriter_Observer(t *testing.T) {
	rec := httptest.NewRecorder()
	sse := NewSSEWriter(rec)
	observe := sse.Observer(NewMapper("thread-1", "run-1"))

	observe(event.Event{Type: event.RunStart, Total: 1})
	observe(event.Event{Type: event.StepStart, StepName: "item-0"})
	observe(event.Event{Type: event.StepEnd, StepName: "item-0", Task: ab.NewTask([]byte(`{"id":"t"}`))})
	observe(event.Event{Type: event.RunEnd, Succeeded: 1})

	var types []string
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			types = append(types, name)
		}
	}

	want := []string{
		"RUN_STARTED",
		"STEP_STARTED",
		"TEXT_MESSAGE_START",
		"TEXT_MESSAGE_CONTENT",
		"TEXT_MESSAGE_END",
		"STEP_FINISHED",
		"RUN_FINISHED",
	}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, types)
	}
	if sse.Count() != len(want) {
		t.Errorf("expected count %d, got %d", len(want), sse.Count())
	}
}
