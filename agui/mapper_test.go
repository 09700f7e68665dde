package agui

import (
	"errors"
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/tidwall/gjson"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/event"
)

func TestNewMapper(t *testing.T) {
	t.Run("with provided IDs", func(t *testing.T) {
		m := NewMapper("thread-123", "run-456")
		if m.ThreadID() != "thread-123" {
			t.Errorf("expected thread ID 'thread-123', got %q", m.ThreadID())
		}
		if m.RunID() != "run-456" {
			t.Errorf("expected run ID 'run-456', got %q", m.RunID())
		}
	})

	t.Run("generates IDs when empty", func(t *testing.T) {
		m := NewMapper("", "")
		if m.ThreadID() == "" {
			t.Error("expected generated thread ID, got empty")
		}
		if m.RunID() == "" {
			t.Error("expected generated run ID, got empty")
		}
	})
}

func TestMapper_RunLifecycle(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	tests := []struct {
		name string
		in   event.Event
		want events.EventType
	}{
		{"RunStart", event.Event{Type: event.RunStart, Total: 3}, events.EventTypeRunStarted},
		{"RunEnd", event.Event{Type: event.RunEnd}, events.EventTypeRunFinished},
		{"RunError", event.Event{Type: event.RunError, Error: errors.New("aborted")}, events.EventTypeRunError},
		{"StepStart", event.Event{Type: event.StepStart, StepName: "item-0"}, events.EventTypeStepStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MapEvent(tt.in)
			if len(got) != 1 {
				t.Fatalf("expected 1 event, got %d", len(got))
			}
			if got[0].Type() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got[0].Type())
			}
		})
	}

	t.Run("RunError carries message", func(t *testing.T) {
		ev := m.RunError(errors.New("batch aborted at item 1: boom"))
		data, err := ev.ToJSON()
		if err != nil {
			t.Fatal(err)
		}
		if msg := gjson.GetBytes(data, "message").String(); msg != "batch aborted at item 1: boom" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("RunError with nil error", func(t *testing.T) {
		data, err := m.RunError(nil).ToJSON()
		if err != nil {
			t.Fatal(err)
		}
		if msg := gjson.GetBytes(data, "message").String(); msg != "unknown error" {
			t.Errorf("unexpected message %q", msg)
		}
	})
}

func TestMapper_StepOutputs(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	tests := []struct {
		name    string
		in      event.Event
		content string
	}{
		{
			name: "succeeded item",
			in: event.Event{
				Type:     event.StepEnd,
				StepName: "item-0",
				Task:     ab.NewTask([]byte(`{"id":"task-1","status":"completed"}`)),
			},
			content: `{"id":"task-1","status":"completed"}`,
		},
		{
			name: "failed item",
			in: event.Event{
				Type:     event.StepFailed,
				StepName: "item-1",
				Error:    errors.New("request failed with status 500"),
			},
			content: `{"error":"request failed with status 500"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MapEvent(tt.in)
			wantTypes := []events.EventType{
				events.EventTypeTextMessageStart,
				events.EventTypeTextMessageContent,
				events.EventTypeTextMessageEnd,
				events.EventTypeStepFinished,
			}
			if len(got) != len(wantTypes) {
				t.Fatalf("expected %d events, got %d", len(wantTypes), len(got))
			}
			for i, want := range wantTypes {
				if got[i].Type() != want {
					t.Errorf("event %d: expected %s, got %s", i, want, got[i].Type())
				}
			}

			data, err := got[1].ToJSON()
			if err != nil {
				t.Fatal(err)
			}
			delta := gjson.GetBytes(data, "delta").String()
			if delta != tt.content {
				t.Errorf("expected content %s, got %s", tt.content, delta)
			}

			start, _ := got[0].ToJSON()
			end, _ := got[2].ToJSON()
			id := gjson.GetBytes(data, "messageId").String()
			if id == "" || gjson.GetBytes(start, "messageId").String() != id || gjson.GetBytes(end, "messageId").String() != id {
				t.Error("expected start, content and end to share a message ID")
			}

			step, _ := got[3].ToJSON()
			if name := gjson.GetBytes(step, "stepName").String(); name != tt.in.StepName {
				t.Errorf("expected step name %q, got %q", tt.in.StepName, name)
			}
		})
	}
}

func TestMapper_UnknownEvent(t *testing.T) {
	m := NewMapper("", "")
	if got := m.MapEvent(event.Event{Type: "something_else"}); got != nil {
		t.Errorf("expected nil, got %d events", len(got))
	}
}
