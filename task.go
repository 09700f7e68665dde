package a2abatch

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Task is the opaque result an agent returns for a message/send call.
//
// The engine does not interpret a task beyond its existence. The accessors
// below only peek into well-known members for logging and summaries and
// return "" when the shape differs.
type Task struct {
	raw json.RawMessage
}

// NewTask wraps raw JSON as a Task. The bytes are copied.
func NewTask(raw []byte) Task {
	return Task{raw: bytes.Clone(raw)}
}

// Raw returns the task JSON exactly as received.
func (t Task) Raw() json.RawMessage {
	return t.raw
}

// IsZero reports whether the task holds no value.
func (t Task) IsZero() bool {
	return len(t.raw) == 0
}

// ID returns the task's "id" member, if it is a string.
func (t Task) ID() string {
	return t.str("id")
}

// ContextID returns the task's "contextId" member, if it is a string.
func (t Task) ContextID() string {
	return t.str("contextId")
}

// State returns the task state. Both the schema shape
// {"status":{"state":"completed"}} and the flat {"status":"completed"}
// are recognized.
func (t Task) State() string {
	if s := t.str("status.state"); s != "" {
		return s
	}
	return t.str("status")
}

// Decode unmarshals the task into v.
func (t Task) Decode(v any) error {
	return json.Unmarshal(t.raw, v)
}

// MarshalJSON returns the raw task JSON, or null for a zero Task.
func (t Task) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// UnmarshalJSON stores a copy of data.
func (t *Task) UnmarshalJSON(data []byte) error {
	t.raw = bytes.Clone(data)
	return nil
}

func (t Task) str(path string) string {
	if t.IsZero() {
		return ""
	}
	r := gjson.GetBytes(t.raw, path)
	if r.Type != gjson.String {
		return ""
	}
	return r.String()
}
