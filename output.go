package a2abatch

import (
	"encoding/json"
)

// ErrorRecord is placed in the output slot of an item that failed while the
// batch continued past failures.
type ErrorRecord struct {
	Error string `json:"error"`
}

// Output is the result slot for one input item: either a Task or an
// ErrorRecord. It marshals to the task JSON verbatim or to {"error": "..."}.
type Output struct {
	Task  Task
	Error *ErrorRecord
}

// TaskOutput creates a successful output slot.
func TaskOutput(t Task) Output {
	return Output{Task: t}
}

// ErrorOutput creates a failed output slot from err.
func ErrorOutput(err error) Output {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Output{Error: &ErrorRecord{Error: msg}}
}

// Failed reports whether the slot holds an ErrorRecord.
func (o Output) Failed() bool {
	return o.Error != nil
}

// MarshalJSON implements json.Marshaler.
func (o Output) MarshalJSON() ([]byte, error) {
	if o.Error != nil {
		return json.Marshal(o.Error)
	}
	return o.Task.MarshalJSON()
}
