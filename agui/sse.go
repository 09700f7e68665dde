package agui

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/spetersoncode/a2abatch/event"
)

// SetSSEHeaders sets the response headers for an event stream.
func SetSSEHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
}

// SSEWriter writes AG-UI events in SSE format. After the first write error
// every further write is skipped and Err reports that error.
type SSEWriter struct {
	w       io.Writer
	flusher http.Flusher
	count   int
	err     error
}

// NewSSEWriter creates an SSEWriter. If w implements http.Flusher each
// event is flushed after it is written.
func NewSSEWriter(w io.Writer) *SSEWriter {
	s := &SSEWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		s.flusher = f
	}
	return s
}

// Write writes ev as "event: TYPE\ndata: {json}\n\n".
func (s *SSEWriter) Write(ev events.Event) error {
	if s.err != nil {
		return s.err
	}

	data, err := ev.ToJSON()
	if err != nil {
		s.err = fmt.Errorf("failed to serialize event: %w", err)
		return s.err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		s.err = fmt.Errorf("failed to write event: %w", err)
		return s.err
	}

	if s.flusher != nil {
		s.flusher.Flush()
	}
	s.count++
	return nil
}

// Count returns the number of events written.
func (s *SSEWriter) Count() int {
	return s.count
}

// Err returns the first write error, if any.
func (s *SSEWriter) Err() error {
	return s.err
}

// Observer returns a batch event handler that maps each event with m and
// writes the result to s.
func (s *SSEWriter) Observer(m *Mapper) event.Handler {
	return func(e event.Event) {
		for _, ev := range m.MapEvent(e) {
			if err := s.Write(ev); err != nil {
				return
			}
		}
	}
}
