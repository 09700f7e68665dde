package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	ab "github.com/spetersoncode/a2abatch"
)

// Doer is the HTTP transport collaborator. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher posts request envelopes to a single agent endpoint.
type Dispatcher struct {
	endpoint string
	doer     Doer
	logger   logrus.FieldLogger
}

// NewDispatcher creates a Dispatcher for endpoint. The endpoint is used as
// is: no path is appended. A nil doer falls back to http.DefaultClient.
func NewDispatcher(endpoint string, doer Doer, logger logrus.FieldLogger) *Dispatcher {
	if doer == nil {
		doer = http.DefaultClient
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Dispatcher{endpoint: endpoint, doer: doer, logger: logger}
}

// Endpoint returns the URL requests are posted to.
func (d *Dispatcher) Endpoint() string {
	return d.endpoint
}

// Dispatch sends req with a single POST and returns the raw response body.
// It does not retry. Every failure to obtain a 2xx response body is
// returned as a transport error wrapping the underlying cause.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, ab.NewValidationError("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, ab.NewTransportError("failed to create request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log := d.logger.WithField("request_id", req.ID)
	log.WithField("endpoint", d.endpoint).Debug("dispatching message/send")

	resp, err := d.doer.Do(httpReq)
	if err != nil {
		return nil, ab.NewTransportError("request failed", 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ab.NewTransportError("failed to read response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ab.NewTransportError(
			fmt.Sprintf("request failed with status %d", resp.StatusCode),
			resp.StatusCode,
			statusError(respBody),
		)
	}

	log.WithField("status", resp.StatusCode).Debug("received response")
	return respBody, nil
}

// statusError summarizes a non-2xx response body for the error chain.
func statusError(body []byte) error {
	const limit = 512
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if len(body) > limit {
		body = append(body[:limit:limit], "..."...)
	}
	return fmt.Errorf("%s", body)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
