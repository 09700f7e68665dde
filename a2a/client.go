package a2a

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	ab "github.com/spetersoncode/a2abatch"
)

// Client is an A2A protocol client for a single agent endpoint. It chains
// the request builder, the dispatcher and the response mapper.
//
// The endpoint and transport are resolved once when the client is created
// and reused for every message.
type Client struct {
	endpoint string
	doer     Doer
	ids      IDGenerator
	logger   logrus.FieldLogger

	builder    *Builder
	dispatcher *Dispatcher
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP transport collaborator.
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) {
		c.doer = d
	}
}

// WithTimeout uses an *http.Client with the given timeout. It is ignored
// when WithHTTPClient is also supplied.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if c.doer == nil {
			c.doer = &http.Client{Timeout: timeout}
		}
	}
}

// WithIDGenerator sets the generator for request and message ids.
func WithIDGenerator(ids IDGenerator) ClientOption {
	return func(c *Client) {
		c.ids = ids
	}
}

// WithLogger sets the logger. Per-request detail is logged at debug level.
func WithLogger(l logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new A2A client for the given endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{endpoint: endpoint}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = discardLogger()
	}
	c.builder = NewBuilder(c.ids)
	c.dispatcher = NewDispatcher(endpoint, c.doer, c.logger)
	return c
}

// Endpoint returns the agent endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Build constructs the request envelope for item.
func (c *Client) Build(item ab.Item) (*Request, error) {
	return c.builder.Build(item)
}

// Dispatch posts req to the endpoint and returns the raw response body.
func (c *Client) Dispatch(ctx context.Context, req *Request) ([]byte, error) {
	return c.dispatcher.Dispatch(ctx, req)
}

// Map extracts the task from the response to req.
func (c *Client) Map(req *Request, body []byte) (ab.Task, error) {
	resp, err := ParseResponse(body)
	if err != nil {
		return ab.Task{}, err
	}
	if len(resp.ID) > 0 && resp.IDString() != req.ID {
		c.logger.WithFields(logrus.Fields{
			"request_id":  req.ID,
			"response_id": resp.IDString(),
		}).Warn("response id does not match request id")
	}
	return ab.NewTask(resp.Result), nil
}

// Send builds, dispatches and maps a single item.
func (c *Client) Send(ctx context.Context, item ab.Item) (ab.Task, error) {
	req, err := c.Build(item)
	if err != nil {
		return ab.Task{}, err
	}
	body, err := c.Dispatch(ctx, req)
	if err != nil {
		return ab.Task{}, err
	}
	return c.Map(req, body)
}

// SendText is a convenience method that sends a text message.
func (c *Client) SendText(ctx context.Context, text, contextID string) (ab.Task, error) {
	return c.Send(ctx, ab.NewItem(text, contextID))
}

// CheckConnection fetches the agent card to validate that the endpoint is
// reachable.
func (c *Client) CheckConnection(ctx context.Context) (*AgentCard, error) {
	return FetchAgentCard(ctx, c.endpoint, c.doer)
}
