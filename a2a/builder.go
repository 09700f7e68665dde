package a2a

import (
	"unicode/utf8"

	"github.com/google/uuid"

	ab "github.com/spetersoncode/a2abatch"
)

// IDGenerator produces correlation identifiers for requests and messages.
// Identifiers only need to be unique within a batch; they are not security
// tokens.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to the IDGenerator interface.
type IDFunc func() string

// NewID calls f.
func (f IDFunc) NewID() string { return f() }

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Builder constructs one message/send envelope per input item.
type Builder struct {
	ids IDGenerator
}

// NewBuilder creates a Builder. A nil generator falls back to UUIDGenerator.
func NewBuilder(ids IDGenerator) *Builder {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Builder{ids: ids}
}

// Build creates the request for a single item. The message carries exactly
// one text part; contextId is set only when the item has a non-empty one.
// Empty text is accepted. Build has no side effects beyond drawing two ids.
func (b *Builder) Build(item ab.Item) (*Request, error) {
	if err := item.Err(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(item.Message) {
		return nil, ab.NewValidationError("message must be valid UTF-8", ab.ErrInvalidMessage)
	}

	msg := NewMessage(b.ids.NewID(), MessageRoleUser, NewTextPart(item.Message))
	if item.ContextID != "" {
		msg.ContextID = item.ContextID
	}

	return &Request{
		JSONRPC: JSONRPCVersion,
		Method:  MethodSendMessage,
		ID:      b.ids.NewID(),
		Params:  SendMessageParams{Message: msg},
	}, nil
}

// BuildText is a convenience wrapper around Build for a bare message.
func (b *Builder) BuildText(text, contextID string) (*Request, error) {
	return b.Build(ab.NewItem(text, contextID))
}
