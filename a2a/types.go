package a2a

import (
	"encoding/json"
	"strings"
)

// JSONRPCVersion is the protocol version sent in every request.
const JSONRPCVersion = "2.0"

// MethodSendMessage is the JSON-RPC method for non-streaming message delivery.
const MethodSendMessage = "message/send"

// MessageRole indicates the originator of a message.
type MessageRole string

const (
	// MessageRoleUser is the role for messages from the user/client.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAgent is the role for messages from the agent/server.
	MessageRoleAgent MessageRole = "agent"
)

// Message represents a single exchange between a user and an agent.
type Message struct {
	Kind      string      `json:"kind"`
	MessageID string      `json:"messageId"`
	Role      MessageRole `json:"role"`
	Parts     []Part      `json:"parts"`
	ContextID string      `json:"contextId,omitempty"`
}

// NewMessage creates a new message with the given id, role and parts.
func NewMessage(id string, role MessageRole, parts ...Part) Message {
	return Message{
		Kind:      "message",
		MessageID: id,
		Role:      role,
		Parts:     parts,
	}
}

// TextContent returns the concatenated text from all TextParts in the message.
func (m Message) TextContent() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}

// UnmarshalJSON implements custom JSON unmarshaling for Message.
// Parts is a []Part interface and can't be unmarshaled directly.
func (m *Message) UnmarshalJSON(data []byte) error {
	type messageAlias Message
	var tmp struct {
		messageAlias
		Parts []json.RawMessage `json:"parts"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	*m = Message(tmp.messageAlias)
	m.Parts = make([]Part, 0, len(tmp.Parts))

	for _, raw := range tmp.Parts {
		part, err := UnmarshalPart(raw)
		if err != nil {
			return err
		}
		m.Parts = append(m.Parts, part)
	}

	return nil
}

// Part represents a segment of a message. Only text parts are produced by
// this package; other kinds decode as RawPart.
type Part interface {
	partMarker()
	GetKind() string
}

// TextPart represents a text segment within a message.
type TextPart struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func (TextPart) partMarker()       {}
func (p TextPart) GetKind() string { return p.Kind }

// NewTextPart creates a new TextPart with the given text.
func NewTextPart(text string) TextPart {
	return TextPart{Kind: "text", Text: text}
}

// RawPart keeps a part of an unsupported kind (file, data, ...) verbatim.
type RawPart struct {
	Kind string
	Raw  json.RawMessage
}

func (RawPart) partMarker()       {}
func (p RawPart) GetKind() string { return p.Kind }

// MarshalJSON returns the part exactly as it was received.
func (p RawPart) MarshalJSON() ([]byte, error) {
	return p.Raw, nil
}

// UnmarshalPart unmarshals a Part from JSON.
func UnmarshalPart(data []byte) (Part, error) {
	var raw struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if raw.Kind == "text" {
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	}

	return RawPart{Kind: raw.Kind, Raw: append(json.RawMessage(nil), data...)}, nil
}

// SendMessageParams are the params of a message/send request.
type SendMessageParams struct {
	Message Message `json:"message"`
}

// Request is the JSON-RPC 2.0 envelope for a message/send call.
type Request struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	ID      string            `json:"id"`
	Params  SendMessageParams `json:"params"`
}
