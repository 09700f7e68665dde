package a2abatch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Item is one input record of a batch. Its position in the batch is the
// pairing key for the matching output.
type Item struct {
	Message   string `json:"message"`
	ContextID string `json:"contextId,omitempty"`

	// invalid is set when the record could not be decoded into an Item.
	invalid error
}

// NewItem creates an item with the given message and optional context ID.
func NewItem(message, contextID string) Item {
	return Item{Message: message, ContextID: contextID}
}

// Err returns the validation error recorded while decoding the item, if any.
func (it Item) Err() error {
	return it.invalid
}

// UnmarshalJSON decodes a single record. A record with a non-string message
// or context ID does not fail the decode; it yields an Item whose Err reports
// a validation error, so one bad record only fails its own position.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*it = Item{invalid: NewValidationError("input record is not a JSON object", err)}
		return nil
	}

	*it = Item{}

	msg, ok := raw["message"]
	if !ok {
		it.invalid = NewValidationError("message is required", ErrInvalidMessage)
		return nil
	}
	if err := json.Unmarshal(msg, &it.Message); err != nil || isNull(msg) {
		it.invalid = NewValidationError("message must be a string", ErrInvalidMessage)
		return nil
	}

	if ctx, ok := raw["contextId"]; ok && !isNull(ctx) {
		if err := json.Unmarshal(ctx, &it.ContextID); err != nil {
			it.invalid = NewValidationError("contextId must be a string", err)
			return nil
		}
	}

	return nil
}

// DecodeItems reads a batch from r. The input is either a JSON array of
// records or JSON Lines with one record per line.
func DecodeItems(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []Item{}, nil
	}

	if trimmed[0] == '[' {
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, NewValidationError("failed to parse items array", err)
		}
		return items, nil
	}

	var items []Item
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var it Item
		if err := json.Unmarshal(line, &it); err != nil {
			return nil, NewValidationError(fmt.Sprintf("failed to parse record %d", len(items)+1), err)
		}
		items = append(items, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}

	return items, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
