package types

import "time"

// MessageRole is the wire value of a message's "type" field.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of a recorded conversation.
type Message struct {
	ID        string      `json:"uuid"`
	Role      MessageRole `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	ToolCalls []ToolCall  `json:"tool_calls,omitempty"`
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// ToolCall is one tool invocation recorded inside an assistant message.
// Input is kept schemaless; each tool has its own field set. Result is
// nil when the recording holds no output for the call.
type ToolCall struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Input  map[string]any `json:"input"`
	Result *string        `json:"result,omitempty"`
}

// HasResult reports whether the call completed; an empty string is still
// a recorded result, only nil means no output arrived.
func (t *ToolCall) HasResult() bool {
	return t != nil && t.Result != nil
}

// ResultText returns the recorded output, or "" when there is none.
func (t *ToolCall) ResultText() string {
	if t == nil || t.Result == nil {
		return ""
	}
	return *t.Result
}

// InputString reads a string field from the input, returning "" for
// missing or non-string values.
func (t *ToolCall) InputString(key string) string {
	if t == nil || t.Input == nil {
		return ""
	}
	value, _ := t.Input[key].(string)
	return value
}

// InputList reads an array-of-objects field from the input, skipping
// entries that are not objects.
func (t *ToolCall) InputList(key string) []map[string]any {
	if t == nil || t.Input == nil {
		return nil
	}
	raw, ok := t.Input[key].([]any)
	if !ok {
		return nil
	}
	var items []map[string]any
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}
