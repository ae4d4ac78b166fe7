package models

import "errors"

// ErrMalformedResponse is returned when the reasoning engine produces a
// response carrying neither final text nor capability requests.
var ErrMalformedResponse = errors.New("malformed reasoning response")

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a tool-call conversation transcript.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant turns requesting capabilities
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool turns answering one request
}

// ToolCall is a single capability request made by the engine.
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// ToolDefinition declares a capability the engine may request by name.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ToolChoice is the capability-usage policy for one engine call.
type ToolChoice string

const (
	ToolChoiceNone     ToolChoice = "none"
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
)

// ChatRequest is one call to the reasoning engine.
type ChatRequest struct {
	Messages    []Message
	Tools       []ToolDefinition
	ToolChoice  ToolChoice
	Temperature float64
	MaxTokens   int
}

// ChatResponse is the engine's answer: either final text or capability
// requests, never both.
type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the engine asked for capabilities instead of
// answering.
func (r ChatResponse) HasToolCalls() bool { return len(r.ToolCalls) > 0 }

// SystemMessage builds a system turn.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
