// Package llm abstracts the chat completion model behind a small
// interface so the orchestration loop can be tested without network
// calls.
package llm

import (
	"context"

	"github.com/warungio/stockpilot/internal/assistant/tool"
)

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is one function invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is one entry of the conversation sent to the model.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // set on assistant messages that requested tools
	ToolCallID string     // set on tool messages carrying a result
}

// Completion is the model's answer to one request.
type Completion struct {
	Text      string
	ToolCalls []ToolCall
}

// Completer produces one completion for a conversation plus tool set.
type Completer interface {
	Complete(ctx context.Context, messages []Message, tools []tool.Definition) (*Completion, error)
}
