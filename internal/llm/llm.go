// Package llm talks to chat-completion language models.
package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a conversation message.
type Message struct {
	Role    string
	Content string
}

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends messages and returns the model's reply text.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Model returns the model identifier used for completions.
	Model() string
}

// System returns a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
