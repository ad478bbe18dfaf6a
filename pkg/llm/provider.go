package llm

import (
	"context"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role       string // "user", "assistant", "system", "tool"
	Content    string
	ToolCalls  []ToolCall // assistant messages that requested tools
	ToolCallID string     // tool messages: the call being answered
	Name       string     // tool messages: the tool that produced Content
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

type ToolParameter struct {
	Name        string
	Type        string // JSON schema primitive, "string" when empty
	Description string
	Required    bool
}

// ToolDefinition is what the model sees of a tool.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  []ToolParameter
}

type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	Tools       []ToolDefinition
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithTools(tools ...ToolDefinition) Option {
	return func(o *Options) {
		o.Tools = append(o.Tools, tools...)
	}
}

// ApplyOptions folds opts over the defaults every provider starts from.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model. When tools are offered the
	// response may carry tool calls instead of, or next to, text.
	Chat(ctx context.Context, history []Message, options ...Option) (*Response, error)
}
