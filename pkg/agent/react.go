package agent

import (
	"context"
	"fmt"

	"db-chat-be/pkg/llm"
)

const (
	defaultMaxTurns    = 10
	defaultTemperature = 0.9
)

// ReactAgent alternates between the model and its tools until the model
// answers without calling a tool.
type ReactAgent struct {
	Name        string
	prompt      string
	provider    llm.LLMProvider
	tools       map[string]Tool
	definitions []llm.ToolDefinition
	maxTurns    int
	temperature float64
}

type ReactOption func(*ReactAgent)

func WithMaxTurns(n int) ReactOption {
	return func(a *ReactAgent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

func WithAgentTemperature(t float64) ReactOption {
	return func(a *ReactAgent) {
		a.temperature = t
	}
}

func NewReactAgent(name, prompt string, provider llm.LLMProvider, tools []Tool, opts ...ReactOption) *ReactAgent {
	a := &ReactAgent{
		Name:        name,
		prompt:      prompt,
		provider:    provider,
		tools:       make(map[string]Tool, len(tools)),
		maxTurns:    defaultMaxTurns,
		temperature: defaultTemperature,
	}
	for _, t := range tools {
		a.tools[t.Definition.Name] = t
		a.definitions = append(a.definitions, t.Definition)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunResult holds the messages an agent produced. HandoffTo is set when the
// agent passed control to another agent.
type RunResult struct {
	Messages  []Message
	HandoffTo string
}

func (a *ReactAgent) Run(ctx context.Context, history []Message) (*RunResult, error) {
	result := &RunResult{}
	conversation := append([]Message(nil), history...)

	for turn := 0; turn < a.maxTurns; turn++ {
		opts := []llm.Option{llm.WithTemperature(a.temperature)}
		if len(a.definitions) > 0 {
			opts = append(opts, llm.WithTools(a.definitions...))
		}

		resp, err := a.provider.Chat(ctx, toLLMMessages(a.prompt, conversation), opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name, err)
		}

		reply := Message{Type: TypeAI, Name: a.Name, Content: resp.Content, ToolCalls: resp.ToolCalls}
		conversation = append(conversation, reply)
		result.Messages = append(result.Messages, reply)

		if len(resp.ToolCalls) == 0 {
			return result, nil
		}

		for _, call := range resp.ToolCalls {
			msg := a.execute(ctx, call, result)
			conversation = append(conversation, msg)
			result.Messages = append(result.Messages, msg)
		}

		if result.HandoffTo != "" {
			return result, nil
		}
	}

	return nil, fmt.Errorf("%s: %w (%d)", a.Name, ErrMaxTurns, a.maxTurns)
}

// execute answers one tool call. Every call gets a tool message so the model
// always sees a result for each request it made.
func (a *ReactAgent) execute(ctx context.Context, call llm.ToolCall, result *RunResult) Message {
	if result.HandoffTo != "" {
		return ToolMessage(call.Name, call.ID, "Skipped: control was transferred to "+result.HandoffTo)
	}

	tool, ok := a.tools[call.Name]
	if !ok {
		return ToolMessage(call.Name, call.ID, fmt.Sprintf("Error: %s is not a valid tool, try one of the available tools.", call.Name))
	}

	if tool.HandoffTo != "" {
		result.HandoffTo = tool.HandoffTo
		return ToolMessage(call.Name, call.ID, "Successfully transferred to "+tool.HandoffTo)
	}

	output, err := tool.Handler(ctx, call.Arguments)
	if err != nil {
		return ToolMessage(call.Name, call.ID, fmt.Sprintf("Error: %v\n Please fix your mistakes.", err))
	}
	return ToolMessage(call.Name, call.ID, output)
}
