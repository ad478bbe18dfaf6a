package agent

import "db-chat-be/pkg/llm"

type MessageType string

const (
	TypeHuman  MessageType = "human"
	TypeAI     MessageType = "ai"
	TypeSystem MessageType = "system"
	TypeTool   MessageType = "tool"
)

// Message is the pipeline's representation of a conversation entry.
type Message struct {
	Type       MessageType
	Content    string
	Name       string // producing agent for ai messages, tool name for tool messages
	ToolCallID string
	ToolCalls  []llm.ToolCall
}

func HumanMessage(content string) Message {
	return Message{Type: TypeHuman, Content: content}
}

func SystemMessage(content string) Message {
	return Message{Type: TypeSystem, Content: content}
}

func AIMessage(name, content string) Message {
	return Message{Type: TypeAI, Name: name, Content: content}
}

func ToolMessage(name, callID, content string) Message {
	return Message{Type: TypeTool, Name: name, ToolCallID: callID, Content: content}
}

func toLLMMessages(prompt string, history []Message) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	if prompt != "" {
		out = append(out, llm.Message{Role: llm.RoleSystem, Content: prompt})
	}

	for _, m := range history {
		switch m.Type {
		case TypeHuman:
			out = append(out, llm.Message{Role: llm.RoleUser, Content: m.Content})
		case TypeAI:
			out = append(out, llm.Message{Role: llm.RoleAssistant, Content: m.Content, ToolCalls: m.ToolCalls})
		case TypeSystem:
			out = append(out, llm.Message{Role: llm.RoleSystem, Content: m.Content})
		case TypeTool:
			out = append(out, llm.Message{Role: llm.RoleTool, Content: m.Content, ToolCallID: m.ToolCallID, Name: m.Name})
		}
	}
	return out
}
