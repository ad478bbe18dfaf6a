package conversation

import (
	"db-chat-be/internal/entity"
	"db-chat-be/pkg/agent"
)

// Classify maps a pipeline message onto a stored role. The second result is
// false for messages that have no stored representation.
func Classify(m agent.Message) (entity.MessageRole, bool) {
	switch m.Type {
	case agent.TypeHuman:
		return entity.MessageRoleUser, true
	case agent.TypeAI:
		return entity.MessageRoleAssistant, true
	case agent.TypeSystem:
		return entity.MessageRoleSystem, true
	case agent.TypeTool:
		return entity.MessageRoleTool, true
	default:
		return "", false
	}
}

// Content is the text stored for a message. Tool-call-only messages have no
// text, so the name stands in.
func Content(m agent.Message) string {
	if m.Content != "" {
		return m.Content
	}
	if len(m.ToolCalls) > 0 {
		return m.ToolCalls[0].Name
	}
	return m.Name
}
