package agent

import (
	"context"

	"db-chat-be/pkg/llm"
)

type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

// Tool is something an agent may call. A tool with HandoffTo set does not run;
// calling it passes control to the named agent.
type Tool struct {
	Definition llm.ToolDefinition
	Handler    ToolHandler
	HandoffTo  string
}

func HandoffTool(agentName string) Tool {
	return Tool{
		Definition: llm.ToolDefinition{
			Name:        "transfer_to_" + agentName,
			Description: "Ask agent '" + agentName + "' for help",
		},
		HandoffTo: agentName,
	}
}
