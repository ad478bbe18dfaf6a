package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"db-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"
)

type OllamaProvider struct {
	ModelName string
	client    *api.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}

	return &OllamaProvider{
		ModelName: modelName,
		client: api.NewClient(base, &http.Client{
			Timeout: 120 * time.Second,
		}),
	}, nil
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Response, error) {
	options := llm.ApplyOptions(opts...)

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	stream := false
	req := &api.ChatRequest{
		Model:    model,
		Messages: toOllamaMessages(history),
		Stream:   &stream,
		Tools:    toOllamaTools(options.Tools),
		Options: map[string]any{
			"temperature": options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}

	var content strings.Builder
	resp := &llm.Response{}

	err := o.client.Chat(ctx, req, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		for _, tc := range r.Message.ToolCalls {
			// Ollama does not id its tool calls; the agent loop needs one to pair results.
			resp.ToolCalls = append(resp.ToolCalls, llm.ToolCall{
				ID:        uuid.NewString(),
				Name:      tc.Function.Name,
				Arguments: map[string]any(tc.Function.Arguments),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}

	resp.Content = content.String()
	return resp, nil
}

func toOllamaMessages(history []llm.Message) []api.Message {
	messages := make([]api.Message, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}

		m := api.Message{
			Role:    role,
			Content: msg.Content,
		}
		if role == llm.RoleTool {
			m.ToolName = msg.Name
		}
		for _, tc := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      tc.Name,
					Arguments: api.ToolCallFunctionArguments(tc.Arguments),
				},
			})
		}
		messages = append(messages, m)
	}
	return messages
}

func toOllamaTools(defs []llm.ToolDefinition) api.Tools {
	if len(defs) == 0 {
		return nil
	}

	tools := make(api.Tools, 0, len(defs))
	for _, def := range defs {
		tool := api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        def.Name,
				Description: def.Description,
			},
		}
		tool.Function.Parameters.Type = "object"
		tool.Function.Parameters.Properties = make(map[string]api.ToolProperty, len(def.Parameters))

		for _, p := range def.Parameters {
			typ := p.Type
			if typ == "" {
				typ = "string"
			}
			tool.Function.Parameters.Properties[p.Name] = api.ToolProperty{
				Type:        api.PropertyType{typ},
				Description: p.Description,
			}
			if p.Required {
				tool.Function.Parameters.Required = append(tool.Function.Parameters.Required, p.Name)
			}
		}
		tools = append(tools, tool)
	}
	return tools
}
