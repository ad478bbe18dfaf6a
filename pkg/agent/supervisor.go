package agent

import (
	"context"
	"fmt"

	"db-chat-be/pkg/llm"

	"github.com/google/uuid"
)

const SupervisorName = "supervisor"

type OutputMode string

const (
	// OutputLastMessage adds only a member's final answer to the shared history.
	OutputLastMessage OutputMode = "last_message"
	// OutputFullHistory adds every message a member produced, tool traffic included.
	OutputFullHistory OutputMode = "full_history"
)

type SupervisorOptions struct {
	Prompt      string
	MaxTurns    int
	MaxHandoffs int
	Temperature float64
	OutputMode  OutputMode
}

// Supervisor routes a conversation between member agents through
// transfer_to_<agent> tools and answers once no member is needed.
type Supervisor struct {
	agent       *ReactAgent
	members     map[string]*ReactAgent
	threads     ThreadStore
	maxHandoffs int
	outputMode  OutputMode
}

var _ Pipeline = (*Supervisor)(nil)

func NewSupervisor(provider llm.LLMProvider, members []*ReactAgent, threads ThreadStore, opts SupervisorOptions) *Supervisor {
	handoffs := make([]Tool, 0, len(members))
	byName := make(map[string]*ReactAgent, len(members))
	for _, m := range members {
		handoffs = append(handoffs, HandoffTool(m.Name))
		byName[m.Name] = m
	}

	if opts.MaxHandoffs <= 0 {
		opts.MaxHandoffs = 6
	}
	if opts.OutputMode == "" {
		opts.OutputMode = OutputLastMessage
	}

	return &Supervisor{
		agent: NewReactAgent(SupervisorName, opts.Prompt, provider, handoffs,
			WithMaxTurns(opts.MaxTurns), WithAgentTemperature(opts.Temperature)),
		members:     byName,
		threads:     threads,
		maxHandoffs: opts.MaxHandoffs,
		outputMode:  opts.OutputMode,
	}
}

func (s *Supervisor) Invoke(ctx context.Context, messages []Message, threadID string) ([]Message, error) {
	thread, err := s.threads.Load(ctx, threadID)
	if err != nil {
		return nil, err
	}
	ctx = WithThread(ctx, thread)

	out := append([]Message(nil), messages...)
	handoffs := 0

	for {
		res, err := s.agent.Run(ctx, out)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Messages...)
		thread.LastAgent = SupervisorName

		if res.HandoffTo == "" {
			break
		}

		handoffs++
		if handoffs > s.maxHandoffs {
			return nil, fmt.Errorf("%w (%d)", ErrMaxHandoffs, s.maxHandoffs)
		}

		member, ok := s.members[res.HandoffTo]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, res.HandoffTo)
		}
		thread.LastAgent = member.Name

		memberRes, err := member.Run(ctx, out)
		if err != nil {
			return nil, err
		}
		out = append(out, s.memberOutput(memberRes.Messages)...)
		out = append(out, transferBack(member.Name)...)
	}

	thread.Turns++
	if err := s.threads.Save(ctx, thread); err != nil {
		return nil, fmt.Errorf("save thread %s: %w", threadID, err)
	}

	return out, nil
}

func (s *Supervisor) memberOutput(produced []Message) []Message {
	if s.outputMode == OutputFullHistory || len(produced) == 0 {
		return produced
	}
	return produced[len(produced)-1:]
}

func transferBack(from string) []Message {
	callID := uuid.NewString()
	name := "transfer_back_to_" + SupervisorName
	return []Message{
		{
			Type:    TypeAI,
			Name:    from,
			Content: "Transferring back to " + SupervisorName,
			ToolCalls: []llm.ToolCall{{
				ID:        callID,
				Name:      name,
				Arguments: map[string]any{},
			}},
		},
		ToolMessage(name, callID, "Successfully transferred back to "+SupervisorName),
	}
}
