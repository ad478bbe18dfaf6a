package conversation

import (
	"fmt"

	"db-chat-be/internal/constant"
	"db-chat-be/internal/entity"
	"db-chat-be/pkg/agent"
)

type ReplayOrder string

const (
	// Chronological replays the window oldest first.
	Chronological ReplayOrder = constant.ChatHistoryOrderChronological
	// NewestFirst replays rows in the order they were loaded.
	NewestFirst ReplayOrder = constant.ChatHistoryOrderNewestFirst
)

func ParseReplayOrder(s string) ReplayOrder {
	if ReplayOrder(s) == NewestFirst {
		return NewestFirst
	}
	return Chronological
}

// Replay turns stored rows, loaded newest first, into pipeline messages.
// Tool rows are not fed back to the agents.
func Replay(rows []*entity.SessionChat, order ReplayOrder) []agent.Message {
	messages := make([]agent.Message, 0, len(rows))

	for i := range rows {
		row := rows[i]
		if order == Chronological {
			row = rows[len(rows)-1-i]
		}

		switch row.Role {
		case entity.MessageRoleUser:
			messages = append(messages, agent.HumanMessage(row.Message))
		case entity.MessageRoleAssistant:
			messages = append(messages, agent.Message{Type: agent.TypeAI, Content: row.Message})
		case entity.MessageRoleSystem:
			messages = append(messages, agent.SystemMessage(row.Message))
		}
	}
	return messages
}

func ConnectionMessage(dbConnectionUrl string) agent.Message {
	return agent.SystemMessage(fmt.Sprintf(constant.ConnectionMessageTemplate, dbConnectionUrl))
}

// BuildInput appends the connection descriptor and the new query to the
// replayed history. The query is always the last message.
func BuildInput(history []agent.Message, dbConnectionUrl, query string) []agent.Message {
	input := make([]agent.Message, 0, len(history)+2)
	input = append(input, history...)
	input = append(input, ConnectionMessage(dbConnectionUrl), agent.HumanMessage(query))
	return input
}
