package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
	MessageRoleTool      MessageRole = "tool"
)

func (r MessageRole) Valid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem, MessageRoleTool:
		return true
	}
	return false
}

// SessionChat is one stored turn fragment. Rows are append-only.
type SessionChat struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	Message        string
	Role           MessageRole
	IsFinalMessage bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
