package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionChat struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID `gorm:"type:uuid;not null;index:idx_session_chats_session_created,priority:1"`
	Message        string    `gorm:"type:text;not null"`
	Role           string    `gorm:"type:message_role;not null"`
	IsFinalMessage bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"index:idx_session_chats_session_created,priority:2"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (SessionChat) TableName() string {
	return "session_chats"
}
