package mapper

import (
	"db-chat-be/internal/entity"
	"db-chat-be/internal/model"
)

type SessionChatMapper struct{}

func NewSessionChatMapper() *SessionChatMapper {
	return &SessionChatMapper{}
}

func (m *SessionChatMapper) ToEntity(c *model.SessionChat) *entity.SessionChat {
	if c == nil {
		return nil
	}
	return &entity.SessionChat{
		Id:             c.Id,
		SessionId:      c.SessionId,
		Message:        c.Message,
		Role:           entity.MessageRole(c.Role),
		IsFinalMessage: c.IsFinalMessage,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *SessionChatMapper) ToModel(c *entity.SessionChat) *model.SessionChat {
	if c == nil {
		return nil
	}
	return &model.SessionChat{
		Id:             c.Id,
		SessionId:      c.SessionId,
		Message:        c.Message,
		Role:           string(c.Role),
		IsFinalMessage: c.IsFinalMessage,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *SessionChatMapper) ToEntities(chats []*model.SessionChat) []*entity.SessionChat {
	entities := make([]*entity.SessionChat, len(chats))
	for i, c := range chats {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *SessionChatMapper) ToModels(chats []*entity.SessionChat) []*model.SessionChat {
	models := make([]*model.SessionChat, len(chats))
	for i, c := range chats {
		models[i] = m.ToModel(c)
	}
	return models
}
