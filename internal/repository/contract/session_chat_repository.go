package contract

import (
	"context"

	"db-chat-be/internal/entity"
	"db-chat-be/internal/repository/specification"
)

type SessionChatRepository interface {
	Create(ctx context.Context, chat *entity.SessionChat) error
	// CreateBatch inserts all rows in a single statement, preserving order.
	CreateBatch(ctx context.Context, chats []*entity.SessionChat) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionChat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
