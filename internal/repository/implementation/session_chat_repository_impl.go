package implementation

import (
	"context"

	"db-chat-be/internal/entity"
	"db-chat-be/internal/mapper"
	"db-chat-be/internal/model"
	"db-chat-be/internal/repository/contract"
	"db-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SessionChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionChatMapper
}

func NewSessionChatRepository(db *gorm.DB) contract.SessionChatRepository {
	return &SessionChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionChatMapper(),
	}
}

func (r *SessionChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionChatRepositoryImpl) Create(ctx context.Context, chat *entity.SessionChat) error {
	m := r.mapper.ToModel(chat)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chat = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionChatRepositoryImpl) CreateBatch(ctx context.Context, chats []*entity.SessionChat) error {
	if len(chats) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chats)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chats[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SessionChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionChat, error) {
	var models []*model.SessionChat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *SessionChatRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SessionChat{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
