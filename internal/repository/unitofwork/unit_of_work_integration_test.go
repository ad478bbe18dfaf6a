package unitofwork

import (
	"context"
	"os"
	"testing"
	"time"

	"db-chat-be/internal/entity"
	"db-chat-be/internal/model"
	"db-chat-be/internal/repository/specification"
	"db-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)

	require.NoError(t, db.Exec(`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'message_role') THEN CREATE TYPE message_role AS ENUM ('user', 'assistant', 'system', 'tool'); END IF; END $$;`).Error)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Session{}, &model.SessionChat{}))
	return db
}

func TestIntegrationCascadeAndUniqueEmail(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	factory := NewRepositoryFactory(db)
	uow := factory.NewUnitOfWork(ctx)

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{Id: uuid.New(), Email: "it-" + uuid.NewString()[:8] + "@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	t.Cleanup(func() { _ = factory.NewUnitOfWork(ctx).UserRepository().Delete(ctx, user.Id) })

	dup := &entity.User{Id: uuid.New(), Email: user.Email, CreatedAt: now, UpdatedAt: now}
	err := uow.UserRepository().Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	session := &entity.Session{Id: uuid.New(), UserId: user.Id, Name: "it", DbConnectionUrl: "postgresql://x@y/z", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, uow.SessionRepository().Create(ctx, session))

	rows := []*entity.SessionChat{
		{Id: uuid.New(), SessionId: session.Id, Message: "q", Role: entity.MessageRoleUser, IsFinalMessage: true, CreatedAt: now, UpdatedAt: now},
		{Id: uuid.New(), SessionId: session.Id, Message: "a", Role: entity.MessageRoleAssistant, IsFinalMessage: true, CreatedAt: now.Add(time.Microsecond), UpdatedAt: now},
	}
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SessionChatRepository().CreateBatch(ctx, rows))
	require.NoError(t, uow.Commit())

	recent, err := uow.SessionChatRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.RecentFirst{},
		specification.Pagination{Limit: 1},
	)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "a", recent[0].Message)

	require.NoError(t, uow.UserRepository().Delete(ctx, user.Id))

	sessions, err := uow.SessionRepository().Count(ctx, specification.ByID{ID: session.Id})
	require.NoError(t, err)
	assert.Zero(t, sessions)

	chats, err := uow.SessionChatRepository().Count(ctx, specification.BySessionID{SessionID: session.Id})
	require.NoError(t, err)
	assert.Zero(t, chats)
}

func TestIntegrationRollbackDiscardsBatch(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	factory := NewRepositoryFactory(db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{Id: uuid.New(), Email: "it-" + uuid.NewString()[:8] + "@example.com", CreatedAt: now, UpdatedAt: now}
	session := &entity.Session{Id: uuid.New(), UserId: user.Id, Name: "it", DbConnectionUrl: "postgresql://x@y/z", CreatedAt: now, UpdatedAt: now}

	setup := factory.NewUnitOfWork(ctx)
	require.NoError(t, setup.UserRepository().Create(ctx, user))
	t.Cleanup(func() { _ = factory.NewUnitOfWork(ctx).UserRepository().Delete(ctx, user.Id) })
	require.NoError(t, setup.SessionRepository().Create(ctx, session))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SessionChatRepository().CreateBatch(ctx, []*entity.SessionChat{
		{Id: uuid.New(), SessionId: session.Id, Message: "q", Role: entity.MessageRoleUser, CreatedAt: now, UpdatedAt: now},
	}))
	require.NoError(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).SessionChatRepository().Count(ctx, specification.BySessionID{SessionID: session.Id})
	require.NoError(t, err)
	assert.Zero(t, count)
}
