package service

import (
	"context"
	"testing"
	"time"

	"db-chat-be/internal/dto"
	"db-chat-be/internal/entity"
	"db-chat-be/internal/pkg/logger"
	"db-chat-be/internal/pkg/serverutils"
	"db-chat-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceCreate(t *testing.T) {
	owner := &entity.User{Id: uuid.New(), Email: "owner@example.com"}

	tests := []struct {
		name       string
		userId     string
		wantStatus int
		wantCode   string
	}{
		{name: "created", userId: owner.Id.String()},
		{name: "malformed user id", userId: "not-a-uuid", wantStatus: 400, wantCode: serverutils.CodeInvalidId},
		{name: "unknown user", userId: uuid.NewString(), wantStatus: 404, wantCode: serverutils.CodeUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.users = []*entity.User{owner}
			pub := &fakePublisher{}
			svc := NewSessionService(store, pub, logger.NewNopLogger())

			res, err := svc.Create(context.Background(), &dto.CreateSessionRequest{
				Name:            "analytics",
				UserId:          tt.userId,
				DbConnectionUrl: "postgresql://ro:secret@db:5432/shop",
			})

			if tt.wantCode != "" {
				requireAppError(t, err, tt.wantStatus, tt.wantCode)
				assert.Empty(t, store.sessions)
				return
			}

			require.NoError(t, err)
			require.Len(t, store.sessions, 1)
			assert.Equal(t, res.Id, store.sessions[0].Id)
			assert.Equal(t, owner.Id, store.sessions[0].UserId)

			require.Len(t, pub.events, 1)
			assert.Equal(t, events.TypeSessionCreated, pub.events[0].EventType())
			assert.NotContains(t, pub.events[0].Payload(), "db_connection_url")
		})
	}
}

func TestSessionServiceListByUser(t *testing.T) {
	store := newFakeStore()
	owner, other := uuid.New(), uuid.New()
	t0 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store.sessions = []*entity.Session{
		{Id: uuid.New(), UserId: owner, Name: "second", CreatedAt: t0.Add(time.Hour)},
		{Id: uuid.New(), UserId: other, Name: "foreign", CreatedAt: t0},
		{Id: uuid.New(), UserId: owner, Name: "first", CreatedAt: t0},
	}
	svc := NewSessionService(store, nil, logger.NewNopLogger())

	res, err := svc.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "first", res[0].Name)
	assert.Equal(t, "second", res[1].Name)

	empty, err := svc.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
