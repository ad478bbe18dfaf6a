package service

import (
	"context"
	"time"

	"db-chat-be/internal/dto"
	"db-chat-be/internal/entity"
	"db-chat-be/internal/pkg/logger"
	"db-chat-be/internal/pkg/serverutils"
	"db-chat-be/internal/repository/specification"
	"db-chat-be/internal/repository/unitofwork"
	"db-chat-be/pkg/events"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	ListByUser(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, logger logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, serverutils.NewInvalidIdError("user_id", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		s.logger.Error("SessionService", "Failed to look up session owner", map[string]interface{}{
			"action":  "create_session",
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to create session", err)
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError(serverutils.CodeUserNotFound, "User not found")
	}

	now := time.Now().UTC()
	session := &entity.Session{
		Id:              uuid.New(),
		UserId:          userId,
		Name:            req.Name,
		DbConnectionUrl: req.DbConnectionUrl,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		s.logger.Error("SessionService", "Failed to insert session", map[string]interface{}{
			"action":  "create_session",
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to create session", err)
	}

	s.logger.Info("SessionService", "Session created", map[string]interface{}{
		"action":     "create_session",
		"user_id":    userId,
		"session_id": session.Id,
	})
	// the connection URL carries credentials and stays out of the event
	publishEvent(ctx, s.publisher, s.logger, "SessionService", events.New(events.TypeSessionCreated, map[string]interface{}{
		"session_id": session.Id.String(),
		"user_id":    userId.String(),
		"name":       session.Name,
	}))

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) ListByUser(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		s.logger.Error("SessionService", "Failed to list sessions", map[string]interface{}{
			"action":  "list_sessions",
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to list sessions", err)
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, &dto.SessionResponse{
			Id:              session.Id,
			UserId:          session.UserId,
			Name:            session.Name,
			DbConnectionUrl: session.DbConnectionUrl,
			CreatedAt:       session.CreatedAt,
		})
	}
	return res, nil
}
