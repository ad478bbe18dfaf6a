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
	"db-chat-be/pkg/database"
	"db-chat-be/pkg/events"

	"github.com/google/uuid"
)

type IUserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// Delete removes the user together with their sessions and chats.
	Delete(ctx context.Context, userId uuid.UUID) error
}

// ThreadEvictor drops pipeline memory kept for a chat session.
type ThreadEvictor interface {
	Delete(ctx context.Context, threadID string) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	threads    ThreadEvictor
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, threads ThreadEvictor, publisher IPublisherService, logger logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		threads:    threads,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	existing, err := repo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		s.logger.Error("UserService", "Failed to look up user by email", map[string]interface{}{
			"action": "create_user",
			"email":  req.Email,
			"error":  err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to create user", err)
	}
	if existing != nil {
		s.logger.Warn("UserService", "Email already registered", map[string]interface{}{
			"action": "create_user",
			"email":  req.Email,
		})
		return nil, serverutils.NewConflictError(serverutils.CodeEmailAlreadyExists, "Email already registered", nil)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			s.logger.Warn("UserService", "Email uniqueness violated on insert", map[string]interface{}{
				"action": "create_user",
				"email":  req.Email,
			})
			return nil, serverutils.NewConflictError(serverutils.CodeEmailConstraintViolation, "Email already registered", err)
		}
		s.logger.Error("UserService", "Failed to insert user", map[string]interface{}{
			"action": "create_user",
			"email":  req.Email,
			"error":  err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to create user", err)
	}

	s.logger.Info("UserService", "User created", map[string]interface{}{
		"action":  "create_user",
		"user_id": user.Id,
	})
	publishEvent(ctx, s.publisher, s.logger, "UserService", events.New(events.TypeUserCreated, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	}))

	return &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) Delete(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		s.logger.Error("UserService", "Failed to look up user", map[string]interface{}{
			"action":  "delete_user",
			"user_id": userId,
			"error":   err.Error(),
		})
		return serverutils.NewDatabaseError("Failed to delete user", err)
	}
	if user == nil {
		return serverutils.NewNotFoundError(serverutils.CodeUserNotFound, "User not found")
	}

	// collected first: the cascade removes the rows
	sessions, err := uow.SessionRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		s.logger.Error("UserService", "Failed to list user sessions", map[string]interface{}{
			"action":  "delete_user",
			"user_id": userId,
			"error":   err.Error(),
		})
		return serverutils.NewDatabaseError("Failed to delete user", err)
	}

	if err := repo.Delete(ctx, userId); err != nil {
		s.logger.Error("UserService", "Failed to delete user", map[string]interface{}{
			"action":  "delete_user",
			"user_id": userId,
			"error":   err.Error(),
		})
		return serverutils.NewDatabaseError("Failed to delete user", err)
	}

	s.evictThreads(ctx, userId, sessions)

	s.logger.Info("UserService", "User deleted", map[string]interface{}{
		"action":   "delete_user",
		"user_id":  userId,
		"sessions": len(sessions),
	})
	publishEvent(ctx, s.publisher, s.logger, "UserService", events.New(events.TypeUserDeleted, map[string]interface{}{
		"user_id": userId.String(),
	}))
	return nil
}

// evictThreads drops the pipeline memory of deleted sessions. Failures only
// warn; the store expires threads on its own.
func (s *userService) evictThreads(ctx context.Context, userId uuid.UUID, sessions []*entity.Session) {
	if s.threads == nil {
		return
	}
	for _, session := range sessions {
		if err := s.threads.Delete(ctx, session.Id.String()); err != nil {
			s.logger.Warn("UserService", "Failed to evict session thread", map[string]interface{}{
				"action":     "delete_user",
				"user_id":    userId,
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}
}
