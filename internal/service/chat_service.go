package service

import (
	"context"
	"errors"
	"time"

	"db-chat-be/internal/dto"
	"db-chat-be/internal/entity"
	"db-chat-be/internal/pkg/logger"
	"db-chat-be/internal/pkg/serverutils"
	"db-chat-be/internal/repository/specification"
	"db-chat-be/internal/repository/unitofwork"
	"db-chat-be/pkg/agent"
	"db-chat-be/pkg/conversation"
	"db-chat-be/pkg/events"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "db-chat-be/chat"

var errShortPipelineOutput = errors.New("pipeline returned fewer messages than it was given")

type IChatService interface {
	// Chat runs one turn against the session's database and returns the
	// text of the last message the pipeline produced.
	Chat(ctx context.Context, sessionId uuid.UUID, query string) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryItem, error)
}

type ChatOptions struct {
	HistoryWindow int // rows replayed per turn; 0 or less replays everything
	ReplayOrder   conversation.ReplayOrder
	AgentTimeout  time.Duration // 0 disables the timeout
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	pipeline   agent.Pipeline
	publisher  IPublisherService
	logger     logger.ILogger
	opts       ChatOptions
	now        func() time.Time
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline agent.Pipeline,
	publisher IPublisherService,
	logger logger.ILogger,
	opts ChatOptions,
) IChatService {
	if opts.ReplayOrder == "" {
		opts.ReplayOrder = conversation.Chronological
	}
	return &chatService{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		publisher:  publisher,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

func (s *chatService) Chat(ctx context.Context, sessionId uuid.UUID, query string) (*dto.ChatResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ChatService.Chat",
		trace.WithAttributes(attribute.String("session.id", sessionId.String())))
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSession(ctx, uow, sessionId, "user_chat")
	if err != nil {
		span.SetStatus(codes.Error, "session lookup failed")
		return nil, err
	}

	historySpecs := []specification.Specification{
		specification.BySessionID{SessionID: sessionId},
		specification.RecentFirst{},
	}
	if s.opts.HistoryWindow > 0 {
		historySpecs = append(historySpecs, specification.Pagination{Limit: s.opts.HistoryWindow})
	}

	recent, err := uow.SessionChatRepository().FindAll(ctx, historySpecs...)
	if err != nil {
		s.logger.Error("ChatService", "Failed to load chat history", map[string]interface{}{
			"action":     "user_chat",
			"session_id": sessionId,
			"error":      err.Error(),
		})
		span.RecordError(err)
		return nil, serverutils.NewDatabaseError("Failed to load chat history", err)
	}

	history := conversation.Replay(recent, s.opts.ReplayOrder)
	input := conversation.BuildInput(history, session.DbConnectionUrl, query)
	span.SetAttributes(attribute.Int("chat.history_rows", len(recent)))

	output, err := s.invoke(ctx, input, sessionId)
	if err != nil {
		s.logger.Error("ChatService", "Agent pipeline failed", map[string]interface{}{
			"action":     "user_chat",
			"session_id": sessionId,
			"error":      err.Error(),
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, "pipeline failed")
		return nil, serverutils.NewUpstreamError(serverutils.CodeAgentPipeline, "Agent pipeline failed", err)
	}

	turn, produced := conversation.Split(input, output)
	if turn == nil {
		s.logger.Error("ChatService", "Agent pipeline returned a truncated history", map[string]interface{}{
			"action":       "user_chat",
			"session_id":   sessionId,
			"input_count":  len(input),
			"output_count": len(output),
		})
		return nil, serverutils.NewUpstreamError(serverutils.CodeAgentPipeline, "Agent pipeline failed", errShortPipelineOutput)
	}

	var newest *entity.SessionChat
	if len(recent) > 0 {
		newest = recent[0]
	}
	rows := conversation.BuildBatch(sessionId, turn, conversation.NextBase(s.now().UTC(), newest))

	if err := s.persist(ctx, uow, rows); err != nil {
		s.logger.Error("ChatService", "Failed to store chat turn", map[string]interface{}{
			"action":     "user_chat",
			"session_id": sessionId,
			"rows":       len(rows),
			"error":      err.Error(),
		})
		span.RecordError(err)
		return nil, serverutils.NewDatabaseError("Failed to store chat turn", err)
	}

	reply := conversation.Reply(produced)

	s.logger.Info("ChatService", "Chat turn stored", map[string]interface{}{
		"action":     "user_chat",
		"session_id": sessionId,
		"rows":       len(rows),
		"produced":   len(produced),
	})
	publishEvent(ctx, s.publisher, s.logger, "ChatService", events.New(events.TypeChatTurnCompleted, map[string]interface{}{
		"session_id":  sessionId.String(),
		"stored_rows": len(rows),
		"produced":    len(produced),
	}))

	return &dto.ChatResponse{SessionId: sessionId, Response: reply}, nil
}

func (s *chatService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findSession(ctx, uow, sessionId, "chat_history"); err != nil {
		return nil, err
	}

	chats, err := uow.SessionChatRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		s.logger.Error("ChatService", "Failed to load chat history", map[string]interface{}{
			"action":     "chat_history",
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to load chat history", err)
	}

	res := make([]*dto.ChatHistoryItem, 0, len(chats))
	for _, chat := range chats {
		res = append(res, &dto.ChatHistoryItem{
			Id:             chat.Id,
			Message:        chat.Message,
			Role:           string(chat.Role),
			IsFinalMessage: chat.IsFinalMessage,
			CreatedAt:      chat.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) findSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, action string) (*entity.Session, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		s.logger.Error("ChatService", "Failed to look up session", map[string]interface{}{
			"action":     action,
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, serverutils.NewDatabaseError("Failed to look up session", err)
	}
	if session == nil {
		s.logger.Warn("ChatService", "Session not found", map[string]interface{}{
			"action":     action,
			"session_id": sessionId,
		})
		return nil, serverutils.NewNotFoundError(serverutils.CodeSessionNotFound, "Session not found")
	}
	return session, nil
}

func (s *chatService) invoke(ctx context.Context, input []agent.Message, sessionId uuid.UUID) ([]agent.Message, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Pipeline.Invoke")
	defer span.End()

	if s.opts.AgentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AgentTimeout)
		defer cancel()
	}

	output, err := s.pipeline.Invoke(ctx, input, sessionId.String())
	span.SetAttributes(attribute.Int("pipeline.output_messages", len(output)))
	return output, err
}

// persist writes the whole turn or nothing.
func (s *chatService) persist(ctx context.Context, uow unitofwork.UnitOfWork, rows []*entity.SessionChat) error {
	if len(rows) == 0 {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SessionChatRepository().CreateBatch(ctx, rows); err != nil {
		return err
	}
	return uow.Commit()
}
