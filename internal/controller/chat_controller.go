package controller

import (
	"db-chat-be/internal/dto"
	"db-chat-be/internal/pkg/serverutils"
	"db-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Get("/", c.Chat)
	h.Get("/history", c.History)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return serverutils.NewInvalidIdError("session_id", err)
	}

	res, err := c.service.Chat(ctx.UserContext(), sessionId, req.Query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat response", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	var req dto.ChatHistoryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return serverutils.NewInvalidIdError("session_id", err)
	}

	res, err := c.service.History(ctx.UserContext(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}
