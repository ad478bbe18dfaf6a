package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	SessionId string `query:"session_id" validate:"required"`
	Query     string `query:"query" validate:"required"`
}

type ChatResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Response  string    `json:"response"`
}

type ChatHistoryRequest struct {
	SessionId string `query:"session_id" validate:"required"`
}

type ChatHistoryItem struct {
	Id             uuid.UUID `json:"id"`
	Message        string    `json:"message"`
	Role           string    `json:"role"`
	IsFinalMessage bool      `json:"is_final_message"`
	CreatedAt      time.Time `json:"created_at"`
}
