package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	UserId          string `json:"user_id" validate:"required"`
	DbConnectionUrl string `json:"db_connection_url" validate:"required,max=255"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionResponse struct {
	Id              uuid.UUID `json:"id"`
	UserId          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	DbConnectionUrl string    `json:"db_connection_url"`
	CreatedAt       time.Time `json:"created_at"`
}
