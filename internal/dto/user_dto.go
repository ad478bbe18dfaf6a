package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email string  `json:"email" validate:"required,email,max=100"`
	Name  *string `json:"name" validate:"omitempty,max=100"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
