package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a user to one external database target.
type Session struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Name            string
	DbConnectionUrl string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
