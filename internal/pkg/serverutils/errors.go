package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Stable error codes returned in the error_code field.
const (
	CodeValidation               = "VALIDATION_ERROR"
	CodeInvalidId                = "INVALID_ID"
	CodeUserNotFound             = "USER_NOT_FOUND"
	CodeSessionNotFound          = "SESSION_NOT_FOUND"
	CodeEmailAlreadyExists       = "EMAIL_ALREADY_EXISTS"
	CodeEmailConstraintViolation = "EMAIL_CONSTRAINT_VIOLATION"
	CodeDatabase                 = "DATABASE_ERROR"
	CodeAgentPipeline            = "AGENT_PIPELINE_ERROR"
	CodeInternal                 = "INTERNAL_ERROR"
)

// AppError carries the HTTP status and stable code a failure should surface with.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: CodeValidation, Message: message}
}

func NewInvalidIdError(field string, err error) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: CodeInvalidId, Message: field + " must be a valid UUID", Err: err}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Code: code, Message: message}
}

func NewConflictError(code, message string, err error) *AppError {
	return &AppError{Status: fiber.StatusConflict, Code: code, Message: message, Err: err}
}

func NewDatabaseError(message string, err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Code: CodeDatabase, Message: message, Err: err}
}

func NewUpstreamError(code, message string, err error) *AppError {
	return &AppError{Status: fiber.StatusBadGateway, Code: code, Message: message, Err: err}
}
