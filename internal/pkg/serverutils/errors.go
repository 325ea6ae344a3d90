package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// AppError is the surfaced error taxonomy: invalid input, not found,
// upstream failure. Soft-failures (grammar, text generation) are
// normal branches in the services and never become AppErrors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInvalidInput(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

// NewUpstreamError wraps a fatal failure of an external collaborator
// (the OCR engine). 502 tells the caller the fault is upstream, not
// in the request.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message, Err: err}
}
