package utils

import (
	"fmt"
	"net/http"
)

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is an expected failure carrying the HTTP status it maps to.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message)
}

func NewValidationError(details map[string]string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: ErrValidationFailed,
		Details: details,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeTooManyRequests, message)
}
