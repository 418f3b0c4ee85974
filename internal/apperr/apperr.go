// Package apperr carries the API error taxonomy: every failure a handler
// can return maps to exactly one HTTP status category.
package apperr

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Validation: missing or malformed input. Detected before any write.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Unauthorized: missing or invalid token.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return New(http.StatusUnauthorized, message)
}

// Forbidden: authenticated but not the resource's author or required role.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return New(http.StatusForbidden, message)
}

// NotFound: target missing, or already soft-deleted from public view.
func NotFound(message string) *AppError {
	if message == "" {
		message = "Not Found"
	}
	return New(http.StatusNotFound, message)
}

// Conflict: duplicate submission rejected by a store constraint.
func Conflict(message string) *AppError {
	if message == "" {
		message = "Conflict"
	}
	return New(http.StatusConflict, message)
}

// Internal: store or downstream failure. Details stay in the logs.
func Internal(message string) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return New(http.StatusInternalServerError, message)
}

// As unwraps err into an *AppError, defaulting to Internal for anything
// outside the taxonomy.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("")
}
