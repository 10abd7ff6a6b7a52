package errors

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, "Unauthorized")
}

func NewForbiddenError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusForbidden, message[0])
	}
	return NewAppError(http.StatusForbidden, "Not enough permissions")
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewUnprocessableEntityError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message)
}

func NewTooManyRequestsError(message string, limit int, reset int64) *AppError {
	return NewAppError(http.StatusTooManyRequests, fmt.Sprintf("%s (limit %d, resets at %d)", message, limit, reset))
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, message)
}

// NewServiceError wraps a failure of an external collaborator. Unlike
// NewInternalServerError the cause stays visible to the client.
func NewServiceError(originalError error, action string) *AppError {
	logrus.WithField("action", action).Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, fmt.Sprintf("Failed to %s: %s", action, originalError.Error()))
}

// IsNotFound reports whether err is an AppError carrying 404
func IsNotFound(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.StatusCode == http.StatusNotFound
}
