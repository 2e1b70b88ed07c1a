package domain

import (
	"errors"
	"fmt"
)

// Ошибки, которые возвращают Use Cases и по которым REST-слой выбирает статус.
var (
	ErrLoginRequired    = errors.New("login required")
	ErrPropertyNotFound = errors.New("property not found")
	ErrSessionNotFound  = errors.New("listing session not found")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// ValidationError - ошибка проверки пользовательского ввода. До платформы не доходит.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// RemoteError - ошибка, которую вернула платформа. Message показывается пользователю.
type RemoteError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform %s failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("platform %s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// UserMessage извлекает текст для уведомления: сообщение платформы или fallback.
func UserMessage(err error, fallback string) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return fallback
}
