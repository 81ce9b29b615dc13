package service

import (
	"errors"
	"fmt"
)

// Ошибки уровня сервиса. Проверять через errors.Is / errors.As.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("you do not own this provider")

	ErrProviderNotFound = fmt.Errorf("Provider %w", ErrNotFound)
	ErrServiceNotFound  = fmt.Errorf("Service %w", ErrNotFound)
)

// ValidationError — некорректный или неполный ввод (HTTP 400).
// Field: имя поля в JSON-теле запроса.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
