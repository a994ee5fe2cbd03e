package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Сентинельные ошибки аутентификации
var (
	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrConcurrentUpdate возвращается когда запись отклонена проверкой версии
	ErrConcurrentUpdate = errors.New("room was modified by another request")
)

// ErrorKind представляет закрытое множество видов ошибок валидации
type ErrorKind string

// Виды ошибок валидации
const (
	KindNotFound      ErrorKind = "NOT_FOUND"      // Пользователь или участник комнаты не существует
	KindForbidden     ErrorKind = "FORBIDDEN"      // У инициатора нет прав администратора
	KindNotAuthorized ErrorKind = "NOT_AUTHORIZED" // Инициатор и цель находятся в разных комнатах
	KindBadRequest    ErrorKind = "BAD_REQUEST"    // Запрошенная мутация структурно невалидна
)

// FieldError содержит тег поля и сообщение об ошибке.
// Тег поля пустой только для ошибок, пришедших из слоя хранения.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError представляет структурированную ошибку валидации с видом и списком полей
type ValidationError struct {
	Kind   ErrorKind
	Fields []FieldError
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
}

// NewNotFoundError создает ошибку вида NOT_FOUND
func NewNotFoundError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindNotFound, Fields: []FieldError{{Field: field, Message: message}}}
}

// NewForbiddenError создает ошибку вида FORBIDDEN
func NewForbiddenError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindForbidden, Fields: []FieldError{{Field: field, Message: message}}}
}

// NewNotAuthorizedError создает ошибку вида NOT_AUTHORIZED
func NewNotAuthorizedError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindNotAuthorized, Fields: []FieldError{{Field: field, Message: message}}}
}

// NewBadRequestError создает ошибку вида BAD_REQUEST
func NewBadRequestError(field, message string) *ValidationError {
	return &ValidationError{Kind: KindBadRequest, Fields: []FieldError{{Field: field, Message: message}}}
}

// AsValidationError извлекает ValidationError из цепочки ошибок
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
