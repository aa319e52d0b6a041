package domain

import "errors"

// Ошибки доменного уровня. Обработчики HTTP отображают их в статусы и
// единый формат тела {"detail": "..."}.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSeashellNotFound   = errors.New("seashell not found")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
)

// ValidationError описывает нарушение ограничения на поле входных данных.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError создаёт ошибку валидации для поля field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
