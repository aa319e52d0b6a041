package usecase

import (
	"context"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

// UserUseCase определяет интерфейс для бизнес-логики работы с пользователями
// и входом в систему.
type UserUseCase interface {
	// Login проверяет пару email/пароль и возвращает подписанный токен доступа.
	// Неизвестный email и неверный пароль дают одинаковую ошибку
	// domain.ErrInvalidCredentials, чтобы не раскрывать существование аккаунта.
	// Для деактивированной учетной записи возвращается domain.ErrUserInactive.
	Login(ctx context.Context, email, password string) (string, error)

	// CreateUser создаёт нового пользователя с хэшированным паролем.
	// Публичной саморегистрации нет: вызывается только аутентифицированным пользователем.
	CreateUser(ctx context.Context, email, password string, fullName *string) (*domain.User, error)

	// GetUser получает пользователя по идентификатору.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListUsers получает всех пользователей.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// SetUserActive включает или отключает учетную запись (мягкое удаление).
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error)

	// ResetPassword заменяет пароль пользователя новым.
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (*domain.User, error)
}
