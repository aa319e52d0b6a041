package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/auth"
	"github.com/GoArmGo/SeashellApp/internal/core/ports"
	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	secretKey   []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase.
// secretKey — общесистемный секрет подписи токенов, задаётся один раз при старте.
func NewUserUseCase(
	userStorage ports.UserStorage,
	secretKey []byte,
	tokenTTL time.Duration,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		secretKey:   secretKey,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Login выполняет проверку учетных данных и выпускает токен доступа.
func (uc *userUseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Единый ответ для несуществующего email и неверного пароля
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("usecase: login lookup: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		uc.logger.Warn("login failed: wrong password", "user_id", user.ID)
		return "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		uc.logger.Warn("login rejected: inactive account", "user_id", user.ID)
		return "", domain.ErrUserInactive
	}

	token, err := auth.GenerateToken(user.ID.String(), uc.secretKey, uc.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("usecase: issue token: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// CreateUser создаёт нового активного пользователя с хэшированным паролем.
func (uc *userUseCase) CreateUser(ctx context.Context, email, password string, fullName *string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("usecase: hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser получает пользователя по идентификатору.
func (uc *userUseCase) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userStorage.GetUserByID(ctx, id)
}

// ListUsers получает всех пользователей.
func (uc *userUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.userStorage.ListUsers(ctx)
}

// SetUserActive включает или отключает учетную запись.
func (uc *userUseCase) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error) {
	return uc.userStorage.SetUserActive(ctx, id, active)
}

// ResetPassword заменяет пароль пользователя новым.
func (uc *userUseCase) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (*domain.User, error) {
	if newPassword == "" {
		return nil, domain.NewValidationError("new_password", "must not be empty")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("usecase: hash password: %w", err)
	}
	return uc.userStorage.UpdatePasswordHash(ctx, id, hash)
}
