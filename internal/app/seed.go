package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/GoArmGo/SeashellApp/internal/usecase"
)

const (
	seedEmail    = "test@seashell.com"
	seedPassword = "password123"
	seedFullName = "Test User"
)

// runSeed идемпотентно создаёт начального пользователя и завершает работу.
// Публичной саморегистрации нет, поэтому первый пользователь заводится здесь.
func runSeed(ctx context.Context, logger *slog.Logger, userUseCase usecase.UserUseCase) error {
	fullName := seedFullName

	user, err := userUseCase.CreateUser(ctx, seedEmail, seedPassword, &fullName)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			logger.Info("seed user already exists", "email", seedEmail)
			return nil
		}
		return fmt.Errorf("ошибка создания начального пользователя: %w", err)
	}

	logger.Info("seed user created successfully",
		"email", seedEmail,
		"user_id", user.ID,
	)
	return nil
}
