package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/SeashellApp/internal/config"
	"github.com/GoArmGo/SeashellApp/internal/core/ports"
	"github.com/GoArmGo/SeashellApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	db              *sqlx.DB
	userStorage     ports.UserStorage
	userUseCase     usecase.UserUseCase
	seashellUseCase usecase.SeashellUseCase
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	userStorage ports.UserStorage,
	userUseCase usecase.UserUseCase,
	seashellUseCase usecase.SeashellUseCase,
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		db:              db,
		userStorage:     userStorage,
		userUseCase:     userUseCase,
		seashellUseCase: seashellUseCase,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	a.logger.Info("starting application", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.userStorage, a.userUseCase, a.seashellUseCase)

	case "seed":
		err = runSeed(ctx, a.logger, a.userUseCase)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'seed')", *mode)
	}

	if err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
