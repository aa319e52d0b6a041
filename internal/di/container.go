package di

import (
	"github.com/GoArmGo/SeashellApp/internal/adapter/storage/fs"
	"github.com/GoArmGo/SeashellApp/internal/app"
	"github.com/GoArmGo/SeashellApp/internal/config"
	"github.com/GoArmGo/SeashellApp/internal/database/client"
	"github.com/GoArmGo/SeashellApp/internal/database/storage"
	"github.com/GoArmGo/SeashellApp/internal/logger"
	"github.com/GoArmGo/SeashellApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (подключение + миграции)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	seashellStorage := storage.NewSeashellStorage(dbClient.DB, slogger)

	// 4. Инициализация файлового хранилища изображений
	assetStore, err := fs.NewAssetStore(cfg.UploadDir, cfg.MaxUploadSize, slogger)
	if err != nil {
		return nil, err
	}

	// 5. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, []byte(cfg.SecretKey), cfg.TokenTTL, slogger)
	seashellUseCase := usecase.NewSeashellUseCase(seashellStorage, assetStore, slogger)

	// 6. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		userStorage,
		userUseCase,
		seashellUseCase,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
