package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/config"
	"github.com/GoArmGo/SeashellApp/internal/core/ports"
	"github.com/GoArmGo/SeashellApp/internal/handler"
	"github.com/GoArmGo/SeashellApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршрутизатор приложения. Единственные публичные
// маршруты — корень, /auth/login и отдача файлов изображений; всё остальное
// закрыто middleware-ом Authenticate.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	userStorage ports.UserStorage,
	userUseCase usecase.UserUseCase,
	seashellUseCase usecase.SeashellUseCase,
) http.Handler {
	authHandler := handler.NewAuthHandler(userUseCase, logger)
	userHandler := handler.NewUserHandler(userUseCase, logger)
	seashellHandler := handler.NewSeashellHandler(seashellUseCase, cfg.MaxUploadSize, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Seashell Management Backend API"}`))
	})

	r.Post("/auth/login", authHandler.Login)

	// Отдача сохранённых изображений
	fileServer := http.StripPrefix("/uploads/seashells/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/seashells/*", fileServer.ServeHTTP)

	// Защищённые маршруты
	r.Group(func(r chi.Router) {
		r.Use(handler.Authenticate(userStorage, []byte(cfg.SecretKey), logger))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Route("/users", func(r chi.Router) {
			r.Post("/create", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.Patch("/{id}/activate", userHandler.Activate)
			r.Patch("/{id}/deactivate", userHandler.Deactivate)
			r.Post("/{id}/reset-password", userHandler.ResetPassword)
		})

		r.Route("/seashells", func(r chi.Router) {
			r.Post("/create", seashellHandler.Create)
			r.Get("/", seashellHandler.List)
			r.Get("/filters/{kind}", seashellHandler.FilterValues)
			r.Get("/{id}", seashellHandler.Get)
			r.Put("/{id}", seashellHandler.Update)
			r.Delete("/{id}", seashellHandler.Delete)
			r.Post("/{id}/upload-image", seashellHandler.UploadImage)
		})
	})

	return r
}

// runServer запускает HTTP сервер с graceful shutdown
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	userStorage ports.UserStorage,
	userUseCase usecase.UserUseCase,
	seashellUseCase usecase.SeashellUseCase,
) error {
	router := NewRouter(cfg, logger, userStorage, userUseCase, seashellUseCase)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
