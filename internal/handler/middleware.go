package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/auth"
	"github.com/GoArmGo/SeashellApp/internal/core/ports"
	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

type currentUserContextKey struct{}

// CurrentUserFromContext достаёт пользователя, положенного в контекст
// middleware-ом Authenticate.
func CurrentUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(currentUserContextKey{}).(*domain.User)
	return user, ok
}

// Authenticate — middleware авторизации: извлекает bearer-токен, проверяет
// подпись и срок действия, находит пользователя и отклоняет деактивированные
// учетные записи. Выполняется до любой доменной логики защищённых эндпоинтов.
func Authenticate(users ports.UserStorage, secretKey []byte, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Not authenticated", logger)
				return
			}

			userIDStr, err := auth.ParseToken(token, secretKey)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", logger)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", logger)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Токен структурно валиден, но не соответствует живой учетной записи
					respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", logger)
					return
				}
				logger.Error("failed to resolve user from token", "error", err)
				respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
				return
			}

			if !user.IsActive {
				logger.Warn("request rejected: inactive account", "user_id", user.ID)
				respondWithError(w, http.StatusForbidden, "User account is inactive", logger)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
