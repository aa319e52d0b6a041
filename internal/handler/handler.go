package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/SeashellApp/internal/domain"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой в едином формате {"detail": ...}.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"detail": message}, logger)
}

// respondWithDomainError отображает доменную ошибку в HTTP-статус и тело {"detail": ...}.
// Неизвестные ошибки не пробрасываются клиенту, только в лог.
func respondWithDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var vErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password", logger)
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenExpired):
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", logger)
	case errors.Is(err, domain.ErrUserInactive):
		respondWithError(w, http.StatusForbidden, "User account is inactive", logger)
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found", logger)
	case errors.Is(err, domain.ErrSeashellNotFound):
		respondWithError(w, http.StatusNotFound, "Seashell not found", logger)
	case errors.Is(err, domain.ErrEmailTaken):
		respondWithError(w, http.StatusBadRequest, "Email already registered", logger)
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		respondWithError(w, http.StatusUnsupportedMediaType, "File type not allowed", logger)
	case errors.Is(err, domain.ErrPayloadTooLarge):
		respondWithError(w, http.StatusRequestEntityTooLarge, "File too large", logger)
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusUnprocessableEntity, vErr.Error(), logger)
	default:
		logger.Error("unexpected error", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
