package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/SeashellApp/internal/usecase"
)

// AuthHandler — обработчик HTTP-запросов аутентификации.
type AuthHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.UserUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userUseCase: uc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login — вход по email и паролю, возвращает токен доступа.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid request body", h.logger)
		return
	}

	token, err := h.userUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"}, h.logger)
}

// Logout — сессий на сервере нет, токен остаётся действителен до истечения срока.
// Эндпоинт существует для симметрии клиентского API.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"}, h.logger)
}

// Me — возвращает текущего авторизованного пользователя.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}
