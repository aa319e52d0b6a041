package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/SeashellApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserHandler — обработчик HTTP-запросов администрирования пользователей.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: uc, logger: logger}
}

type createUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func userIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// Create — создаёт нового пользователя (доступно любому авторизованному пользователю).
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid request body", h.logger)
		return
	}

	user, err := h.userUseCase.CreateUser(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("user created via API", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// List — список всех пользователей.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.ListUsers(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// Get — пользователь по идентификатору.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found", h.logger)
		return
	}

	user, err := h.userUseCase.GetUser(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// Activate — включает учетную запись.
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate — отключает учетную запись (мягкое удаление).
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *UserHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := userIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found", h.logger)
		return
	}

	user, err := h.userUseCase.SetUserActive(r.Context(), id, active)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("user active flag changed via API", "user_id", id, "is_active", active)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// ResetPassword — заменяет пароль пользователя.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found", h.logger)
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid request body", h.logger)
		return
	}

	user, err := h.userUseCase.ResetPassword(r.Context(), id, req.NewPassword)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("user password reset via API", "user_id", id)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}
