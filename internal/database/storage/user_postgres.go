package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

// UserStorage реализует интерфейс ports.UserStorage поверх PostgreSQL
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя. Конфликт по email
// отображается в domain.ErrEmailTaken.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO users (id, email, password_hash, full_name, is_active, created_at, updated_at)
        VALUES (:id, :email, :password_hash, :full_name, :is_active, :created_at, :updated_at)
    `, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.Warn("email already registered", "email", user.Email)
			return domain.ErrEmailTaken
		}
		s.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByID получает пользователя по идентификатору.
func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("failed to select user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

// GetUserByEmail получает пользователя по email.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("failed to select user by email", "error", err)
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}

// ListUsers получает всех пользователей.
func (s *UserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	var users []domain.User
	if err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at`); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	s.logger.Info("listed users successfully",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// SetUserActive включает или отключает учетную запись и возвращает обновлённого пользователя.
func (s *UserStorage) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `
        UPDATE users SET is_active = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING *
    `, id, active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("failed to update user active flag", "user_id", id, "error", err)
		return nil, fmt.Errorf("update user active flag: %w", err)
	}

	s.logger.Info("user active flag updated", "user_id", id, "is_active", active)
	return &user, nil
}

// UpdatePasswordHash заменяет хэш пароля пользователя и возвращает обновлённого пользователя.
func (s *UserStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `
        UPDATE users SET password_hash = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING *
    `, id, passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("failed to update password hash", "user_id", id, "error", err)
		return nil, fmt.Errorf("update password hash: %w", err)
	}

	s.logger.Info("user password updated", "user_id", id)
	return &user, nil
}
