package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) (*domain.User, error)
}

// SeashellStorage определяет методы для взаимодействия с хранилищем ракушек
type SeashellStorage interface {
	SaveSeashell(ctx context.Context, shell *domain.Seashell) error
	GetSeashellByID(ctx context.Context, id uuid.UUID) (*domain.Seashell, error)
	ListSeashells(ctx context.Context, filter domain.SeashellFilter) ([]domain.Seashell, error)
	UpdateSeashell(ctx context.Context, shell *domain.Seashell) error
	DeleteSeashell(ctx context.Context, id uuid.UUID) error
	// DistinctValues возвращает уникальные непустые значения одной из
	// фильтруемых колонок (species, color, condition, storage_location).
	DistinctValues(ctx context.Context, column string) ([]string, error)
}

// AssetStore определяет методы для работы с файловым хранилищем изображений.
// Store валидирует тип и размер файла и возвращает относительный URL-путь,
// который сохраняется в записи ракушки.
type AssetStore interface {
	Store(ctx context.Context, seashellID uuid.UUID, filename string, size int64, r io.Reader) (string, error)
	// Remove удаляет один файл по его URL-пути.
	Remove(ctx context.Context, imageURL string) error
	// RemoveAll удаляет каталог со всеми файлами записи.
	RemoveAll(ctx context.Context, seashellID uuid.UUID) error
}
