package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

// Upload описывает загружаемый файл изображения: исходное имя (для проверки
// расширения), заявленный размер и источник данных.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// CreateSeashellParams — набор полей для создания записи ракушки.
// Обязательны только Name и Species.
type CreateSeashellParams struct {
	Name            string
	Species         string
	Description     *string
	Color           *string
	SizeMM          *int
	FoundOn         *domain.Date
	FoundAt         *string
	StorageLocation *string
	Condition       *string
	Notes           *string
	ImageURL        *string
}

// UpdateSeashellParams — частичное обновление записи: применяются только
// заданные (не-nil) поля.
type UpdateSeashellParams struct {
	Name            *string
	Species         *string
	Description     *string
	Color           *string
	SizeMM          *int
	FoundOn         *domain.Date
	FoundAt         *string
	StorageLocation *string
	Condition       *string
	Notes           *string
}

// SeashellUseCase определяет интерфейс для бизнес-логики работы с каталогом ракушек.
// Операции с изображением и записью трактуются как одна логическая единица:
// при неудачной записи файла создание записи компенсируется удалением.
type SeashellUseCase interface {
	// CreateSeashell создаёт запись; addedBy проставляется из авторизованного
	// пользователя. Если upload != nil, после вставки сохраняется изображение;
	// при ошибке сохранения запись откатывается.
	CreateSeashell(ctx context.Context, params CreateSeashellParams, addedBy uuid.UUID, upload *Upload) (*domain.Seashell, error)

	// GetSeashell получает запись по идентификатору.
	GetSeashell(ctx context.Context, id uuid.UUID) (*domain.Seashell, error)

	// ListSeashells получает список записей по фильтру.
	ListSeashells(ctx context.Context, filter domain.SeashellFilter) ([]domain.Seashell, error)

	// UpdateSeashell применяет частичное обновление; если upload != nil,
	// новое изображение замещает прежнее (старый файл удаляется после записи нового).
	UpdateSeashell(ctx context.Context, id uuid.UUID, params UpdateSeashellParams, upload *Upload) (*domain.Seashell, error)

	// DeleteSeashell удаляет запись и все её файлы изображений.
	DeleteSeashell(ctx context.Context, id uuid.UUID) error

	// UploadImage сохраняет изображение существующей записи, замещая прежнее.
	UploadImage(ctx context.Context, id uuid.UUID, upload Upload) (*domain.Seashell, error)

	// DistinctValues возвращает уникальные значения фильтруемой колонки
	// (для выпадающих списков UI).
	DistinctValues(ctx context.Context, column string) ([]string, error)
}
