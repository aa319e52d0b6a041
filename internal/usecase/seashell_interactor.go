package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/SeashellApp/internal/core/ports"
	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

// seashellUseCase implements SeashellUseCase
type seashellUseCase struct {
	seashellStorage ports.SeashellStorage
	assetStore      ports.AssetStore
	logger          *slog.Logger
}

// NewSeashellUseCase создает новый экземпляр SeashellUseCase,
// принимает реализации портов SeashellStorage и AssetStore.
func NewSeashellUseCase(
	seashellStorage ports.SeashellStorage,
	assetStore ports.AssetStore,
	logger *slog.Logger,
) SeashellUseCase {
	return &seashellUseCase{
		seashellStorage: seashellStorage,
		assetStore:      assetStore,
		logger:          logger,
	}
}

func validateName(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "must not be empty")
	}
	if len(value) > maxLen {
		return domain.NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return nil
}

func validateSizeMM(sizeMM *int) error {
	if sizeMM != nil && *sizeMM <= 0 {
		return domain.NewValidationError("size_mm", "must be a positive integer")
	}
	return nil
}

// CreateSeashell создаёт запись и, при наличии файла, сохраняет изображение.
// Запись и файл — одна логическая единица: если файл сохранить не удалось,
// только что созданная запись компенсирующе удаляется.
func (uc *seashellUseCase) CreateSeashell(ctx context.Context, params CreateSeashellParams, addedBy uuid.UUID, upload *Upload) (*domain.Seashell, error) {
	if err := validateName("name", params.Name, 120); err != nil {
		return nil, err
	}
	if err := validateName("species", params.Species, 120); err != nil {
		return nil, err
	}
	if err := validateSizeMM(params.SizeMM); err != nil {
		return nil, err
	}

	shell := &domain.Seashell{
		ID:              uuid.New(),
		Name:            params.Name,
		Species:         params.Species,
		Description:     params.Description,
		Color:           params.Color,
		SizeMM:          params.SizeMM,
		FoundOn:         params.FoundOn,
		FoundAt:         params.FoundAt,
		StorageLocation: params.StorageLocation,
		Condition:       params.Condition,
		Notes:           params.Notes,
		ImageURL:        params.ImageURL,
		AddedByID:       &addedBy,
	}

	if err := uc.seashellStorage.SaveSeashell(ctx, shell); err != nil {
		return nil, fmt.Errorf("usecase: create seashell: %w", err)
	}

	if upload != nil {
		imageURL, err := uc.assetStore.Store(ctx, shell.ID, upload.Filename, upload.Size, upload.Reader)
		if err != nil {
			// Компенсация: не оставляем запись без обещанного изображения
			if delErr := uc.seashellStorage.DeleteSeashell(ctx, shell.ID); delErr != nil {
				uc.logger.Error("failed to roll back seashell after image store failure",
					"id", shell.ID, "error", delErr)
			}
			return nil, err
		}

		shell.ImageURL = &imageURL
		if err := uc.seashellStorage.UpdateSeashell(ctx, shell); err != nil {
			return nil, fmt.Errorf("usecase: attach image to seashell: %w", err)
		}
	}

	uc.logger.Info("seashell created", "id", shell.ID, "added_by", addedBy)
	return shell, nil
}

// GetSeashell получает запись по идентификатору.
func (uc *seashellUseCase) GetSeashell(ctx context.Context, id uuid.UUID) (*domain.Seashell, error) {
	return uc.seashellStorage.GetSeashellByID(ctx, id)
}

// ListSeashells получает список записей по фильтру.
func (uc *seashellUseCase) ListSeashells(ctx context.Context, filter domain.SeashellFilter) ([]domain.Seashell, error) {
	return uc.seashellStorage.ListSeashells(ctx, filter)
}

// applyUpdate применяет заданные поля частичного обновления к записи.
func applyUpdate(shell *domain.Seashell, params UpdateSeashellParams) error {
	if params.Name != nil {
		if err := validateName("name", *params.Name, 120); err != nil {
			return err
		}
		shell.Name = *params.Name
	}
	if params.Species != nil {
		if err := validateName("species", *params.Species, 120); err != nil {
			return err
		}
		shell.Species = *params.Species
	}
	if err := validateSizeMM(params.SizeMM); err != nil {
		return err
	}
	if params.Description != nil {
		shell.Description = params.Description
	}
	if params.Color != nil {
		shell.Color = params.Color
	}
	if params.SizeMM != nil {
		shell.SizeMM = params.SizeMM
	}
	if params.FoundOn != nil {
		shell.FoundOn = params.FoundOn
	}
	if params.FoundAt != nil {
		shell.FoundAt = params.FoundAt
	}
	if params.StorageLocation != nil {
		shell.StorageLocation = params.StorageLocation
	}
	if params.Condition != nil {
		shell.Condition = params.Condition
	}
	if params.Notes != nil {
		shell.Notes = params.Notes
	}
	return nil
}

// UpdateSeashell применяет частичное обновление; при наличии файла новое
// изображение записывается до обновления строки, старый файл удаляется после.
func (uc *seashellUseCase) UpdateSeashell(ctx context.Context, id uuid.UUID, params UpdateSeashellParams, upload *Upload) (*domain.Seashell, error) {
	shell, err := uc.seashellStorage.GetSeashellByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(shell, params); err != nil {
		return nil, err
	}

	var previousImage *string
	if upload != nil {
		imageURL, err := uc.assetStore.Store(ctx, shell.ID, upload.Filename, upload.Size, upload.Reader)
		if err != nil {
			return nil, err
		}
		previousImage = shell.ImageURL
		shell.ImageURL = &imageURL
	}

	if err := uc.seashellStorage.UpdateSeashell(ctx, shell); err != nil {
		// Компенсация: строка не обновилась — новый файл не должен осиротеть
		if shell.ImageURL != nil && upload != nil {
			if rmErr := uc.assetStore.Remove(ctx, *shell.ImageURL); rmErr != nil {
				uc.logger.Error("failed to remove orphaned image", "id", id, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("usecase: update seashell: %w", err)
	}

	if previousImage != nil {
		if err := uc.assetStore.Remove(ctx, *previousImage); err != nil {
			uc.logger.Error("failed to remove replaced image", "id", id, "error", err)
		}
	}

	uc.logger.Info("seashell updated", "id", id)
	return shell, nil
}

// DeleteSeashell удаляет запись и каталог её изображений.
func (uc *seashellUseCase) DeleteSeashell(ctx context.Context, id uuid.UUID) error {
	if err := uc.seashellStorage.DeleteSeashell(ctx, id); err != nil {
		return err
	}

	if err := uc.assetStore.RemoveAll(ctx, id); err != nil {
		// Запись уже удалена; файлы доберёт следующая попытка или ручная чистка
		uc.logger.Error("failed to remove seashell images", "id", id, "error", err)
	}

	uc.logger.Info("seashell deleted", "id", id)
	return nil
}

// UploadImage сохраняет изображение существующей записи, удаляя прежнее.
func (uc *seashellUseCase) UploadImage(ctx context.Context, id uuid.UUID, upload Upload) (*domain.Seashell, error) {
	shell, err := uc.seashellStorage.GetSeashellByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := uc.assetStore.Store(ctx, shell.ID, upload.Filename, upload.Size, upload.Reader)
	if err != nil {
		return nil, err
	}

	previousImage := shell.ImageURL
	shell.ImageURL = &imageURL

	if err := uc.seashellStorage.UpdateSeashell(ctx, shell); err != nil {
		if rmErr := uc.assetStore.Remove(ctx, imageURL); rmErr != nil {
			uc.logger.Error("failed to remove orphaned image", "id", id, "error", rmErr)
		}
		return nil, fmt.Errorf("usecase: upload image: %w", err)
	}

	if previousImage != nil {
		if err := uc.assetStore.Remove(ctx, *previousImage); err != nil {
			uc.logger.Error("failed to remove replaced image", "id", id, "error", err)
		}
	}

	uc.logger.Info("seashell image uploaded", "id", id, "image_url", imageURL)
	return shell, nil
}

// DistinctValues возвращает уникальные значения фильтруемой колонки.
func (uc *seashellUseCase) DistinctValues(ctx context.Context, column string) ([]string, error) {
	return uc.seashellStorage.DistinctValues(ctx, column)
}
