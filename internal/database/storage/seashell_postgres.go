package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const defaultListLimit = 100

// distinctColumns — колонки, по которым разрешены distinct-выборки для фильтров UI
var distinctColumns = map[string]struct{}{
	"species":          {},
	"color":            {},
	"condition":        {},
	"storage_location": {},
}

// SeashellStorage реализует интерфейс ports.SeashellStorage поверх PostgreSQL
type SeashellStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSeashellStorage создает новый экземпляр SeashellStorage
func NewSeashellStorage(db *sqlx.DB, logger *slog.Logger) *SeashellStorage {
	return &SeashellStorage{db: db, logger: logger}
}

// SaveSeashell сохраняет новую запись ракушки в базе данных
func (s *SeashellStorage) SaveSeashell(ctx context.Context, shell *domain.Seashell) error {
	start := time.Now()

	if shell.ID == uuid.Nil {
		shell.ID = uuid.New()
	}
	now := time.Now()
	shell.CreatedAt = now
	shell.UpdatedAt = now

	query := `
	INSERT INTO seashells (id, name, species, description, color, size_mm, found_on, found_at,
	                       storage_location, condition, notes, image_url, added_by_id, created_at, updated_at)
	VALUES (:id, :name, :species, :description, :color, :size_mm, :found_on, :found_at,
	        :storage_location, :condition, :notes, :image_url, :added_by_id, :created_at, :updated_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, shell)
	if err != nil {
		s.logger.Error("failed to save seashell", "name", shell.Name, "error", err)
		return fmt.Errorf("insert seashell: %w", err)
	}

	s.logger.Info("seashell saved successfully",
		"id", shell.ID,
		"name", shell.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetSeashellByID получает запись ракушки по ID
func (s *SeashellStorage) GetSeashellByID(ctx context.Context, id uuid.UUID) (*domain.Seashell, error) {
	var shell domain.Seashell
	err := s.db.GetContext(ctx, &shell, `SELECT * FROM seashells WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("seashell not found by id", "id", id)
			return nil, domain.ErrSeashellNotFound
		}
		s.logger.Error("failed to get seashell by id", "id", id, "error", err)
		return nil, fmt.Errorf("select seashell by id: %w", err)
	}
	return &shell, nil
}

// ListSeashells получает список ракушек с пагинацией и необязательными фильтрами
func (s *SeashellStorage) ListSeashells(ctx context.Context, filter domain.SeashellFilter) ([]domain.Seashell, error) {
	start := time.Now()

	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	var (
		conds []string
		args  []interface{}
	)
	addCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Species != "" {
		addCond("species = $%d", filter.Species)
	}
	if filter.Color != "" {
		addCond("color = $%d", filter.Color)
	}
	if filter.Condition != "" {
		addCond("condition = $%d", filter.Condition)
	}
	if filter.StorageLocation != "" {
		addCond("storage_location = $%d", filter.StorageLocation)
	}
	if filter.MinSizeMM > 0 {
		addCond("size_mm >= $%d", filter.MinSizeMM)
	}
	if filter.MaxSizeMM > 0 {
		addCond("size_mm <= $%d", filter.MaxSizeMM)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		args = append(args, term)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR species ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}

	q := `SELECT * FROM seashells`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Skip)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	var shells []domain.Seashell
	if err := s.db.SelectContext(ctx, &shells, q, args...); err != nil {
		s.logger.Error("failed to list seashells", "skip", filter.Skip, "limit", filter.Limit, "error", err)
		return nil, fmt.Errorf("list seashells: %w", err)
	}

	s.logger.Info("listed seashells successfully",
		"skip", filter.Skip,
		"limit", filter.Limit,
		"count", len(shells),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return shells, nil
}

// UpdateSeashell обновляет все изменяемые поля записи ракушки
func (s *SeashellStorage) UpdateSeashell(ctx context.Context, shell *domain.Seashell) error {
	start := time.Now()

	shell.UpdatedAt = time.Now()

	query := `
	UPDATE seashells SET
		name = :name,
		species = :species,
		description = :description,
		color = :color,
		size_mm = :size_mm,
		found_on = :found_on,
		found_at = :found_at,
		storage_location = :storage_location,
		condition = :condition,
		notes = :notes,
		image_url = :image_url,
		updated_at = :updated_at
	WHERE id = :id
	`

	res, err := s.db.NamedExecContext(ctx, query, shell)
	if err != nil {
		s.logger.Error("failed to update seashell", "id", shell.ID, "error", err)
		return fmt.Errorf("update seashell: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		s.logger.Warn("seashell not found for update", "id", shell.ID)
		return domain.ErrSeashellNotFound
	}

	s.logger.Info("seashell updated successfully",
		"id", shell.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteSeashell удаляет запись ракушки по ID
func (s *SeashellStorage) DeleteSeashell(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM seashells WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete seashell", "id", id, "error", err)
		return fmt.Errorf("delete seashell: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		s.logger.Warn("seashell not found for delete", "id", id)
		return domain.ErrSeashellNotFound
	}

	s.logger.Info("seashell deleted successfully", "id", id)
	return nil
}

// DistinctValues получает уникальные непустые значения фильтруемой колонки.
// Имя колонки проверяется по списку разрешённых, в SQL не интерполируется ничего внешнего.
func (s *SeashellStorage) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if _, ok := distinctColumns[column]; !ok {
		return nil, fmt.Errorf("distinct values: unsupported column %q", column)
	}

	q := fmt.Sprintf(`SELECT DISTINCT %s FROM seashells WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s`,
		column, column, column, column)

	var values []string
	if err := s.db.SelectContext(ctx, &values, q); err != nil {
		s.logger.Error("failed to select distinct values", "column", column, "error", err)
		return nil, fmt.Errorf("distinct values: %w", err)
	}
	return values, nil
}
