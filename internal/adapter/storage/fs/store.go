// Package fs реализует файловое хранилище изображений ракушек.
// Файлы лежат в каталоге <base>/<seashell_id>/<уникальное имя> и отдаются
// по URL-пути /uploads/seashells/<seashell_id>/<имя>.
package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/google/uuid"
)

const urlPrefix = "/uploads/seashells/"

// allowedExtensions — список разрешённых расширений изображений
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// AssetStore реализует интерфейс ports.AssetStore поверх локальной файловой системы.
// Запись идёт во временный файл с последующим атомарным rename.
type AssetStore struct {
	baseDir string
	maxSize int64
	logger  *slog.Logger
}

// NewAssetStore создает новый экземпляр AssetStore и каталог baseDir, если его нет.
func NewAssetStore(baseDir string, maxSize int64, logger *slog.Logger) (*AssetStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AssetStore{baseDir: baseDir, maxSize: maxSize, logger: logger}, nil
}

// Store валидирует и сохраняет загруженный файл, возвращает URL-путь файла.
// Нарушение списка расширений — domain.ErrUnsupportedMediaType,
// превышение лимита размера — domain.ErrPayloadTooLarge.
func (s *AssetStore) Store(ctx context.Context, seashellID uuid.UUID, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		s.logger.Warn("rejected upload with disallowed extension", "seashell_id", seashellID, "ext", ext)
		return "", domain.ErrUnsupportedMediaType
	}
	if size > s.maxSize {
		s.logger.Warn("rejected oversized upload", "seashell_id", seashellID, "size", size, "max", s.maxSize)
		return "", domain.ErrPayloadTooLarge
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, seashellID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create seashell dir: %w", err)
	}

	generated := strings.ReplaceAll(uuid.New().String(), "-", "")[:12] + ext

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Лимит размера действует и на фактическое содержимое, не только на
	// заявленный размер: копируем не больше maxSize+1 байт.
	written, err := io.Copy(tmp, io.LimitReader(r, s.maxSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if written > s.maxSize {
		os.Remove(tmpName)
		s.logger.Warn("rejected oversized upload body", "seashell_id", seashellID, "max", s.maxSize)
		return "", domain.ErrPayloadTooLarge
	}

	finalPath := filepath.Join(dir, generated)
	if err := os.Rename(tmpName, finalPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename upload: %w", err)
	}

	s.logger.Info("image stored",
		"seashell_id", seashellID,
		"filename", generated,
		"bytes", written,
	)
	return urlPrefix + seashellID.String() + "/" + generated, nil
}

// Remove удаляет один файл по его URL-пути. Незнакомый путь игнорируется.
func (s *AssetStore) Remove(ctx context.Context, imageURL string) error {
	rel, ok := strings.CutPrefix(imageURL, urlPrefix)
	if !ok || rel == "" {
		return nil
	}
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return nil
	}

	path := filepath.Join(s.baseDir, rel)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove image: %w", err)
	}

	s.logger.Info("image removed", "path", imageURL)
	return nil
}

// RemoveAll удаляет каталог записи со всеми её файлами.
func (s *AssetStore) RemoveAll(ctx context.Context, seashellID uuid.UUID) error {
	dir := filepath.Join(s.baseDir, seashellID.String())
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove seashell dir: %w", err)
	}

	s.logger.Info("seashell images removed", "seashell_id", seashellID)
	return nil
}
