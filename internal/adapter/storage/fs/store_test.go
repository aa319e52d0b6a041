package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/GoArmGo/SeashellApp/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testMaxSize = 1024

func newTestStore(t *testing.T) (*AssetStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewAssetStore(dir, testMaxSize, logger.Nop())
	require.NoError(t, err)
	return store, dir
}

func TestStore_WritesFileAndReturnsURL(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	id := uuid.New()
	content := "not really a png"

	url, err := store.Store(context.Background(), id, "shell.png", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/seashells/"+id.String()+"/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, "/uploads/seashells/")
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	require.Equal(t, content, string(data))

	// Во временном каталоге не должно остаться недописанных файлов
	entries, err := os.ReadDir(filepath.Join(dir, id.String()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStore_UniqueFilenames(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	id := uuid.New()

	first, err := store.Store(context.Background(), id, "a.jpg", 1, strings.NewReader("x"))
	require.NoError(t, err)
	second, err := store.Store(context.Background(), id, "a.jpg", 1, strings.NewReader("y"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestStore_DisallowedExtension(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Store(context.Background(), uuid.New(), "malware.exe", 4, strings.NewReader("1234"))
	require.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
}

func TestStore_DeclaredSizeTooLarge(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Store(context.Background(), uuid.New(), "big.jpg", testMaxSize+1, strings.NewReader("x"))
	require.ErrorIs(t, err, domain.ErrPayloadTooLarge)
}

func TestStore_ActualBodyTooLarge(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	id := uuid.New()
	body := strings.Repeat("a", testMaxSize+10)

	// Заявленный размер врёт, но фактическое содержимое всё равно отклоняется
	_, err := store.Store(context.Background(), id, "big.jpg", 1, strings.NewReader(body))
	require.ErrorIs(t, err, domain.ErrPayloadTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, id.String()))
	require.NoError(t, err)
	require.Empty(t, entries, "rejected upload must not leave files behind")
}

func TestRemove_DeletesSingleFile(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	id := uuid.New()

	url, err := store.Store(context.Background(), id, "shell.webp", 3, strings.NewReader("abc"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), url))

	rel := strings.TrimPrefix(url, "/uploads/seashells/")
	_, err = os.Stat(filepath.Join(dir, rel))
	require.True(t, errors.Is(err, os.ErrNotExist))

	// Повторное удаление и чужие пути не являются ошибкой
	require.NoError(t, store.Remove(context.Background(), url))
	require.NoError(t, store.Remove(context.Background(), "/somewhere/else.png"))
}

func TestRemoveAll_DeletesRecordDirectory(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	id := uuid.New()

	_, err := store.Store(context.Background(), id, "one.gif", 1, strings.NewReader("1"))
	require.NoError(t, err)
	_, err = store.Store(context.Background(), id, "two.gif", 1, strings.NewReader("2"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveAll(context.Background(), id))

	_, err = os.Stat(filepath.Join(dir, id.String()))
	require.True(t, errors.Is(err, os.ErrNotExist))
}
