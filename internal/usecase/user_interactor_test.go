package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/SeashellApp/internal/auth"
	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/GoArmGo/SeashellApp/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

// memUserStorage — хранилище пользователей в памяти для тестов
type memUserStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newMemUserStorage() *memUserStorage {
	return &memUserStorage{users: map[uuid.UUID]domain.User{}}
}

func (m *memUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *memUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserStorage) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return &u, nil
}

func (m *memUserStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return &u, nil
}

func newTestUserUseCase(t *testing.T) (UserUseCase, *memUserStorage) {
	t.Helper()
	storage := newMemUserStorage()
	uc := NewUserUseCase(storage, testSecret, time.Hour, logger.Nop())
	return uc, storage
}

func seedUser(t *testing.T, uc UserUseCase, email, password string, active bool) *domain.User {
	t.Helper()
	user, err := uc.CreateUser(context.Background(), email, password, nil)
	require.NoError(t, err)
	if !active {
		user, err = uc.SetUserActive(context.Background(), user.ID, false)
		require.NoError(t, err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUserUseCase(t)
	user := seedUser(t, uc, "test@seashell.com", "password123", true)

	token, err := uc.Login(context.Background(), "test@seashell.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Выпущенный токен должен проходить верификацию и указывать на того же пользователя
	gotID, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), gotID)
}

func TestLogin_UniformErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUserUseCase(t)
	seedUser(t, uc, "test@seashell.com", "password123", true)

	_, errUnknown := uc.Login(context.Background(), "nobody@seashell.com", "password123")
	_, errWrong := uc.Login(context.Background(), "test@seashell.com", "wrong")

	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error(), "errors must be indistinguishable")
}

func TestLogin_InactiveUserForbiddenEvenWithCorrectPassword(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUserUseCase(t)
	seedUser(t, uc, "gone@seashell.com", "password123", false)

	_, err := uc.Login(context.Background(), "gone@seashell.com", "password123")
	require.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUserUseCase(t)
	seedUser(t, uc, "dup@seashell.com", "password123", true)

	_, err := uc.CreateUser(context.Background(), "dup@seashell.com", "another", nil)
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUserUseCase(t)

	var vErr *domain.ValidationError
	_, err := uc.CreateUser(context.Background(), "not-an-email", "pw", nil)
	require.ErrorAs(t, err, &vErr)

	_, err = uc.CreateUser(context.Background(), "ok@seashell.com", "", nil)
	require.ErrorAs(t, err, &vErr)
}

func TestResetPassword_OldPasswordStopsWorking(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUserUseCase(t)
	user := seedUser(t, uc, "reset@seashell.com", "old-password", true)

	_, err := uc.ResetPassword(context.Background(), user.ID, "new-password")
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), "reset@seashell.com", "old-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), "reset@seashell.com", "new-password")
	require.NoError(t, err)
}
