package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return storage.ErrDuplicate
	}
	m.users[u.Email] = u
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func newTestAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(newMemoryUsers())
	a.cost = bcrypt.MinCost
	return a
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	t.Run("register rejects weak passwords", func(t *testing.T) {
		_, err := a.Register(ctx, "admin@society.test", "Admin", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("register then authenticate", func(t *testing.T) {
		user, err := a.Register(ctx, " Admin@Society.test ", "Admin", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "admin@society.test", user.Email)

		got, err := a.Authenticate(ctx, "admin@society.test", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "admin@society.test", "Admin", "another-pass")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "admin@society.test", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = a.Authenticate(ctx, "nobody@society.test", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	require.NoError(t, EnsureAdmin(ctx, a, "admin@society.test", "first-password"))
	require.NoError(t, EnsureAdmin(ctx, a, "admin@society.test", "second-password"))

	_, err := a.Authenticate(ctx, "admin@society.test", "first-password")
	assert.NoError(t, err, "existing admin password must be kept")

	assert.NoError(t, EnsureAdmin(ctx, a, "", ""))
	assert.Error(t, EnsureAdmin(ctx, a, "other@society.test", "weak"))
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret-0123456789", time.Hour)
	user := &models.User{ID: "u1", Email: "admin@society.test"}

	token, claims, err := m.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, claims.ID, got.ID)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("another-secret-012345", time.Hour)
		_, err := other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()
		_, err := m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestProvider(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()
	require.NoError(t, EnsureAdmin(ctx, a, "admin@society.test", "correct-horse"))
	p := NewProvider(a, NewJWTManager("test-secret-0123456789", time.Hour))

	var events []SessionEvent
	cancel := p.OnSessionChange(func(ev SessionEvent) { events = append(events, ev) })

	_, err := p.SignIn(ctx, "admin@society.test", "nope-nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := p.SignIn(ctx, "admin@society.test", "correct-horse")
	require.NoError(t, err)
	_, err = p.Verify(session.Token)
	require.NoError(t, err)

	require.NoError(t, p.SignOut(session.Token))
	_, err = p.Verify(session.Token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.Error(t, p.SignOut(session.Token), "second sign-out of the same token")

	require.Len(t, events, 2)
	assert.True(t, events[0].SignedIn())
	assert.False(t, events[1].SignedIn())
	assert.Equal(t, session.ID, events[1].SessionID)

	cancel()
	_, err = p.SignIn(ctx, "admin@society.test", "correct-horse")
	require.NoError(t, err)
	assert.Len(t, events, 2, "cancelled observer must not be called")
}
