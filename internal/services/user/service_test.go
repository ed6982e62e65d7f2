package userservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"signdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserAdder struct {
	mock.Mock
}

func (m *mockUserAdder) AddUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockUserProvider struct {
	mock.Mock
}

func (m *mockUserProvider) UserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserProvider) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAddUser_Success(t *testing.T) {
	t.Parallel()

	adder := new(mockUserAdder)

	adder.On("AddUser", mock.Anything, mock.Anything).Return(nil)

	svc := New(testLogger(), adder, new(mockUserProvider))

	err := svc.AddUser(context.Background(), models.User{ID: "user1", Email: "a@b.com"})
	assert.NoError(t, err)
}

func TestAddUser_Duplicate(t *testing.T) {
	t.Parallel()

	adder := new(mockUserAdder)

	adder.On("AddUser", mock.Anything, mock.Anything).
		Return(&models.UniqueConstraintError{Constraint: "profiles_email_key", Err: models.ErrUNIQUEConstraintFailed})

	svc := New(testLogger(), adder, new(mockUserProvider))

	err := svc.AddUser(context.Background(), models.User{ID: "user1", Email: "a@b.com"})
	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestUserByID_Success(t *testing.T) {
	t.Parallel()

	provider := new(mockUserProvider)

	provider.On("UserByID", mock.Anything, "user1").
		Return(&models.User{ID: "user1", Email: "a@b.com", Role: models.RoleUser}, nil)

	svc := New(testLogger(), new(mockUserAdder), provider)

	user, err := svc.UserByID(context.Background(), "user1")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestUserByID_NotFound(t *testing.T) {
	t.Parallel()

	provider := new(mockUserProvider)

	provider.On("UserByID", mock.Anything, "missing").
		Return(nil, models.ErrUserNotFound)

	svc := New(testLogger(), new(mockUserAdder), provider)

	_, err := svc.UserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserByEmail_InternalError(t *testing.T) {
	t.Parallel()

	provider := new(mockUserProvider)

	provider.On("UserByEmail", mock.Anything, "a@b.com").
		Return(nil, errors.New("db down"))

	svc := New(testLogger(), new(mockUserAdder), provider)

	_, err := svc.UserByEmail(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, models.ErrInternal)
}
