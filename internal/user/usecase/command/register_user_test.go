package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warungio/stockpilot/internal/user/domain"
	"github.com/warungio/stockpilot/pkg/auth"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
	created    *domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*domain.User{},
		byEmail:    map[string]*domain.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = 1
	f.created = user
	f.byUsername[user.Username] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func TestRegisterUserHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	user, err := h.Handle(context.Background(), RegisterUserCommand{
		Username:     "budi",
		Email:        "budi@example.com",
		Password:     "rahasia123",
		BusinessName: "Warung Budi",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, "rahasia123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "rahasia123"))
}

func TestRegisterUserValidation(t *testing.T) {
	h := NewRegisterUserHandler(newFakeUserRepo())

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing username", RegisterUserCommand{Email: "a@b.c", Password: "rahasia"}},
		{"missing email", RegisterUserCommand{Username: "budi", Password: "rahasia"}},
		{"short password", RegisterUserCommand{Username: "budi", Email: "a@b.c", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	_, err := h.Handle(context.Background(), RegisterUserCommand{
		Username: "budi", Email: "budi@example.com", Password: "rahasia123",
	})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), RegisterUserCommand{
		Username: "budi", Email: "other@example.com", Password: "rahasia123",
	})
	assert.EqualError(t, err, "username already exists")

	_, err = h.Handle(context.Background(), RegisterUserCommand{
		Username: "siti", Email: "budi@example.com", Password: "rahasia123",
	})
	assert.EqualError(t, err, "email already exists")
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserHandler(repo)
	_, err := register.Handle(context.Background(), RegisterUserCommand{
		Username: "budi", Email: "budi@example.com", Password: "rahasia123",
	})
	require.NoError(t, err)

	h := NewLoginUserHandler(repo)

	result, err := h.Handle(context.Background(), LoginUserCommand{Username: "budi", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "budi", result.User.Username)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestLoginUserInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserHandler(repo)
	_, err := register.Handle(context.Background(), RegisterUserCommand{
		Username: "budi", Email: "budi@example.com", Password: "rahasia123",
	})
	require.NoError(t, err)

	h := NewLoginUserHandler(repo)

	_, err = h.Handle(context.Background(), LoginUserCommand{Username: "budi", Password: "salah"})
	assert.EqualError(t, err, "invalid credentials")

	_, err = h.Handle(context.Background(), LoginUserCommand{Username: "nobody", Password: "rahasia123"})
	assert.EqualError(t, err, "invalid credentials")
}
