package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/warungio/stockpilot/internal/user/domain"
	"github.com/warungio/stockpilot/pkg/auth"
)

// RegisterUserCommand represents the command to register a new account
type RegisterUserCommand struct {
	Username     string
	Email        string
	Password     string
	BusinessName string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	if existing, err := h.repo.FindByUsername(ctx, cmd.Username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("username already exists")
	}
	if existing, err := h.repo.FindByEmail(ctx, cmd.Email); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("email already exists")
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		Password:     hashedPassword,
		BusinessName: cmd.BusinessName,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
