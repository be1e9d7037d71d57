package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/warungio/stockpilot/internal/user/domain"
	"github.com/warungio/stockpilot/pkg/auth"
)

// LoginUserCommand represents the command to authenticate a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResult carries the authenticated user and a signed token
type LoginResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResult, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	user, err := h.repo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}
