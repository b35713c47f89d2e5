package command

import (
	"fmt"

	"github.com/medeu/storefront/internal/user/domain"
	"github.com/medeu/storefront/pkg/auth"
)

// LoginUserCommand represents the command to log a user in
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle verifies credentials and returns the user with a signed token.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*domain.User, string, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, "", fmt.Errorf("username and password are required")
	}

	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(cmd.Password, user.Password) {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	roleID := ""
	if user.Role != nil {
		roleID = user.Role.RoleID
	}

	token, err := auth.GenerateToken(user.ID, user.Username, roleID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
