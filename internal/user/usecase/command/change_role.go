package command

import (
	"fmt"

	"github.com/medeu/storefront/internal/user/domain"
)

// ChangeRoleCommand assigns a role, by external role id, to a user (admin only)
type ChangeRoleCommand struct {
	UserID uint
	RoleID string
}

// ChangeRoleHandler handles user role change command
type ChangeRoleHandler struct {
	users domain.UserRepository
	roles domain.RoleRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(users domain.UserRepository, roles domain.RoleRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{users: users, roles: roles}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(cmd ChangeRoleCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if cmd.RoleID == "" {
		return nil, fmt.Errorf("role id is required")
	}

	role, err := h.roles.FindByRoleID(cmd.RoleID)
	if err != nil {
		return nil, err
	}

	user, err := h.users.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.RoleID = &role.ID
	if err := h.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	user.Role = role
	return user, nil
}
