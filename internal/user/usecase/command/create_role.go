package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/medeu/storefront/internal/user/domain"
)

// CreateRoleCommand represents the command to create a role
type CreateRoleCommand struct {
	RoleID   string // Optional external id; generated when empty
	RoleName string
}

// CreateRoleHandler handles role creation command
type CreateRoleHandler struct {
	repo domain.RoleRepository
}

// NewCreateRoleHandler creates a new create role handler
func NewCreateRoleHandler(repo domain.RoleRepository) *CreateRoleHandler {
	return &CreateRoleHandler{repo: repo}
}

// Handle executes the create role command
func (h *CreateRoleHandler) Handle(cmd CreateRoleCommand) (*domain.Role, error) {
	if cmd.RoleName == "" {
		return nil, fmt.Errorf("role name is required")
	}

	roleID := cmd.RoleID
	if roleID == "" {
		roleID = uuid.New().String()
	}

	role := &domain.Role{
		RoleID:   roleID,
		RoleName: cmd.RoleName,
	}

	if err := h.repo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return role, nil
}
