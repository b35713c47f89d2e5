package query

import (
	"fmt"

	"github.com/medeu/storefront/internal/user/domain"
)

// ListRoleUsersQuery fetches the users assigned to a role
type ListRoleUsersQuery struct {
	RoleID uint
}

// ListRoleUsersHandler handles the role users query
type ListRoleUsersHandler struct {
	repo domain.RoleRepository
}

// NewListRoleUsersHandler creates a new list role users handler
func NewListRoleUsersHandler(repo domain.RoleRepository) *ListRoleUsersHandler {
	return &ListRoleUsersHandler{repo: repo}
}

// Handle executes the role users query
func (h *ListRoleUsersHandler) Handle(query ListRoleUsersQuery) ([]domain.User, error) {
	if query.RoleID == 0 {
		return nil, fmt.Errorf("invalid role id")
	}
	return h.repo.Users(query.RoleID)
}
