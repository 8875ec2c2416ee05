package auth

import (
	"context"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
)

type PermissionChecker struct {
	repo                PermissionRepository
	superuserDepartment string
}

func NewPermissionChecker(repo PermissionRepository, superuserDepartment string) *PermissionChecker {
	return &PermissionChecker{
		repo:                repo,
		superuserDepartment: superuserDepartment,
	}
}

// PermissionsFor returns the sentinel set for the superuser department, whatever is attached
// to it, and the department's permission names otherwise.
func (c *PermissionChecker) PermissionsFor(ctx context.Context, identity *Identity) (PermissionSet, error) {
	department, names, err := c.repo.DepartmentPermissions(ctx, identity.DepartmentID)
	if err != nil {
		return nil, internal.NewStorageError("failed to load permissions", internal.ErrCodeStorage, err)
	}
	if department == c.superuserDepartment {
		return NewPermissionSet(Superuser), nil
	}
	return NewPermissionSet(names...), nil
}

// Authorize allows the principal iff the sentinel is present or every required permission is granted.
func (c *PermissionChecker) Authorize(ctx context.Context, p *Principal, required ...string) error {
	if p == nil || p.Identity == nil {
		return internal.ErrNotAuthenticated
	}
	if p.Permissions.Allows(required...) {
		return nil
	}

	logger.From(ctx).Warn("access denied: insufficient permissions",
		"employee_id", p.ID(),
		"required_permissions", required,
		"granted_permissions", p.Permissions.Names())
	return internal.ErrInsufficientPermissions
}
