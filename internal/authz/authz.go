// Package authz holds the role and tenant scoping checks applied before
// every operation. All checks are pure functions over the request
// identity so services stay free of ad-hoc role comparisons.
package authz

import (
	"umd-backend/internal/auth"
	"umd-backend/internal/errs"
)

// RequireRole allows the request only if the identity holds one of the
// given roles.
func RequireRole(id auth.Identity, roles ...auth.Role) error {
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return errs.Forbidden("Insufficient role for this operation.")
}

// RequireSuperAdmin gates the registration approval surface.
func RequireSuperAdmin(id auth.Identity) error {
	if id.Role != auth.RoleSuperAdmin {
		return errs.Forbidden("Super admin access required.")
	}
	return nil
}

// RequireAdminOf allows only an admin of the given business. A matching
// role with the wrong tenant is still denied: both checks always run.
func RequireAdminOf(id auth.Identity, businessID int) error {
	if id.Role != auth.RoleAdmin {
		return errs.Forbidden("Admin access required.")
	}
	if id.BusinessID != businessID {
		return errs.Forbidden("Resource belongs to another business.")
	}
	return nil
}

// RequireBranchScope allows an admin of the branch's business, or the
// manager currently handling the branch. handledBy is the branch's
// current manager reference (nil when unassigned).
func RequireBranchScope(id auth.Identity, branchBusinessID int, handledBy *int) error {
	switch id.Role {
	case auth.RoleAdmin:
		if id.BusinessID != branchBusinessID {
			return errs.Forbidden("Branch belongs to another business.")
		}
		return nil
	case auth.RoleBranchManager:
		if id.BusinessID != branchBusinessID {
			return errs.Forbidden("Branch belongs to another business.")
		}
		if handledBy == nil || *handledBy != id.UserID {
			return errs.Forbidden("You do not handle this branch.")
		}
		return nil
	default:
		return errs.Forbidden("Insufficient role for this operation.")
	}
}
