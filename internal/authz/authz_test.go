package authz

import (
	"testing"

	"umd-backend/internal/auth"
	"umd-backend/internal/errs"
)

func intPtr(n int) *int { return &n }

func TestRequireRole(t *testing.T) {
	admin := auth.Identity{UserID: 1, Role: auth.RoleAdmin, BusinessID: 10}

	if err := RequireRole(admin, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := RequireRole(admin, auth.RoleSuperAdmin); err == nil {
		t.Fatal("expected deny for role mismatch")
	}
}

func TestRequireAdminOf(t *testing.T) {
	tests := []struct {
		name       string
		id         auth.Identity
		businessID int
		wantAllow  bool
	}{
		{"admin own business", auth.Identity{Role: auth.RoleAdmin, BusinessID: 10}, 10, true},
		{"admin other business", auth.Identity{Role: auth.RoleAdmin, BusinessID: 10}, 11, false},
		{"manager same business", auth.Identity{Role: auth.RoleBranchManager, BusinessID: 10}, 10, false},
		{"super admin", auth.Identity{Role: auth.RoleSuperAdmin}, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdminOf(tt.id, tt.businessID)
			if tt.wantAllow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.wantAllow {
				if err == nil {
					t.Fatal("expected deny")
				}
				if errs.KindOf(err) != errs.KindForbidden {
					t.Fatalf("expected forbidden, got %v", errs.KindOf(err))
				}
			}
		})
	}
}

func TestRequireBranchScope(t *testing.T) {
	tests := []struct {
		name             string
		id               auth.Identity
		branchBusinessID int
		handledBy        *int
		wantAllow        bool
	}{
		{"admin own business", auth.Identity{UserID: 1, Role: auth.RoleAdmin, BusinessID: 10}, 10, nil, true},
		{"admin wrong business", auth.Identity{UserID: 1, Role: auth.RoleAdmin, BusinessID: 10}, 11, nil, false},
		{"manager handles branch", auth.Identity{UserID: 5, Role: auth.RoleBranchManager, BusinessID: 10}, 10, intPtr(5), true},
		{"manager other branch", auth.Identity{UserID: 5, Role: auth.RoleBranchManager, BusinessID: 10}, 10, intPtr(6), false},
		{"manager unassigned branch", auth.Identity{UserID: 5, Role: auth.RoleBranchManager, BusinessID: 10}, 10, nil, false},
		{"manager right handler wrong business", auth.Identity{UserID: 5, Role: auth.RoleBranchManager, BusinessID: 10}, 11, intPtr(5), false},
		{"super admin has no branch access", auth.Identity{UserID: 9, Role: auth.RoleSuperAdmin}, 10, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireBranchScope(tt.id, tt.branchBusinessID, tt.handledBy)
			if tt.wantAllow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.wantAllow && err == nil {
				t.Fatal("expected deny")
			}
		})
	}
}
