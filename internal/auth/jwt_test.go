package auth

import (
	"testing"

	"umd-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "umd-backend"
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	branchID := 7
	identity := Identity{
		UserID:     42,
		Username:   "manager1",
		Role:       RoleBranchManager,
		BusinessID: 3,
		BranchID:   &branchID,
	}

	token, err := manager.GenerateToken(identity)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	got := claims.Identity()
	if got.UserID != identity.UserID || got.Username != identity.Username {
		t.Errorf("identity mismatch: got %+v, want %+v", got, identity)
	}
	if got.Role != RoleBranchManager || got.BusinessID != 3 {
		t.Errorf("role/business mismatch: got %+v", got)
	}
	if got.BranchID == nil || *got.BranchID != branchID {
		t.Errorf("branch claim lost: got %v", got.BranchID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	token, err := manager.GenerateToken(Identity{UserID: 1, Role: RoleAdmin, BusinessID: 1})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "another-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	if _, err := manager.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation failure for malformed token")
	}
}
