package services

import (
	"context"

	"umd-backend/internal/auth"
	"umd-backend/internal/authz"
	"umd-backend/internal/cache"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"
	"umd-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager}
}

// Login verifies credentials and issues a token. A short-lived cache of
// verified credentials skips the bcrypt comparison on repeated logins.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errs.Validation("Email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return nil, errs.Unauthenticated("Invalid email or password")
		}
		return nil, err
	}

	if !cache.GetCachedAuth(ctx, user.ID, req.Password) {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, errs.Unauthenticated("Invalid email or password")
		}
		cache.CacheAuth(ctx, user.ID, req.Password)
	}

	if user.Status != 1 {
		return nil, errs.Forbidden("Account suspended. Please contact administrator.")
	}

	identity := auth.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		BusinessID: user.BusinessID,
	}
	if user.Role == auth.RoleBranchManager {
		branchID, err := s.Repo.HandledBranch(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		identity.BranchID = branchID
	}

	token, err := s.JWTManager.GenerateToken(identity)
	if err != nil {
		return nil, errs.Internal("failed to issue token", err)
	}

	return &models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    identity,
	}, nil
}

// Logout drops the cached credential entry. Tokens are stateless, so
// the client discards its copy; this closes the bcrypt fast path.
func (s *UserService) Logout(ctx context.Context, id auth.Identity) string {
	cache.InvalidateAuth(ctx, id.UserID)
	return "Logged out successfully"
}

// PermissionsFor is the static capability matrix per role.
func PermissionsFor(role auth.Role) models.Permissions {
	switch role {
	case auth.RoleAdmin:
		return models.Permissions{
			CanAddUsers:       true,
			CanDeleteUsers:    true,
			CanManageBranches: true,
			CanViewAllBranch:  true,
			CanUploadBills:    true,
			CanViewDashboard:  true,
		}
	case auth.RoleBranchManager:
		return models.Permissions{
			CanUploadBills:   true,
			CanViewDashboard: true,
		}
	default:
		return models.Permissions{}
	}
}

func (s *UserService) List(ctx context.Context, id auth.Identity, page, limit int) (*models.UserPage, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total, users, err := s.Repo.List(ctx, id.BusinessID, page, limit)
	if err != nil {
		return nil, err
	}
	totalPages := (total + limit - 1) / limit
	return &models.UserPage{
		Page:       page,
		Limit:      limit,
		TotalUsers: total,
		TotalPages: totalPages,
		Users:      users,
	}, nil
}

func (s *UserService) Create(ctx context.Context, id auth.Identity, req *models.CreateUserRequest) (*models.User, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errs.Validation("Username, email and password are required")
	}
	if len(req.Password) < 6 {
		return nil, errs.Validation("Password must be at least 6 characters")
	}
	if req.Role != auth.RoleAdmin && req.Role != auth.RoleBranchManager {
		return nil, errs.Validation("Invalid role")
	}

	exists, err := s.Repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("Username or email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		ContactNo:    req.ContactNo,
		PasswordHash: hash,
		Role:         req.Role,
		BusinessID:   id.BusinessID,
		Status:       1,
		Available:    true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id auth.Identity, userID int, req *models.UpdateUserRequest) error {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return err
	}
	target, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if target.BusinessID != id.BusinessID {
		return errs.Forbidden("User belongs to another business.")
	}
	if target.Role == auth.RoleAdmin && target.ID != id.UserID {
		return errs.Forbidden("Admin accounts cannot be modified.")
	}
	if req.Role != nil && *req.Role != auth.RoleAdmin && *req.Role != auth.RoleBranchManager {
		return errs.Validation("Invalid role")
	}
	return s.Repo.Update(ctx, userID, id.BusinessID, req)
}

func (s *UserService) Delete(ctx context.Context, id auth.Identity, userID int) error {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return err
	}
	if userID == id.UserID {
		return errs.Validation("You cannot delete your own account")
	}
	return s.Repo.Delete(ctx, userID, id.BusinessID)
}

func (s *UserService) AvailableManagers(ctx context.Context, id auth.Identity, branchID *int) ([]*models.ManagerOption, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.AvailableManagers(ctx, id.BusinessID, branchID)
}
