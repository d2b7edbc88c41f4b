package services

import (
	"context"

	"umd-backend/internal/auth"
	"umd-backend/internal/authz"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"
	"umd-backend/internal/repositories"
)

type BusinessService struct {
	Repo *repositories.BusinessRepository
}

func NewBusinessService(repo *repositories.BusinessRepository) *BusinessService {
	return &BusinessService{Repo: repo}
}

// Register files a tenant application. The admin credential is hashed
// immediately and parked until a super admin decides on the request.
func (s *BusinessService) Register(ctx context.Context, req *models.RegisterBusinessRequest) (string, error) {
	if req.BusinessName == "" || req.UserEmail == "" || req.Username == "" || req.Password == "" {
		return "", errs.Validation("Business name, email, username and password are required")
	}
	if len(req.Password) < 6 {
		return "", errs.Validation("Password must be at least 6 characters")
	}

	exists, err := s.Repo.ExistsByNameOrEmail(ctx, req.BusinessName, req.UserEmail)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errs.Conflict("Business name or email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", errs.Internal("failed to hash password", err)
	}

	business := &models.Business{
		Name:          req.BusinessName,
		Industry:      req.Industry,
		Email:         req.UserEmail,
		ContactPerson: req.ContactPerson,
	}
	admin := &models.PendingAdmin{
		Username:  req.Username,
		Email:     req.UserEmail,
		ContactNo: req.ContactNo,
		Password:  hash,
	}
	if err := s.Repo.Register(ctx, business, admin); err != nil {
		return "", err
	}
	return "We have received your request! Wait till we approve it.", nil
}

func (s *BusinessService) Approve(ctx context.Context, id auth.Identity, businessID int) error {
	if err := authz.RequireSuperAdmin(id); err != nil {
		return err
	}
	status, err := s.Repo.ReqStatus(ctx, businessID)
	if err != nil {
		return err
	}
	if status != models.ReqStatusPending {
		return errs.InvalidState("Business request has already been decided")
	}
	return s.Repo.Approve(ctx, businessID)
}

func (s *BusinessService) Reject(ctx context.Context, id auth.Identity, businessID int) error {
	if err := authz.RequireSuperAdmin(id); err != nil {
		return err
	}
	status, err := s.Repo.ReqStatus(ctx, businessID)
	if err != nil {
		return err
	}
	if status != models.ReqStatusPending {
		return errs.InvalidState("Business request has already been decided")
	}
	return s.Repo.Reject(ctx, businessID)
}

func (s *BusinessService) List(ctx context.Context, id auth.Identity) ([]*models.Business, error) {
	if err := authz.RequireSuperAdmin(id); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

func (s *BusinessService) Detail(ctx context.Context, id auth.Identity, businessID int) (*models.BusinessDetail, error) {
	if err := authz.RequireSuperAdmin(id); err != nil {
		return nil, err
	}
	return s.Repo.Detail(ctx, businessID)
}

// Deactivate suspends the business and locks out all of its users.
func (s *BusinessService) Deactivate(ctx context.Context, id auth.Identity, businessID int) error {
	if err := authz.RequireSuperAdmin(id); err != nil {
		return err
	}
	return s.Repo.SetStatusCascade(ctx, businessID, 0)
}

func (s *BusinessService) Reactivate(ctx context.Context, id auth.Identity, businessID int) error {
	if err := authz.RequireSuperAdmin(id); err != nil {
		return err
	}
	return s.Repo.SetStatusCascade(ctx, businessID, 1)
}

// Self returns the caller's own business profile.
func (s *BusinessService) Self(ctx context.Context, id auth.Identity) (*models.Business, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id.BusinessID)
}

func (s *BusinessService) UpdateSelf(ctx context.Context, id auth.Identity, req *models.UpdateBusinessRequest) error {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return err
	}
	return s.Repo.UpdateInfo(ctx, id.BusinessID, req)
}
