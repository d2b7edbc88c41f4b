package services

import (
	"context"

	"umd-backend/internal/auth"
	"umd-backend/internal/authz"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"
	"umd-backend/internal/repositories"
)

type BranchService struct {
	Repo *repositories.BranchRepository
}

func NewBranchService(repo *repositories.BranchRepository) *BranchService {
	return &BranchService{Repo: repo}
}

func (s *BranchService) Create(ctx context.Context, id auth.Identity, req *models.CreateBranchRequest) (*models.Branch, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.BranchName == "" {
		return nil, errs.Validation("Branch name is required")
	}

	branch := &models.Branch{
		Name:       req.BranchName,
		Location:   req.Location,
		BusinessID: id.BusinessID,
		HandledBy:  req.HandledBy,
		Status:     1,
	}
	if err := s.Repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *BranchService) List(ctx context.Context, id auth.Identity, page, limit int) (*models.BranchPage, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var managerID *int
	if id.Role == auth.RoleBranchManager {
		managerID = &id.UserID
	}
	total, branches, err := s.Repo.List(ctx, id.BusinessID, managerID, page, limit)
	if err != nil {
		return nil, err
	}
	return &models.BranchPage{
		Page:     page,
		Limit:    limit,
		Total:    total,
		Branches: branches,
	}, nil
}

func (s *BranchService) Filter(ctx context.Context, id auth.Identity, branchID *int, name string) ([]*models.BranchListItem, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.Filter(ctx, id.BusinessID, branchID, name)
}

func (s *BranchService) Update(ctx context.Context, id auth.Identity, branchID int, req *models.UpdateBranchRequest) error {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return err
	}
	if req.BranchName == "" {
		return errs.Validation("Branch name is required")
	}
	return s.Repo.Update(ctx, branchID, id.BusinessID, req)
}

func (s *BranchService) Delete(ctx context.Context, id auth.Identity, branchID int) error {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return err
	}
	return s.Repo.SoftDelete(ctx, branchID, id.BusinessID)
}

// Reactivate restores a deactivated branch without a manager; assign
// one again via Update. Returns a no-op message when already active.
func (s *BranchService) Reactivate(ctx context.Context, id auth.Identity, branchID int) (string, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return "", err
	}
	alreadyActive, err := s.Repo.Reactivate(ctx, branchID, id.BusinessID)
	if err != nil {
		return "", err
	}
	if alreadyActive {
		return "Branch is already active.", nil
	}
	return "Branch reactivated successfully.", nil
}

// SetThreshold tunes the budget warning percentage. Allowed for the
// business admin or the manager handling the branch.
func (s *BranchService) SetThreshold(ctx context.Context, id auth.Identity, branchID int, req *models.SetThresholdRequest) error {
	if req.Threshold < 1 || req.Threshold > 100 {
		return errs.Validation("Threshold must be between 1 and 100")
	}

	scope, err := s.Repo.Scope(ctx, branchID)
	if err != nil {
		return err
	}
	if scope.Status != 1 {
		return errs.NotFound("Branch not found")
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return err
	}
	return s.Repo.SetThreshold(ctx, branchID, req.Threshold)
}
