package services

import (
	"context"
	"time"

	"umd-backend/internal/auth"
	"umd-backend/internal/authz"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"
	"umd-backend/internal/repositories"
)

type BudgetService struct {
	Repo       *repositories.BudgetRepository
	BranchRepo *repositories.BranchRepository

	// nowFn is swapped in tests to pin the edit-window clock.
	nowFn func() time.Time
}

func NewBudgetService(repo *repositories.BudgetRepository, branchRepo *repositories.BranchRepository) *BudgetService {
	return &BudgetService{
		Repo:       repo,
		BranchRepo: branchRepo,
		nowFn:      time.Now,
	}
}

func validateBudgetPeriod(year, month int, total float64) error {
	if year < 2000 || year > 2100 {
		return errs.Validation("Invalid year")
	}
	if month < 1 || month > 12 {
		return errs.Validation("Month must be between 1 and 12")
	}
	if total <= 0 {
		return errs.Validation("Budget amount must be positive")
	}
	return nil
}

// Allocate creates the month's budget and schedules the next reminder
// in the same transaction.
func (s *BudgetService) Allocate(ctx context.Context, id auth.Identity, req *models.AllocateBudgetRequest) (*models.Budget, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateBudgetPeriod(req.Year, req.Month, req.TotalBudget); err != nil {
		return nil, err
	}

	scope, err := s.BranchRepo.Scope(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if scope.Status != 1 {
		return nil, errs.NotFound("Branch not found")
	}
	if err := authz.RequireAdminOf(id, scope.BusinessID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		BranchID:    req.BranchID,
		Year:        req.Year,
		Month:       req.Month,
		TotalBudget: req.TotalBudget,
		AllocatedBy: id.UserID,
		Status:      1,
	}
	if err := s.Repo.Create(ctx, budget, NextBudgetReminder(s.nowFn())); err != nil {
		return nil, err
	}
	return budget, nil
}

// Update edits an allocation. Inside the 48 hour window this is a plain
// edit; afterwards the caller must reallocate explicitly, which also
// restamps the window.
func (s *BudgetService) Update(ctx context.Context, id auth.Identity, budgetID int, req *models.UpdateBudgetRequest, reallocate bool) error {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return err
	}
	if err := validateBudgetPeriod(req.Year, req.Month, req.TotalBudget); err != nil {
		return err
	}

	branchID, createdAt, err := s.Repo.Meta(ctx, budgetID)
	if err != nil {
		return err
	}
	scope, err := s.BranchRepo.Scope(ctx, branchID)
	if err != nil {
		return err
	}
	if err := authz.RequireAdminOf(id, scope.BusinessID); err != nil {
		return err
	}

	if !reallocate && !CanEditBudget(createdAt, s.nowFn()) {
		return errs.InvalidState("Edit window has closed. Use reallocation to change this budget.")
	}
	return s.Repo.Update(ctx, budgetID, branchID, req, reallocate, NextBudgetReminder(s.nowFn()))
}

func (s *BudgetService) List(ctx context.Context, id auth.Identity, f *models.BudgetFilter) (int, []*models.BudgetView, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return 0, nil, err
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	var managerID *int
	if id.Role == auth.RoleBranchManager {
		managerID = &id.UserID
	}
	return s.Repo.List(ctx, id.BusinessID, managerID, f)
}

func (s *BudgetService) Detail(ctx context.Context, id auth.Identity, budgetID int) (*models.BudgetDetail, error) {
	branchID, _, err := s.Repo.Meta(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	scope, err := s.BranchRepo.Scope(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return nil, err
	}
	return s.Repo.Detail(ctx, budgetID)
}

func (s *BudgetService) History(ctx context.Context, id auth.Identity, branchID, page, pageSize int) (*models.BudgetHistoryPage, error) {
	scope, err := s.BranchRepo.Scope(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	total, entries, err := s.Repo.History(ctx, branchID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.BudgetHistoryPage{
		Page:         page,
		PageSize:     pageSize,
		TotalRecords: total,
		History:      entries,
	}, nil
}

func (s *BudgetService) Overspend(ctx context.Context, id auth.Identity) ([]*models.OverspendEntry, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	var managerID *int
	if id.Role == auth.RoleBranchManager {
		managerID = &id.UserID
	}
	return s.Repo.Overspend(ctx, id.BusinessID, managerID)
}
