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

type ReportService struct {
	Repo       *repositories.ReportRepository
	BranchRepo *repositories.BranchRepository
}

func NewReportService(repo *repositories.ReportRepository, branchRepo *repositories.BranchRepository) *ReportService {
	return &ReportService{Repo: repo, BranchRepo: branchRepo}
}

// Summary builds the landing dashboard: business-wide for admins, the
// handled branch for managers.
func (s *ReportService) Summary(ctx context.Context, id auth.Identity) (*models.DashboardSummary, error) {
	switch id.Role {
	case auth.RoleAdmin:
		return s.Repo.BusinessSummary(ctx, id.BusinessID)
	case auth.RoleBranchManager:
		if id.BranchID == nil {
			return nil, errs.Validation("No branch assigned to this manager")
		}
		return s.Repo.BranchSummary(ctx, *id.BranchID)
	default:
		return nil, errs.Forbidden("Insufficient role for this operation.")
	}
}

func (s *ReportService) requireBranch(ctx context.Context, id auth.Identity, branchID int) error {
	scope, err := s.BranchRepo.Scope(ctx, branchID)
	if err != nil {
		return err
	}
	return authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy)
}

func (s *ReportService) Performance(ctx context.Context, id auth.Identity, branchID int) (*models.BranchPerformance, error) {
	if err := s.requireBranch(ctx, id, branchID); err != nil {
		return nil, err
	}
	return s.Repo.Performance(ctx, branchID)
}

func (s *ReportService) Compare(ctx context.Context, id auth.Identity) ([]*models.BranchComparison, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.Compare(ctx, id.BusinessID)
}

// BudgetVsExpense produces the 12-month chart series for one branch
// and year. Months without data appear as zeros.
func (s *ReportService) BudgetVsExpense(ctx context.Context, id auth.Identity, branchID, year int) ([]*models.MonthlyBudgetExpense, error) {
	if year < 2000 || year > 2100 {
		return nil, errs.Validation("Invalid year")
	}
	if err := s.requireBranch(ctx, id, branchID); err != nil {
		return nil, err
	}

	budgets, expenses, err := s.Repo.MonthlyTotals(ctx, branchID, year)
	if err != nil {
		return nil, err
	}

	series := make([]*models.MonthlyBudgetExpense, 0, 12)
	for m := 1; m <= 12; m++ {
		series = append(series, &models.MonthlyBudgetExpense{
			Month:        time.Month(m).String(),
			TotalBudget:  budgets[m],
			TotalExpense: expenses[m],
		})
	}
	return series, nil
}

func (s *ReportService) ExpensePie(ctx context.Context, id auth.Identity, year *int) ([]*models.BranchExpenseSlice, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.ExpensePie(ctx, id.BusinessID, year)
}

func (s *ReportService) ProfitLoss(ctx context.Context, id auth.Identity, year, month int) (*models.ProfitLossSummary, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	if year < 2000 || year > 2100 {
		return nil, errs.Validation("Invalid year")
	}
	if month < 1 || month > 12 {
		return nil, errs.Validation("Month must be between 1 and 12")
	}

	var managerID *int
	if id.Role == auth.RoleBranchManager {
		managerID = &id.UserID
	}
	entries, err := s.Repo.ProfitLoss(ctx, id.BusinessID, managerID, year, month)
	if err != nil {
		return nil, err
	}
	return &models.ProfitLossSummary{Month: month, Year: year, Summary: entries}, nil
}

// Recommendation suggests next month's budget from recent spend. A nil
// result means there is no history to base a suggestion on.
func (s *ReportService) Recommendation(ctx context.Context, id auth.Identity, branchID int) (*models.BudgetRecommendation, error) {
	if err := s.requireBranch(ctx, id, branchID); err != nil {
		return nil, err
	}
	totals, err := s.Repo.RecentMonthlyExpenses(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return RecommendBudget(branchID, totals), nil
}
