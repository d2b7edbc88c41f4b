package repositories

import (
	"context"
	"fmt"

	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	DB *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

// BusinessSummary builds the admin landing card set: branch count,
// current-month budget and spend, open alert count.
func (r *ReportRepository) BusinessSummary(ctx context.Context, businessID int) (*models.DashboardSummary, error) {
	s := &models.DashboardSummary{}
	err := r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM branches WHERE business_id = $1 AND status = 1),
			COALESCE((SELECT SUM(bu.total_budget) FROM budget bu
			          JOIN branches br ON br.branch_id = bu.branch_id
			          WHERE br.business_id = $1 AND bu.status = 1
			            AND bu.year = EXTRACT(YEAR FROM CURRENT_DATE)
			            AND bu.month = EXTRACT(MONTH FROM CURRENT_DATE)), 0),
			COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
			          JOIN branches br ON br.branch_id = ub.branch_id
			          WHERE br.business_id = $1 AND ub.status = 1
			            AND ub.year = EXTRACT(YEAR FROM CURRENT_DATE)
			            AND ub.month = EXTRACT(MONTH FROM CURRENT_DATE)), 0),
			(SELECT COUNT(*) FROM alerts a
			 JOIN branches br ON br.branch_id = a.branch_id
			 WHERE br.business_id = $1 AND a.status = 1 AND a.is_resolved = FALSE)
	`, businessID).Scan(&s.TotalBranches, &s.MonthlyBudget, &s.TotalExpenses, &s.ActiveAlerts)
	if err != nil {
		return nil, fmt.Errorf("failed to build business summary: %w", err)
	}
	return s, nil
}

// BranchSummary is the manager variant, scoped to one branch.
func (r *ReportRepository) BranchSummary(ctx context.Context, branchID int) (*models.DashboardSummary, error) {
	s := &models.DashboardSummary{TotalBranches: 1}
	err := r.DB.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(total_budget) FROM budget
			          WHERE branch_id = $1 AND status = 1
			            AND year = EXTRACT(YEAR FROM CURRENT_DATE)
			            AND month = EXTRACT(MONTH FROM CURRENT_DATE)), 0),
			COALESCE((SELECT SUM(amount) FROM utility_bills
			          WHERE branch_id = $1 AND status = 1
			            AND year = EXTRACT(YEAR FROM CURRENT_DATE)
			            AND month = EXTRACT(MONTH FROM CURRENT_DATE)), 0),
			(SELECT COUNT(*) FROM alerts
			 WHERE branch_id = $1 AND status = 1 AND is_resolved = FALSE)
	`, branchID).Scan(&s.MonthlyBudget, &s.TotalExpenses, &s.ActiveAlerts)
	if err != nil {
		return nil, fmt.Errorf("failed to build branch summary: %w", err)
	}
	return s, nil
}

// Performance reports lifetime budget vs spend for one branch.
func (r *ReportRepository) Performance(ctx context.Context, branchID int) (*models.BranchPerformance, error) {
	p := &models.BranchPerformance{}
	err := r.DB.QueryRow(ctx, `
		SELECT b.branch_id, b.branch_name,
		       COALESCE((SELECT SUM(bg.total_budget) FROM budget bg
		                 WHERE bg.branch_id = b.branch_id AND bg.status = 1), 0),
		       COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
		                 WHERE ub.branch_id = b.branch_id AND ub.status = 1), 0),
		       (SELECT COUNT(*) FROM alerts a
		        WHERE a.branch_id = b.branch_id AND a.status = 1)
		FROM branches b
		WHERE b.branch_id = $1 AND b.status = 1
	`, branchID).Scan(&p.BranchID, &p.BranchName, &p.TotalBudget, &p.TotalExpense, &p.AlertsCount)
	if err != nil {
		return nil, notFound(err, "Branch not found")
	}
	p.RemainingBudget = p.TotalBudget - p.TotalExpense
	if p.RemainingBudget < 0 {
		p.OverBudgetAmount = -p.RemainingBudget
	}
	return p, nil
}

// Compare ranks all branches of a business by lifetime budget vs spend.
func (r *ReportRepository) Compare(ctx context.Context, businessID int) ([]*models.BranchComparison, error) {
	query := `
		SELECT b.branch_id, b.branch_name,
		       COALESCE((SELECT SUM(bg.total_budget) FROM budget bg
		                 WHERE bg.branch_id = b.branch_id AND bg.status = 1), 0),
		       COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
		                 WHERE ub.branch_id = b.branch_id AND ub.status = 1), 0),
		       (SELECT COUNT(*) FROM alerts a
		        WHERE a.branch_id = b.branch_id AND a.status = 1),
		       (SELECT COUNT(*) FROM utility_bills ub2
		        WHERE ub2.branch_id = b.branch_id AND ub2.status = 1)
		FROM branches b
		WHERE b.business_id = $1 AND b.status = 1
		ORDER BY b.branch_name
	`
	rows, err := r.DB.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to compare branches: %w", err)
	}
	defer rows.Close()

	comparisons := []*models.BranchComparison{}
	for rows.Next() {
		c := &models.BranchComparison{}
		if err := rows.Scan(
			&c.BranchID, &c.BranchName, &c.TotalBudget, &c.TotalExpense,
			&c.AlertCount, &c.TotalBillsUploaded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		c.RemainingBudget = c.TotalBudget - c.TotalExpense
		if c.RemainingBudget >= 0 {
			c.Status = "Profit"
		} else {
			c.Status = "Loss"
			c.OverBudgetAmount = -c.RemainingBudget
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, rows.Err()
}

// MonthlyTotals returns per-month budget and expense sums for a branch
// and year, keyed by month number.
func (r *ReportRepository) MonthlyTotals(ctx context.Context, branchID, year int) (map[int]float64, map[int]float64, error) {
	budgets := map[int]float64{}
	rows, err := r.DB.Query(ctx, `
		SELECT month, SUM(total_budget) FROM budget
		WHERE branch_id = $1 AND year = $2 AND status = 1
		GROUP BY month
	`, branchID, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sum monthly budgets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var month int
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, nil, fmt.Errorf("failed to scan monthly budget: %w", err)
		}
		budgets[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	expenses := map[int]float64{}
	rows, err = r.DB.Query(ctx, `
		SELECT month, SUM(amount) FROM utility_bills
		WHERE branch_id = $1 AND year = $2 AND status = 1
		GROUP BY month
	`, branchID, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sum monthly expenses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var month int
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, nil, fmt.Errorf("failed to scan monthly expense: %w", err)
		}
		expenses[month] = total
	}
	return budgets, expenses, rows.Err()
}

// ExpensePie sums spend per branch for the pie chart, optionally for a
// single year.
func (r *ReportRepository) ExpensePie(ctx context.Context, businessID int, year *int) ([]*models.BranchExpenseSlice, error) {
	query := `
		SELECT b.branch_id, b.branch_name, COALESCE(SUM(ub.amount), 0)
		FROM branches b
		LEFT JOIN utility_bills ub ON ub.branch_id = b.branch_id
		  AND ub.status = 1
		  AND ($2::int IS NULL OR ub.year = $2)
		WHERE b.business_id = $1 AND b.status = 1
		GROUP BY b.branch_id, b.branch_name
		ORDER BY b.branch_name
	`
	rows, err := r.DB.Query(ctx, query, businessID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to build expense pie: %w", err)
	}
	defer rows.Close()

	slices := []*models.BranchExpenseSlice{}
	for rows.Next() {
		s := &models.BranchExpenseSlice{}
		if err := rows.Scan(&s.BranchID, &s.BranchName, &s.TotalExpense); err != nil {
			return nil, fmt.Errorf("failed to scan expense slice: %w", err)
		}
		slices = append(slices, s)
	}
	return slices, rows.Err()
}

// ProfitLoss reports per-branch budget vs expense for one period.
func (r *ReportRepository) ProfitLoss(ctx context.Context, businessID int, managerID *int, year, month int) ([]*models.ProfitLossEntry, error) {
	query := `
		SELECT b.branch_id, b.branch_name,
		       COALESCE((SELECT SUM(bg.total_budget) FROM budget bg
		                 WHERE bg.branch_id = b.branch_id AND bg.status = 1
		                   AND bg.year = $2 AND bg.month = $3), 0),
		       COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
		                 WHERE ub.branch_id = b.branch_id AND ub.status = 1
		                   AND ub.year = $2 AND ub.month = $3), 0)
		FROM branches b
		WHERE b.business_id = $1 AND b.status = 1
		  AND ($4::int IS NULL OR b.handled_by = $4)
		ORDER BY b.branch_name
	`
	rows, err := r.DB.Query(ctx, query, businessID, year, month, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build profit-loss summary: %w", err)
	}
	defer rows.Close()

	entries := []*models.ProfitLossEntry{}
	for rows.Next() {
		e := &models.ProfitLossEntry{}
		if err := rows.Scan(&e.BranchID, &e.BranchName, &e.Budget, &e.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan profit-loss entry: %w", err)
		}
		e.ProfitOrLoss = e.Budget - e.Expense
		if e.Budget >= e.Expense {
			e.Status = "Profit"
		} else {
			e.Status = "Loss"
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentMonthlyExpenses returns up to the last six monthly expense
// totals for a branch, newest first.
func (r *ReportRepository) RecentMonthlyExpenses(ctx context.Context, branchID int) ([]float64, error) {
	query := `
		SELECT SUM(amount) AS total_expense
		FROM utility_bills
		WHERE branch_id = $1 AND status = 1
		GROUP BY year, month
		ORDER BY year DESC, month DESC
		LIMIT 6
	`
	rows, err := r.DB.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent expenses: %w", err)
	}
	defer rows.Close()

	totals := []float64{}
	for rows.Next() {
		var total float64
		if err := rows.Scan(&total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}
