package repositories

import (
	"context"
	"fmt"
	"time"

	"umd-backend/internal/errs"
	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BudgetRepository struct {
	DB *pgxpool.Pool
}

func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{DB: db}
}

func insertAlert(ctx context.Context, tx pgx.Tx, branchID int, billID *int, draft *models.AlertDraft) error {
	if draft == nil {
		return nil
	}
	var err error
	if draft.CreatedAt != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO alerts (branch_id, utility_bill_id, alert_type, severity, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, branchID, billID, draft.Type, draft.Severity, draft.Message, *draft.CreatedAt)
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO alerts (branch_id, utility_bill_id, alert_type, severity, message)
			VALUES ($1, $2, $3, $4, $5)
		`, branchID, billID, draft.Type, draft.Severity, draft.Message)
	}
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// Create allocates a budget and schedules the next reminder alert in
// the same transaction.
func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget, reminder *models.AlertDraft) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO budget (branch_id, year, month, total_budget, allocated_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, b.BranchID, b.Year, b.Month, b.TotalBudget, b.AllocatedBy).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Budget already allocated for this branch and month")
		}
		return fmt.Errorf("failed to insert budget: %w", err)
	}

	if err := insertAlert(ctx, tx, b.BranchID, nil, reminder); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Meta loads the fields needed to authorize and window-check an edit.
func (r *BudgetRepository) Meta(ctx context.Context, id int) (branchID int, createdAt time.Time, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT branch_id, created_at FROM budget WHERE id = $1 AND status = 1`, id,
	).Scan(&branchID, &createdAt)
	if err != nil {
		return 0, time.Time{}, notFound(err, "Budget not found")
	}
	return branchID, createdAt, nil
}

// Update rewrites the allocation; resetWindow restamps created_at so a
// reallocation opens a fresh edit window. A new reminder alert is
// scheduled with every update.
func (r *BudgetRepository) Update(ctx context.Context, id, branchID int, req *models.UpdateBudgetRequest, resetWindow bool, reminder *models.AlertDraft) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE budget SET year = $1, month = $2, total_budget = $3 WHERE id = $4`
	if resetWindow {
		query = `UPDATE budget SET year = $1, month = $2, total_budget = $3, created_at = NOW() WHERE id = $4`
	}
	if _, err := tx.Exec(ctx, query, req.Year, req.Month, req.TotalBudget, id); err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Budget already allocated for this branch and month")
		}
		return fmt.Errorf("failed to update budget: %w", err)
	}

	if err := insertAlert(ctx, tx, branchID, nil, reminder); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// List joins allocations against accumulated spend for the same period.
// A non-nil managerID narrows the view to that manager's branch.
func (r *BudgetRepository) List(ctx context.Context, businessID int, managerID *int, f *models.BudgetFilter) (int, []*models.BudgetView, error) {
	where := `
		FROM budget bu
		JOIN branches br ON br.branch_id = bu.branch_id
		WHERE br.business_id = $1 AND bu.status = 1 AND br.status = 1
		  AND ($2::int IS NULL OR br.handled_by = $2)
		  AND ($3 = 0 OR bu.year = $3)
		  AND ($4 = 0 OR bu.month = $4)
		  AND ($5 = 0 OR bu.branch_id = $5)
	`
	args := []interface{}{businessID, managerID, f.Year, f.Month, f.BranchID}

	var total int
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) "+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("failed to count budgets: %w", err)
	}

	query := `
		SELECT bu.id, bu.branch_id, br.branch_name, bu.year, bu.month, bu.total_budget,
		       COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
		                 WHERE ub.branch_id = bu.branch_id AND ub.year = bu.year
		                   AND ub.month = bu.month AND ub.status = 1), 0)
	` + where + `
		ORDER BY bu.year DESC, bu.month DESC, bu.branch_id
		LIMIT $6 OFFSET $7
	`
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []*models.BudgetView{}
	for rows.Next() {
		v := &models.BudgetView{}
		if err := rows.Scan(
			&v.ID, &v.BranchID, &v.BranchName, &v.Year, &v.Month,
			&v.TotalBudget, &v.TotalSpent,
		); err != nil {
			return 0, nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, v)
	}
	return total, budgets, rows.Err()
}

func (r *BudgetRepository) Detail(ctx context.Context, id int) (*models.BudgetDetail, error) {
	d := &models.BudgetDetail{}
	query := `
		SELECT br.branch_name, bu.year, bu.month, bu.total_budget,
		       COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
		                 WHERE ub.branch_id = bu.branch_id AND ub.year = bu.year
		                   AND ub.month = bu.month AND ub.status = 1), 0),
		       bu.created_at
		FROM budget bu
		JOIN branches br ON br.branch_id = bu.branch_id
		WHERE bu.id = $1 AND bu.status = 1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&d.BranchName, &d.Year, &d.Month, &d.TotalBudget, &d.TotalSpent, &d.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "Budget not found")
	}
	return d, nil
}

func (r *BudgetRepository) History(ctx context.Context, branchID, page, pageSize int) (int, []*models.BudgetHistoryEntry, error) {
	var total int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM budget WHERE branch_id = $1 AND status = 1`, branchID,
	).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count budget history: %w", err)
	}

	query := `
		SELECT bu.year, bu.month, bu.total_budget,
		       COALESCE((SELECT SUM(ub.amount) FROM utility_bills ub
		                 WHERE ub.branch_id = bu.branch_id AND ub.year = bu.year
		                   AND ub.month = bu.month AND ub.status = 1), 0)
		FROM budget bu
		WHERE bu.branch_id = $1 AND bu.status = 1
		ORDER BY bu.year DESC, bu.month DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(ctx, query, branchID, pageSize, (page-1)*pageSize)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list budget history: %w", err)
	}
	defer rows.Close()

	entries := []*models.BudgetHistoryEntry{}
	for rows.Next() {
		e := &models.BudgetHistoryEntry{}
		if err := rows.Scan(&e.Year, &e.Month, &e.TotalBudget, &e.TotalSpent); err != nil {
			return 0, nil, fmt.Errorf("failed to scan budget history: %w", err)
		}
		entries = append(entries, e)
	}
	return total, entries, rows.Err()
}

// Overspend reports the periods where spend exceeded allocation.
func (r *BudgetRepository) Overspend(ctx context.Context, businessID int, managerID *int) ([]*models.OverspendEntry, error) {
	query := `
		SELECT br.branch_name, bu.year, bu.month, bu.total_budget,
		       SUM(ub.amount) AS spent
		FROM budget bu
		JOIN branches br ON br.branch_id = bu.branch_id
		JOIN utility_bills ub ON ub.branch_id = bu.branch_id
		  AND ub.year = bu.year AND ub.month = bu.month AND ub.status = 1
		WHERE br.business_id = $1 AND bu.status = 1 AND br.status = 1
		  AND ($2::int IS NULL OR br.handled_by = $2)
		GROUP BY br.branch_name, bu.year, bu.month, bu.total_budget
		HAVING SUM(ub.amount) > bu.total_budget
		ORDER BY bu.year DESC, bu.month DESC
	`
	rows, err := r.DB.Query(ctx, query, businessID, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overspend: %w", err)
	}
	defer rows.Close()

	entries := []*models.OverspendEntry{}
	for rows.Next() {
		e := &models.OverspendEntry{}
		if err := rows.Scan(&e.BranchName, &e.Year, &e.Month, &e.Budget, &e.Spent); err != nil {
			return nil, fmt.Errorf("failed to scan overspend: %w", err)
		}
		e.Overspent = e.Spent - e.Budget
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
