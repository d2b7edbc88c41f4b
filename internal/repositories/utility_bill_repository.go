package repositories

import (
	"context"
	"fmt"

	"umd-backend/internal/errs"
	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UtilityBillRepository struct {
	DB *pgxpool.Pool
}

func NewUtilityBillRepository(db *pgxpool.Pool) *UtilityBillRepository {
	return &UtilityBillRepository{DB: db}
}

// Upload inserts the bill and its evidence, then evaluates the alert
// rule against totals computed inside the same transaction. The decide
// callback stays pure; whatever draft it returns is persisted with the
// bill so readers never observe the expense without its alert.
func (r *UtilityBillRepository) Upload(ctx context.Context, bill *models.UtilityBill, media *models.Media, decide func(totalBudget, totalExpenses float64, threshold int) *models.AlertDraft) (*models.AlertDraft, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO utility_bills (branch_id, utility_type_id, year, month, units_used, amount, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at
	`, bill.BranchID, bill.UtilityTypeID, bill.Year, bill.Month,
		bill.UnitsUsed, bill.Amount, bill.UploadedBy,
	).Scan(&bill.ID, &bill.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bill: %w", err)
	}

	if media != nil {
		media.UtilityBillID = &bill.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO media (media_name, media_path, media_type, uploaded_by, business_id, branch_id, utility_bill_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, uploaded_at
		`, media.Name, media.Path, media.MediaType, media.UploadedBy,
			media.BusinessID, media.BranchID, media.UtilityBillID,
		).Scan(&media.ID, &media.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert media: %w", err)
		}
	}

	var totalBudget, totalExpenses float64
	var threshold int
	err = tx.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT total_budget FROM budget
			          WHERE branch_id = $1 AND year = $2 AND month = $3 AND status = 1), 0),
			COALESCE((SELECT SUM(amount) FROM utility_bills
			          WHERE branch_id = $1 AND year = $2 AND month = $3 AND status = 1), 0),
			(SELECT budget_alert_threshold FROM branches WHERE branch_id = $1)
	`, bill.BranchID, bill.Year, bill.Month).Scan(&totalBudget, &totalExpenses, &threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to compute period totals: %w", err)
	}

	draft := decide(totalBudget, totalExpenses, threshold)
	if err := insertAlert(ctx, tx, bill.BranchID, &bill.ID, draft); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return draft, nil
}

// List returns bills visible to the caller, newest first. A non-nil
// managerID narrows the view to that manager's branch.
func (r *UtilityBillRepository) List(ctx context.Context, businessID int, managerID *int, f *models.BillFilter) ([]*models.BillListItem, error) {
	query := `
		SELECT ub.id, br.branch_name, ut.utility_name, COALESCE(ut.category, ''),
		       ub.year, ub.month, COALESCE(ub.units_used, 0), ub.amount,
		       ub.uploaded_at, u.username
		FROM utility_bills ub
		JOIN branches br ON br.branch_id = ub.branch_id
		JOIN utility_expense_types ut ON ut.id = ub.utility_type_id
		LEFT JOIN users u ON u.user_id = ub.uploaded_by
		WHERE br.business_id = $1 AND ub.status = 1
		  AND ($2::int IS NULL OR br.handled_by = $2)
		  AND ($3 = 0 OR ub.branch_id = $3)
		  AND ($4 = 0 OR ub.year = $4)
		  AND ($5 = 0 OR ub.month = $5)
		  AND ($6 = 0 OR ub.utility_type_id = $6)
		ORDER BY ub.uploaded_at DESC
		LIMIT $7 OFFSET $8
	`
	rows, err := r.DB.Query(ctx, query,
		businessID, managerID, f.BranchID, f.Year, f.Month, f.UtilityTypeID,
		f.PageSize, (f.Page-1)*f.PageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := []*models.BillListItem{}
	for rows.Next() {
		item := &models.BillListItem{}
		if err := rows.Scan(
			&item.ID, &item.BranchName, &item.UtilityName, &item.Category,
			&item.Year, &item.Month, &item.UnitsUsed, &item.Amount,
			&item.UploadedAt, &item.UploadedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, item)
	}
	return bills, rows.Err()
}

func (r *UtilityBillRepository) Detail(ctx context.Context, id int) (*models.BillDetail, error) {
	d := &models.BillDetail{}
	query := `
		SELECT ub.id, br.branch_name, ut.utility_name, COALESCE(ut.category, ''),
		       ub.year, ub.month, COALESCE(ub.units_used, 0), ub.amount,
		       ub.uploaded_at, COALESCE(u.username, '')
		FROM utility_bills ub
		JOIN branches br ON br.branch_id = ub.branch_id
		JOIN utility_expense_types ut ON ut.id = ub.utility_type_id
		LEFT JOIN users u ON u.user_id = ub.uploaded_by
		WHERE ub.id = $1 AND ub.status = 1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.BranchName, &d.UtilityName, &d.Category,
		&d.Year, &d.Month, &d.UnitsUsed, &d.Amount, &d.UploadedAt, &d.UploadedBy,
	)
	if err != nil {
		return nil, notFound(err, "Bill not found")
	}
	return d, nil
}

// Scope loads the ownership fields used to authorize bill operations.
func (r *UtilityBillRepository) Scope(ctx context.Context, billID int) (branchID, businessID int, handledBy *int, err error) {
	err = r.DB.QueryRow(ctx, `
		SELECT ub.branch_id, br.business_id, br.handled_by
		FROM utility_bills ub
		JOIN branches br ON br.branch_id = ub.branch_id
		WHERE ub.id = $1 AND ub.status = 1
	`, billID).Scan(&branchID, &businessID, &handledBy)
	if err != nil {
		return 0, 0, nil, notFound(err, "Bill not found")
	}
	return branchID, businessID, handledBy, nil
}

// SoftDelete deactivates the bill and its evidence together.
func (r *UtilityBillRepository) SoftDelete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE utility_bills SET status = 0 WHERE id = $1 AND status = 1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("Bill not found")
	}

	if _, err := tx.Exec(ctx,
		`UPDATE media SET status = 0 WHERE utility_bill_id = $1 AND status = 1`, id,
	); err != nil {
		return fmt.Errorf("failed to delete bill media: %w", err)
	}

	return tx.Commit(ctx)
}

// ReplaceMedia soft-deletes the current evidence rows and records the
// new one, so earlier uploads stay auditable.
func (r *UtilityBillRepository) ReplaceMedia(ctx context.Context, billID int, m *models.Media) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE media SET status = 0 WHERE utility_bill_id = $1 AND status = 1`, billID,
	); err != nil {
		return fmt.Errorf("failed to retire previous media: %w", err)
	}

	m.UtilityBillID = &billID
	err = tx.QueryRow(ctx, `
		INSERT INTO media (media_name, media_path, media_type, uploaded_by, business_id, branch_id, utility_bill_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at
	`, m.Name, m.Path, m.MediaType, m.UploadedBy, m.BusinessID, m.BranchID, m.UtilityBillID,
	).Scan(&m.ID, &m.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert media: %w", err)
	}

	return tx.Commit(ctx)
}

// MediaForBill returns the active evidence row for a bill.
func (r *UtilityBillRepository) MediaForBill(ctx context.Context, billID int) (*models.Media, error) {
	m := &models.Media{}
	query := `
		SELECT id, media_name, media_path, COALESCE(media_type, ''), uploaded_by,
		       business_id, branch_id, utility_bill_id, status, uploaded_at
		FROM media
		WHERE utility_bill_id = $1 AND status = 1
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	err := r.DB.QueryRow(ctx, query, billID).Scan(
		&m.ID, &m.Name, &m.Path, &m.MediaType, &m.UploadedBy,
		&m.BusinessID, &m.BranchID, &m.UtilityBillID, &m.Status, &m.UploadedAt,
	)
	if err != nil {
		return nil, notFound(err, "No media found for this bill")
	}
	return m, nil
}

func (r *UtilityBillRepository) UtilityTypes(ctx context.Context) ([]*models.UtilityType, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, utility_name, COALESCE(category, '') FROM utility_expense_types ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list utility types: %w", err)
	}
	defer rows.Close()

	types := []*models.UtilityType{}
	for rows.Next() {
		t := &models.UtilityType{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Category); err != nil {
			return nil, fmt.Errorf("failed to scan utility type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// FilterOptions feeds the expense page's dropdowns with the distinct
// values present in the caller's visible bills.
func (r *UtilityBillRepository) FilterOptions(ctx context.Context, businessID int, managerID *int) (*models.BillFilterOptions, error) {
	opts := &models.BillFilterOptions{
		Years:  []int{},
		Months: []int{},
	}

	rows, err := r.DB.Query(ctx, `
		SELECT DISTINCT ub.year
		FROM utility_bills ub
		JOIN branches br ON br.branch_id = ub.branch_id
		WHERE br.business_id = $1 AND ub.status = 1
		  AND ($2::int IS NULL OR br.handled_by = $2)
		ORDER BY ub.year DESC
	`, businessID, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filter years: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		opts.Years = append(opts.Years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT DISTINCT ub.month
		FROM utility_bills ub
		JOIN branches br ON br.branch_id = ub.branch_id
		WHERE br.business_id = $1 AND ub.status = 1
		  AND ($2::int IS NULL OR br.handled_by = $2)
		ORDER BY ub.month
	`, businessID, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filter months: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m int
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		opts.Months = append(opts.Months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	opts.UtilityTypes, err = r.UtilityTypes(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT branch_id, branch_name FROM branches
		WHERE business_id = $1 AND status = 1
		  AND ($2::int IS NULL OR handled_by = $2)
		ORDER BY branch_name
	`, businessID, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filter branches: %w", err)
	}
	defer rows.Close()
	opts.Branches = []*models.BranchRef{}
	for rows.Next() {
		b := &models.BranchRef{}
		if err := rows.Scan(&b.BranchID, &b.BranchName); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		opts.Branches = append(opts.Branches, b)
	}
	return opts, rows.Err()
}
