package repositories

import (
	"context"
	"errors"
	"fmt"

	"umd-backend/internal/auth"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchRepository struct {
	DB *pgxpool.Pool
}

func NewBranchRepository(db *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{DB: db}
}

// Scope loads the ownership projection used by authorization checks.
func (r *BranchRepository) Scope(ctx context.Context, branchID int) (*models.BranchScope, error) {
	s := &models.BranchScope{}
	err := r.DB.QueryRow(ctx,
		`SELECT business_id, handled_by, status FROM branches WHERE branch_id = $1`,
		branchID,
	).Scan(&s.BusinessID, &s.HandledBy, &s.Status)
	if err != nil {
		return nil, notFound(err, "Branch not found")
	}
	return s, nil
}

// validateManager ensures the assignee is an available branch manager
// of the same business. Runs inside the caller's transaction.
func validateManager(ctx context.Context, tx pgx.Tx, managerID, businessID int) error {
	var role auth.Role
	var managerBusiness int
	var available bool
	err := tx.QueryRow(ctx, `
		SELECT role_id, COALESCE(business_id, 0), availablecurrently
		FROM users
		WHERE user_id = $1 AND status = 1
	`, managerID).Scan(&role, &managerBusiness, &available)
	if err != nil {
		return notFound(err, "Manager not found")
	}
	if role != auth.RoleBranchManager || managerBusiness != businessID {
		return errs.Validation("Selected user is not a branch manager of this business")
	}
	if !available {
		return errs.Conflict("This manager is already handling another branch.")
	}
	return nil
}

// Create inserts the branch and, when a manager is assigned, flips the
// manager's availability in the same transaction.
func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if b.HandledBy != nil {
		if err := validateManager(ctx, tx, *b.HandledBy, b.BusinessID); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO branches (branch_name, blocation, business_id, handled_by)
		VALUES ($1, $2, $3, $4)
		RETURNING branch_id, budget_alert_threshold, created_at
	`, b.Name, b.Location, b.BusinessID, b.HandledBy).Scan(&b.ID, &b.AlertThreshold, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("This manager is already handling another branch.")
		}
		return fmt.Errorf("failed to insert branch: %w", err)
	}

	if b.HandledBy != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET availablecurrently = FALSE WHERE user_id = $1`,
			*b.HandledBy,
		); err != nil {
			return fmt.Errorf("failed to mark manager unavailable: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List returns active branches of a business with the manager joined in.
// A non-nil managerID narrows the view to the branch that manager handles.
func (r *BranchRepository) List(ctx context.Context, businessID int, managerID *int, page, limit int) (int, []*models.BranchListItem, error) {
	var total int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM branches
		WHERE business_id = $1 AND status = 1
		  AND ($2::int IS NULL OR handled_by = $2)
	`, businessID, managerID).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count branches: %w", err)
	}

	query := `
		SELECT b.branch_id, b.branch_name, COALESCE(b.blocation, ''),
		       b.budget_alert_threshold, u.username, u.email, b.created_at
		FROM branches b
		LEFT JOIN users u ON u.user_id = b.handled_by
		WHERE b.business_id = $1 AND b.status = 1
		  AND ($2::int IS NULL OR b.handled_by = $2)
		ORDER BY b.branch_id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.Query(ctx, query, businessID, managerID, limit, (page-1)*limit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	branches := []*models.BranchListItem{}
	for rows.Next() {
		item := &models.BranchListItem{Status: "active"}
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Location, &item.AlertThreshold,
			&item.ManagerName, &item.ManagerEmail, &item.CreatedAt,
		); err != nil {
			return 0, nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, item)
	}
	return total, branches, rows.Err()
}

// Filter finds branches by id or name fragment within a business,
// including inactive ones so admins can locate deleted branches.
func (r *BranchRepository) Filter(ctx context.Context, businessID int, branchID *int, name string) ([]*models.BranchListItem, error) {
	query := `
		SELECT b.branch_id, b.branch_name, COALESCE(b.blocation, ''), b.status,
		       b.budget_alert_threshold, u.username, u.email, b.created_at
		FROM branches b
		LEFT JOIN users u ON u.user_id = b.handled_by
		WHERE b.business_id = $1
		  AND ($2::int IS NULL OR b.branch_id = $2)
		  AND ($3 = '' OR b.branch_name ILIKE '%' || $3 || '%')
		ORDER BY b.branch_id
	`
	rows, err := r.DB.Query(ctx, query, businessID, branchID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to filter branches: %w", err)
	}
	defer rows.Close()

	branches := []*models.BranchListItem{}
	for rows.Next() {
		item := &models.BranchListItem{}
		var status int
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Location, &status,
			&item.AlertThreshold, &item.ManagerName, &item.ManagerEmail, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		if status == 1 {
			item.Status = "active"
		} else {
			item.Status = "inactive"
		}
		branches = append(branches, item)
	}
	return branches, rows.Err()
}

// Update changes name, location and manager. When the manager changes,
// the old one is freed and the new one claimed in the same transaction.
func (r *BranchRepository) Update(ctx context.Context, branchID, businessID int, req *models.UpdateBranchRequest) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldManager *int
	err = tx.QueryRow(ctx, `
		SELECT handled_by FROM branches
		WHERE branch_id = $1 AND business_id = $2 AND status = 1
		FOR UPDATE
	`, branchID, businessID).Scan(&oldManager)
	if err != nil {
		return notFound(err, "Branch not found")
	}

	sameManager := (oldManager == nil && req.HandledBy == nil) ||
		(oldManager != nil && req.HandledBy != nil && *oldManager == *req.HandledBy)

	if !sameManager && req.HandledBy != nil {
		if err := validateManager(ctx, tx, *req.HandledBy, businessID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE branches SET branch_name = $1, blocation = $2, handled_by = $3
		WHERE branch_id = $4
	`, req.BranchName, req.Location, req.HandledBy, branchID)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("This manager is already handling another branch.")
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}

	if !sameManager {
		if oldManager != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE users SET availablecurrently = TRUE WHERE user_id = $1`,
				*oldManager,
			); err != nil {
				return fmt.Errorf("failed to free previous manager: %w", err)
			}
		}
		if req.HandledBy != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE users SET availablecurrently = FALSE WHERE user_id = $1`,
				*req.HandledBy,
			); err != nil {
				return fmt.Errorf("failed to claim new manager: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// SoftDelete deactivates the branch, detaches its manager and frees the
// manager for reassignment.
func (r *BranchRepository) SoftDelete(ctx context.Context, branchID, businessID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var manager *int
	err = tx.QueryRow(ctx, `
		SELECT handled_by FROM branches
		WHERE branch_id = $1 AND business_id = $2 AND status = 1
		FOR UPDATE
	`, branchID, businessID).Scan(&manager)
	if err != nil {
		return notFound(err, "Branch not found")
	}

	if _, err := tx.Exec(ctx,
		`UPDATE branches SET status = 0, handled_by = NULL WHERE branch_id = $1`,
		branchID,
	); err != nil {
		return fmt.Errorf("failed to deactivate branch: %w", err)
	}

	if manager != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET availablecurrently = TRUE WHERE user_id = $1`,
			*manager,
		); err != nil {
			return fmt.Errorf("failed to free manager: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Reactivate brings an inactive branch back without a manager; one has
// to be assigned again via Update. Returns true when the branch was
// already active.
func (r *BranchRepository) Reactivate(ctx context.Context, branchID, businessID int) (bool, error) {
	var status int
	err := r.DB.QueryRow(ctx,
		`SELECT status FROM branches WHERE branch_id = $1 AND business_id = $2`,
		branchID, businessID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, errs.NotFound("Branch not found")
		}
		return false, fmt.Errorf("failed to load branch status: %w", err)
	}
	if status == 1 {
		return true, nil
	}

	_, err = r.DB.Exec(ctx,
		`UPDATE branches SET status = 1 WHERE branch_id = $1`, branchID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to reactivate branch: %w", err)
	}
	return false, nil
}

func (r *BranchRepository) SetThreshold(ctx context.Context, branchID, threshold int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE branches SET budget_alert_threshold = $1 WHERE branch_id = $2 AND status = 1`,
		threshold, branchID,
	)
	if err != nil {
		return fmt.Errorf("failed to set alert threshold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("Branch not found")
	}
	return nil
}
