package repositories

import (
	"context"
	"fmt"

	"umd-backend/internal/errs"
	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AlertRepository struct {
	DB *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{DB: db}
}

// Active returns unresolved, non-deleted alerts visible to the caller,
// newest first.
func (r *AlertRepository) Active(ctx context.Context, businessID int, managerID *int) ([]*models.AlertListItem, error) {
	query := `
		SELECT a.id, a.branch_id, br.branch_name, a.alert_type, a.severity,
		       a.message, a.created_at
		FROM alerts a
		JOIN branches br ON br.branch_id = a.branch_id
		WHERE br.business_id = $1 AND a.status = 1 AND a.is_resolved = FALSE
		  AND ($2::int IS NULL OR br.handled_by = $2)
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, businessID, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*models.AlertListItem{}
	for rows.Next() {
		a := &models.AlertListItem{}
		if err := rows.Scan(
			&a.ID, &a.BranchID, &a.BranchName, &a.Type, &a.Severity,
			&a.Message, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Filter lists alerts by lifecycle state: active, resolved, inactive
// (soft-deleted) or all. An optional severity narrows further.
func (r *AlertRepository) Filter(ctx context.Context, businessID int, managerID *int, status, severity string) ([]*models.AlertFilterItem, error) {
	cond := ""
	switch status {
	case "active":
		cond = "AND a.status = 1 AND a.is_resolved = FALSE"
	case "resolved":
		cond = "AND a.status = 1 AND a.is_resolved = TRUE"
	case "inactive":
		cond = "AND a.status = 0"
	case "all":
	default:
		return nil, errs.Validation("Invalid status filter")
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.branch_id, br.branch_name, a.alert_type, a.severity,
		       a.message, a.is_resolved, a.status, a.created_at
		FROM alerts a
		JOIN branches br ON br.branch_id = a.branch_id
		WHERE br.business_id = $1
		  AND ($2::int IS NULL OR br.handled_by = $2)
		  AND ($3 = '' OR LOWER(a.severity) = LOWER($3))
		  %s
		ORDER BY a.created_at DESC
	`, cond)

	rows, err := r.DB.Query(ctx, query, businessID, managerID, severity)
	if err != nil {
		return nil, fmt.Errorf("failed to filter alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*models.AlertFilterItem{}
	for rows.Next() {
		a := &models.AlertFilterItem{}
		var rowStatus int
		if err := rows.Scan(
			&a.ID, &a.BranchID, &a.BranchName, &a.Type, &a.Severity,
			&a.Message, &a.IsResolved, &rowStatus, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Status = rowStatus == 1
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Scope loads the ownership projection for a non-deleted alert.
func (r *AlertRepository) Scope(ctx context.Context, alertID int) (*models.AlertScope, error) {
	s := &models.AlertScope{}
	err := r.DB.QueryRow(ctx, `
		SELECT a.branch_id, br.business_id, br.handled_by, a.is_resolved
		FROM alerts a
		JOIN branches br ON br.branch_id = a.branch_id
		WHERE a.id = $1 AND a.status = 1
	`, alertID).Scan(&s.BranchID, &s.BusinessID, &s.HandledBy, &s.IsResolved)
	if err != nil {
		return nil, notFound(err, "Alert not found")
	}
	return s, nil
}

func (r *AlertRepository) Resolve(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE alerts SET is_resolved = TRUE, resolved_at = NOW()
		WHERE id = $1 AND status = 1 AND is_resolved = FALSE
	`, id)
	if err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("Alert not found or already resolved")
	}
	return nil
}

func (r *AlertRepository) Reopen(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE alerts SET is_resolved = FALSE, resolved_at = NULL
		WHERE id = $1 AND status = 1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to reopen alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) SoftDelete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE alerts SET status = 0 WHERE id = $1 AND status = 1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("Alert not found")
	}
	return nil
}

// MarkViewed clears the notification badge for a whole business.
func (r *AlertRepository) MarkViewed(ctx context.Context, businessID int) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE alerts SET is_viewed = TRUE
		WHERE status = 1 AND is_viewed = FALSE
		  AND branch_id IN (SELECT branch_id FROM branches WHERE business_id = $1)
	`, businessID)
	if err != nil {
		return fmt.Errorf("failed to mark alerts viewed: %w", err)
	}
	return nil
}

// UnreadCount counts active unviewed alerts for the badge.
func (r *AlertRepository) UnreadCount(ctx context.Context, businessID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM alerts a
		JOIN branches br ON br.branch_id = a.branch_id
		WHERE br.business_id = $1 AND a.status = 1 AND a.is_viewed = FALSE
	`, businessID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

// TodayReminders lists budget reminders whose scheduled date is today,
// so the morning dashboard can surface them.
func (r *AlertRepository) TodayReminders(ctx context.Context, businessID int, managerID *int) ([]*models.ReminderItem, error) {
	query := `
		SELECT a.id, a.message, a.created_at, br.branch_name
		FROM alerts a
		JOIN branches br ON br.branch_id = a.branch_id
		WHERE br.business_id = $1 AND a.status = 1 AND a.is_resolved = FALSE
		  AND a.alert_type = $2 AND a.created_at::date = CURRENT_DATE
		  AND ($3::int IS NULL OR br.handled_by = $3)
		ORDER BY br.branch_name
	`
	rows, err := r.DB.Query(ctx, query, businessID, models.AlertBudgetReminder, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	reminders := []*models.ReminderItem{}
	for rows.Next() {
		item := &models.ReminderItem{}
		if err := rows.Scan(&item.ID, &item.Message, &item.CreatedAt, &item.BranchName); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, item)
	}
	return reminders, rows.Err()
}
