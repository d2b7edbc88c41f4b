package repositories

import (
	"context"
	"fmt"
	"strings"

	"umd-backend/internal/auth"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BusinessRepository struct {
	DB *pgxpool.Pool
}

func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{DB: db}
}

func (r *BusinessRepository) ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM business
			WHERE LOWER(business_name) = LOWER($1) OR LOWER(email) = LOWER($2)
		)
	`
	if err := r.DB.QueryRow(ctx, query, name, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check business existence: %w", err)
	}
	return exists, nil
}

// Register creates the business and stashes its admin credential in
// pending_admins, atomically. The admin becomes a real user on approval.
func (r *BusinessRepository) Register(ctx context.Context, b *models.Business, admin *models.PendingAdmin) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO business (business_name, industry, email, contact_person)
		VALUES ($1, $2, $3, $4)
		RETURNING business_id, created_at
	`, b.Name, b.Industry, b.Email, b.ContactPerson).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Business name or email already registered")
		}
		return fmt.Errorf("failed to insert business: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO pending_admins (username, user_email, contact_no, password, business_id)
		VALUES ($1, $2, $3, $4, $5)
	`, admin.Username, admin.Email, admin.ContactNo, admin.Password, b.ID)
	if err != nil {
		return fmt.Errorf("failed to insert pending admin: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *BusinessRepository) ReqStatus(ctx context.Context, id int) (string, error) {
	var status string
	err := r.DB.QueryRow(ctx,
		`SELECT req_status FROM business WHERE business_id = $1`, id,
	).Scan(&status)
	if err != nil {
		return "", notFound(err, "Business not found")
	}
	return status, nil
}

// Approve promotes the pending admin into users with the Admin role and
// marks the business approved, in one transaction.
func (r *BusinessRepository) Approve(ctx context.Context, businessID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	admin := &models.PendingAdmin{}
	err = tx.QueryRow(ctx, `
		SELECT id, username, user_email, COALESCE(contact_no, ''), password
		FROM pending_admins
		WHERE business_id = $1
	`, businessID).Scan(&admin.ID, &admin.Username, &admin.Email, &admin.ContactNo, &admin.Password)
	if err != nil {
		return notFound(err, "No pending admin for this business")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, email, contact_no, userpassword, role_id, business_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, admin.Username, admin.Email, admin.ContactNo, admin.Password, auth.RoleAdmin, businessID)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("A user with this email already exists")
		}
		return fmt.Errorf("failed to promote pending admin: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE business SET req_status = $1 WHERE business_id = $2`,
		models.ReqStatusApproved, businessID,
	); err != nil {
		return fmt.Errorf("failed to approve business: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM pending_admins WHERE id = $1`, admin.ID,
	); err != nil {
		return fmt.Errorf("failed to clear pending admin: %w", err)
	}

	return tx.Commit(ctx)
}

// Reject discards the pending admin credential and marks the request
// rejected.
func (r *BusinessRepository) Reject(ctx context.Context, businessID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE business SET req_status = $1 WHERE business_id = $2`,
		models.ReqStatusRejected, businessID,
	); err != nil {
		return fmt.Errorf("failed to reject business: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM pending_admins WHERE business_id = $1`, businessID,
	); err != nil {
		return fmt.Errorf("failed to clear pending admin: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *BusinessRepository) List(ctx context.Context) ([]*models.Business, error) {
	query := `
		SELECT business_id, business_name, COALESCE(industry, ''), email,
		       COALESCE(contact_person, ''), status, req_status, created_at
		FROM business
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	businesses := []*models.Business{}
	for rows.Next() {
		b := &models.Business{}
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Industry, &b.Email,
			&b.ContactPerson, &b.Status, &b.ReqStatus, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (r *BusinessRepository) Get(ctx context.Context, id int) (*models.Business, error) {
	b := &models.Business{}
	query := `
		SELECT business_id, business_name, COALESCE(industry, ''), email,
		       COALESCE(contact_person, ''), status, req_status, created_at
		FROM business
		WHERE business_id = $1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Industry, &b.Email,
		&b.ContactPerson, &b.Status, &b.ReqStatus, &b.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "Business not found")
	}
	return b, nil
}

func (r *BusinessRepository) Detail(ctx context.Context, id int) (*models.BusinessDetail, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &models.BusinessDetail{Business: *b}
	err = r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM branches WHERE business_id = $1 AND status = 1),
			(SELECT COUNT(*) FROM users WHERE business_id = $1 AND status = 1)
	`, id).Scan(&d.TotalBranches, &d.TotalUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count business aggregates: %w", err)
	}
	return d, nil
}

func (r *BusinessRepository) UpdateInfo(ctx context.Context, id int, req *models.UpdateBusinessRequest) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	if req.BusinessName != nil {
		sets = append(sets, fmt.Sprintf("business_name = $%d", idx))
		args = append(args, *req.BusinessName)
		idx++
	}
	if req.Industry != nil {
		sets = append(sets, fmt.Sprintf("industry = $%d", idx))
		args = append(args, *req.Industry)
		idx++
	}
	if req.ContactPerson != nil {
		sets = append(sets, fmt.Sprintf("contact_person = $%d", idx))
		args = append(args, *req.ContactPerson)
		idx++
	}
	if len(sets) == 0 {
		return errs.Validation("No fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE business SET %s WHERE business_id = $%d`,
		strings.Join(sets, ", "), idx,
	)
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Business name already in use")
		}
		return fmt.Errorf("failed to update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("Business not found")
	}
	return nil
}

// SetStatusCascade flips the business status and all of its users with
// it, so suspension locks every account at once.
func (r *BusinessRepository) SetStatusCascade(ctx context.Context, id, status int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE business SET status = $1 WHERE business_id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update business status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("Business not found")
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET status = $1 WHERE business_id = $2`, status, id,
	); err != nil {
		return fmt.Errorf("failed to cascade status to users: %w", err)
	}

	return tx.Commit(ctx)
}
