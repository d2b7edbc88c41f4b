package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"umd-backend/internal/auth"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := `
		SELECT user_id, username, email, contact_no, userpassword, role_id,
		       COALESCE(business_id, 0), status, availablecurrently, created_at
		FROM users
		WHERE user_id = $1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.ContactNo, &u.PasswordHash,
		&u.Role, &u.BusinessID, &u.Status, &u.Available, &u.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	query := `
		SELECT user_id, username, email, contact_no, userpassword, role_id,
		       COALESCE(business_id, 0), status, availablecurrently, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.ContactNo, &u.PasswordHash,
		&u.Role, &u.BusinessID, &u.Status, &u.Available, &u.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return u, nil
}

// HandledBranch returns the active branch a manager currently handles,
// or nil when the manager is unassigned.
func (r *UserRepository) HandledBranch(ctx context.Context, userID int) (*int, error) {
	var branchID int
	query := `SELECT branch_id FROM branches WHERE handled_by = $1 AND status = 1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(&branchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up handled branch: %w", err)
	}
	return &branchID, nil
}

func (r *UserRepository) List(ctx context.Context, businessID, page, limit int) (int, []*models.User, error) {
	var total int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE business_id = $1 AND status = 1`,
		businessID,
	).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT user_id, username, email, contact_no, role_id,
		       COALESCE(business_id, 0), status, availablecurrently, created_at
		FROM users
		WHERE business_id = $1 AND status = 1
		ORDER BY user_id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(ctx, query, businessID, limit, (page-1)*limit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.ContactNo, &u.Role,
			&u.BusinessID, &u.Status, &u.Available, &u.CreatedAt,
		); err != nil {
			return 0, nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return total, users, rows.Err()
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2)
		)
	`
	if err := r.DB.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (username, email, contact_no, userpassword, role_id, business_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		u.Username, u.Email, u.ContactNo, u.PasswordHash, u.Role, u.BusinessID,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Username or email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update applies only the fields present in the request.
func (r *UserRepository) Update(ctx context.Context, id, businessID int, req *models.UpdateUserRequest) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	if req.Username != nil {
		sets = append(sets, fmt.Sprintf("username = $%d", idx))
		args = append(args, *req.Username)
		idx++
	}
	if req.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", idx))
		args = append(args, *req.Email)
		idx++
	}
	if req.ContactNo != nil {
		sets = append(sets, fmt.Sprintf("contact_no = $%d", idx))
		args = append(args, *req.ContactNo)
		idx++
	}
	if req.Role != nil {
		sets = append(sets, fmt.Sprintf("role_id = $%d", idx))
		args = append(args, *req.Role)
		idx++
	}
	if len(sets) == 0 {
		return errs.Validation("No fields to update")
	}

	args = append(args, id, businessID)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $%d AND business_id = $%d AND status = 1`,
		strings.Join(sets, ", "), idx, idx+1,
	)
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Username or email already exists")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("User not found")
	}
	return nil
}

// Delete soft-deletes a non-admin user in the given business.
func (r *UserRepository) Delete(ctx context.Context, id, businessID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET status = 0
		 WHERE user_id = $1 AND business_id = $2 AND role_id <> $3 AND status = 1`,
		id, businessID, auth.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("User not found")
	}
	return nil
}

// AvailableManagers lists unassigned branch managers of a business.
// When branchID is given, the manager currently handling that branch is
// included so an edit form can show the existing assignment.
func (r *UserRepository) AvailableManagers(ctx context.Context, businessID int, branchID *int) ([]*models.ManagerOption, error) {
	query := `
		SELECT u.user_id, u.username, u.email, COALESCE(u.contact_no, '')
		FROM users u
		WHERE u.business_id = $1 AND u.role_id = $2 AND u.status = 1
		  AND (u.availablecurrently = TRUE
		       OR ($3::int IS NOT NULL AND u.user_id = (
		              SELECT handled_by FROM branches WHERE branch_id = $3)))
		ORDER BY u.username
	`
	rows, err := r.DB.Query(ctx, query, businessID, auth.RoleBranchManager, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	managers := []*models.ManagerOption{}
	for rows.Next() {
		m := &models.ManagerOption{}
		if err := rows.Scan(&m.UserID, &m.Username, &m.Email, &m.ContactNo); err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, m)
	}
	return managers, rows.Err()
}
