package models

import (
	"time"

	"umd-backend/internal/auth"
)

type User struct {
	ID           int       `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ContactNo    string    `json:"contact_no"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role_id"`
	BusinessID   int       `json:"business_id"`
	Status       int       `json:"status"`
	// Available is meaningful for branch managers only: true iff the
	// manager is not currently assigned to an active branch.
	Available bool      `json:"available_currently"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    auth.Identity `json:"user"`
}

type CreateUserRequest struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ContactNo string    `json:"contact_no"`
	Password  string    `json:"password"`
	Role      auth.Role `json:"role_id"`
}

type UpdateUserRequest struct {
	Username  *string    `json:"username"`
	Email     *string    `json:"email"`
	ContactNo *string    `json:"contact_no"`
	Role      *auth.Role `json:"role_id"`
}

type UserPage struct {
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalUsers int     `json:"total_users"`
	TotalPages int     `json:"total_pages"`
	Users      []*User `json:"users"`
}

// Permissions is the static capability matrix surfaced to the UI.
type Permissions struct {
	CanAddUsers       bool `json:"can_add_users"`
	CanDeleteUsers    bool `json:"can_delete_users"`
	CanManageBranches bool `json:"can_manage_branches"`
	CanViewAllBranch  bool `json:"can_view_all_branches"`
	CanUploadBills    bool `json:"can_upload_bills"`
	CanViewDashboard  bool `json:"can_view_dashboard"`
}
