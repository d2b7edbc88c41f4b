package models

import "time"

type Branch struct {
	ID             int       `json:"branch_id"`
	Name           string    `json:"branch_name"`
	Location       string    `json:"blocation"`
	BusinessID     int       `json:"business_id"`
	HandledBy      *int      `json:"handled_by"`
	AlertThreshold int       `json:"budget_alert_threshold"`
	Status         int       `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// BranchScope is the minimal ownership projection used by authorization
// checks: which business owns the branch and who handles it.
type BranchScope struct {
	BusinessID int
	HandledBy  *int
	Status     int
}

type CreateBranchRequest struct {
	BranchName string `json:"branch_name"`
	Location   string `json:"blocation"`
	HandledBy  *int   `json:"handled_by"`
}

type UpdateBranchRequest struct {
	BranchName string `json:"branch_name"`
	Location   string `json:"blocation"`
	HandledBy  *int   `json:"handled_by"`
}

type SetThresholdRequest struct {
	Threshold int `json:"threshold"`
}

// BranchListItem is the list projection with the manager joined in.
type BranchListItem struct {
	ID             int       `json:"branch_id"`
	Name           string    `json:"branch_name"`
	Location       string    `json:"blocation"`
	Status         string    `json:"status"`
	AlertThreshold int       `json:"budget_alert_threshold"`
	ManagerName    *string   `json:"manager_name"`
	ManagerEmail   *string   `json:"manager_email"`
	CreatedAt      time.Time `json:"created_at"`
}

type BranchPage struct {
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Total    int               `json:"total"`
	Branches []*BranchListItem `json:"branches"`
}

// ManagerOption is an assignable branch manager in the picker list.
type ManagerOption struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	ContactNo string `json:"contact_no"`
}
