package models

import "time"

type Budget struct {
	ID          int       `json:"id"`
	BranchID    int       `json:"branch_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	TotalBudget float64   `json:"total_budget"`
	AllocatedBy int       `json:"allocated_by"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type AllocateBudgetRequest struct {
	BranchID    int     `json:"branch_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalBudget float64 `json:"total_budget"`
}

type UpdateBudgetRequest struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalBudget float64 `json:"total_budget"`
}

type BudgetFilter struct {
	Year     int `json:"year"`
	Month    int `json:"month"`
	BranchID int `json:"branch_id"`
	Page     int `json:"page"`
	Limit    int `json:"limit"`
}

// BudgetView joins the allocation against accumulated spend for the
// same (branch, year, month).
type BudgetView struct {
	ID          int     `json:"id"`
	BranchID    int     `json:"branch_id"`
	BranchName  string  `json:"branch"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalBudget float64 `json:"total_budget"`
	TotalSpent  float64 `json:"total_spent"`
}

type BudgetDetail struct {
	BranchName  string    `json:"branch"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	TotalBudget float64   `json:"total_budget"`
	TotalSpent  float64   `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

type BudgetHistoryEntry struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalBudget float64 `json:"total_budget"`
	TotalSpent  float64 `json:"total_spent"`
}

type BudgetHistoryPage struct {
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalRecords int                   `json:"total_records"`
	History      []*BudgetHistoryEntry `json:"budget_history"`
}

// OverspendEntry reports a period where accumulated expense exceeded
// the allocated budget.
type OverspendEntry struct {
	BranchName string  `json:"branch"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Overspent  float64 `json:"overspent"`
}
