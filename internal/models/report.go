package models

// DashboardSummary is the landing-page headline card set.
type DashboardSummary struct {
	TotalBranches int     `json:"total_branches"`
	MonthlyBudget float64 `json:"monthly_budget"`
	TotalExpenses float64 `json:"total_expenses"`
	ActiveAlerts  int     `json:"active_alerts"`
}

type BranchPerformance struct {
	BranchID         int     `json:"branch_id"`
	BranchName       string  `json:"branch_name"`
	TotalBudget      float64 `json:"total_budget"`
	TotalExpense     float64 `json:"total_expense"`
	RemainingBudget  float64 `json:"remaining_budget"`
	OverBudgetAmount float64 `json:"over_budget_amount"`
	AlertsCount      int     `json:"alerts_count"`
}

type BranchComparison struct {
	BranchID           int     `json:"branch_id"`
	BranchName         string  `json:"branch_name"`
	TotalBudget        float64 `json:"total_budget"`
	TotalExpense       float64 `json:"total_expense"`
	RemainingBudget    float64 `json:"remaining_budget"`
	OverBudgetAmount   float64 `json:"over_budget_amount"`
	Status             string  `json:"status"` // "Profit" or "Loss"
	AlertCount         int     `json:"alert_count"`
	TotalBillsUploaded int     `json:"total_bills_uploaded"`
}

// MonthlyBudgetExpense is one point of the 12-month chart series.
type MonthlyBudgetExpense struct {
	Month        string  `json:"month"`
	TotalBudget  float64 `json:"total_budget"`
	TotalExpense float64 `json:"total_expense"`
}

type BranchExpenseSlice struct {
	BranchID     int     `json:"branch_id"`
	BranchName   string  `json:"branch_name"`
	TotalExpense float64 `json:"total_expense"`
}

type ProfitLossEntry struct {
	BranchID     int     `json:"branch_id"`
	BranchName   string  `json:"branch_name"`
	Budget       float64 `json:"budget"`
	Expense      float64 `json:"expense"`
	ProfitOrLoss float64 `json:"profit_or_loss"`
	Status       string  `json:"status"`
}

type ProfitLossSummary struct {
	Month   int                `json:"month"`
	Year    int                `json:"year"`
	Summary []*ProfitLossEntry `json:"summary"`
}

// BudgetRecommendation averages up to the last six monthly expense
// totals and adds a 5% buffer.
type BudgetRecommendation struct {
	BranchID          int     `json:"branch_id"`
	MonthsConsidered  int     `json:"months_considered"`
	AverageExpense    float64 `json:"average_expense"`
	RecommendedBudget float64 `json:"recommended_budget"`
	Note              string  `json:"note"`
}
