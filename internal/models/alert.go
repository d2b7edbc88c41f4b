package models

import "time"

// Alert types derived by the engine. Reminders come from budget writes,
// the other two from bill uploads.
const (
	AlertBudgetReminder = "budget_reminder"
	AlertBudgetWarning  = "budget_warning"
	AlertMissingBudget  = "missing_budget"
)

const (
	SeverityHigh   = "High"
	SeverityMedium = "medium"
)

// AlertDraft is an alert decided but not yet persisted; the repository
// inserts it inside the same transaction as the triggering write.
type AlertDraft struct {
	Type      string
	Severity  string
	Message   string
	CreatedAt *time.Time // nil means database default (now)
}

type AlertListItem struct {
	ID         int       `json:"id"`
	BranchID   int       `json:"branch_id"`
	BranchName string    `json:"branch_name"`
	Type       string    `json:"type"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type AlertFilterItem struct {
	ID         int       `json:"id"`
	BranchID   int       `json:"branch_id"`
	BranchName string    `json:"branch_name"`
	Type       string    `json:"type"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	IsResolved bool      `json:"is_resolved"`
	Status     bool      `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlertScope is the ownership projection for lifecycle authorization.
type AlertScope struct {
	BranchID   int
	BusinessID int
	HandledBy  *int
	IsResolved bool
}

type ReminderItem struct {
	ID         int       `json:"id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	BranchName string    `json:"branch_name"`
}
