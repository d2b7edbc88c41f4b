package services

import (
	"fmt"
	"math"
	"time"

	"umd-backend/internal/models"
)

// budgetEditWindow is how long after allocation a budget stays freely
// editable. Past it, only an explicit reallocation may change it.
const budgetEditWindow = 48 * time.Hour

// EvaluateBillAlert is the threshold rule applied after every bill
// insert. It sees the period totals as they stand with the new bill
// included and returns the alert to raise, or nil for none.
func EvaluateBillAlert(totalBudget, totalExpenses float64, threshold int) *models.AlertDraft {
	if totalBudget == 0 {
		return &models.AlertDraft{
			Type:     models.AlertMissingBudget,
			Severity: models.SeverityHigh,
			Message:  "No budget defined for this period",
		}
	}
	if totalExpenses >= totalBudget*float64(threshold)/100 {
		return &models.AlertDraft{
			Type:     models.AlertBudgetWarning,
			Severity: models.SeverityMedium,
			Message: fmt.Sprintf("%d%% of the budget consumed: Rs. %.2f of Rs. %.2f",
				threshold, totalExpenses, totalBudget),
		}
	}
	return nil
}

// NextBudgetReminder schedules the follow-up reminder one calendar
// month after the allocation.
func NextBudgetReminder(now time.Time) *models.AlertDraft {
	due := now.AddDate(0, 1, 0)
	return &models.AlertDraft{
		Type:      models.AlertBudgetReminder,
		Severity:  models.SeverityMedium,
		Message:   "Reminder to allocate budget again to this branch.",
		CreatedAt: &due,
	}
}

// CanEditBudget reports whether an allocation is still inside its edit
// window.
func CanEditBudget(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= budgetEditWindow
}

// RecommendBudget averages the given monthly expense totals and adds a
// 5% buffer. Returns nil when there is no history to average.
func RecommendBudget(branchID int, monthlyTotals []float64) *models.BudgetRecommendation {
	if len(monthlyTotals) == 0 {
		return nil
	}
	var sum float64
	for _, t := range monthlyTotals {
		sum += t
	}
	avg := sum / float64(len(monthlyTotals))
	return &models.BudgetRecommendation{
		BranchID:          branchID,
		MonthsConsidered:  len(monthlyTotals),
		AverageExpense:    round2(avg),
		RecommendedBudget: round2(avg * 1.05),
		Note:              "Last 6 months summed, plus 5% buffer",
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
