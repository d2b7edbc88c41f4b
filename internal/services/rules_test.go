package services

import (
	"testing"
	"time"

	"umd-backend/internal/models"
)

func TestEvaluateBillAlertMissingBudget(t *testing.T) {
	draft := EvaluateBillAlert(0, 500, 90)
	if draft == nil {
		t.Fatal("expected an alert when no budget exists")
	}
	if draft.Type != models.AlertMissingBudget {
		t.Errorf("type = %q, want %q", draft.Type, models.AlertMissingBudget)
	}
	if draft.Severity != models.SeverityHigh {
		t.Errorf("severity = %q, want %q", draft.Severity, models.SeverityHigh)
	}
	if draft.Message != "No budget defined for this period" {
		t.Errorf("unexpected message %q", draft.Message)
	}
}

func TestEvaluateBillAlertThreshold(t *testing.T) {
	tests := []struct {
		name      string
		budget    float64
		expenses  float64
		threshold int
		wantType  string
	}{
		{"well under threshold", 1000, 400, 90, ""},
		{"second bill still under", 1000, 700, 90, ""},
		{"third bill reaches threshold", 1000, 1000, 90, models.AlertBudgetWarning},
		{"exactly at threshold", 1000, 900, 90, models.AlertBudgetWarning},
		{"just below threshold", 1000, 899.99, 90, ""},
		{"over budget entirely", 1000, 1200, 90, models.AlertBudgetWarning},
		{"low custom threshold", 1000, 500, 50, models.AlertBudgetWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := EvaluateBillAlert(tt.budget, tt.expenses, tt.threshold)
			if tt.wantType == "" {
				if draft != nil {
					t.Fatalf("expected no alert, got %+v", draft)
				}
				return
			}
			if draft == nil {
				t.Fatal("expected an alert, got none")
			}
			if draft.Type != tt.wantType {
				t.Errorf("type = %q, want %q", draft.Type, tt.wantType)
			}
			if draft.Severity != models.SeverityMedium {
				t.Errorf("severity = %q, want %q", draft.Severity, models.SeverityMedium)
			}
		})
	}
}

func TestNextBudgetReminder(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	draft := NextBudgetReminder(now)

	if draft.Type != models.AlertBudgetReminder {
		t.Errorf("type = %q, want %q", draft.Type, models.AlertBudgetReminder)
	}
	if draft.CreatedAt == nil {
		t.Fatal("reminder must carry a scheduled date")
	}
	want := time.Date(2025, time.February, 15, 10, 0, 0, 0, time.UTC)
	if !draft.CreatedAt.Equal(want) {
		t.Errorf("scheduled at %v, want %v", draft.CreatedAt, want)
	}
}

func TestCanEditBudget(t *testing.T) {
	created := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"immediately after", created.Add(time.Minute), true},
		{"just inside window", created.Add(48*time.Hour - time.Second), true},
		{"exactly at boundary", created.Add(48 * time.Hour), true},
		{"past window", created.Add(48*time.Hour + time.Second), false},
		{"days later", created.Add(90 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditBudget(created, tt.now); got != tt.want {
				t.Errorf("CanEditBudget = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendBudget(t *testing.T) {
	rec := RecommendBudget(5, []float64{1200, 1100, 1000})
	if rec == nil {
		t.Fatal("expected a recommendation")
	}
	if rec.BranchID != 5 {
		t.Errorf("branch = %d, want 5", rec.BranchID)
	}
	if rec.MonthsConsidered != 3 {
		t.Errorf("months_considered = %d, want 3", rec.MonthsConsidered)
	}
	if rec.AverageExpense != 1100 {
		t.Errorf("average = %v, want 1100", rec.AverageExpense)
	}
	if rec.RecommendedBudget != 1155 {
		t.Errorf("recommended = %v, want 1155", rec.RecommendedBudget)
	}
}

func TestRecommendBudgetRounding(t *testing.T) {
	rec := RecommendBudget(1, []float64{100, 101})
	if rec == nil {
		t.Fatal("expected a recommendation")
	}
	// mean 100.5, +5% = 105.525 -> 105.53
	if rec.RecommendedBudget != 105.53 {
		t.Errorf("recommended = %v, want 105.53", rec.RecommendedBudget)
	}
	if rec.AverageExpense != 100.5 {
		t.Errorf("average = %v, want 100.5", rec.AverageExpense)
	}
}

func TestRecommendBudgetNoHistory(t *testing.T) {
	if rec := RecommendBudget(9, nil); rec != nil {
		t.Fatalf("expected nil for empty history, got %+v", rec)
	}
}
