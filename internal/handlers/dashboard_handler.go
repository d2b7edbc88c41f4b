package handlers

import (
	"net/http"

	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.ReportService
}

func NewDashboardHandler(s *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Summary(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) BranchPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "branch_id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	performance, err := h.Service.Performance(r.Context(), id, branchID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"branch_performance": performance})
}

func (h *DashboardHandler) CompareBranches(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	comparison, err := h.Service.Compare(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"branches_comparison": comparison})
}

// BudgetVsExpense is the 12-month chart series for one branch.
func (h *DashboardHandler) BudgetVsExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "branch_id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}
	year := queryInt(r, "year", 0)
	if year == 0 {
		utils.Message(w, http.StatusBadRequest, "Year is required")
		return
	}

	series, err := h.Service.BudgetVsExpense(r.Context(), id, branchID, year)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, series)
}

func (h *DashboardHandler) ExpensePie(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	slices, err := h.Service.ExpensePie(r.Context(), id, queryIntPtr(r, "year"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, slices)
}

func (h *DashboardHandler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.ProfitLoss(r.Context(), id,
		queryInt(r, "year", 0), queryInt(r, "month", 0))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// BudgetRecommendation suggests next month's allocation from recent
// spend history.
func (h *DashboardHandler) BudgetRecommendation(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "branch_id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	rec, err := h.Service.Recommendation(r.Context(), id, branchID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if rec == nil {
		utils.Message(w, http.StatusOK, "Not enough data to predict.")
		return
	}
	utils.JSON(w, http.StatusOK, rec)
}
