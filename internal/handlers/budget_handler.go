package handlers

import (
	"encoding/json"
	"net/http"

	"umd-backend/internal/models"
	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type BudgetHandler struct {
	Service *services.BudgetService
}

func NewBudgetHandler(s *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{Service: s}
}

func (h *BudgetHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.AllocateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget, err := h.Service.Allocate(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, budget)
}

// Update edits an allocation. Pass ?reallocate=true to override the
// closed edit window; this also restamps the window.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	budgetID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid budget id")
		return
	}

	var req models.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reallocate := r.URL.Query().Get("reallocate") == "true"
	if err := h.Service.Update(r.Context(), id, budgetID, &req, reallocate); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Budget updated successfully")
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	filter := &models.BudgetFilter{
		Year:     queryInt(r, "year", 0),
		Month:    queryInt(r, "month", 0),
		BranchID: queryInt(r, "branch_id", 0),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}
	total, budgets, err := h.Service.List(r.Context(), id, filter)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"page":    filter.Page,
		"limit":   filter.Limit,
		"total":   total,
		"budgets": budgets,
	})
}

func (h *BudgetHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	budgetID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid budget id")
		return
	}

	detail, err := h.Service.Detail(r.Context(), id, budgetID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *BudgetHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "branch_id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)
	history, err := h.Service.History(r.Context(), id, branchID, page, pageSize)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

func (h *BudgetHandler) Overspend(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	entries, err := h.Service.Overspend(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"overspent": entries})
}
