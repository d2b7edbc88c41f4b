package handlers

import (
	"encoding/json"
	"net/http"

	"umd-backend/internal/models"
	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type BranchHandler struct {
	Service *services.BranchService
}

func NewBranchHandler(s *services.BranchService) *BranchHandler {
	return &BranchHandler{Service: s}
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	branch, err := h.Service.Create(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, branch)
}

func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	result, err := h.Service.List(r.Context(), id, page, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// Filter locates branches by id or name, including inactive ones.
func (h *BranchHandler) Filter(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	branches, err := h.Service.Filter(r.Context(), id, queryIntPtr(r, "branch_id"), r.URL.Query().Get("name"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"branches": branches})
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	var req models.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Update(r.Context(), id, branchID, &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Branch updated successfully")
}

func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	if err := h.Service.Delete(r.Context(), id, branchID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Branch deleted successfully")
}

func (h *BranchHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	msg, err := h.Service.Reactivate(r.Context(), id, branchID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, msg)
}

func (h *BranchHandler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	branchID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid branch id")
		return
	}

	var req models.SetThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.SetThreshold(r.Context(), id, branchID, &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Alert threshold updated")
}
