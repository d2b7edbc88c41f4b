package handlers

import (
	"encoding/json"
	"net/http"

	"umd-backend/internal/models"
	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(s *services.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.Create(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Update(r.Context(), id, userID, &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "User updated successfully")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.Service.Delete(r.Context(), id, userID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "User deleted successfully")
}

// AvailableManagers feeds the manager picker on the branch form. An
// optional branch_id includes that branch's current manager.
func (h *UserHandler) AvailableManagers(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	managers, err := h.Service.AvailableManagers(r.Context(), id, queryIntPtr(r, "branch_id"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"managers": managers})
}
