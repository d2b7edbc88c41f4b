package handlers

import (
	"encoding/json"
	"net/http"

	"umd-backend/internal/models"
	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type BusinessHandler struct {
	Service *services.BusinessService
}

func NewBusinessHandler(s *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{Service: s}
}

// Register is the only unauthenticated write: a prospective tenant
// files an application and waits for approval.
func (h *BusinessHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusCreated, msg)
}

func (h *BusinessHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	businessID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	if err := h.Service.Approve(r.Context(), id, businessID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Business approved successfully")
}

func (h *BusinessHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	businessID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	if err := h.Service.Reject(r.Context(), id, businessID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Business rejected")
}

func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	businesses, err := h.Service.List(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"businesses": businesses})
}

func (h *BusinessHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	businessID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	detail, err := h.Service.Detail(r.Context(), id, businessID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *BusinessHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	businessID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	if err := h.Service.Deactivate(r.Context(), id, businessID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Business deactivated")
}

func (h *BusinessHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	businessID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid business id")
		return
	}

	if err := h.Service.Reactivate(r.Context(), id, businessID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Business reactivated")
}

// Self returns the caller's own business profile.
func (h *BusinessHandler) Self(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	business, err := h.Service.Self(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, business)
}

func (h *BusinessHandler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.UpdateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateSelf(r.Context(), id, &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Business updated successfully")
}
