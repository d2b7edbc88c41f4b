package handlers

import (
	"encoding/json"
	"net/http"

	"umd-backend/internal/models"
	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	utils.Message(w, http.StatusOK, h.Service.Logout(r.Context(), id))
}

// Me echoes the request-scoped identity so the UI can restore a session
// from a stored token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"user":        id,
		"permissions": services.PermissionsFor(id.Role),
	})
}

func (h *AuthHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, services.PermissionsFor(id.Role))
}
