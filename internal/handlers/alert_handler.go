package handlers

import (
	"net/http"

	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

type AlertHandler struct {
	Service *services.AlertService
}

func NewAlertHandler(s *services.AlertService) *AlertHandler {
	return &AlertHandler{Service: s}
}

func (h *AlertHandler) Active(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	alerts, err := h.Service.Active(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

// Filter lists alerts by lifecycle state (active, resolved, inactive,
// all) and optional severity.
func (h *AlertHandler) Filter(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	alerts, err := h.Service.Filter(r.Context(), id,
		r.URL.Query().Get("status"), r.URL.Query().Get("severity"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	alertID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid alert id")
		return
	}

	if err := h.Service.Resolve(r.Context(), id, alertID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Alert resolved successfully")
}

func (h *AlertHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	alertID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid alert id")
		return
	}

	msg, err := h.Service.Reopen(r.Context(), id, alertID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, msg)
}

func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	alertID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid alert id")
		return
	}

	if err := h.Service.Delete(r.Context(), id, alertID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Alert deleted successfully")
}

// MarkViewed clears the notification badge for the caller's business.
func (h *AlertHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.Service.MarkViewed(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Alerts marked as viewed")
}

func (h *AlertHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	count, err := h.Service.UnreadCount(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

func (h *AlertHandler) TodayReminders(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	reminders, err := h.Service.TodayReminders(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"reminders": reminders})
}
