package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"umd-backend/internal/handlers"
	"umd-backend/internal/middleware"
)

func testRouter() *mux.Router {
	return NewRouter(
		&handlers.AuthHandler{},
		&handlers.UserHandler{},
		&handlers.BusinessHandler{},
		&handlers.BranchHandler{},
		&handlers.BudgetHandler{},
		&handlers.UtilityHandler{},
		&handlers.AlertHandler{},
		&handlers.DashboardHandler{},
		&handlers.HealthHandler{},
		middleware.NewAuthMiddleware(nil, nil),
	)
}

func TestRouterMatchesPublicSurface(t *testing.T) {
	r := testRouter()

	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{"GET", "/health", true},
		{"POST", "/api/auth/login", true},
		{"POST", "/api/auth/logout", true},
		{"GET", "/api/auth/me", true},
		{"POST", "/api/business/register", true},
		{"PUT", "/api/budgets/7", true},
		{"PUT", "/api/alerts/3/resolve", true},
		{"GET", "/api/alerts/unread-count", true},
		{"GET", "/api/nonexistent", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		var match mux.RouteMatch
		if got := r.Match(req, &match); got != tt.want {
			t.Errorf("%s %s matched = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest("GET", "/api/auth/logout", nil)
	var match mux.RouteMatch
	if r.Match(req, &match) {
		t.Error("GET must not reach the logout handler")
	}
}
