package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"umd-backend/internal/auth"
	"umd-backend/internal/handlers"
	"umd-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	businessHandler *handlers.BusinessHandler,
	branchHandler *handlers.BranchHandler,
	budgetHandler *handlers.BudgetHandler,
	utilityHandler *handlers.UtilityHandler,
	alertHandler *handlers.AlertHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/business/register", businessHandler.Register).Methods("POST")

	// Session introspection
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/permissions", authHandler.Permissions).Methods("GET")

	// Super admin: tenant registry and approval queue
	businessAPI := r.PathPrefix("/api/businesses").Subrouter()
	businessAPI.Use(authMiddleware.Authenticate)
	businessAPI.Use(authMiddleware.RequireRole(auth.RoleSuperAdmin))
	businessAPI.HandleFunc("", businessHandler.List).Methods("GET")
	businessAPI.HandleFunc("/{id}", businessHandler.Detail).Methods("GET")
	businessAPI.HandleFunc("/{id}/approve", businessHandler.Approve).Methods("PUT")
	businessAPI.HandleFunc("/{id}/reject", businessHandler.Reject).Methods("PUT")
	businessAPI.HandleFunc("/{id}/deactivate", businessHandler.Deactivate).Methods("PUT")
	businessAPI.HandleFunc("/{id}/reactivate", businessHandler.Reactivate).Methods("PUT")

	// Admin: own business profile
	selfAPI := r.PathPrefix("/api/business").Subrouter()
	selfAPI.Use(authMiddleware.Authenticate)
	selfAPI.HandleFunc("/me", businessHandler.Self).Methods("GET")
	selfAPI.HandleFunc("/me", businessHandler.UpdateSelf).Methods("PUT")

	// Users
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", userHandler.List).Methods("GET")
	usersAPI.HandleFunc("", userHandler.Create).Methods("POST")
	usersAPI.HandleFunc("/managers/available", userHandler.AvailableManagers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.Update).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.Delete).Methods("DELETE")

	// Branches
	branchesAPI := r.PathPrefix("/api/branches").Subrouter()
	branchesAPI.Use(authMiddleware.Authenticate)
	branchesAPI.HandleFunc("", branchHandler.List).Methods("GET")
	branchesAPI.HandleFunc("", branchHandler.Create).Methods("POST")
	branchesAPI.HandleFunc("/filter", branchHandler.Filter).Methods("GET")
	branchesAPI.HandleFunc("/{id}", branchHandler.Update).Methods("PUT")
	branchesAPI.HandleFunc("/{id}", branchHandler.Delete).Methods("DELETE")
	branchesAPI.HandleFunc("/{id}/reactivate", branchHandler.Reactivate).Methods("PUT")
	branchesAPI.HandleFunc("/{id}/threshold", branchHandler.SetThreshold).Methods("PUT")

	// Budgets
	budgetsAPI := r.PathPrefix("/api/budgets").Subrouter()
	budgetsAPI.Use(authMiddleware.Authenticate)
	budgetsAPI.HandleFunc("", budgetHandler.List).Methods("GET")
	budgetsAPI.HandleFunc("", budgetHandler.Allocate).Methods("POST")
	budgetsAPI.HandleFunc("/overspent", budgetHandler.Overspend).Methods("GET")
	budgetsAPI.HandleFunc("/history/{branch_id}", budgetHandler.History).Methods("GET")
	budgetsAPI.HandleFunc("/{id}", budgetHandler.Detail).Methods("GET")
	budgetsAPI.HandleFunc("/{id}", budgetHandler.Update).Methods("PUT")

	// Utility bills and evidence
	utilitiesAPI := r.PathPrefix("/api/utilities").Subrouter()
	utilitiesAPI.Use(authMiddleware.Authenticate)
	utilitiesAPI.HandleFunc("", utilityHandler.List).Methods("GET")
	utilitiesAPI.HandleFunc("", utilityHandler.Upload).Methods("POST")
	utilitiesAPI.HandleFunc("/types", utilityHandler.Types).Methods("GET")
	utilitiesAPI.HandleFunc("/filters", utilityHandler.FilterOptions).Methods("GET")
	utilitiesAPI.HandleFunc("/{id}", utilityHandler.Detail).Methods("GET")
	utilitiesAPI.HandleFunc("/{id}", utilityHandler.Delete).Methods("DELETE")
	utilitiesAPI.HandleFunc("/{id}/media", utilityHandler.FetchMedia).Methods("GET")
	utilitiesAPI.HandleFunc("/{id}/media", utilityHandler.ReplaceMedia).Methods("PUT")

	// Alerts
	alertsAPI := r.PathPrefix("/api/alerts").Subrouter()
	alertsAPI.Use(authMiddleware.Authenticate)
	alertsAPI.HandleFunc("", alertHandler.Active).Methods("GET")
	alertsAPI.HandleFunc("/filter", alertHandler.Filter).Methods("GET")
	alertsAPI.HandleFunc("/unread-count", alertHandler.UnreadCount).Methods("GET")
	alertsAPI.HandleFunc("/viewed", alertHandler.MarkViewed).Methods("PUT")
	alertsAPI.HandleFunc("/reminders/today", alertHandler.TodayReminders).Methods("GET")
	alertsAPI.HandleFunc("/{id}/resolve", alertHandler.Resolve).Methods("PUT")
	alertsAPI.HandleFunc("/{id}/reopen", alertHandler.Reopen).Methods("PUT")
	alertsAPI.HandleFunc("/{id}", alertHandler.Delete).Methods("DELETE")

	// Dashboards and reports
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/summary", dashboardHandler.Summary).Methods("GET")
	dashboardAPI.HandleFunc("/branch-performance/{branch_id}", dashboardHandler.BranchPerformance).Methods("GET")
	dashboardAPI.HandleFunc("/branches/compare", dashboardHandler.CompareBranches).Methods("GET")
	dashboardAPI.HandleFunc("/branches/{branch_id}/budget-vs-expense", dashboardHandler.BudgetVsExpense).Methods("GET")
	dashboardAPI.HandleFunc("/expenses/branch-pie", dashboardHandler.ExpensePie).Methods("GET")
	dashboardAPI.HandleFunc("/reports/profit-loss", dashboardHandler.ProfitLoss).Methods("GET")
	dashboardAPI.HandleFunc("/reports/budget-recommendation/{branch_id}", dashboardHandler.BudgetRecommendation).Methods("GET")

	return r
}
