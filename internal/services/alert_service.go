package services

import (
	"context"

	"umd-backend/internal/auth"
	"umd-backend/internal/authz"
	"umd-backend/internal/cache"
	"umd-backend/internal/errs"
	"umd-backend/internal/models"
	"umd-backend/internal/repositories"
)

type AlertService struct {
	Repo *repositories.AlertRepository
}

func NewAlertService(repo *repositories.AlertRepository) *AlertService {
	return &AlertService{Repo: repo}
}

func (s *AlertService) managerFilter(id auth.Identity) *int {
	if id.Role == auth.RoleBranchManager {
		return &id.UserID
	}
	return nil
}

func (s *AlertService) Active(ctx context.Context, id auth.Identity) ([]*models.AlertListItem, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	return s.Repo.Active(ctx, id.BusinessID, s.managerFilter(id))
}

func (s *AlertService) Filter(ctx context.Context, id auth.Identity, status, severity string) ([]*models.AlertFilterItem, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	if status == "" {
		status = "active"
	}
	return s.Repo.Filter(ctx, id.BusinessID, s.managerFilter(id), status, severity)
}

func (s *AlertService) Resolve(ctx context.Context, id auth.Identity, alertID int) error {
	scope, err := s.Repo.Scope(ctx, alertID)
	if err != nil {
		return err
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return err
	}
	if scope.IsResolved {
		return errs.NotFound("Alert not found or already resolved")
	}
	if err := s.Repo.Resolve(ctx, alertID); err != nil {
		return err
	}
	cache.InvalidateAlertCaches(ctx, scope.BusinessID)
	return nil
}

// Reopen puts a resolved alert back in the active list. Reopening an
// already-active alert is a no-op, reported in the message.
func (s *AlertService) Reopen(ctx context.Context, id auth.Identity, alertID int) (string, error) {
	scope, err := s.Repo.Scope(ctx, alertID)
	if err != nil {
		return "", err
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return "", err
	}
	if !scope.IsResolved {
		return "Alert is already active.", nil
	}
	if err := s.Repo.Reopen(ctx, alertID); err != nil {
		return "", err
	}
	cache.InvalidateAlertCaches(ctx, scope.BusinessID)
	return "Alert reopened successfully.", nil
}

func (s *AlertService) Delete(ctx context.Context, id auth.Identity, alertID int) error {
	scope, err := s.Repo.Scope(ctx, alertID)
	if err != nil {
		return err
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, alertID); err != nil {
		return err
	}
	cache.InvalidateAlertCaches(ctx, scope.BusinessID)
	return nil
}

func (s *AlertService) MarkViewed(ctx context.Context, id auth.Identity) error {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return err
	}
	if err := s.Repo.MarkViewed(ctx, id.BusinessID); err != nil {
		return err
	}
	cache.InvalidateAlertCaches(ctx, id.BusinessID)
	return nil
}

// UnreadCount serves the notification badge, with a short cache in
// front of the count query.
func (s *AlertService) UnreadCount(ctx context.Context, id auth.Identity) (int, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return 0, err
	}
	if count, ok := cache.GetCachedUnreadCount(ctx, id.BusinessID); ok {
		return count, nil
	}
	count, err := s.Repo.UnreadCount(ctx, id.BusinessID)
	if err != nil {
		return 0, err
	}
	cache.CacheUnreadCount(ctx, id.BusinessID, count)
	return count, nil
}

func (s *AlertService) TodayReminders(ctx context.Context, id auth.Identity) ([]*models.ReminderItem, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	return s.Repo.TodayReminders(ctx, id.BusinessID, s.managerFilter(id))
}
