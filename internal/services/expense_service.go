package services

import (
	"context"
	"io"

	"umd-backend/internal/auth"
	"umd-backend/internal/authz"
	"umd-backend/internal/cache"
	"umd-backend/internal/errs"
	"umd-backend/internal/metrics"
	"umd-backend/internal/models"
	"umd-backend/internal/repositories"
	"umd-backend/internal/storage"
)

type ExpenseService struct {
	Repo       *repositories.UtilityBillRepository
	BranchRepo *repositories.BranchRepository
	Store      storage.MediaStore
}

func NewExpenseService(repo *repositories.UtilityBillRepository, branchRepo *repositories.BranchRepository, store storage.MediaStore) *ExpenseService {
	return &ExpenseService{Repo: repo, BranchRepo: branchRepo, Store: store}
}

// Upload records a bill, stores its evidence and runs the threshold
// rule against the period totals inside the insert transaction. The
// raised alert, if any, comes back with the bill.
func (s *ExpenseService) Upload(ctx context.Context, id auth.Identity, req *models.UploadBillRequest, file io.Reader, filename string) (*models.UtilityBill, *models.AlertDraft, error) {
	scope, err := s.BranchRepo.Scope(ctx, req.BranchID)
	if err != nil {
		return nil, nil, err
	}
	if scope.Status != 1 {
		return nil, nil, errs.NotFound("Branch not found")
	}
	if err := authz.RequireBranchScope(id, scope.BusinessID, scope.HandledBy); err != nil {
		return nil, nil, err
	}

	if req.UtilityTypeID < 1 {
		return nil, nil, errs.Validation("Utility type is required")
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, nil, errs.Validation("Month must be between 1 and 12")
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, nil, errs.Validation("Invalid year")
	}
	if req.Amount <= 0 {
		return nil, nil, errs.Validation("Amount must be positive")
	}

	var media *models.Media
	if file != nil {
		if !storage.AllowedFile(filename) {
			return nil, nil, errs.Validation("File type not allowed. Allowed: pdf, csv, jpg, jpeg, png")
		}
		key := storage.UniqueName(filename)
		path, err := s.Store.Save(ctx, key, file)
		if err != nil {
			return nil, nil, errs.Internal("failed to store media", err)
		}
		media = &models.Media{
			Name:       key,
			Path:       path,
			MediaType:  req.MediaType,
			UploadedBy: id.UserID,
			BusinessID: scope.BusinessID,
			BranchID:   &req.BranchID,
		}
	}

	bill := &models.UtilityBill{
		BranchID:      req.BranchID,
		UtilityTypeID: req.UtilityTypeID,
		Year:          req.Year,
		Month:         req.Month,
		UnitsUsed:     req.UnitsUsed,
		Amount:        req.Amount,
		UploadedBy:    id.UserID,
		Status:        1,
	}

	draft, err := s.Repo.Upload(ctx, bill, media, EvaluateBillAlert)
	if err != nil {
		return nil, nil, err
	}

	if draft != nil {
		metrics.AlertsCreated.WithLabelValues(draft.Type).Inc()
		cache.InvalidateAlertCaches(ctx, scope.BusinessID)
	}
	return bill, draft, nil
}

func (s *ExpenseService) managerFilter(id auth.Identity) *int {
	if id.Role == auth.RoleBranchManager {
		return &id.UserID
	}
	return nil
}

func (s *ExpenseService) List(ctx context.Context, id auth.Identity, f *models.BillFilter) (*models.BillPage, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 10
	}

	bills, err := s.Repo.List(ctx, id.BusinessID, s.managerFilter(id), f)
	if err != nil {
		return nil, err
	}
	return &models.BillPage{Page: f.Page, PageSize: f.PageSize, Bills: bills}, nil
}

func (s *ExpenseService) Detail(ctx context.Context, id auth.Identity, billID int) (*models.BillDetail, error) {
	_, businessID, handledBy, err := s.Repo.Scope(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireBranchScope(id, businessID, handledBy); err != nil {
		return nil, err
	}
	return s.Repo.Detail(ctx, billID)
}

func (s *ExpenseService) Delete(ctx context.Context, id auth.Identity, billID int) error {
	_, businessID, handledBy, err := s.Repo.Scope(ctx, billID)
	if err != nil {
		return err
	}
	if err := authz.RequireBranchScope(id, businessID, handledBy); err != nil {
		return err
	}
	return s.Repo.SoftDelete(ctx, billID)
}

// ReplaceMedia swaps a bill's evidence. The previous record is retired,
// not destroyed, so the audit trail survives.
func (s *ExpenseService) ReplaceMedia(ctx context.Context, id auth.Identity, billID int, file io.Reader, filename, mediaType string) (*models.Media, error) {
	branchID, businessID, handledBy, err := s.Repo.Scope(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireBranchScope(id, businessID, handledBy); err != nil {
		return nil, err
	}
	if !storage.AllowedFile(filename) {
		return nil, errs.Validation("File type not allowed. Allowed: pdf, csv, jpg, jpeg, png")
	}

	key := storage.UniqueName(filename)
	path, err := s.Store.Save(ctx, key, file)
	if err != nil {
		return nil, errs.Internal("failed to store media", err)
	}

	media := &models.Media{
		Name:       key,
		Path:       path,
		MediaType:  mediaType,
		UploadedBy: id.UserID,
		BusinessID: businessID,
		BranchID:   &branchID,
	}
	if err := s.Repo.ReplaceMedia(ctx, billID, media); err != nil {
		return nil, err
	}
	return media, nil
}

// OpenMedia streams the active evidence file for a bill. The caller
// must close the reader.
func (s *ExpenseService) OpenMedia(ctx context.Context, id auth.Identity, billID int) (*models.Media, io.ReadCloser, error) {
	_, businessID, handledBy, err := s.Repo.Scope(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	if err := authz.RequireBranchScope(id, businessID, handledBy); err != nil {
		return nil, nil, err
	}

	media, err := s.Repo.MediaForBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Store.Open(ctx, media.Path)
	if err != nil {
		return nil, nil, errs.Internal("failed to open media", err)
	}
	return media, rc, nil
}

func (s *ExpenseService) UtilityTypes(ctx context.Context) ([]*models.UtilityType, error) {
	return s.Repo.UtilityTypes(ctx)
}

func (s *ExpenseService) FilterOptions(ctx context.Context, id auth.Identity) (*models.BillFilterOptions, error) {
	if err := authz.RequireRole(id, auth.RoleAdmin, auth.RoleBranchManager); err != nil {
		return nil, err
	}
	return s.Repo.FilterOptions(ctx, id.BusinessID, s.managerFilter(id))
}
