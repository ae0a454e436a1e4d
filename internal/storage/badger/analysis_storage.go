package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AnalysisStorage implements the AnalysisStorage interface for Badger
type AnalysisStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAnalysisStorage creates a new AnalysisStorage instance
func NewAnalysisStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AnalysisStorage {
	return &AnalysisStorage{
		db:     db,
		logger: logger,
	}
}

func (s *AnalysisStorage) SaveRequest(ctx context.Context, req *models.AnalysisRequest) error {
	if req.ID == "" {
		return fmt.Errorf("request ID is required")
	}

	if err := s.db.Store().Upsert(req.ID, req); err != nil {
		return fmt.Errorf("failed to save analysis request: %w", err)
	}
	return nil
}

func (s *AnalysisStorage) GetRequest(ctx context.Context, id string) (*models.AnalysisRequest, error) {
	var req models.AnalysisRequest
	if err := s.db.Store().Get(id, &req); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("analysis request %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis request: %w", err)
	}
	return &req, nil
}

func (s *AnalysisStorage) ListRequests(ctx context.Context, opts *interfaces.RequestListOptions) ([]*models.AnalysisRequest, error) {
	query := badgerhold.Where("ID").Ne("")

	if opts != nil {
		if opts.PropertyID != "" {
			query = query.And("PropertyID").Eq(opts.PropertyID)
		}
		if opts.Status != "" {
			query = query.And("Status").Eq(models.RequestStatus(opts.Status))
		}
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Skip(opts.Offset)
		}
	}

	query = query.SortBy("CreatedAt").Reverse()

	var requests []models.AnalysisRequest
	if err := s.db.Store().Find(&requests, query); err != nil {
		return nil, fmt.Errorf("failed to list analysis requests: %w", err)
	}

	result := make([]*models.AnalysisRequest, len(requests))
	for i := range requests {
		result[i] = &requests[i]
	}
	return result, nil
}

func (s *AnalysisStorage) GetRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.AnalysisRequest, error) {
	var requests []models.AnalysisRequest
	if err := s.db.Store().Find(&requests, badgerhold.Where("Status").Eq(status)); err != nil {
		return nil, fmt.Errorf("failed to get requests by status: %w", err)
	}

	result := make([]*models.AnalysisRequest, len(requests))
	for i := range requests {
		result[i] = &requests[i]
	}
	return result, nil
}

func (s *AnalysisStorage) UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus, errorMsg string) error {
	var req models.AnalysisRequest
	if err := s.db.Store().Get(id, &req); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("analysis request %s: %w", id, interfaces.ErrNotFound)
		}
		return fmt.Errorf("failed to get analysis request: %w", err)
	}

	req.Status = status
	if errorMsg != "" {
		req.ErrorMessage = errorMsg
	}

	if status == models.RequestStatusCompleted || status == models.RequestStatusFailed {
		now := time.Now()
		req.CompletedAt = &now
	}

	if err := s.db.Store().Update(id, &req); err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

func (s *AnalysisStorage) SaveReport(ctx context.Context, report *models.AnalysisReport) error {
	if report.ID == "" {
		return fmt.Errorf("report ID is required")
	}

	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save analysis report: %w", err)
	}
	return nil
}

func (s *AnalysisStorage) GetReportsByRequest(ctx context.Context, requestID string) ([]*models.AnalysisReport, error) {
	var reports []models.AnalysisReport
	query := badgerhold.Where("RequestID").Eq(requestID).SortBy("CreatedAt")
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}

	result := make([]*models.AnalysisReport, len(reports))
	for i := range reports {
		result[i] = &reports[i]
	}
	return result, nil
}

func (s *AnalysisStorage) GetLatestReportsByType(ctx context.Context, requestID string) ([]*models.AnalysisReport, error) {
	reports, err := s.GetReportsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return models.LatestReportsByType(reports), nil
}

func (s *AnalysisStorage) CountReports(ctx context.Context, requestID string) (int, error) {
	count, err := s.db.Store().Count(&models.AnalysisReport{}, badgerhold.Where("RequestID").Eq(requestID))
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return int(count), nil
}
