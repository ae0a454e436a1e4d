package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/domus/internal/models"
)

// ErrNotFound is returned by Get operations when no row exists for the key.
var ErrNotFound = errors.New("not found")

// PropertyStorage persists property listings and their related news and
// review items. The analysis pipeline only reads from it; writes come from
// the ingest API endpoints.
type PropertyStorage interface {
	SaveProperty(ctx context.Context, p *models.Property) error
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error)

	// GetComparableListings returns listings sharing the same name but a
	// different id, most recently created first. Comparables anchor
	// price-per-area reasoning in analysis prompts.
	GetComparableListings(ctx context.Context, name, excludeID string, limit int) ([]*models.Property, error)

	SaveNews(ctx context.Context, item *models.NewsItem) error
	GetRecentNews(ctx context.Context, propertyID string, limit int) ([]*models.NewsItem, error)

	SaveReview(ctx context.Context, item *models.ReviewItem) error
	GetRecentReviews(ctx context.Context, propertyID string, limit int) ([]*models.ReviewItem, error)
}

// RequestListOptions filters ListRequests.
type RequestListOptions struct {
	PropertyID string
	Status     string
	Limit      int
	Offset     int
}

// AnalysisStorage persists analysis requests and their reports. Report rows
// are insert-only; request rows receive single-row status updates scoped to
// one request id, so no cross-request locking discipline is needed.
type AnalysisStorage interface {
	SaveRequest(ctx context.Context, req *models.AnalysisRequest) error
	GetRequest(ctx context.Context, id string) (*models.AnalysisRequest, error)
	ListRequests(ctx context.Context, opts *RequestListOptions) ([]*models.AnalysisRequest, error)
	GetRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.AnalysisRequest, error)

	// UpdateRequestStatus transitions a request and stamps completed_at on
	// terminal states. An empty errorMsg leaves error_message untouched.
	UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus, errorMsg string) error

	SaveReport(ctx context.Context, report *models.AnalysisReport) error

	// GetReportsByRequest returns every persisted report for a request in
	// created_at ascending order, including superseded duplicates.
	GetReportsByRequest(ctx context.Context, requestID string) ([]*models.AnalysisReport, error)

	// GetLatestReportsByType returns at most one report per analysis type
	// for a request, keeping the newest of each.
	GetLatestReportsByType(ctx context.Context, requestID string) ([]*models.AnalysisReport, error)

	CountReports(ctx context.Context, requestID string) (int, error)
}

// StorageManager bundles the stores behind one database connection.
type StorageManager interface {
	PropertyStorage() PropertyStorage
	AnalysisStorage() AnalysisStorage
	Close() error
}
