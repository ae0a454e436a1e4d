package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// memStore is an in-memory StorageManager for pipeline tests. Failure
// injection flags simulate store errors on specific paths.
type memStore struct {
	mu         sync.Mutex
	properties map[string]*models.Property
	news       map[string][]*models.NewsItem
	reviews    map[string][]*models.ReviewItem
	requests   map[string]*models.AnalysisRequest
	reports    []*models.AnalysisReport

	failSaveReport map[models.AnalysisType]bool
	failNewsRead   bool
}

func newMemStore() *memStore {
	return &memStore{
		properties:     make(map[string]*models.Property),
		news:           make(map[string][]*models.NewsItem),
		reviews:        make(map[string][]*models.ReviewItem),
		requests:       make(map[string]*models.AnalysisRequest),
		failSaveReport: make(map[models.AnalysisType]bool),
	}
}

func (m *memStore) PropertyStorage() interfaces.PropertyStorage { return m }
func (m *memStore) AnalysisStorage() interfaces.AnalysisStorage { return m }
func (m *memStore) Close() error                                { return nil }

func (m *memStore) SaveProperty(ctx context.Context, p *models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[p.ID] = p
	return nil
}

func (m *memStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", id, interfaces.ErrNotFound)
	}
	return p, nil
}

func (m *memStore) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*models.Property, 0, len(m.properties))
	for _, p := range m.properties {
		result = append(result, p)
	}
	return result, nil
}

func (m *memStore) GetComparableListings(ctx context.Context, name, excludeID string, limit int) ([]*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Property
	for _, p := range m.properties {
		if p.Name == name && p.ID != excludeID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *memStore) SaveNews(ctx context.Context, item *models.NewsItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.news[item.PropertyID] = append(m.news[item.PropertyID], item)
	return nil
}

func (m *memStore) GetRecentNews(ctx context.Context, propertyID string, limit int) ([]*models.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNewsRead {
		return nil, fmt.Errorf("simulated news read failure")
	}
	items := append([]*models.NewsItem(nil), m.news[propertyID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].PublishedAt.After(items[j].PublishedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memStore) SaveReview(ctx context.Context, item *models.ReviewItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[item.PropertyID] = append(m.reviews[item.PropertyID], item)
	return nil
}

func (m *memStore) GetRecentReviews(ctx context.Context, propertyID string, limit int) ([]*models.ReviewItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := append([]*models.ReviewItem(nil), m.reviews[propertyID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memStore) SaveRequest(ctx context.Context, req *models.AnalysisRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *req
	m.requests[req.ID] = &clone
	return nil
}

func (m *memStore) GetRequest(ctx context.Context, id string) (*models.AnalysisRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("analysis request %s: %w", id, interfaces.ErrNotFound)
	}
	clone := *req
	return &clone, nil
}

func (m *memStore) ListRequests(ctx context.Context, opts *interfaces.RequestListOptions) ([]*models.AnalysisRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.AnalysisRequest
	for _, req := range m.requests {
		if opts != nil && opts.PropertyID != "" && req.PropertyID != opts.PropertyID {
			continue
		}
		if opts != nil && opts.Status != "" && string(req.Status) != opts.Status {
			continue
		}
		clone := *req
		result = append(result, &clone)
	}
	return result, nil
}

func (m *memStore) GetRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.AnalysisRequest, error) {
	return m.ListRequests(ctx, &interfaces.RequestListOptions{Status: string(status)})
}

func (m *memStore) UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus, errorMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return fmt.Errorf("analysis request %s: %w", id, interfaces.ErrNotFound)
	}
	req.Status = status
	if errorMsg != "" {
		req.ErrorMessage = errorMsg
	}
	if status == models.RequestStatusCompleted || status == models.RequestStatusFailed {
		now := time.Now()
		req.CompletedAt = &now
	}
	return nil
}

func (m *memStore) SaveReport(ctx context.Context, report *models.AnalysisReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveReport[report.AnalysisType] {
		return fmt.Errorf("simulated persist failure for %s", report.AnalysisType)
	}
	clone := *report
	m.reports = append(m.reports, &clone)
	return nil
}

func (m *memStore) GetReportsByRequest(ctx context.Context, requestID string) ([]*models.AnalysisReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.AnalysisReport
	for _, r := range m.reports {
		if r.RequestID == requestID {
			clone := *r
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *memStore) GetLatestReportsByType(ctx context.Context, requestID string) ([]*models.AnalysisReport, error) {
	reports, err := m.GetReportsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return models.LatestReportsByType(reports), nil
}

func (m *memStore) CountReports(ctx context.Context, requestID string) (int, error) {
	reports, err := m.GetReportsByRequest(ctx, requestID)
	if err != nil {
		return 0, err
	}
	return len(reports), nil
}
