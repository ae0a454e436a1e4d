package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// PropertyStorage implements the PropertyStorage interface for Badger
type PropertyStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPropertyStorage creates a new PropertyStorage instance
func NewPropertyStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PropertyStorage {
	return &PropertyStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PropertyStorage) SaveProperty(ctx context.Context, p *models.Property) error {
	if p.ID == "" {
		return fmt.Errorf("property ID is required")
	}

	if err := s.db.Store().Upsert(p.ID, p); err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

func (s *PropertyStorage) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.db.Store().Get(id, &p); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("property %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

func (s *PropertyStorage) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Skip(offset)
	}

	var properties []models.Property
	if err := s.db.Store().Find(&properties, query); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	result := make([]*models.Property, len(properties))
	for i := range properties {
		result[i] = &properties[i]
	}
	return result, nil
}

func (s *PropertyStorage) GetComparableListings(ctx context.Context, name, excludeID string, limit int) ([]*models.Property, error) {
	query := badgerhold.Where("Name").Eq(name).And("ID").Ne(excludeID).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var properties []models.Property
	if err := s.db.Store().Find(&properties, query); err != nil {
		return nil, fmt.Errorf("failed to get comparable listings: %w", err)
	}

	result := make([]*models.Property, len(properties))
	for i := range properties {
		result[i] = &properties[i]
	}
	return result, nil
}

func (s *PropertyStorage) SaveNews(ctx context.Context, item *models.NewsItem) error {
	if item.ID == "" {
		return fmt.Errorf("news item ID is required")
	}

	if err := s.db.Store().Upsert(item.ID, item); err != nil {
		return fmt.Errorf("failed to save news item: %w", err)
	}
	return nil
}

func (s *PropertyStorage) GetRecentNews(ctx context.Context, propertyID string, limit int) ([]*models.NewsItem, error) {
	query := badgerhold.Where("PropertyID").Eq(propertyID).SortBy("PublishedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.NewsItem
	if err := s.db.Store().Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to get news items: %w", err)
	}

	result := make([]*models.NewsItem, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

func (s *PropertyStorage) SaveReview(ctx context.Context, item *models.ReviewItem) error {
	if item.ID == "" {
		return fmt.Errorf("review item ID is required")
	}

	if err := s.db.Store().Upsert(item.ID, item); err != nil {
		return fmt.Errorf("failed to save review item: %w", err)
	}
	return nil
}

func (s *PropertyStorage) GetRecentReviews(ctx context.Context, propertyID string, limit int) ([]*models.ReviewItem, error) {
	query := badgerhold.Where("PropertyID").Eq(propertyID).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.ReviewItem
	if err := s.db.Store().Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to get review items: %w", err)
	}

	result := make([]*models.ReviewItem, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}
