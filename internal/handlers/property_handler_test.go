package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

type fakePropertyStore struct {
	properties map[string]*models.Property
	news       []*models.NewsItem
	reviews    []*models.ReviewItem
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: make(map[string]*models.Property)}
}

func (s *fakePropertyStore) SaveProperty(ctx context.Context, p *models.Property) error {
	s.properties[p.ID] = p
	return nil
}

func (s *fakePropertyStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	p, ok := s.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", id, interfaces.ErrNotFound)
	}
	return p, nil
}

func (s *fakePropertyStore) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	var result []*models.Property
	for _, p := range s.properties {
		result = append(result, p)
	}
	return result, nil
}

func (s *fakePropertyStore) GetComparableListings(ctx context.Context, name, excludeID string, limit int) ([]*models.Property, error) {
	return nil, nil
}

func (s *fakePropertyStore) SaveNews(ctx context.Context, item *models.NewsItem) error {
	s.news = append(s.news, item)
	return nil
}

func (s *fakePropertyStore) GetRecentNews(ctx context.Context, propertyID string, limit int) ([]*models.NewsItem, error) {
	return s.news, nil
}

func (s *fakePropertyStore) SaveReview(ctx context.Context, item *models.ReviewItem) error {
	s.reviews = append(s.reviews, item)
	return nil
}

func (s *fakePropertyStore) GetRecentReviews(ctx context.Context, propertyID string, limit int) ([]*models.ReviewItem, error) {
	return s.reviews, nil
}

func TestCreatePropertyHandler(t *testing.T) {
	store := newFakePropertyStore()
	handler := NewPropertyHandler(store, arbor.NewLogger())

	rec := postJSON(t, handler.CreatePropertyHandler, "/api/properties", map[string]interface{}{
		"name":          "Riverside Tower",
		"address":       "12 River Rd, Bundang",
		"property_type": "apartment",
		"asking_price":  85000,
		"area_sqm":      84.9,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var property models.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&property))
	assert.NotEmpty(t, property.ID)
	assert.Equal(t, "Riverside Tower", property.Name)
	assert.Len(t, store.properties, 1)
}

func TestCreatePropertyHandlerRejectsBadType(t *testing.T) {
	handler := NewPropertyHandler(newFakePropertyStore(), arbor.NewLogger())

	rec := postJSON(t, handler.CreatePropertyHandler, "/api/properties", map[string]interface{}{
		"name":          "Riverside Tower",
		"address":       "12 River Rd",
		"property_type": "castle",
		"asking_price":  85000,
		"area_sqm":      84.9,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePropertyHandlerRejectsMissingFields(t *testing.T) {
	handler := NewPropertyHandler(newFakePropertyStore(), arbor.NewLogger())

	rec := postJSON(t, handler.CreatePropertyHandler, "/api/properties", map[string]interface{}{
		"name": "Riverside Tower",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddNewsHandlerUnknownProperty(t *testing.T) {
	handler := NewPropertyHandler(newFakePropertyStore(), arbor.NewLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/properties/missing/news", nil)
	handler.AddNewsHandler(rec, req, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddNewsHandler(t *testing.T) {
	store := newFakePropertyStore()
	store.properties["prop-1"] = &models.Property{ID: "prop-1", Name: "Riverside Tower"}
	handler := NewPropertyHandler(store, arbor.NewLogger())

	rec := postJSON(t, func(w http.ResponseWriter, r *http.Request) {
		handler.AddNewsHandler(w, r, "prop-1")
	}, "/api/properties/prop-1/news", map[string]interface{}{
		"title":   "New transit line approved",
		"summary": "GTX extension confirmed",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.news, 1)
	assert.Equal(t, "prop-1", store.news[0].PropertyID)
	assert.False(t, store.news[0].PublishedAt.IsZero())
}

func TestAddReviewHandler(t *testing.T) {
	store := newFakePropertyStore()
	store.properties["prop-1"] = &models.Property{ID: "prop-1", Name: "Riverside Tower"}
	handler := NewPropertyHandler(store, arbor.NewLogger())

	rec := postJSON(t, func(w http.ResponseWriter, r *http.Request) {
		handler.AddReviewHandler(w, r, "prop-1")
	}, "/api/properties/prop-1/reviews", map[string]interface{}{
		"title":   "Visited last weekend",
		"content": "Quiet street, parking was tight in the evening",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.reviews, 1)
}

func TestGetPropertyHandlerNotFound(t *testing.T) {
	handler := NewPropertyHandler(newFakePropertyStore(), arbor.NewLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/properties/missing", nil)
	handler.GetPropertyHandler(rec, req, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
