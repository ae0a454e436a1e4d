package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// PropertyHandler serves the property CRUD and ingest endpoints. Analysis
// never writes through this handler; it only reads what was ingested here.
type PropertyHandler struct {
	storage  interfaces.PropertyStorage
	validate *validator.Validate
	logger   arbor.ILogger
}

func NewPropertyHandler(storage interfaces.PropertyStorage, logger arbor.ILogger) *PropertyHandler {
	return &PropertyHandler{
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
	}
}

type propertySubmission struct {
	Name         string  `json:"name" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	PropertyType string  `json:"property_type" validate:"required,oneof=apartment officetel villa house"`
	AskingPrice  int64   `json:"asking_price" validate:"required,gt=0"`
	AreaSqm      float64 `json:"area_sqm" validate:"required,gt=0"`
	Floor        *int    `json:"floor,omitempty"`
	TotalFloors  *int    `json:"total_floors,omitempty"`
	BuiltYear    *int    `json:"built_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

type newsSubmission struct {
	Title       string     `json:"title" validate:"required"`
	Summary     string     `json:"summary,omitempty"`
	SourceURL   string     `json:"source_url,omitempty" validate:"omitempty,url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type reviewSubmission struct {
	Title   string `json:"title" validate:"required"`
	Summary string `json:"summary,omitempty"`
	Content string `json:"content,omitempty"`
}

// CreatePropertyHandler handles POST /api/properties
func (h *PropertyHandler) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var submission propertySubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	property := &models.Property{
		ID:           common.NewPropertyID(),
		Name:         submission.Name,
		Address:      submission.Address,
		PropertyType: submission.PropertyType,
		AskingPrice:  submission.AskingPrice,
		AreaSqm:      submission.AreaSqm,
		Floor:        submission.Floor,
		TotalFloors:  submission.TotalFloors,
		BuiltYear:    submission.BuiltYear,
		CreatedAt:    time.Now(),
	}

	if err := h.storage.SaveProperty(r.Context(), property); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save property")
		WriteError(w, http.StatusInternalServerError, "failed to save property")
		return
	}

	h.logger.Info().
		Str("property_id", property.ID).
		Str("name", property.Name).
		Msg("Property created")

	WriteJSON(w, http.StatusCreated, property)
}

// GetPropertyHandler handles GET /api/properties/{id}
func (h *PropertyHandler) GetPropertyHandler(w http.ResponseWriter, r *http.Request, propertyID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	property, err := h.storage.GetProperty(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Error().Err(err).Str("property_id", propertyID).Msg("Failed to load property")
		WriteError(w, http.StatusInternalServerError, "failed to load property")
		return
	}

	WriteJSON(w, http.StatusOK, property)
}

// ListPropertiesHandler handles GET /api/properties
func (h *PropertyHandler) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit, offset := GetListParams(r)
	properties, err := h.storage.ListProperties(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list properties")
		WriteError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}

	if properties == nil {
		properties = []*models.Property{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	})
}

// AddNewsHandler handles POST /api/properties/{id}/news
func (h *PropertyHandler) AddNewsHandler(w http.ResponseWriter, r *http.Request, propertyID string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if !h.propertyExists(w, r, propertyID) {
		return
	}

	var submission newsSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	publishedAt := time.Now()
	if submission.PublishedAt != nil {
		publishedAt = *submission.PublishedAt
	}

	item := &models.NewsItem{
		ID:          common.NewItemID(),
		PropertyID:  propertyID,
		Title:       submission.Title,
		Summary:     submission.Summary,
		SourceURL:   submission.SourceURL,
		PublishedAt: publishedAt,
	}

	if err := h.storage.SaveNews(r.Context(), item); err != nil {
		h.logger.Error().Err(err).Str("property_id", propertyID).Msg("Failed to save news item")
		WriteError(w, http.StatusInternalServerError, "failed to save news item")
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// GetNewsHandler handles GET /api/properties/{id}/news
func (h *PropertyHandler) GetNewsHandler(w http.ResponseWriter, r *http.Request, propertyID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit, _ := GetListParams(r)
	items, err := h.storage.GetRecentNews(r.Context(), propertyID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("property_id", propertyID).Msg("Failed to load news items")
		WriteError(w, http.StatusInternalServerError, "failed to load news items")
		return
	}

	if items == nil {
		items = []*models.NewsItem{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"news":  items,
		"count": len(items),
	})
}

// AddReviewHandler handles POST /api/properties/{id}/reviews
func (h *PropertyHandler) AddReviewHandler(w http.ResponseWriter, r *http.Request, propertyID string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if !h.propertyExists(w, r, propertyID) {
		return
	}

	var submission reviewSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &models.ReviewItem{
		ID:         common.NewItemID(),
		PropertyID: propertyID,
		Title:      submission.Title,
		Summary:    submission.Summary,
		Content:    submission.Content,
		CreatedAt:  time.Now(),
	}

	if err := h.storage.SaveReview(r.Context(), item); err != nil {
		h.logger.Error().Err(err).Str("property_id", propertyID).Msg("Failed to save review")
		WriteError(w, http.StatusInternalServerError, "failed to save review")
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// GetReviewsHandler handles GET /api/properties/{id}/reviews
func (h *PropertyHandler) GetReviewsHandler(w http.ResponseWriter, r *http.Request, propertyID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit, _ := GetListParams(r)
	items, err := h.storage.GetRecentReviews(r.Context(), propertyID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("property_id", propertyID).Msg("Failed to load reviews")
		WriteError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	if items == nil {
		items = []*models.ReviewItem{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": items,
		"count":   len(items),
	})
}

func (h *PropertyHandler) propertyExists(w http.ResponseWriter, r *http.Request, propertyID string) bool {
	_, err := h.storage.GetProperty(r.Context(), propertyID)
	if err == nil {
		return true
	}
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "property not found")
		return false
	}
	h.logger.Error().Err(err).Str("property_id", propertyID).Msg("Failed to check property")
	WriteError(w, http.StatusInternalServerError, "failed to load property")
	return false
}
