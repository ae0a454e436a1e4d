package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/ternarybob/domus/internal/services/analysis"
)

// AnalysisHandler serves the analysis submission and read endpoints.
type AnalysisHandler struct {
	pipeline   AnalysisSubmitter
	storage    interfaces.AnalysisStorage
	properties interfaces.PropertyStorage
	exporter   ReportExporter
	logger     arbor.ILogger
}

func NewAnalysisHandler(pipeline AnalysisSubmitter, storage interfaces.AnalysisStorage, properties interfaces.PropertyStorage, exporter ReportExporter, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		pipeline:   pipeline,
		storage:    storage,
		properties: properties,
		exporter:   exporter,
		logger:     logger,
	}
}

type analysisSubmission struct {
	PropertyID    string   `json:"property_id"`
	UserID        string   `json:"user_id,omitempty"`
	AnalysisTypes []string `json:"analysis_types,omitempty"`
}

// SubmitHandler handles POST /api/analysis/requests. The request is accepted
// for background processing; the response carries the request row already in
// processing state.
func (h *AnalysisHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var submission analysisSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if submission.PropertyID == "" {
		WriteError(w, http.StatusBadRequest, "property_id is required")
		return
	}

	var types []models.AnalysisType
	for _, t := range submission.AnalysisTypes {
		types = append(types, models.AnalysisType(t))
	}

	request, err := h.pipeline.Submit(r.Context(), submission.PropertyID, submission.UserID, types)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrPropertyNotFound):
			WriteError(w, http.StatusBadRequest, "property not found")
		case errors.Is(err, analysis.ErrInvalidAnalysisType):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, analysis.ErrPipelineBusy):
			WriteError(w, http.StatusServiceUnavailable, "analysis queue is full, try again later")
		default:
			h.logger.Error().Err(err).Str("property_id", submission.PropertyID).Msg("Failed to submit analysis")
			WriteError(w, http.StatusInternalServerError, "failed to submit analysis")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, request)
}

// GetRequestHandler handles GET /api/analysis/requests/{id}. The response
// includes completed_count so clients can render progress without a second
// round trip.
func (h *AnalysisHandler) GetRequestHandler(w http.ResponseWriter, r *http.Request, requestID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	request, err := h.storage.GetRequest(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "analysis request not found")
			return
		}
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to load analysis request")
		WriteError(w, http.StatusInternalServerError, "failed to load analysis request")
		return
	}

	count, err := h.storage.CountReports(r.Context(), requestID)
	if err != nil {
		h.logger.Warn().Err(err).Str("request_id", requestID).Msg("Failed to count reports")
		count = 0
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"request":         request,
		"completed_count": count,
	})
}

// ListRequestsHandler handles GET /api/analysis/requests
func (h *AnalysisHandler) ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit, offset := GetListParams(r)
	opts := &interfaces.RequestListOptions{
		PropertyID: r.URL.Query().Get("property_id"),
		Status:     r.URL.Query().Get("status"),
		Limit:      limit,
		Offset:     offset,
	}

	requests, err := h.storage.ListRequests(r.Context(), opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list analysis requests")
		WriteError(w, http.StatusInternalServerError, "failed to list analysis requests")
		return
	}

	if requests == nil {
		requests = []*models.AnalysisRequest{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetReportsHandler handles GET /api/analysis/requests/{id}/reports.
// By default superseded duplicate reports are reduced to the latest per
// analysis type; ?all=true returns every persisted row.
func (h *AnalysisHandler) GetReportsHandler(w http.ResponseWriter, r *http.Request, requestID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if _, err := h.storage.GetRequest(r.Context(), requestID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "analysis request not found")
			return
		}
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to load analysis request")
		WriteError(w, http.StatusInternalServerError, "failed to load analysis request")
		return
	}

	var reports []*models.AnalysisReport
	var err error
	if r.URL.Query().Get("all") == "true" {
		reports, err = h.storage.GetReportsByRequest(r.Context(), requestID)
	} else {
		reports, err = h.storage.GetLatestReportsByType(r.Context(), requestID)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to load reports")
		WriteError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	if reports == nil {
		reports = []*models.AnalysisReport{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

// ExportPDFHandler handles GET /api/analysis/requests/{id}/export
func (h *AnalysisHandler) ExportPDFHandler(w http.ResponseWriter, r *http.Request, requestID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	request, err := h.storage.GetRequest(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "analysis request not found")
			return
		}
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to load analysis request")
		WriteError(w, http.StatusInternalServerError, "failed to load analysis request")
		return
	}

	property, err := h.properties.GetProperty(r.Context(), request.PropertyID)
	if err != nil {
		h.logger.Error().Err(err).Str("property_id", request.PropertyID).Msg("Failed to load property for export")
		WriteError(w, http.StatusInternalServerError, "failed to load property")
		return
	}

	reports, err := h.storage.GetLatestReportsByType(r.Context(), requestID)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to load reports for export")
		WriteError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	data, err := h.exporter.RenderRequestPDF(property, request, reports)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to render PDF")
		WriteError(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"analysis-%s.pdf\"", requestID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
