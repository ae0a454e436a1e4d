package handlers

import (
	"context"

	"github.com/ternarybob/domus/internal/models"
)

// AnalysisSubmitter accepts analysis submissions for background processing.
// Satisfied by the analysis pipeline; handlers depend on this slice of it so
// tests can substitute a fake.
type AnalysisSubmitter interface {
	Submit(ctx context.Context, propertyID, userID string, types []models.AnalysisType) (*models.AnalysisRequest, error)
}

// ReportExporter renders an analysis request and its reports as a document.
type ReportExporter interface {
	RenderRequestPDF(property *models.Property, request *models.AnalysisRequest, reports []*models.AnalysisReport) ([]byte, error)
}
