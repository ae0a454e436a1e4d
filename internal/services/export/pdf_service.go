package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/models"
)

// Service renders analysis results as PDF documents.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new PDF export service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

var typeHeadings = map[models.AnalysisType]string{
	models.AnalysisMarket:        "Market Analysis",
	models.AnalysisLocation:      "Location Analysis",
	models.AnalysisInvestment:    "Investment Analysis",
	models.AnalysisRegulation:    "Regulation Analysis",
	models.AnalysisRisk:          "Risk Analysis",
	models.AnalysisNewsSummary:   "News Digest",
	models.AnalysisReviewSummary: "Visit Review Digest",
}

// RenderRequestPDF renders one analysis request and its deduped reports as a
// PDF byte slice.
func (s *Service) RenderRequestPDF(property *models.Property, request *models.AnalysisRequest, reports []*models.AnalysisReport) ([]byte, error) {
	s.logger.Debug().
		Str("request_id", request.ID).
		Int("report_count", len(reports)).
		Msg("Rendering analysis PDF")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title block
	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, property.Name, "", "L", false)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, property.Address, "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("%s | %d (10k KRW) | %.1f sqm", property.PropertyType, property.AskingPrice, property.AreaSqm), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 4, fmt.Sprintf("Request %s | %s | generated %s",
		request.ID, request.Status, time.Now().Format("2006-01-02 15:04")), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, report := range reports {
		s.renderReport(pdf, report)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("Analysis PDF generated")
	return buf.Bytes(), nil
}

func (s *Service) renderReport(pdf *fpdf.Fpdf, report *models.AnalysisReport) {
	heading := typeHeadings[report.AnalysisType]
	if heading == "" {
		heading = string(report.AnalysisType)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.MultiCell(0, 7, fmt.Sprintf("%s - %d/100 (%s)", heading, report.Score, report.Grade), "", "L", false)

	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, report.Summary, "", "L", false)
	pdf.Ln(1)

	s.renderList(pdf, "Strengths", report.Strengths)
	s.renderList(pdf, "Weaknesses", report.Weaknesses)
	s.renderList(pdf, "Recommendations", report.Recommendations)
	s.renderList(pdf, "Data sources", report.DataSources)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 4, fmt.Sprintf("Confidence: %d/100", report.Confidence), "", "L", false)
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(4)
}

func (s *Service) renderList(pdf *fpdf.Fpdf, title string, items []string) {
	if len(items) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.MultiCell(0, 5, title, "", "L", false)
	pdf.SetFont("Arial", "", 9)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+strings.TrimSpace(item), "", "L", false)
	}
	pdf.Ln(1)
}
