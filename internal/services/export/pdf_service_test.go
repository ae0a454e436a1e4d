package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/models"
)

func TestRenderRequestPDF(t *testing.T) {
	service := NewService(arbor.NewLogger())

	property := &models.Property{
		ID:           "prop-1",
		Name:         "Riverside Tower",
		Address:      "12 River Rd",
		PropertyType: "apartment",
		AskingPrice:  85000,
		AreaSqm:      84.9,
	}
	request := &models.AnalysisRequest{
		ID:         "req-1",
		PropertyID: "prop-1",
		Status:     models.RequestStatusCompleted,
		TotalCount: 1,
		CreatedAt:  time.Now(),
	}
	reports := []*models.AnalysisReport{
		{
			ID:              "rpt-1",
			RequestID:       "req-1",
			PropertyID:      "prop-1",
			AnalysisType:    models.AnalysisMarket,
			Score:           82,
			Grade:           "B",
			Summary:         "Priced fairly against nearby listings.",
			Strengths:       []string{"Good transit access"},
			Weaknesses:      []string{"Older building"},
			Recommendations: []string{"Check recent transactions"},
			DataSources:     []string{"Transaction registry", "Price index"},
			Confidence:      88,
			CreatedAt:       time.Now(),
		},
	}

	data, err := service.RenderRequestPDF(property, request, reports)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderRequestPDFNoReports(t *testing.T) {
	service := NewService(arbor.NewLogger())

	property := &models.Property{ID: "prop-1", Name: "Riverside Tower", Address: "12 River Rd"}
	request := &models.AnalysisRequest{ID: "req-1", Status: models.RequestStatusProcessing, CreatedAt: time.Now()}

	data, err := service.RenderRequestPDF(property, request, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
