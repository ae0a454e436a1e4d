package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	jsonBarePattern  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// llmPayload is the JSON structure the model is instructed to return.
// Validation here is structural only; the content is trusted as-is.
type llmPayload struct {
	Score           int                    `json:"score" validate:"min=0,max=100"`
	Grade           string                 `json:"grade" validate:"required"`
	Summary         string                 `json:"summary" validate:"required"`
	Details         map[string]interface{} `json:"details"`
	Strengths       []string               `json:"strengths" validate:"required,min=1"`
	Weaknesses      []string               `json:"weaknesses"`
	Recommendations []string               `json:"recommendations" validate:"required,min=1"`
	DataSources     []string               `json:"data_sources" validate:"required,min=1"`
	Confidence      int                    `json:"confidence" validate:"min=0,max=100"`
}

// Generator produces one analysis report per call. The LLM path is attempted
// once when a provider is configured; any failure along it (call error,
// missing JSON, parse error, validation error) drops to the deterministic
// fallback so a report is always produced for a known type.
type Generator struct {
	llm      interfaces.ContentGenerator
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewGenerator creates a report generator. A nil llm disables the LLM path
// entirely; every report then comes from the fallback.
func NewGenerator(llm interfaces.ContentGenerator, logger arbor.ILogger) *Generator {
	return &Generator{
		llm:      llm,
		validate: validator.New(),
		logger:   logger,
	}
}

// Generate produces a report for one analysis type. Returns nil only for
// unknown types.
func (g *Generator) Generate(ctx context.Context, property *models.Property, requestID string, analysisType models.AnalysisType, contextText, stageOneContext string) *models.AnalysisReport {
	report := g.generateWithLLM(ctx, property, requestID, analysisType, contextText, stageOneContext)
	if report == nil {
		report = FallbackReport(property, requestID, analysisType)
		if report == nil {
			g.logger.Warn().
				Str("analysis_type", string(analysisType)).
				Msg("No generator for analysis type")
			return nil
		}
	}

	report.ID = common.NewReportID()
	report.CreatedAt = time.Now()
	return report
}

// generateWithLLM runs the single-attempt LLM path. Returns nil when the
// path is unavailable or produced unusable output.
func (g *Generator) generateWithLLM(ctx context.Context, property *models.Property, requestID string, analysisType models.AnalysisType, contextText, stageOneContext string) *models.AnalysisReport {
	if g.llm == nil {
		return nil
	}

	systemPrompt := SystemPrompt(analysisType)
	if systemPrompt == "" {
		return nil
	}

	userPrompt := BuildUserPrompt(analysisType, contextText, stageOneContext)

	response, err := g.llm.GenerateContent(ctx, &interfaces.ContentRequest{
		Messages: []interfaces.Message{
			{Role: "user", Content: userPrompt},
		},
		SystemInstruction: systemPrompt,
	})
	if err != nil {
		g.logger.Warn().
			Err(err).
			Str("analysis_type", string(analysisType)).
			Str("request_id", requestID).
			Msg("LLM call failed, using fallback generator")
		return nil
	}

	payload, err := extractPayload(response.Text)
	if err != nil {
		g.logger.Warn().
			Err(err).
			Str("analysis_type", string(analysisType)).
			Str("request_id", requestID).
			Msg("LLM response unusable, using fallback generator")
		return nil
	}

	if err := g.validate.Struct(payload); err != nil {
		g.logger.Warn().
			Err(err).
			Str("analysis_type", string(analysisType)).
			Str("request_id", requestID).
			Msg("LLM response failed validation, using fallback generator")
		return nil
	}

	return &models.AnalysisReport{
		RequestID:       requestID,
		PropertyID:      property.ID,
		AnalysisType:    analysisType,
		Score:           payload.Score,
		Grade:           payload.Grade,
		Summary:         payload.Summary,
		Details:         payload.Details,
		Strengths:       payload.Strengths,
		Weaknesses:      payload.Weaknesses,
		Recommendations: payload.Recommendations,
		DataSources:     payload.DataSources,
		Confidence:      payload.Confidence,
	}
}

// extractPayload pulls the JSON object out of a model response. The model is
// told to answer with bare JSON, but fenced code blocks are common enough
// that both forms are accepted.
func extractPayload(text string) (*llmPayload, error) {
	var jsonText string
	if match := jsonFencePattern.FindStringSubmatch(text); match != nil {
		jsonText = match[1]
	} else if match := jsonBarePattern.FindStringSubmatch(text); match != nil {
		jsonText = match[1]
	} else {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload llmPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	return &payload, nil
}
