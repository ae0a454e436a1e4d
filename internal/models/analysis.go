package models

import (
	"sort"
	"time"
)

// AnalysisType identifies one of the seven report types a request can ask for.
type AnalysisType string

const (
	AnalysisMarket        AnalysisType = "market"
	AnalysisLocation      AnalysisType = "location"
	AnalysisInvestment    AnalysisType = "investment"
	AnalysisRegulation    AnalysisType = "regulation"
	AnalysisRisk          AnalysisType = "risk"
	AnalysisNewsSummary   AnalysisType = "news_summary"
	AnalysisReviewSummary AnalysisType = "review_summary"
)

// AllAnalysisTypes returns the seven known types in canonical order.
// This is the default set for a submission that doesn't name any.
func AllAnalysisTypes() []AnalysisType {
	return []AnalysisType{
		AnalysisMarket,
		AnalysisLocation,
		AnalysisInvestment,
		AnalysisRegulation,
		AnalysisRisk,
		AnalysisNewsSummary,
		AnalysisReviewSummary,
	}
}

// IsValidAnalysisType reports whether t is one of the seven known types.
func IsValidAnalysisType(t AnalysisType) bool {
	switch t {
	case AnalysisMarket, AnalysisLocation, AnalysisInvestment,
		AnalysisRegulation, AnalysisRisk, AnalysisNewsSummary, AnalysisReviewSummary:
		return true
	}
	return false
}

// IsContentType reports whether t is a stage-one content summary type.
// Content summaries (news, reviews) run before expert analyses so their
// conclusions can ground the expert prompts.
func IsContentType(t AnalysisType) bool {
	return t == AnalysisNewsSummary || t == AnalysisReviewSummary
}

// PartitionTypes splits requested types into stage-one content types and
// stage-two expert types, preserving the order they were requested in.
func PartitionTypes(types []AnalysisType) (content, expert []AnalysisType) {
	for _, t := range types {
		if IsContentType(t) {
			content = append(content, t)
		} else {
			expert = append(expert, t)
		}
	}
	return content, expert
}

// RequestStatus represents the lifecycle state of an analysis request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusFailed     RequestStatus = "failed"
)

// AnalysisRequest is created once per "analyze" action. It is mutated exactly
// twice by the pipeline: pending->processing at submission, then a terminal
// status when the background run ends. TotalCount is fixed at creation and
// never changes.
type AnalysisRequest struct {
	ID            string         `json:"id"`
	PropertyID    string         `json:"property_id"`
	UserID        string         `json:"user_id,omitempty"`
	AnalysisTypes []AnalysisType `json:"analysis_types"`
	Status        RequestStatus  `json:"status"`
	TotalCount    int            `json:"total_count"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// AnalysisReport is one generated report row. Rows are insert-only; re-running
// an analysis for the same property produces additional rows, which is why
// read paths dedup with LatestReportsByType.
type AnalysisReport struct {
	ID              string                 `json:"id"`
	RequestID       string                 `json:"request_id"`
	PropertyID      string                 `json:"property_id"`
	AnalysisType    AnalysisType           `json:"analysis_type"`
	Score           int                    `json:"score"`
	Grade           string                 `json:"grade"`
	Summary         string                 `json:"summary"`
	Details         map[string]interface{} `json:"details,omitempty"`
	Strengths       []string               `json:"strengths"`
	Weaknesses      []string               `json:"weaknesses"`
	Recommendations []string               `json:"recommendations"`
	DataSources     []string               `json:"data_sources"`
	Confidence      int                    `json:"confidence"`
	CreatedAt       time.Time              `json:"created_at"`
}

// GradeForScore maps a score to the letter grade persisted on reports.
// This is the generator banding; the coarser display banding lives in
// DisplayGrade and the two are deliberately not unified.
func GradeForScore(score int) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "B+"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	default:
		return "D"
	}
}

// DisplayGrade maps a score to the finer-grained banding used by UI badges.
// It exists alongside GradeForScore on purpose: persisted report grades come
// from GradeForScore, while consumers that color-code scores use this one.
func DisplayGrade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C+"
	case score >= 40:
		return "C"
	default:
		return "D"
	}
}

// LatestReportsByType reduces a report list to at most one report per
// analysis type, keeping the most recently created. Re-analysis appends new
// rows rather than replacing old ones, so UI-facing reads apply this reducer.
// The result is ordered by created_at ascending.
func LatestReportsByType(reports []*AnalysisReport) []*AnalysisReport {
	latest := make(map[AnalysisType]*AnalysisReport)
	for _, r := range reports {
		cur, ok := latest[r.AnalysisType]
		if !ok || r.CreatedAt.After(cur.CreatedAt) {
			latest[r.AnalysisType] = r
		}
	}

	result := make([]*AnalysisReport, 0, len(latest))
	for _, r := range latest {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
