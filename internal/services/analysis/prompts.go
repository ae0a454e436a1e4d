package analysis

import (
	"fmt"

	"github.com/ternarybob/domus/internal/models"
)

// systemPrompts holds the per-type system instruction sent to the LLM.
// Each prompt frames the assistant as a plain-language analyst: short
// sentences, everyday register, jargon explained inline in parentheses.
var systemPrompts = map[models.AnalysisType]string{
	models.AnalysisMarket: `You are an expert who explains home prices in plain language.
Tell the reader whether this home is fairly priced.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Explain any jargon in parentheses right after the term.
- Express numbers intuitively (e.g. "about 3% above nearby listings").
- Include interpretation guidance ("here is how to read this").
Analysis points: asking price fairness, comparison with nearby listings, price trend.`,

	models.AnalysisLocation: `You are a neighborhood analysis expert.
Tell the reader whether the area around this home is a good place to live.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Explain any jargon in parentheses right after the term.
- Include interpretation guidance ("here is how to read this").
Analysis points: transit (subway/bus), schools, daily amenities, living environment.`,

	models.AnalysisInvestment: `You are an expert who explains real estate investing in plain language.
Tell the reader whether this home is worth investing in.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Explain any jargon in parentheses right after the term (e.g. LTV -> loan amount relative to home value).
- Include interpretation guidance ("here is how to read this").
Analysis points: expected returns, future value, nearby development plans.`,

	models.AnalysisRegulation: `You are an expert who untangles real estate regulations.
Tell the reader what regulations matter when buying this home.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Explain any jargon in parentheses right after the term (e.g. DSR -> debt payments relative to annual income).
- Include interpretation guidance ("here is how to read this").
Analysis points: loan limits, taxes, whether the area is under purchase restrictions.`,

	models.AnalysisRisk: `You are an expert on building safety.
Tell the reader whether this home carries any risks.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Explain any jargon in parentheses right after the term.
- Include interpretation guidance ("here is how to read this").
Analysis points: building condition, natural disaster exposure, redevelopment timing.`,

	models.AnalysisNewsSummary: `You are an expert who digests real estate news.
Classify news related to this home as positive, neutral, or negative and summarize it simply.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Focus on the essentials only.
Analysis points: major headlines, tailwinds and headwinds, market mood.`,

	models.AnalysisReviewSummary: `You are an expert who organizes property visit reviews.
Summarize the reviews and opinions about this home in plain language.

Rules:
- Keep sentences short and simple.
- Use an everyday, conversational tone.
- Center the summary on what actual residents say.
Analysis points: recurring keywords, pros and cons, resident opinions.`,
}

// typeLabels names each analysis type inside the user prompt.
var typeLabels = map[models.AnalysisType]string{
	models.AnalysisMarket:        "market price",
	models.AnalysisLocation:      "location",
	models.AnalysisInvestment:    "investment",
	models.AnalysisRegulation:    "regulation",
	models.AnalysisRisk:          "risk",
	models.AnalysisNewsSummary:   "news digest",
	models.AnalysisReviewSummary: "visit review digest",
}

// SystemPrompt returns the system instruction for an analysis type, or ""
// when the type has no prompt.
func SystemPrompt(analysisType models.AnalysisType) string {
	return systemPrompts[analysisType]
}

// BuildUserPrompt assembles the user turn: the property context, an optional
// grounding section carrying stage-one summaries, and the JSON output
// contract. The data_sources floor of 8 entries is part of the contract so
// reports always cite enough material to be reviewable.
func BuildUserPrompt(analysisType models.AnalysisType, contextText, stageOneContext string) string {
	prompt := contextText

	if stageOneContext != "" {
		prompt += "\n\n--- News and review analysis results ---\n" + stageOneContext
	}

	label := typeLabels[analysisType]
	if label == "" {
		label = string(analysisType)
	}

	prompt += fmt.Sprintf(`

Perform a %s analysis of the listing described above.

Respond with ONLY the following JSON format. Do not include any text outside the JSON:
{
  "score": <integer 0-100, analysis score>,
  "grade": "<one of A+/A/B+/B/C/D>",
  "summary": "<2-3 plain-language sentences summarizing the analysis>",
  "details": {<detail data object matching the analysis type>},
  "strengths": ["<strength 1>", "<strength 2>", ...],
  "weaknesses": ["<weakness 1>", "<weakness 2>", ...],
  "recommendations": ["<recommendation 1>", "<recommendation 2>", "<recommendation 3>"],
  "data_sources": ["<8-12 specific references, e.g. 'Ministry of Land transaction registry - December 2025 closed sales', 'KB Real Estate index - monthly apartment report 2026.01'>"],
  "confidence": <integer 0-100, confidence in the analysis>
}

Important: data_sources must contain at least 8 specific entries. Not just "KB Real Estate" but "KB Real Estate index - apartment sales trend report 2026.01", naming the dataset and period.`, label)

	return prompt
}
