package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// ContextAssembler builds the property context text that grounds every
// prompt in a pipeline run. The context is assembled once per request and
// shared across all report tasks.
type ContextAssembler struct {
	storage interfaces.PropertyStorage
	config  *common.PipelineConfig
	logger  arbor.ILogger
}

// NewContextAssembler creates a context assembler
func NewContextAssembler(storage interfaces.PropertyStorage, config *common.PipelineConfig, logger arbor.ILogger) *ContextAssembler {
	return &ContextAssembler{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// Assemble builds the context text for a property: its attributes, recent
// news, recent reviews, and same-complex comparable listings. Caps come from
// pipeline configuration. A read failure aborts assembly; the caller treats
// it as a run failure rather than analyzing with partial context.
func (a *ContextAssembler) Assemble(ctx context.Context, property *models.Property) (string, error) {
	news, err := a.storage.GetRecentNews(ctx, property.ID, a.newsLimit())
	if err != nil {
		return "", fmt.Errorf("failed to load news for context: %w", err)
	}

	reviews, err := a.storage.GetRecentReviews(ctx, property.ID, a.reviewLimit())
	if err != nil {
		return "", fmt.Errorf("failed to load reviews for context: %w", err)
	}

	comparables, err := a.storage.GetComparableListings(ctx, property.Name, property.ID, a.comparableLimit())
	if err != nil {
		return "", fmt.Errorf("failed to load comparable listings for context: %w", err)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Listing: %s\n", property.Name)
	fmt.Fprintf(&b, "Address: %s\n", property.Address)
	fmt.Fprintf(&b, "Type: %s\n", property.PropertyType)
	fmt.Fprintf(&b, "Asking price: %d (10k KRW)\n", property.AskingPrice)
	fmt.Fprintf(&b, "Area: %.1f sqm\n", property.AreaSqm)
	fmt.Fprintf(&b, "Floor: %s/%s\n", intOrUnknown(property.Floor), intOrUnknown(property.TotalFloors))
	fmt.Fprintf(&b, "Built: %s", intOrUnknown(property.BuiltYear))

	if len(news) > 0 {
		b.WriteString("\n\nRelated news:\n")
		for i, n := range news {
			line := n.Title
			if n.Summary != "" {
				line += ": " + n.Summary
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, line)
		}
	}

	if len(reviews) > 0 {
		b.WriteString("\n\nVisit reviews:\n")
		for i, r := range reviews {
			line := r.Title
			if r.Summary != "" {
				line += ": " + r.Summary
			} else if r.Content != "" {
				line += ": " + truncate(r.Content, 100)
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, line)
		}
	}

	if len(comparables) > 0 {
		b.WriteString("\n\nSame-complex listings:\n")
		for _, p := range comparables {
			fmt.Fprintf(&b, "- %s floor %s, %.1f sqm, %d (10k KRW) (built: %s)\n",
				p.Address, intOrUnknown(p.Floor), p.AreaSqm, p.AskingPrice, intOrUnknown(p.BuiltYear))
		}
	}

	a.logger.Debug().
		Str("property_id", property.ID).
		Int("news_count", len(news)).
		Int("review_count", len(reviews)).
		Int("comparable_count", len(comparables)).
		Msg("Assembled analysis context")

	return b.String(), nil
}

func (a *ContextAssembler) newsLimit() int {
	if a.config != nil && a.config.NewsLimit > 0 {
		return a.config.NewsLimit
	}
	return 30
}

func (a *ContextAssembler) reviewLimit() int {
	if a.config != nil && a.config.ReviewLimit > 0 {
		return a.config.ReviewLimit
	}
	return 30
}

func (a *ContextAssembler) comparableLimit() int {
	if a.config != nil && a.config.ComparableLimit > 0 {
		return a.config.ComparableLimit
	}
	return 50
}

// intOrUnknown renders an optional listing attribute. Missing values stay
// visible in the prompt as "unknown" so the structure never shifts.
func intOrUnknown(v *int) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *v)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
