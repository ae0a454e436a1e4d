package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/models"
)

func TestAssembleRendersMissingAttributesAsUnknown(t *testing.T) {
	store := newMemStore()
	property := &models.Property{
		ID:           "prop-1",
		Name:         "Riverside Tower",
		Address:      "12 River Rd",
		PropertyType: "apartment",
		AskingPrice:  85000,
		AreaSqm:      84.9,
	}
	require.NoError(t, store.SaveProperty(context.Background(), property))

	assembler := NewContextAssembler(store, &common.PipelineConfig{}, arbor.NewLogger())
	text, err := assembler.Assemble(context.Background(), property)
	require.NoError(t, err)

	assert.Contains(t, text, "Listing: Riverside Tower")
	assert.Contains(t, text, "Floor: unknown/unknown")
	assert.Contains(t, text, "Built: unknown")
	assert.NotContains(t, text, "Related news")
	assert.NotContains(t, text, "Visit reviews")
	assert.NotContains(t, text, "Same-complex listings")
}

func TestAssembleIncludesNewsReviewsAndComparables(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	base := time.Now()

	property := testProperty()
	require.NoError(t, store.SaveProperty(ctx, property))

	comparable := testProperty()
	comparable.ID = "prop-2"
	comparable.AskingPrice = 87000
	comparable.CreatedAt = base
	require.NoError(t, store.SaveProperty(ctx, comparable))

	require.NoError(t, store.SaveNews(ctx, &models.NewsItem{
		ID: "n1", PropertyID: property.ID, Title: "New transit line approved",
		Summary: "GTX extension confirmed", PublishedAt: base,
	}))
	require.NoError(t, store.SaveReview(ctx, &models.ReviewItem{
		ID: "r1", PropertyID: property.ID, Title: "Visited last weekend",
		Content: "Quiet street, parking was tight in the evening", CreatedAt: base,
	}))

	assembler := NewContextAssembler(store, &common.PipelineConfig{}, arbor.NewLogger())
	text, err := assembler.Assemble(ctx, property)
	require.NoError(t, err)

	assert.Contains(t, text, "Related news:\n1. New transit line approved: GTX extension confirmed")
	assert.Contains(t, text, "Visit reviews:\n1. Visited last weekend: Quiet street")
	assert.Contains(t, text, "Same-complex listings:")
	assert.Contains(t, text, "87000 (10k KRW)")
}

func TestAssembleHonorsLimits(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	base := time.Now()

	property := testProperty()
	require.NoError(t, store.SaveProperty(ctx, property))

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveNews(ctx, &models.NewsItem{
			ID:          "n" + string(rune('a'+i)),
			PropertyID:  property.ID,
			Title:       "Article",
			PublishedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	assembler := NewContextAssembler(store, &common.PipelineConfig{NewsLimit: 2}, arbor.NewLogger())
	text, err := assembler.Assemble(ctx, property)
	require.NoError(t, err)

	assert.Contains(t, text, "2. Article")
	assert.NotContains(t, text, "3. Article")
}

func TestAssemblePropagatesReadFailure(t *testing.T) {
	store := newMemStore()
	store.failNewsRead = true
	property := testProperty()

	assembler := NewContextAssembler(store, &common.PipelineConfig{}, arbor.NewLogger())
	_, err := assembler.Assemble(context.Background(), property)
	assert.Error(t, err)
}
