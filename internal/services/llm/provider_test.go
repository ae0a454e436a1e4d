package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
)

func newTestFactory() *ProviderFactory {
	return NewProviderFactory(
		&common.ClaudeConfig{Model: "claude-sonnet-4-20250514"},
		&common.GeminiConfig{Model: "gemini-2.5-flash"},
		&common.LLMConfig{DefaultProvider: "claude"},
		arbor.NewLogger(),
	)
}

func TestDetectProvider(t *testing.T) {
	factory := newTestFactory()

	tests := []struct {
		model    string
		expected ProviderType
	}{
		{"claude-sonnet-4-20250514", ProviderClaude},
		{"claude/claude-sonnet-4-20250514", ProviderClaude},
		{"anthropic/claude-3-haiku", ProviderClaude},
		{"gemini-2.5-flash", ProviderGemini},
		{"gemini/gemini-2.5-flash", ProviderGemini},
		{"google/gemini-2.5-pro", ProviderGemini},
		{"", ProviderClaude}, // falls back to default provider
		{"unknown-model", ProviderClaude},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, factory.DetectProvider(tt.model), "model: %s", tt.model)
	}
}

func TestNormalizeModel(t *testing.T) {
	factory := newTestFactory()

	assert.Equal(t, "claude-sonnet-4-20250514", factory.NormalizeModel("claude/claude-sonnet-4-20250514"))
	assert.Equal(t, "gemini-2.5-flash", factory.NormalizeModel("gemini/gemini-2.5-flash"))
	assert.Equal(t, "claude-sonnet-4-20250514", factory.NormalizeModel("claude-sonnet-4-20250514"))
}

func TestConvertMessagesToClaude(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "You are a property analyst."},
		{Role: "user", Content: "Analyze this listing."},
	}

	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	assert.NoError(t, err)
	assert.Equal(t, "You are a property analyst.", systemText)
	assert.Len(t, claudeMessages, 1)
}

func TestConvertMessagesRequiresUser(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "system only"},
	}

	_, _, err := convertMessagesToClaude(messages)
	assert.Error(t, err)

	_, _, err = convertMessagesToGemini(messages)
	assert.Error(t, err)
}

func TestGenerateContentRequiresProvider(t *testing.T) {
	factory := NewProviderFactory(
		&common.ClaudeConfig{},
		&common.GeminiConfig{},
		&common.LLMConfig{DefaultProvider: ""},
		arbor.NewLogger(),
	)

	_, err := factory.GenerateContent(context.Background(), &interfaces.ContentRequest{
		Messages: []interfaces.Message{{Role: "user", Content: "hello"}},
	})
	assert.Error(t, err)
}
