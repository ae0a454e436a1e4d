package interfaces

import "context"

// Message represents a single message in a chat conversation.
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// ContentRequest is a provider-agnostic content generation request.
type ContentRequest struct {
	Messages          []Message
	Model             string
	Temperature       float32
	MaxTokens         int
	SystemInstruction string
}

// ContentResponse is a provider-agnostic content generation response.
type ContentResponse struct {
	Text     string
	Provider string
	Model    string
}

// ContentGenerator defines the interface for LLM content generation.
// Implementations route to a cloud provider (Anthropic Claude, Google
// Gemini). A call is made at most once per report; callers treat any error
// as "LLM unavailable" and fall back to deterministic generation rather
// than retrying.
type ContentGenerator interface {
	// GenerateContent produces a completion for the request. The
	// implementation applies its configured per-call timeout.
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)

	// Close releases provider clients.
	Close() error
}
