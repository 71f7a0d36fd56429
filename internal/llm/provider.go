package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the abstraction over a language-model backend.
// Lingoz uses it for two kinds of calls: structured JSON generation
// (curriculum missions) and short free-text judgments (level
// classification, sentence grading).
type Provider interface {
	// Generate sends a prompt and returns the model output. When the
	// request carries a Schema, the returned Content is JSON validated
	// against it; otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Every Lingoz call is single-turn,
	// so this holds one user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured
	// output mechanism and validates the response against it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema
	// name for OpenAI). Kebab-case, e.g. "daily-mission".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the generated output: validated JSON when the request
	// carried a Schema, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as plain text with surrounding
// whitespace trimmed. Judgment calls (level test, sentence grading)
// read their marker strings through this.
func (r *Response) Text() string {
	s := string(r.Content)
	// Some backends wrap plain-text answers in a JSON string.
	var unquoted string
	if err := json.Unmarshal(r.Content, &unquoted); err == nil {
		s = unquoted
	}
	return strings.TrimSpace(s)
}
