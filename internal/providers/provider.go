package providers

import (
	"context"
	"time"
)

// TextGenerator is the capability seam for the LLM text-completion service.
// Every pipeline component that talks to a model depends on this single
// method, which keeps the retry/fallback ladders testable with a
// deterministic stub.
type TextGenerator interface {
	// Generate sends one prompt and returns the model's text output.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)

	// Name returns the provider identifier (e.g., "openai").
	Name() string
}

// GenerateRequest is a single text-generation request.
type GenerateRequest struct {
	// Prompt is the full user prompt (single-turn).
	Prompt string `json:"prompt"`

	// MaxTokens limits the completion length (provider default if 0).
	MaxTokens int `json:"max_tokens,omitempty"`

	// JSONMode requests a JSON object response. This is a hint, not a
	// guarantee - callers must tolerate non-conforming output.
	JSONMode bool `json:"json_mode,omitempty"`

	// Temperature overrides the sampling temperature when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`

	// RequestID correlates the call in logs (auto-generated if empty).
	RequestID string `json:"-"`
}

// GenerateResult is the complete response from a generation call.
type GenerateResult struct {
	Text string `json:"text"`

	// Token counts (zero when the provider does not report usage)
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID     string        `json:"request_id"`
	Attempts      int           `json:"attempts"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// Temp returns a pointer to v, for use as GenerateRequest.Temperature.
func Temp(v float64) *float64 {
	return &v
}
