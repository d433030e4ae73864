package draft

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/draftsmith/draftsmith/internal/blueprint"
	"github.com/draftsmith/draftsmith/internal/providers"
)

// Engine generates the body text of every section, one call at a time in
// blueprint order.
type Engine struct {
	llm    providers.TextGenerator
	logger *slog.Logger
}

// NewEngine creates a draft engine.
func NewEngine(llm providers.TextGenerator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{llm: llm, logger: logger}
}

// GenerateSections runs each section's prompt against the model with the
// case summary appended. Unlike extraction, a failed generation call aborts
// the draft: a document with silently missing bodies is worse than an
// error.
func (e *Engine) GenerateSections(ctx context.Context, bp *blueprint.Blueprint, prompts map[string]string, caseData string) (map[string]string, error) {
	result := make(map[string]string, len(bp.Sections))
	for _, name := range bp.Names() {
		prompt, ok := prompts[name]
		if !ok {
			continue
		}
		e.logger.Info("generating section", "section", name)
		text, err := e.GenerateOne(ctx, prompt, caseData)
		if err != nil {
			return nil, fmt.Errorf("generating section %q: %w", name, err)
		}
		result[name] = text
	}
	return result, nil
}

// GenerateOne generates a single section body.
func (e *Engine) GenerateOne(ctx context.Context, prompt, caseData string) (string, error) {
	res, err := e.llm.Generate(ctx, &providers.GenerateRequest{
		Prompt: prompt + "\n\nCase Data:\n" + caseData,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
