// Package extract pulls per-section sample text out of a source document
// using one model call per blueprint section.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/draftsmith/draftsmith/internal/blueprint"
	"github.com/draftsmith/draftsmith/internal/jsonx"
	"github.com/draftsmith/draftsmith/internal/providers"
)

const (
	// maxDocChars caps the document text sent per request; the response is
	// one section only, so a large slice is affordable.
	maxDocChars = 12000

	maxTokens = 4096
)

// ProgressFunc reports that a section is about to be extracted. index is
// zero-based. Callbacks are fire-and-forget.
type ProgressFunc func(name string, index, total int)

// Extractor asks the model for each section's full text, one call at a
// time. Failures are isolated per section: a failed call yields an empty
// string for that section only.
type Extractor struct {
	llm    providers.TextGenerator
	logger *slog.Logger
}

// NewExtractor creates a section extractor.
func NewExtractor(llm providers.TextGenerator, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{llm: llm, logger: logger}
}

// Extract returns a map of section name to extracted text for every named
// section in the blueprint, in one sequential pass.
func (e *Extractor) Extract(ctx context.Context, doc string, bp *blueprint.Blueprint, onSection ProgressFunc) map[string]string {
	names := bp.Names()
	result := make(map[string]string, len(names))
	for i, name := range names {
		if onSection != nil {
			onSection(name, i, len(names))
		}
		result[name] = e.extractOne(ctx, doc, name)
	}
	return result
}

// extractOne issues one extraction call. Any failure maps to "".
func (e *Extractor) extractOne(ctx context.Context, doc, sectionName string) string {
	chunk := doc
	if len(chunk) > maxDocChars {
		chunk = chunk[:maxDocChars]
	}

	res, err := e.llm.Generate(ctx, &providers.GenerateRequest{
		Prompt:    buildExtractionPrompt(chunk, sectionName),
		MaxTokens: maxTokens,
		JSONMode:  true,
	})
	if err != nil {
		e.logger.Warn("section extraction call failed", "section", sectionName, "error", err)
		return ""
	}

	data, err := jsonx.Extract(res.Text)
	if err != nil {
		e.logger.Warn("section extraction output unusable", "section", sectionName, "error", err)
		return ""
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return ""
	}

	val, found := obj[sectionName]
	if !found {
		for k, v := range obj {
			if strings.EqualFold(strings.TrimSpace(k), sectionName) {
				val, found = v, true
				break
			}
		}
	}
	if !found || val == nil {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		s = fmt.Sprintf("%v", val)
	}
	return strings.TrimSpace(s)
}

func buildExtractionPrompt(chunk, sectionName string) string {
	return fmt.Sprintf(`Extract from the document below ONLY the full text of the section titled exactly: "%[1]s".

Rules:
- Return a JSON object with exactly one key: "%[1]s". The value must be the extracted section text.
- If that section is not found, use: {"%[1]s": ""}
- Use double quotes. Escape newlines in the value as \n. No other text-only the JSON object.

Document:
%[2]s
`, sectionName, chunk)
}
