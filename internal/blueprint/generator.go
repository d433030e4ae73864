package blueprint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/draftsmith/draftsmith/internal/jsonx"
	"github.com/draftsmith/draftsmith/internal/providers"
)

const (
	// maxStructuringAttempts is the structuring phase retry budget.
	maxStructuringAttempts = 3

	// minSections is the validation floor for a usable blueprint.
	minSections = 5

	discoveryMaxTokens   = 3000
	structuringMaxTokens = 2000
)

// Generator produces a Blueprint from two sample documents using two-phase
// LLM extraction.
//
// State machine: DISCOVERY -> (early exit if >=5 parsed) -> STRUCTURING
// (attempts 1..3) -> FALLBACK_REPARSE -> FALLBACK_TEMPLATE. Transport
// failures never propagate; the terminal state is always a Blueprint.
type Generator struct {
	llm    providers.TextGenerator
	logger *slog.Logger
}

// NewGenerator creates a blueprint generator.
func NewGenerator(llm providers.TextGenerator, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{llm: llm, logger: logger}
}

// Generate runs the two-phase extraction over both sample documents.
func (g *Generator) Generate(ctx context.Context, doc1, doc2 string) *Blueprint {
	doc1 = CleanText(doc1)
	doc2 = CleanText(doc2)
	docType := GuessDocType(doc1 + "\n" + doc2)

	// Phase 1 - discovery. A failed call short-circuits to the template
	// fallback tagged with the heuristic document type.
	res, err := g.llm.Generate(ctx, &providers.GenerateRequest{
		Prompt:      buildDiscoveryPrompt(doc1, doc2),
		MaxTokens:   discoveryMaxTokens,
		Temperature: providers.Temp(0.1),
	})
	if err != nil {
		g.logger.Error("discovery phase failed", "error", err, "doc_type", docType)
		return g.fallback(docType, err)
	}
	rawList := res.Text
	g.logger.Info("raw section list generated", "chars", len(rawList))

	// Skip structuring entirely when discovery already parses cleanly.
	if pairs := ParseDiscoveryList(rawList); len(pairs) >= minSections {
		g.logger.Info("using sections from discovery list", "count", len(pairs))
		return blueprintFromPairs(pairs)
	}

	// Phase 2 - structuring, only reached when discovery yielded fewer
	// than minSections parseable lines.
	structPrompt := buildStructuringPrompt(rawList)
	var sections []Section
	attempt := 0
	err = retry.Do(
		func() error {
			attempt++
			g.logger.Info("structuring attempt", "attempt", attempt)
			out, attemptErr := g.structureOnce(ctx, structPrompt)
			if attemptErr != nil {
				g.logger.Warn("structuring attempt failed", "attempt", attempt, "error", attemptErr)
				return attemptErr
			}
			sections = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxStructuringAttempts),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		g.logger.Info("blueprint generated successfully", "sections", len(sections))
		return &Blueprint{Sections: sections}
	}

	// Re-parse the original discovery output before surrendering to the
	// fixed templates.
	if pairs := ParseDiscoveryList(rawList); len(pairs) >= minSections {
		g.logger.Info("using sections reparsed from discovery list", "count", len(pairs))
		return blueprintFromPairs(pairs)
	}

	g.logger.Error("all blueprint attempts failed, using default sections", "error", err, "doc_type", docType)
	return g.fallback(docType, err)
}

// structureOnce issues one structuring call and normalizes its output into
// validated sections.
func (g *Generator) structureOnce(ctx context.Context, prompt string) ([]Section, error) {
	res, err := g.llm.Generate(ctx, &providers.GenerateRequest{
		Prompt:      prompt,
		MaxTokens:   structuringMaxTokens,
		JSONMode:    true,
		Temperature: providers.Temp(0),
	})
	if err != nil {
		return nil, err
	}

	data, err := jsonx.Extract(res.Text)
	if err != nil {
		return nil, err
	}

	var list []any
	if matchesCanonicalSchema(data) {
		list = data.(map[string]any)["sections"].([]any)
	} else {
		var ok bool
		list, ok = findSectionsList(data)
		if !ok {
			return nil, fmt.Errorf("no sections found in structured output")
		}
	}

	sections := make([]Section, 0, len(list))
	for _, item := range list {
		pair, ok := sectionItemToPair(item)
		if !ok {
			continue
		}
		sections = append(sections, Section{
			ID:      len(sections) + 1,
			Name:    pair.Name,
			Purpose: pair.Purpose,
		})
	}

	if len(sections) < minSections {
		return nil, fmt.Errorf("too few sections: %d", len(sections))
	}
	for _, s := range sections {
		if s.Name == "" {
			return nil, fmt.Errorf("empty section name detected")
		}
	}
	return sections, nil
}

func (g *Generator) fallback(docType string, cause error) *Blueprint {
	bp := &Blueprint{
		Sections:     FallbackSections(docType),
		FallbackUsed: true,
	}
	if cause != nil {
		bp.Error = cause.Error()
	}
	return bp
}
