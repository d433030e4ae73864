package formatting

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/draftsmith/draftsmith/internal/jsonx"
	"github.com/draftsmith/draftsmith/internal/providers"
)

const assignMaxTokens = 1024

// Assigner asks the model which applyable spec each blueprint section
// should use, so a caption can pick the centered option and body sections
// the indented one.
type Assigner struct {
	llm    providers.TextGenerator
	logger *slog.Logger
}

// NewAssigner creates a formatting assigner.
func NewAssigner(llm providers.TextGenerator, logger *slog.Logger) *Assigner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assigner{llm: llm, logger: logger}
}

// Assign maps each section name to a spec index in [0, len(specs)-1].
// Returns nil when there is nothing to assign or when the call fails; the
// caller falls back to cyclic paragraph mapping.
func (a *Assigner) Assign(ctx context.Context, sectionNames []string, specs []Spec) map[string]int {
	if len(sectionNames) == 0 || len(specs) == 0 {
		return nil
	}

	res, err := a.llm.Generate(ctx, &providers.GenerateRequest{
		Prompt:      buildAssignmentPrompt(sectionNames, specs),
		MaxTokens:   assignMaxTokens,
		JSONMode:    true,
		Temperature: providers.Temp(0.1),
	})
	if err != nil {
		a.logger.Warn("formatting assignment call failed", "error", err)
		return nil
	}

	data, err := jsonx.Extract(res.Text)
	if err != nil {
		a.logger.Warn("formatting assignment output unusable", "error", err)
		return nil
	}
	obj, ok := data.(map[string]any)
	if !ok {
		a.logger.Warn("formatting assignment output is not an object")
		return nil
	}

	n := len(specs)
	result := make(map[string]int, len(sectionNames))
	for _, name := range sectionNames {
		val, found := obj[name]
		if !found {
			for k, v := range obj {
				if strings.TrimSpace(k) == name || strings.EqualFold(strings.TrimSpace(k), name) {
					val, found = v, true
					break
				}
			}
		}
		idx := 0
		if found {
			if parsed, ok := coerceIndex(val); ok {
				idx = clamp(parsed, 0, n-1)
			}
		}
		result[name] = idx
	}
	return result
}

// buildAssignmentPrompt summarizes each spec as one indexed line and lists
// the sections in order.
func buildAssignmentPrompt(sectionNames []string, specs []Spec) string {
	var options []string
	for i, s := range specs {
		options = append(options, summarizeSpec(s, i))
	}
	var sections []string
	for _, name := range sectionNames {
		sections = append(sections, "  - "+name)
	}
	return fmt.Sprintf(`You are assigning formatting styles to sections of a legal document.

Reference document has these formatting options (by paragraph index in the reference):

%s

Document sections (in order):

%s

Task: For each section, choose the SINGLE option index (0 to %d) that best matches how that section should look. For example: case caption often uses centered, larger font (like option 0); body text often uses left-aligned, indented (like option 1). Use the same option for multiple sections if they should look the same.

Return ONLY valid JSON. Format: { "Section Name Exactly As Listed": <integer>, ... }
Example: { "Case Caption": 0, "Summons Notice": 1, "Venue and Jurisdiction": 1 }

JSON:`, strings.Join(options, "\n"), strings.Join(sections, "\n"), len(specs)-1)
}

func summarizeSpec(s Spec, index int) string {
	font := s.FontName
	if font == "" {
		font = "Times New Roman"
	}
	size := s.FontSizePt
	if size == 0 {
		size = 12
	}
	align := strings.ToLower(s.Alignment)
	if align == "" {
		align = "left"
	}
	style := s.ParagraphStyle
	if style == "" {
		style = "Normal"
	}
	parts := []string{fmt.Sprintf("%s %spt", font, trimFloat(size)), align}
	if s.LeftIndentIn != 0 {
		parts = append(parts, fmt.Sprintf(`left indent %s"`, trimFloat(s.LeftIndentIn)))
	}
	if s.SpaceBeforePt != 0 || s.SpaceAfterPt != 0 {
		parts = append(parts, fmt.Sprintf("space before %spt after %spt",
			trimFloat(s.SpaceBeforePt), trimFloat(s.SpaceAfterPt)))
	}
	parts = append(parts, "style "+style)
	return fmt.Sprintf("  %d: %s", index, strings.Join(parts, ", "))
}

// coerceIndex accepts integers, floats and numeric strings.
func coerceIndex(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
