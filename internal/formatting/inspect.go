package formatting

import (
	"fmt"
	"strings"

	"github.com/draftsmith/draftsmith/internal/docio"
)

// InspectFormatting groups resolved values under the labels a word
// processor's formatting pane would show.
type InspectFormatting struct {
	Font      map[string]string `json:"Font"`
	Paragraph map[string]string `json:"Paragraph"`
	Section   map[string]string `json:"Section"`
}

// InspectEntry is the human-readable view of one paragraph's formatting.
type InspectEntry struct {
	ParagraphIndex int               `json:"paragraph_index"`
	Text           string            `json:"text"`
	TextPreview    string            `json:"text_preview"`
	Formatting     InspectFormatting `json:"Formatting of selected text"`
}

// Inspect renders the reference document's paragraph formatting as a
// nested-label structure for display. It is derived from the same resolved
// values as ExtractBlocks.
func Inspect(doc *docio.Document) []InspectEntry {
	var entries []InspectEntry
	for _, b := range ExtractBlocks(doc) {
		if b.Type != BlockParagraph || b.Applyable == nil {
			continue
		}
		entries = append(entries, inspectEntry(b))
	}
	return entries
}

func inspectEntry(b Block) InspectEntry {
	s := b.Applyable
	fontName := s.FontName
	if fontName == "" {
		fontName = "(Default) Body Text"
	}
	fontSize := fmt.Sprintf("%s pt", trimFloat(s.FontSizePt))

	var breaks []string
	if s.KeepWithNext {
		breaks = append(breaks, "Keep with next")
	}
	if s.PageBreakBefore {
		breaks = append(breaks, "Page break before")
	}
	breakStr := "None"
	if len(breaks) > 0 {
		breakStr = strings.Join(breaks, ", ")
	}

	g := s.Section
	return InspectEntry{
		ParagraphIndex: b.Index,
		Text:           b.Text,
		TextPreview:    b.TextPreview,
		Formatting: InspectFormatting{
			Font: map[string]string{
				"FONT":     fontName + "\n" + fontSize,
				"LANGUAGE": "English (United States)",
			},
			Paragraph: map[string]string{
				"PARAGRAPH STYLE": s.ParagraphStyle,
				"ALIGNMENT":       alignmentLabel(s.Alignment),
				"INDENTATION": fmt.Sprintf("Left: %s\nRight: %s",
					inchLabel(s.LeftIndentIn), inchLabel(s.RightIndentIn)),
				"SPACING": fmt.Sprintf("Before: %s pt\nAfter: %s pt\nLine spacing: %s",
					trimFloat(s.SpaceBeforePt), trimFloat(s.SpaceAfterPt), lineSpacingLabel(s)),
				"LINE AND PAGE BREAKS": breakStr,
			},
			Section: map[string]string{
				"MARGINS": fmt.Sprintf("Left: %s, Right: %s, Top: %s, Bottom: %s",
					inchLabel(g.MarginLeftIn), inchLabel(g.MarginRightIn),
					inchLabel(g.MarginTopIn), inchLabel(g.MarginBottomIn)),
				"PAPER": fmt.Sprintf("Width: %s, Height: %s",
					inchLabel(g.PageWidthIn), inchLabel(g.PageHeightIn)),
				"LAYOUT": "Section start: New page",
			},
		},
	}
}

func alignmentLabel(a string) string {
	switch a {
	case "left":
		return "Left"
	case "center":
		return "Center"
	case "right":
		return "Right"
	case "justify":
		return "Justified"
	}
	return "Left (Default)"
}

func lineSpacingLabel(s *Spec) string {
	switch {
	case s.LineSpacingRule == SpacingMultiple && s.LineSpacingValue != nil:
		return fmt.Sprintf("%s lines", trimFloat(*s.LineSpacingValue))
	case s.LineSpacingRule == SpacingExact && s.LineSpacingValue != nil:
		return fmt.Sprintf("%s pt", trimFloat(*s.LineSpacingValue))
	}
	return "Single"
}

func inchLabel(v float64) string {
	return trimFloat(v) + `"`
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
