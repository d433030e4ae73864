// Package formatting derives applyable paragraph formatting specifications
// from a style-reference document and assigns them to blueprint sections.
package formatting

import "github.com/draftsmith/draftsmith/internal/docio"

// Line spacing rules carried by a Spec.
const (
	SpacingSingle   = "single"
	SpacingMultiple = "multiple"
	SpacingExact    = "exact"
)

// exactSpacingThreshold splits a stored line-spacing magnitude into the two
// representations that share one underlying field: values below it are line
// multiples, values at or above it are exact point heights.
const exactSpacingThreshold = 10

// Geometry is the page-level layout attached to every spec, read once from
// the reference document's first section record.
type Geometry struct {
	MarginLeftIn   float64 `json:"margin_left_in"`
	MarginRightIn  float64 `json:"margin_right_in"`
	MarginTopIn    float64 `json:"margin_top_in"`
	MarginBottomIn float64 `json:"margin_bottom_in"`
	PageWidthIn    float64 `json:"page_width_in"`
	PageHeightIn   float64 `json:"page_height_in"`
}

// Spec is one applyable paragraph formatting descriptor, resolved and
// unit-normalized (inches for indents/margins, points for sizes/spacing).
// Immutable once extracted.
type Spec struct {
	FontName         string   `json:"font_name"`
	FontSizePt       float64  `json:"font_size_pt"`
	Alignment        string   `json:"alignment"`
	LeftIndentIn     float64  `json:"left_indent_in"`
	RightIndentIn    float64  `json:"right_indent_in"`
	SpaceBeforePt    float64  `json:"space_before_pt"`
	SpaceAfterPt     float64  `json:"space_after_pt"`
	LineSpacingRule  string   `json:"line_spacing_rule"`
	LineSpacingValue *float64 `json:"line_spacing_value"`
	KeepWithNext     bool     `json:"keep_with_next"`
	PageBreakBefore  bool     `json:"page_break_before"`
	ParagraphStyle   string   `json:"paragraph_style"`
	Section          Geometry `json:"section"`
}

// DefaultGeometry is US Letter with one-inch margins.
func DefaultGeometry() Geometry {
	return Geometry{
		MarginLeftIn:   1.0,
		MarginRightIn:  1.0,
		MarginTopIn:    1.0,
		MarginBottomIn: 1.0,
		PageWidthIn:    8.5,
		PageHeightIn:   11.0,
	}
}

// DefaultSpec is the paragraph/section spec used when no style reference is
// provided.
func DefaultSpec() Spec {
	return Spec{
		FontName:        "Times New Roman",
		FontSizePt:      12.0,
		Alignment:       "left",
		LineSpacingRule: SpacingSingle,
		ParagraphStyle:  "Normal",
		Section:         DefaultGeometry(),
	}
}

// ParagraphFormat converts the spec to the writer's direct-formatting
// shape. Multiple and exact spacing values flow through unchanged; the
// writer's magnitude threshold matches the extractor's.
func (s Spec) ParagraphFormat() docio.ParagraphFormat {
	f := docio.ParagraphFormat{
		FontName:        s.FontName,
		FontSizePt:      s.FontSizePt,
		Alignment:       s.Alignment,
		LeftIndentIn:    s.LeftIndentIn,
		RightIndentIn:   s.RightIndentIn,
		SpaceBeforePt:   s.SpaceBeforePt,
		SpaceAfterPt:    s.SpaceAfterPt,
		KeepWithNext:    s.KeepWithNext,
		PageBreakBefore: s.PageBreakBefore,
	}
	if f.FontName == "" {
		f.FontName = "Times New Roman"
	}
	if f.FontSizePt == 0 {
		f.FontSizePt = 12
	}
	if s.LineSpacingRule != SpacingSingle && s.LineSpacingValue != nil {
		f.LineSpacing = *s.LineSpacingValue
	}
	return f
}

// DocumentGeometry converts the spec's section record to the writer's page
// setup shape.
func (s Spec) DocumentGeometry() docio.SectionGeometry {
	return docio.SectionGeometry{
		PageWidthIn:    s.Section.PageWidthIn,
		PageHeightIn:   s.Section.PageHeightIn,
		TopMarginIn:    s.Section.MarginTopIn,
		BottomMarginIn: s.Section.MarginBottomIn,
		LeftMarginIn:   s.Section.MarginLeftIn,
		RightMarginIn:  s.Section.MarginRightIn,
	}
}
