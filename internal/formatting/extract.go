package formatting

import (
	"strings"

	"github.com/draftsmith/draftsmith/internal/docio"
)

// Block types emitted by extraction.
const (
	BlockParagraph = "paragraph"
	BlockTable     = "table"
)

const previewLimit = 50

// TableInfo flattens one reference table to counts and row-major cell text.
type TableInfo struct {
	Rows      int        `json:"rows"`
	Columns   int        `json:"columns"`
	Cells     [][]string `json:"cells"`
	Style     string     `json:"style,omitempty"`
	Alignment string     `json:"alignment,omitempty"`
}

// Block is one content block of the reference document, in true document
// order (paragraphs and tables interleaved as they appear).
type Block struct {
	Type        string     `json:"type"`
	Index       int        `json:"index"`
	Text        string     `json:"text,omitempty"`
	TextPreview string     `json:"text_preview,omitempty"`
	Applyable   *Spec      `json:"applyable,omitempty"`
	Table       *TableInfo `json:"table,omitempty"`
}

// ExtractBlocks walks the reference document and produces an ordered block
// list: paragraph blocks carry a fully resolved applyable spec, table blocks
// carry counts and cell text. Paragraphs whose visible text is empty are
// skipped. Page geometry is read once from the first section record and
// attached identically to every applyable.
func ExtractBlocks(doc *docio.Document) []Block {
	geom := DefaultGeometry()
	if len(doc.Sections) > 0 {
		geom = geometryFrom(doc.Sections[0])
	}

	var blocks []Block
	index := 0
	for _, b := range doc.Blocks {
		switch b.Type {
		case docio.BlockParagraph:
			p := b.Paragraph
			text := p.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			spec := paragraphSpec(p, geom)
			blocks = append(blocks, Block{
				Type:        BlockParagraph,
				Index:       index,
				Text:        text,
				TextPreview: preview(text),
				Applyable:   &spec,
			})
		case docio.BlockTable:
			t := b.Table
			cols := 0
			if len(t.Rows) > 0 {
				cols = len(t.Rows[0])
			}
			blocks = append(blocks, Block{
				Type:  BlockTable,
				Index: index,
				Table: &TableInfo{
					Rows:      len(t.Rows),
					Columns:   cols,
					Cells:     t.Rows,
					Style:     t.StyleName,
					Alignment: t.Alignment,
				},
			})
		}
		index++
	}
	return blocks
}

// Applyables returns the paragraph applyable specs in document order,
// which is the shape the assigner and assembler consume.
func Applyables(blocks []Block) []Spec {
	var out []Spec
	for _, b := range blocks {
		if b.Type == BlockParagraph && b.Applyable != nil {
			out = append(out, *b.Applyable)
		}
	}
	return out
}

// ExtractSpecs is the one-step path from reference document to applyable
// list.
func ExtractSpecs(doc *docio.Document) []Spec {
	return Applyables(ExtractBlocks(doc))
}

// paragraphSpec resolves one paragraph's effective formatting: the first
// run's direct formatting wins over the named style, which wins over a
// fixed 12pt body default.
func paragraphSpec(p *docio.Paragraph, geom Geometry) Spec {
	spec := Spec{
		Alignment:       "left",
		LineSpacingRule: SpacingSingle,
		ParagraphStyle:  "Normal",
		FontSizePt:      12,
		Section:         geom,
	}

	var run *docio.Run
	if len(p.Runs) > 0 {
		run = &p.Runs[0]
	}
	if run != nil && run.FontName != "" {
		spec.FontName = run.FontName
	} else {
		spec.FontName = p.StyleFontName
	}
	if run != nil && run.FontSizePt != nil {
		spec.FontSizePt = *run.FontSizePt
	} else if p.StyleFontSize != nil {
		spec.FontSizePt = *p.StyleFontSize
	}

	if p.Alignment != "" {
		spec.Alignment = p.Alignment
	}
	if p.StyleName != "" {
		spec.ParagraphStyle = p.StyleName
	}
	if p.LeftIndentIn != nil {
		spec.LeftIndentIn = *p.LeftIndentIn
	}
	if p.RightIndentIn != nil {
		spec.RightIndentIn = *p.RightIndentIn
	}
	if p.SpaceBeforePt != nil {
		spec.SpaceBeforePt = *p.SpaceBeforePt
	}
	if p.SpaceAfterPt != nil {
		spec.SpaceAfterPt = *p.SpaceAfterPt
	}
	spec.LineSpacingRule, spec.LineSpacingValue = classifyLineSpacing(p.LineSpacing)
	spec.KeepWithNext = p.KeepWithNext
	spec.PageBreakBefore = p.PageBreakBefore
	return spec
}

// classifyLineSpacing maps the merged stored value onto a rule: nil is
// single, magnitudes under the threshold are line multiples, the rest are
// exact point heights.
func classifyLineSpacing(v *float64) (string, *float64) {
	if v == nil {
		return SpacingSingle, nil
	}
	val := *v
	if val < exactSpacingThreshold {
		return SpacingMultiple, &val
	}
	return SpacingExact, &val
}

func geometryFrom(g docio.SectionGeometry) Geometry {
	return Geometry{
		MarginLeftIn:   g.LeftMarginIn,
		MarginRightIn:  g.RightMarginIn,
		MarginTopIn:    g.TopMarginIn,
		MarginBottomIn: g.BottomMarginIn,
		PageWidthIn:    g.PageWidthIn,
		PageHeightIn:   g.PageHeightIn,
	}
}

func preview(text string) string {
	if len(text) > previewLimit {
		return text[:previewLimit] + "..."
	}
	return text
}
