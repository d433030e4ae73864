// Package docio reads and writes Office Open XML word-processing documents
// (.docx) and decodes uploaded text files. It exposes ordered typed blocks
// plus page geometry on the way in, and accepts a formatted paragraph
// stream plus geometry on the way out.
package docio

import "strings"

// BlockType discriminates the block union.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockTable     BlockType = "table"
)

// Block is one body-level element of a document, in reading order.
type Block struct {
	Type      BlockType
	Paragraph *Paragraph
	Table     *Table
}

// Run is a contiguous span of text sharing character formatting. Font
// fields are nil/empty when the run inherits them from its style.
type Run struct {
	Text       string
	FontName   string
	FontSizePt *float64
}

// Paragraph is a body paragraph with its direct and style-level formatting.
// Pointer fields are nil when the property is not set on the paragraph.
//
// LineSpacing carries python-style merged semantics: values below 10 are
// line multiples (1.0, 1.5, 2.0), values of 10 and above are exact point
// heights. nil means single spacing.
type Paragraph struct {
	Runs []Run

	StyleName     string
	StyleFontName string
	StyleFontSize *float64

	Alignment       string // "", "left", "center", "right", "justify"
	LeftIndentIn    *float64
	RightIndentIn   *float64
	SpaceBeforePt   *float64
	SpaceAfterPt    *float64
	LineSpacing     *float64
	KeepWithNext    bool
	PageBreakBefore bool
}

// Text returns the concatenated run text of the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Table is a body-level table flattened to cell text.
type Table struct {
	Rows      [][]string
	StyleName string
	Alignment string
}

// SectionGeometry is the page setup of one document section, in inches.
type SectionGeometry struct {
	PageWidthIn    float64
	PageHeightIn   float64
	TopMarginIn    float64
	BottomMarginIn float64
	LeftMarginIn   float64
	RightMarginIn  float64
}

// Document is a parsed word-processing document: body blocks in reading
// order plus at least one section geometry record.
type Document struct {
	Blocks   []Block
	Sections []SectionGeometry
}

// Paragraphs returns the body paragraphs in order, skipping tables.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		if b.Type == BlockParagraph && b.Paragraph != nil {
			out = append(out, b.Paragraph)
		}
	}
	return out
}

// PlainText flattens the document to newline-joined text. Table rows are
// rendered as tab-joined cell text.
func (d *Document) PlainText() string {
	var lines []string
	for _, b := range d.Blocks {
		switch b.Type {
		case BlockParagraph:
			if b.Paragraph != nil {
				lines = append(lines, b.Paragraph.Text())
			}
		case BlockTable:
			if b.Table != nil {
				for _, row := range b.Table.Rows {
					lines = append(lines, strings.Join(row, "\t"))
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}
