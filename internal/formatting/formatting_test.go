package formatting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/draftsmith/draftsmith/internal/docio"
	"github.com/draftsmith/draftsmith/internal/providers"
)

func fpt(v float64) *float64 { return &v }

func referenceDoc() *docio.Document {
	return &docio.Document{
		Blocks: []docio.Block{
			{Type: docio.BlockParagraph, Paragraph: &docio.Paragraph{
				Runs:      []docio.Run{{Text: "SUPREME COURT", FontName: "Times New Roman", FontSizePt: fpt(14)}},
				Alignment: "center",
			}},
			{Type: docio.BlockParagraph, Paragraph: &docio.Paragraph{
				Runs: []docio.Run{{Text: "   "}},
			}},
			{Type: docio.BlockTable, Table: &docio.Table{
				Rows:      [][]string{{"Index No.", "12345"}},
				Alignment: "center",
			}},
			{Type: docio.BlockParagraph, Paragraph: &docio.Paragraph{
				Runs:          []docio.Run{{Text: "The plaintiff alleges the following facts."}},
				StyleName:     "Body Text",
				StyleFontName: "Georgia",
				StyleFontSize: fpt(11),
				LeftIndentIn:  fpt(0.5),
				SpaceAfterPt:  fpt(12),
				LineSpacing:   fpt(1.5),
			}},
			{Type: docio.BlockParagraph, Paragraph: &docio.Paragraph{
				Runs:        []docio.Run{{Text: "WHEREFORE clause."}},
				LineSpacing: fpt(24),
			}},
		},
		Sections: []docio.SectionGeometry{{
			PageWidthIn: 8.5, PageHeightIn: 11,
			TopMarginIn: 1, BottomMarginIn: 1, LeftMarginIn: 1.25, RightMarginIn: 1.25,
		}},
	}
}

func TestExtractBlocks(t *testing.T) {
	blocks := ExtractBlocks(referenceDoc())

	// whitespace-only paragraph dropped, table kept in place
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	if blocks[0].Type != BlockParagraph || blocks[1].Type != BlockTable {
		t.Fatalf("block order: %s, %s", blocks[0].Type, blocks[1].Type)
	}

	caption := blocks[0].Applyable
	if caption.FontName != "Times New Roman" || caption.FontSizePt != 14 {
		t.Fatalf("caption font = %q %v", caption.FontName, caption.FontSizePt)
	}
	if caption.Alignment != "center" {
		t.Fatalf("caption alignment = %q", caption.Alignment)
	}
	if caption.LineSpacingRule != SpacingSingle || caption.LineSpacingValue != nil {
		t.Fatalf("caption spacing = %s %v", caption.LineSpacingRule, caption.LineSpacingValue)
	}

	tbl := blocks[1].Table
	if tbl.Rows != 1 || tbl.Columns != 2 || tbl.Cells[0][1] != "12345" {
		t.Fatalf("table = %+v", tbl)
	}

	body := blocks[2].Applyable
	if body.FontName != "Georgia" || body.FontSizePt != 11 {
		t.Fatalf("style-resolved font = %q %v", body.FontName, body.FontSizePt)
	}
	if body.Alignment != "left" {
		t.Fatalf("default alignment = %q", body.Alignment)
	}
	if body.ParagraphStyle != "Body Text" {
		t.Fatalf("paragraph style = %q", body.ParagraphStyle)
	}
	if body.LeftIndentIn != 0.5 || body.SpaceAfterPt != 12 || body.SpaceBeforePt != 0 {
		t.Fatalf("indent/spacing = %v %v %v", body.LeftIndentIn, body.SpaceAfterPt, body.SpaceBeforePt)
	}
	if body.LineSpacingRule != SpacingMultiple || *body.LineSpacingValue != 1.5 {
		t.Fatalf("body spacing = %s %v", body.LineSpacingRule, body.LineSpacingValue)
	}

	wherefore := blocks[3].Applyable
	if wherefore.LineSpacingRule != SpacingExact || *wherefore.LineSpacingValue != 24 {
		t.Fatalf("wherefore spacing = %s %v", wherefore.LineSpacingRule, wherefore.LineSpacingValue)
	}

	// first section geometry attached to every spec
	for i, b := range blocks {
		if b.Applyable == nil {
			continue
		}
		if b.Applyable.Section.MarginLeftIn != 1.25 {
			t.Fatalf("block %d geometry = %+v", i, b.Applyable.Section)
		}
	}
}

func TestExtractBlocks_DefaultGeometryWithoutSections(t *testing.T) {
	doc := &docio.Document{Blocks: []docio.Block{
		{Type: docio.BlockParagraph, Paragraph: &docio.Paragraph{Runs: []docio.Run{{Text: "x"}}}},
	}}
	specs := ExtractSpecs(doc)
	if len(specs) != 1 {
		t.Fatalf("specs = %d", len(specs))
	}
	if specs[0].Section != DefaultGeometry() {
		t.Fatalf("geometry = %+v", specs[0].Section)
	}
	if specs[0].FontSizePt != 12 {
		t.Fatalf("default size = %v", specs[0].FontSizePt)
	}
}

func TestClassifyLineSpacing(t *testing.T) {
	cases := []struct {
		in       *float64
		wantRule string
	}{
		{nil, SpacingSingle},
		{fpt(1.0), SpacingMultiple},
		{fpt(1.5), SpacingMultiple},
		{fpt(2.0), SpacingMultiple},
		{fpt(9.99), SpacingMultiple},
		{fpt(10), SpacingExact},
		{fpt(24), SpacingExact},
	}
	for _, tc := range cases {
		rule, _ := classifyLineSpacing(tc.in)
		if rule != tc.wantRule {
			t.Fatalf("classifyLineSpacing(%v) rule = %s, want %s", tc.in, rule, tc.wantRule)
		}
	}
}

func TestInspect(t *testing.T) {
	entries := Inspect(referenceDoc())
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.ParagraphIndex != 0 {
		t.Fatalf("index = %d", first.ParagraphIndex)
	}
	if !strings.HasPrefix(first.Formatting.Font["FONT"], "Times New Roman\n14 pt") {
		t.Fatalf("FONT = %q", first.Formatting.Font["FONT"])
	}
	if first.Formatting.Paragraph["ALIGNMENT"] != "Center" {
		t.Fatalf("ALIGNMENT = %q", first.Formatting.Paragraph["ALIGNMENT"])
	}
	if first.Formatting.Paragraph["LINE AND PAGE BREAKS"] != "None" {
		t.Fatalf("BREAKS = %q", first.Formatting.Paragraph["LINE AND PAGE BREAKS"])
	}
	if !strings.Contains(first.Formatting.Section["MARGINS"], `Left: 1.25"`) {
		t.Fatalf("MARGINS = %q", first.Formatting.Section["MARGINS"])
	}

	body := entries[1]
	if !strings.Contains(body.Formatting.Paragraph["SPACING"], "Line spacing: 1.5 lines") {
		t.Fatalf("SPACING = %q", body.Formatting.Paragraph["SPACING"])
	}
	if body.Formatting.Paragraph["PARAGRAPH STYLE"] != "Body Text" {
		t.Fatalf("STYLE = %q", body.Formatting.Paragraph["PARAGRAPH STYLE"])
	}

	exact := entries[2]
	if !strings.Contains(exact.Formatting.Paragraph["SPACING"], "Line spacing: 24 pt") {
		t.Fatalf("SPACING = %q", exact.Formatting.Paragraph["SPACING"])
	}
}

func TestAssign(t *testing.T) {
	specs := []Spec{DefaultSpec(), DefaultSpec(), DefaultSpec()}
	names := []string{"Case Caption", "Factual Allegations", "Signature Block", "Venue"}

	mock := providers.NewMockGenerator().Stub("assigning formatting styles",
		`{"Case Caption": 0, "factual allegations": "1", "Signature Block": 99}`)
	a := NewAssigner(mock, nil)

	got := a.Assign(context.Background(), names, specs)
	if got == nil {
		t.Fatal("expected assignment map")
	}
	if got["Case Caption"] != 0 {
		t.Fatalf("Case Caption = %d", got["Case Caption"])
	}
	// case-insensitive key match plus numeric-string coercion
	if got["Factual Allegations"] != 1 {
		t.Fatalf("Factual Allegations = %d", got["Factual Allegations"])
	}
	// out-of-range index clamped
	if got["Signature Block"] != 2 {
		t.Fatalf("Signature Block = %d, want clamp to 2", got["Signature Block"])
	}
	// missing section defaults to 0
	if got["Venue"] != 0 {
		t.Fatalf("Venue = %d", got["Venue"])
	}
}

func TestAssign_ShortCircuitsOnEmptyInputs(t *testing.T) {
	mock := providers.NewMockGenerator()
	a := NewAssigner(mock, nil)

	if got := a.Assign(context.Background(), nil, []Spec{DefaultSpec()}); got != nil {
		t.Fatalf("expected nil for empty sections, got %v", got)
	}
	if got := a.Assign(context.Background(), []string{"Caption"}, nil); got != nil {
		t.Fatalf("expected nil for empty specs, got %v", got)
	}
	if mock.Calls() != 0 {
		t.Fatalf("model called %d times, want 0", mock.Calls())
	}
}

func TestAssign_NilOnFailure(t *testing.T) {
	mock := providers.NewMockGenerator()
	mock.StubErr("assigning formatting styles", errors.New("quota"))
	a := NewAssigner(mock, nil)
	if got := a.Assign(context.Background(), []string{"Caption"}, []Spec{DefaultSpec()}); got != nil {
		t.Fatalf("expected nil on transport failure, got %v", got)
	}

	garbage := providers.NewMockGenerator().Stub("assigning formatting styles", "not json")
	a = NewAssigner(garbage, nil)
	if got := a.Assign(context.Background(), []string{"Caption"}, []Spec{DefaultSpec()}); got != nil {
		t.Fatalf("expected nil on malformed output, got %v", got)
	}
}

func TestSpecParagraphFormat(t *testing.T) {
	s := Spec{
		FontName:         "Arial",
		FontSizePt:       11,
		Alignment:        "justify",
		LeftIndentIn:     0.5,
		LineSpacingRule:  SpacingMultiple,
		LineSpacingValue: fpt(1.5),
		KeepWithNext:     true,
	}
	f := s.ParagraphFormat()
	if f.FontName != "Arial" || f.FontSizePt != 11 || f.Alignment != "justify" {
		t.Fatalf("format = %+v", f)
	}
	if f.LineSpacing != 1.5 || !f.KeepWithNext {
		t.Fatalf("format = %+v", f)
	}

	empty := Spec{LineSpacingRule: SpacingSingle}
	f = empty.ParagraphFormat()
	if f.FontName != "Times New Roman" || f.FontSizePt != 12 || f.LineSpacing != 0 {
		t.Fatalf("defaulted format = %+v", f)
	}
}
