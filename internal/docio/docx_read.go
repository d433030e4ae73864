package docio

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const (
	twipsPerInch = 1440 // twentieths of a point
	twipsPerLine = 240  // w:line units per single line at lineRule="auto"
)

// ReadDocx parses a .docx archive into ordered body blocks plus section
// geometry. Styles referenced by paragraphs are resolved to their display
// name and character formatting.
func ReadDocx(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", err)
	}

	styles, err := readStyles(zr)
	if err != nil {
		return nil, err
	}

	body, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("docx has no word/document.xml: %w", err)
	}
	return parseDocumentXML(body, styles)
}

// ReadDocxFile reads and parses a .docx from an io.Reader.
func ReadDocxFile(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading docx: %w", err)
	}
	return ReadDocx(data)
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// styleInfo is the resolved character formatting of one paragraph style.
type styleInfo struct {
	name     string
	fontName string
	fontSize *float64
}

func readStyles(zr *zip.Reader) (map[string]styleInfo, error) {
	styles := make(map[string]styleInfo)
	data, err := readZipFile(zr, "word/styles.xml")
	if err != nil {
		// styles.xml is optional in the package
		return styles, nil
	}

	var doc xmlStyles
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing styles.xml: %w", err)
	}
	for _, s := range doc.Styles {
		if s.ID == "" {
			continue
		}
		info := styleInfo{name: s.ID}
		if s.Name != nil && s.Name.Val != "" {
			info.name = s.Name.Val
		}
		if s.RunProps != nil {
			info.fontName = s.RunProps.fontName()
			info.fontSize = s.RunProps.fontSizePt()
		}
		styles[s.ID] = info
	}
	return styles, nil
}

// parseDocumentXML walks the body token stream so that paragraphs and
// tables keep their interleaved order.
func parseDocumentXML(data []byte, styles map[string]styleInfo) (*Document, error) {
	doc := &Document{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			// Only body-level p/tbl are blocks; nested ones (table
			// cells) are consumed by DecodeElement below.
			switch {
			case t.Name.Local == "p" && depth == 2:
				var xp xmlPara
				if err := dec.DecodeElement(&xp, &t); err != nil {
					return nil, fmt.Errorf("parsing paragraph: %w", err)
				}
				p := xp.toParagraph(styles)
				doc.Blocks = append(doc.Blocks, Block{Type: BlockParagraph, Paragraph: p})
			case t.Name.Local == "tbl" && depth == 2:
				var xt xmlTable
				if err := dec.DecodeElement(&xt, &t); err != nil {
					return nil, fmt.Errorf("parsing table: %w", err)
				}
				doc.Blocks = append(doc.Blocks, Block{Type: BlockTable, Table: xt.toTable(styles)})
			case t.Name.Local == "sectPr":
				var xs xmlSectPr
				if err := dec.DecodeElement(&xs, &t); err != nil {
					return nil, fmt.Errorf("parsing section properties: %w", err)
				}
				doc.Sections = append(doc.Sections, xs.toGeometry())
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return doc, nil
}

// --- raw OOXML shapes -------------------------------------------------------

type xmlVal struct {
	Val string `xml:"val,attr"`
}

// onOff reports whether a toggle element is on. Presence without a val
// attribute means on.
func (v *xmlVal) on() bool {
	if v == nil {
		return false
	}
	switch v.Val {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

type xmlFonts struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type xmlRunProps struct {
	Fonts *xmlFonts `xml:"rFonts"`
	Size  *xmlVal   `xml:"sz"`
}

func (rp *xmlRunProps) fontName() string {
	if rp == nil || rp.Fonts == nil {
		return ""
	}
	if rp.Fonts.ASCII != "" {
		return rp.Fonts.ASCII
	}
	return rp.Fonts.HAnsi
}

func (rp *xmlRunProps) fontSizePt() *float64 {
	if rp == nil || rp.Size == nil {
		return nil
	}
	half, err := strconv.ParseFloat(rp.Size.Val, 64)
	if err != nil {
		return nil
	}
	pt := half / 2
	return &pt
}

type xmlIndent struct {
	Left  string `xml:"left,attr"`
	Right string `xml:"right,attr"`
}

type xmlSpacing struct {
	Before   string `xml:"before,attr"`
	After    string `xml:"after,attr"`
	Line     string `xml:"line,attr"`
	LineRule string `xml:"lineRule,attr"`
}

type xmlParaProps struct {
	Style           *xmlVal      `xml:"pStyle"`
	KeepNext        *xmlVal      `xml:"keepNext"`
	PageBreakBefore *xmlVal      `xml:"pageBreakBefore"`
	Spacing         *xmlSpacing  `xml:"spacing"`
	Indent          *xmlIndent   `xml:"ind"`
	Justify         *xmlVal      `xml:"jc"`
	RunProps        *xmlRunProps `xml:"rPr"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

type xmlRun struct {
	Props *xmlRunProps `xml:"rPr"`
	Texts []xmlText    `xml:"t"`
}

type xmlPara struct {
	Props *xmlParaProps `xml:"pPr"`
	Runs  []xmlRun      `xml:"r"`
}

type xmlCell struct {
	Paras []xmlPara `xml:"p"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"tc"`
}

type xmlTblProps struct {
	Style   *xmlVal `xml:"tblStyle"`
	Justify *xmlVal `xml:"jc"`
}

type xmlTable struct {
	Props *xmlTblProps `xml:"tblPr"`
	Rows  []xmlRow     `xml:"tr"`
}

type xmlPageSize struct {
	W string `xml:"w,attr"`
	H string `xml:"h,attr"`
}

type xmlMargins struct {
	Top    string `xml:"top,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Right  string `xml:"right,attr"`
}

type xmlSectPr struct {
	PageSize *xmlPageSize `xml:"pgSz"`
	Margins  *xmlMargins  `xml:"pgMar"`
}

type xmlStyle struct {
	Type     string       `xml:"type,attr"`
	ID       string       `xml:"styleId,attr"`
	Name     *xmlVal      `xml:"name"`
	RunProps *xmlRunProps `xml:"rPr"`
}

type xmlStyles struct {
	Styles []xmlStyle `xml:"style"`
}

// --- conversions ------------------------------------------------------------

func (xp *xmlPara) toParagraph(styles map[string]styleInfo) *Paragraph {
	p := &Paragraph{}
	for _, r := range xp.Runs {
		run := Run{
			FontName:   r.Props.fontName(),
			FontSizePt: r.Props.fontSizePt(),
		}
		for _, t := range r.Texts {
			run.Text += t.Value
		}
		p.Runs = append(p.Runs, run)
	}

	pr := xp.Props
	if pr == nil {
		return p
	}
	if pr.Style != nil {
		if info, ok := styles[pr.Style.Val]; ok {
			p.StyleName = info.name
			p.StyleFontName = info.fontName
			p.StyleFontSize = info.fontSize
		} else {
			p.StyleName = pr.Style.Val
		}
	}
	p.Alignment = alignmentFromVal(pr.Justify)
	p.KeepWithNext = pr.KeepNext.on()
	p.PageBreakBefore = pr.PageBreakBefore.on()
	if pr.Indent != nil {
		p.LeftIndentIn = twipsToInches(pr.Indent.Left)
		p.RightIndentIn = twipsToInches(pr.Indent.Right)
	}
	if pr.Spacing != nil {
		p.SpaceBeforePt = twentiethsToPoints(pr.Spacing.Before)
		p.SpaceAfterPt = twentiethsToPoints(pr.Spacing.After)
		p.LineSpacing = lineSpacingFromAttrs(pr.Spacing.Line, pr.Spacing.LineRule)
	}
	return p
}

func (xt *xmlTable) toTable(styles map[string]styleInfo) *Table {
	t := &Table{}
	if xt.Props != nil {
		if xt.Props.Style != nil {
			t.StyleName = xt.Props.Style.Val
			if info, ok := styles[xt.Props.Style.Val]; ok {
				t.StyleName = info.name
			}
		}
		t.Alignment = alignmentFromVal(xt.Props.Justify)
	}
	for _, row := range xt.Rows {
		var cells []string
		for _, cell := range row.Cells {
			text := ""
			for i, p := range cell.Paras {
				if i > 0 {
					text += "\n"
				}
				para := p.toParagraph(styles)
				text += para.Text()
			}
			cells = append(cells, text)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (xs *xmlSectPr) toGeometry() SectionGeometry {
	g := SectionGeometry{}
	if xs.PageSize != nil {
		g.PageWidthIn = twipsToInchesOrZero(xs.PageSize.W)
		g.PageHeightIn = twipsToInchesOrZero(xs.PageSize.H)
	}
	if xs.Margins != nil {
		g.TopMarginIn = twipsToInchesOrZero(xs.Margins.Top)
		g.BottomMarginIn = twipsToInchesOrZero(xs.Margins.Bottom)
		g.LeftMarginIn = twipsToInchesOrZero(xs.Margins.Left)
		g.RightMarginIn = twipsToInchesOrZero(xs.Margins.Right)
	}
	return g
}

func alignmentFromVal(v *xmlVal) string {
	if v == nil {
		return ""
	}
	switch v.Val {
	case "both", "distribute":
		return "justify"
	case "start":
		return "left"
	case "end":
		return "right"
	}
	return v.Val
}

func twipsToInches(attr string) *float64 {
	if attr == "" {
		return nil
	}
	v, err := strconv.ParseFloat(attr, 64)
	if err != nil {
		return nil
	}
	in := v / twipsPerInch
	return &in
}

func twipsToInchesOrZero(attr string) float64 {
	if v := twipsToInches(attr); v != nil {
		return *v
	}
	return 0
}

func twentiethsToPoints(attr string) *float64 {
	if attr == "" {
		return nil
	}
	v, err := strconv.ParseFloat(attr, 64)
	if err != nil {
		return nil
	}
	pt := v / 20
	return &pt
}

// lineSpacingFromAttrs merges w:line and w:lineRule into a single value:
// auto rules become line multiples (360 -> 1.5), exact and atLeast rules
// become point heights (480 -> 24pt). A plain single spacing maps to nil.
func lineSpacingFromAttrs(line, rule string) *float64 {
	if line == "" {
		return nil
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil
	}
	switch rule {
	case "", "auto":
		if v == twipsPerLine {
			return nil
		}
		mult := v / twipsPerLine
		return &mult
	default: // exact, atLeast
		pt := v / 20
		return &pt
	}
}
