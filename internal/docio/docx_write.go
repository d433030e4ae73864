package docio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ParagraphFormat is the direct formatting applied to one output paragraph.
// Zero values mean "leave unset" (single spacing, no indent, default font).
type ParagraphFormat struct {
	FontName        string
	FontSizePt      float64
	Alignment       string // "left", "center", "right", "justify"
	LeftIndentIn    float64
	RightIndentIn   float64
	SpaceBeforePt   float64
	SpaceAfterPt    float64
	LineSpacing     float64 // <10 line multiple, >=10 exact points, 0 single
	KeepWithNext    bool
	PageBreakBefore bool
}

// OutputParagraph is one paragraph of the generated document.
type OutputParagraph struct {
	Text   string
	Format ParagraphFormat
}

// exactSpacingThreshold splits LineSpacing magnitudes into line multiples
// and exact point heights.
const exactSpacingThreshold = 10

// Writer builds .docx files from a formatted paragraph stream.
type Writer struct {
	paragraphs []OutputParagraph
	geometry   SectionGeometry
}

// NewWriter creates a docx writer for the given paragraphs and page setup.
// A zero geometry falls back to US Letter with one-inch margins.
func NewWriter(paragraphs []OutputParagraph, geometry SectionGeometry) *Writer {
	if geometry == (SectionGeometry{}) {
		geometry = SectionGeometry{
			PageWidthIn: 8.5, PageHeightIn: 11,
			TopMarginIn: 1, BottomMarginIn: 1, LeftMarginIn: 1, RightMarginIn: 1,
		}
	}
	return &Writer{paragraphs: paragraphs, geometry: geometry}
}

// Build generates the docx and writes it to the specified path.
func (w *Writer) Build(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	return w.WriteTo(f)
}

// BuildToBuffer generates the docx and returns it as a byte buffer.
func (w *Writer) BuildToBuffer() (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := w.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteTo writes the docx archive to a writer.
func (w *Writer) WriteTo(out io.Writer) error {
	zw := zip.NewWriter(out)
	defer zw.Close()

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", w.documentXML()},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}
	return nil
}

func (w *Writer) documentXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range w.paragraphs {
		writeParagraphXML(&sb, p)
	}
	writeSectPrXML(&sb, w.geometry)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func writeParagraphXML(sb *strings.Builder, p OutputParagraph) {
	f := p.Format
	sb.WriteString(`<w:p><w:pPr>`)
	if f.KeepWithNext {
		sb.WriteString(`<w:keepNext/>`)
	}
	if f.PageBreakBefore {
		sb.WriteString(`<w:pageBreakBefore/>`)
	}
	writeSpacingXML(sb, f)
	if f.LeftIndentIn != 0 || f.RightIndentIn != 0 {
		fmt.Fprintf(sb, `<w:ind w:left="%d" w:right="%d"/>`,
			inchesToTwips(f.LeftIndentIn), inchesToTwips(f.RightIndentIn))
	}
	if jc := alignmentToVal(f.Alignment); jc != "" {
		fmt.Fprintf(sb, `<w:jc w:val="%s"/>`, jc)
	}
	writeRunPropsXML(sb, f)
	sb.WriteString(`</w:pPr>`)
	sb.WriteString(`<w:r>`)
	writeRunPropsXML(sb, f)
	fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(p.Text))
	sb.WriteString(`</w:r></w:p>`)
}

func writeSpacingXML(sb *strings.Builder, f ParagraphFormat) {
	var attrs []string
	if f.SpaceBeforePt != 0 {
		attrs = append(attrs, fmt.Sprintf(`w:before="%d"`, pointsToTwentieths(f.SpaceBeforePt)))
	}
	if f.SpaceAfterPt != 0 {
		attrs = append(attrs, fmt.Sprintf(`w:after="%d"`, pointsToTwentieths(f.SpaceAfterPt)))
	}
	switch {
	case f.LineSpacing == 0 || f.LineSpacing == 1:
		// single spacing, leave unset
	case f.LineSpacing < exactSpacingThreshold:
		attrs = append(attrs, fmt.Sprintf(`w:line="%d" w:lineRule="auto"`,
			int(math.Round(f.LineSpacing*twipsPerLine))))
	default:
		attrs = append(attrs, fmt.Sprintf(`w:line="%d" w:lineRule="exact"`,
			pointsToTwentieths(f.LineSpacing)))
	}
	if len(attrs) > 0 {
		fmt.Fprintf(sb, `<w:spacing %s/>`, strings.Join(attrs, " "))
	}
}

func writeRunPropsXML(sb *strings.Builder, f ParagraphFormat) {
	if f.FontName == "" && f.FontSizePt == 0 {
		return
	}
	sb.WriteString(`<w:rPr>`)
	if f.FontName != "" {
		name := escapeXML(f.FontName)
		fmt.Fprintf(sb, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, name, name)
	}
	if f.FontSizePt != 0 {
		fmt.Fprintf(sb, `<w:sz w:val="%d"/>`, int(math.Round(f.FontSizePt*2)))
	}
	sb.WriteString(`</w:rPr>`)
}

func writeSectPrXML(sb *strings.Builder, g SectionGeometry) {
	fmt.Fprintf(sb, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/>`,
		inchesToTwips(g.PageWidthIn), inchesToTwips(g.PageHeightIn))
	fmt.Fprintf(sb, `<w:pgMar w:top="%d" w:bottom="%d" w:left="%d" w:right="%d"/></w:sectPr>`,
		inchesToTwips(g.TopMarginIn), inchesToTwips(g.BottomMarginIn),
		inchesToTwips(g.LeftMarginIn), inchesToTwips(g.RightMarginIn))
}

func alignmentToVal(a string) string {
	switch a {
	case "justify":
		return "both"
	case "left", "center", "right":
		return a
	}
	return ""
}

func inchesToTwips(in float64) int {
	return int(math.Round(in * twipsPerInch))
}

func pointsToTwentieths(pt float64) int {
	return int(math.Round(pt * 20))
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman"/>
        <w:sz w:val="24"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
</w:styles>`
