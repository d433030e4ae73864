package assemble

import (
	"bytes"
	"strings"

	"github.com/draftsmith/draftsmith/internal/blueprint"
	"github.com/draftsmith/draftsmith/internal/docio"
	"github.com/draftsmith/draftsmith/internal/formatting"
)

// DocxAssembler builds the formatted .docx output. Page layout comes from
// the first applyable spec; each paragraph's formatting comes either from
// an explicit section assignment or from a cyclic paragraph-index mapping
// over the reference specs.
type DocxAssembler struct {
	specs       []formatting.Spec
	defaultSpec formatting.Spec
	sectionSpec formatting.Spec
}

// NewDocxAssembler creates an assembler over the reference specs. specs may
// be empty, in which case every paragraph gets the built-in default.
func NewDocxAssembler(specs []formatting.Spec) *DocxAssembler {
	a := &DocxAssembler{
		specs:       specs,
		defaultSpec: formatting.DefaultSpec(),
	}
	a.sectionSpec = a.defaultSpec
	if len(specs) > 0 {
		a.sectionSpec = specs[0]
	}
	return a
}

// specForParagraph returns the cyclic mapping spec: paragraph i of the
// whole document gets specs[i mod N].
func (a *DocxAssembler) specForParagraph(index int) formatting.Spec {
	if len(a.specs) == 0 {
		return a.defaultSpec
	}
	return a.specs[index%len(a.specs)]
}

// specForAssignment returns the spec for an assigned index, clamped into
// range.
func (a *DocxAssembler) specForAssignment(idx int) formatting.Spec {
	if len(a.specs) == 0 {
		return a.defaultSpec
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(a.specs)-1 {
		idx = len(a.specs) - 1
	}
	return a.specs[idx]
}

// Assemble builds the .docx bytes. assignment maps section name to spec
// index; when nil (or when there are no reference specs) the cyclic
// paragraph mapping is used instead.
func (a *DocxAssembler) Assemble(bp *blueprint.Blueprint, sections map[string]string, assignment map[string]int) ([]byte, error) {
	useAssignment := assignment != nil && len(a.specs) > 0

	var paragraphs []docio.OutputParagraph
	globalIndex := 0
	for _, name := range bp.Names() {
		text := strings.TrimSpace(sections[name])
		text = StripLeadingSectionTitle(text, name)
		if text == "" {
			continue
		}
		var sectionSpec formatting.Spec
		if useAssignment {
			sectionSpec = a.specForAssignment(assignment[name])
		}
		for _, paraText := range strings.Split(text, "\n\n") {
			paraText = strings.TrimSpace(paraText)
			if paraText == "" {
				continue
			}
			spec := sectionSpec
			if !useAssignment {
				spec = a.specForParagraph(globalIndex)
			}
			paragraphs = append(paragraphs, docio.OutputParagraph{
				Text:   paraText,
				Format: spec.ParagraphFormat(),
			})
			globalIndex++
		}
	}

	buf, err := docio.NewWriter(paragraphs, a.sectionSpec.DocumentGeometry()).BuildToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AssembleStream is Assemble returning a reader, for HTTP downloads.
func (a *DocxAssembler) AssembleStream(bp *blueprint.Blueprint, sections map[string]string, assignment map[string]int) (*bytes.Reader, error) {
	data, err := a.Assemble(bp, sections, assignment)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
