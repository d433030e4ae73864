// Package assemble joins generated section bodies into the final document,
// as flowing text or as a formatted .docx.
package assemble

import (
	"strings"

	"github.com/draftsmith/draftsmith/internal/blueprint"
)

// StripLeadingSectionTitle removes the first line of text when it is just
// the section name, so accidental self-titling by the generation step does
// not produce headed sections. Markdown emphasis markers and leading
// enumeration are ignored in the comparison.
func StripLeadingSectionTitle(text, sectionName string) string {
	if text == "" || sectionName == "" {
		return text
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 {
		return text
	}
	first := strings.TrimSpace(lines[0])
	normalizedFirst := strings.Trim(strings.TrimSpace(strings.TrimLeft(first, ".#0123456789) ")), "*_")
	normalizedName := strings.Trim(strings.TrimSpace(sectionName), "*_")
	if strings.EqualFold(normalizedFirst, normalizedName) {
		rest := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if rest != "" {
			return rest
		}
	}
	return text
}

// AssembleText joins the generated sections in blueprint order with a blank
// line between bodies. Sections with no remaining text are skipped.
func AssembleText(bp *blueprint.Blueprint, sections map[string]string) string {
	var parts []string
	for _, name := range bp.Names() {
		text := strings.TrimSpace(sections[name])
		text = StripLeadingSectionTitle(text, name)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
