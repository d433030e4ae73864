// Package draft builds per-section prompts and generates section bodies
// from the case summary.
package draft

import "fmt"

const (
	genericPurpose = "See sample for structure."
	noSample       = "(No sample provided; use standard legal format for this section.)"
)

// Builder constructs the per-section drafting prompt: what to take from
// the case summary and which sample format to imitate.
type Builder struct{}

// Build returns the drafting prompt for one section.
func (Builder) Build(name, purpose, examples string) string {
	if purpose == "" {
		purpose = genericPurpose
	}
	if examples == "" {
		examples = noSample
	}
	return fmt.Sprintf(`You are writing the "%s" section of a legal document.

Purpose of this section: %s

Use the Case Data/Summary provided below to get the facts and information for this section. Write only what belongs in this section. Match the format, style, and structure of the sample(s) below so the new section looks like the examples.

Sample text for this section (format to follow):
---
%s
---

Rules:
- Get all relevant information from the Case Data for this section only.
- Follow the exact format and style of the sample (headings, spacing, wording patterns).
- Do not invent facts; use only what is in the Case Data.
- Output only the section text, no meta-commentary.
- Do NOT include the section name or title in your output. Write only the body content so this section reads as a direct continuation of the document, not as a new headed section.`, name, purpose, examples)
}

// BuildAll returns the prompt for every blueprint section, keyed by name.
// templates maps section name to its merged sample text.
func (b Builder) BuildAll(names []string, purposes, templates map[string]string) map[string]string {
	prompts := make(map[string]string, len(names))
	for _, name := range names {
		prompts[name] = b.Build(name, purposes[name], templates[name])
	}
	return prompts
}
