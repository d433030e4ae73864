// Package blueprint discovers the logical section structure of legal
// documents. It orchestrates a two-phase LLM exchange (free-text discovery,
// then strict-JSON structuring) with a layered fallback ladder down to fixed
// default templates.
package blueprint

import (
	"regexp"
	"strings"
)

// Section is one logical part of a document, in reading order.
type Section struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

// Blueprint is the ordered section structure of a target document. Order is
// the authoritative reading order for assembly.
type Blueprint struct {
	Sections     []Section `json:"sections"`
	FallbackUsed bool      `json:"fallback_used,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Names returns the section names in blueprint order, skipping empties.
func (b *Blueprint) Names() []string {
	names := make([]string, 0, len(b.Sections))
	for _, s := range b.Sections {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

// Pair is a (name, purpose) couple parsed from discovery output.
type Pair struct {
	Name    string
	Purpose string
}

func blueprintFromPairs(pairs []Pair) *Blueprint {
	sections := make([]Section, 0, len(pairs))
	for _, p := range pairs {
		sections = append(sections, Section{
			ID:      len(sections) + 1,
			Name:    p.Name,
			Purpose: p.Purpose,
		})
	}
	return &Blueprint{Sections: sections}
}

var (
	multiSpace   = regexp.MustCompile(` +`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes whitespace in uploaded sample text before it is
// embedded in prompts.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
