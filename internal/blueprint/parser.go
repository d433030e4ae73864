package blueprint

import (
	"regexp"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^\d+[.)]\s*`)

// Separators between section name and purpose, tried in order. Em dash, en
// dash, hyphen, colon.
var pairSeparators = []string{" — ", " – ", " - ", ": "}

// ParseDiscoveryList parses numbered section lines from free text into
// (name, purpose) pairs.
//
// Handles "1. Section Name — purpose" and "1) Name - purpose" forms. Blank
// lines are ignored, leading numbering is stripped, and a line without a
// recognized separator becomes a name with an empty purpose. Pure function;
// worst case is an empty list.
func ParseDiscoveryList(raw string) []Pair {
	var out []Pair
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rest := strings.TrimSpace(leadingNumber.ReplaceAllString(line, ""))
		if rest == "" {
			continue
		}
		matched := false
		for _, sep := range pairSeparators {
			i := strings.Index(rest, sep)
			if i < 0 {
				continue
			}
			name := strings.TrimSpace(rest[:i])
			purpose := strings.TrimSpace(rest[i+len(sep):])
			if name != "" {
				out = append(out, Pair{Name: name, Purpose: purpose})
			}
			matched = true
			break
		}
		if !matched {
			out = append(out, Pair{Name: rest})
		}
	}
	return out
}
