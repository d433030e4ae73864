// Package jsonx recovers structured values from free-form LLM output.
//
// Model responses frequently wrap JSON in markdown fences, prefix it with
// prose, leave trailing commas, or forget to escape newlines inside string
// literals. Extract applies an ordered ladder of repair strategies and only
// fails once all of them are exhausted.
package jsonx

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// snippetLimit bounds the amount of offending text carried on errors.
const snippetLimit = 400

// MalformedOutputError reports that no JSON value could be recovered from a
// model response. Snippet holds a bounded prefix of the offending text.
type MalformedOutputError struct {
	Reason  string
	Snippet string
}

func (e *MalformedOutputError) Error() string {
	if e.Snippet == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (snippet: %q)", e.Reason, e.Snippet)
}

var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// Extract parses a JSON object or array out of an LLM response.
//
// Strategy order: strip a single pair of code fences, trim prose before the
// first brace/bracket, direct parse, trailing-comma repair, control-character
// escaping inside strings, then a balanced-span scan for the first complete
// JSON value. Valid-but-ugly JSON never errors.
func Extract(response string) (any, error) {
	if strings.TrimSpace(response) == "" {
		return nil, &MalformedOutputError{Reason: "empty model response"}
	}
	text := strings.TrimSpace(response)

	text = stripCodeFences(text)
	if text == "" {
		return nil, &MalformedOutputError{Reason: "model response contained no JSON"}
	}

	text = trimLeadingProse(text)

	if v, ok := tryParse(text); ok {
		return v, nil
	}

	// Last resort: locate the first syntactically balanced value.
	if v, ok := parseBalancedSpan(text, '{', '}'); ok {
		return v, nil
	}
	if v, ok := parseBalancedSpan(text, '[', ']'); ok {
		return v, nil
	}

	return nil, &MalformedOutputError{
		Reason:  "model did not return valid JSON",
		Snippet: snippet(text),
	}
}

// tryParse attempts a direct parse, then the repair variants: trailing-comma
// removal, in-string control-character escaping, and the two combined.
func tryParse(s string) (any, bool) {
	if v, ok := parse(s); ok {
		return v, true
	}
	fixed := repairTrailingCommas(s)
	if v, ok := parse(fixed); ok {
		return v, true
	}
	escaped := escapeControlCharsInStrings(s)
	if v, ok := parse(escaped); ok {
		return v, true
	}
	if v, ok := parse(repairTrailingCommas(escaped)); ok {
		return v, true
	}
	return nil, false
}

func parse(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

func repairTrailingCommas(s string) string {
	s = trailingCommaArray.ReplaceAllString(s, "]")
	return trailingCommaObject.ReplaceAllString(s, "}")
}

// stripCodeFences removes one pair of markdown code fences, tolerating an
// optional "json" language tag after the opening fence.
func stripCodeFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	start := strings.Index(text, "```")
	rest := text[start:]
	if strings.HasPrefix(rest, "```json") {
		start += len("```json")
	} else if nl := strings.Index(rest, "\n"); nl >= 0 {
		start += nl + 1
	} else {
		start += 3
	}
	end := strings.LastIndex(text, "```")
	if end > start {
		return strings.TrimSpace(text[start:end])
	}
	return strings.TrimSpace(text)
}

// trimLeadingProse drops explanatory text before the first '{' or '['
// (e.g. "Here is the JSON:").
func trimLeadingProse(text string) string {
	for _, c := range []string{"{", "["} {
		if pos := strings.Index(text, c); pos > 0 {
			return strings.TrimSpace(text[pos:])
		}
	}
	return text
}

// escapeControlCharsInStrings replaces bare newline, carriage-return and tab
// characters that occur inside double-quoted string literals with their
// escaped forms. Single-pass scan tracking in-string and escape-pending
// state.
func escapeControlCharsInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			b.WriteByte(c)
			if c == '"' {
				inString = true
			}
			continue
		}
		if escape {
			b.WriteByte(c)
			escape = false
			continue
		}
		switch c {
		case '\\':
			b.WriteByte(c)
			escape = true
		case '"':
			b.WriteByte(c)
			inString = false
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// parseBalancedSpan scans for the first complete {...} or [...] span using
// depth counting that ignores brace-like characters inside quoted strings
// (both single and double quotes recognized, backslash-escape aware), then
// parses that span alone.
func parseBalancedSpan(text string, open, close byte) (any, bool) {
	idx := strings.IndexByte(text, open)
	if idx == -1 {
		return nil, false
	}
	depth := 0
	var inStr byte // 0, '"' or '\''
	escape := false
	for i := idx; i < len(text); i++ {
		c := text[i]
		if escape {
			escape = false
			continue
		}
		if c == '\\' && inStr != 0 {
			escape = true
			continue
		}
		if inStr != 0 {
			if c == inStr {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return tryParse(text[idx : i+1])
			}
		}
	}
	return nil, false
}

func snippet(text string) string {
	if len(text) > snippetLimit {
		return text[:snippetLimit] + "..."
	}
	return text
}
