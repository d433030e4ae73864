package jsonx

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExtract_FencedJSONMatchesDirectParse(t *testing.T) {
	inner := `{"sections":[{"name":"Case Caption","purpose":"Court and parties"}]}`
	response := "Here is the structure you asked for:\n```json\n" + inner + "\n```\nLet me know if you need changes."

	got, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	var want any
	if err := json.Unmarshal([]byte(inner), &want); err != nil {
		t.Fatalf("failed to parse reference JSON: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract() = %#v, want %#v", got, want)
	}
}

func TestExtract_FenceWithoutLanguageTag(t *testing.T) {
	response := "```\n{\"ok\": true}\n```"
	got, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok || m["ok"] != true {
		t.Fatalf("Extract() = %#v, want map with ok=true", got)
	}
}

func TestExtract_TrailingCommas(t *testing.T) {
	response := `{"sections": [{"name": "A",}, {"name": "B",},],}`
	got, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	m := got.(map[string]any)
	list := m["sections"].([]any)
	if len(list) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(list))
	}
}

func TestExtract_UnescapedControlCharsInStrings(t *testing.T) {
	response := "{\"name\": \"Case\nCaption\", \"purpose\": \"tab\there\"}"
	got, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	m := got.(map[string]any)
	if m["name"] != "Case\nCaption" {
		t.Fatalf("name = %q, want embedded newline preserved as \\n", m["name"])
	}
	if m["purpose"] != "tab\there" {
		t.Fatalf("purpose = %q, want embedded tab preserved as \\t", m["purpose"])
	}
}

func TestExtract_BalancedSpanWithSurroundingGarbage(t *testing.T) {
	// The prose after the JSON has an unmatched brace, so only the balanced
	// span scan recovers the object.
	response := `The result {"name": "Signature Block"} and here is a stray } brace`
	got, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	m := got.(map[string]any)
	if m["name"] != "Signature Block" {
		t.Fatalf("name = %q", m["name"])
	}
}

func TestExtract_BracesInsideQuotedStrings(t *testing.T) {
	got, err := Extract(`noise {"text": "a } inside"} trailing`)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	m := got.(map[string]any)
	if m["text"] != "a } inside" {
		t.Fatalf("text = %q", m["text"])
	}
}

func TestExtract_ArrayValue(t *testing.T) {
	got, err := Extract("Sections:\n[\"Caption\", \"Notice\"]")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("Extract() = %#v, want 2-element array", got)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := Extract(input)
		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Fatalf("Extract(%q) error = %v, want MalformedOutputError", input, err)
		}
	}
}

func TestExtract_NoJSONAtAll(t *testing.T) {
	_, err := Extract("I could not produce the requested structure, sorry.")
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedOutputError", err)
	}
	if malformed.Snippet == "" {
		t.Fatal("expected snippet of offending text")
	}
}

func TestExtract_SnippetIsBounded(t *testing.T) {
	_, err := Extract("x" + strings.Repeat("y", 2000))
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedOutputError", err)
	}
	if len(malformed.Snippet) > snippetLimit+3 {
		t.Fatalf("snippet length %d exceeds bound", len(malformed.Snippet))
	}
}

func TestExtract_UglyButValidJSONNeverErrors(t *testing.T) {
	response := "\n\n  {\"a\"\n:\n[1,\n2,   3]\t}  \n"
	got, err := Extract(response)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	m := got.(map[string]any)
	if len(m["a"].([]any)) != 3 {
		t.Fatalf("Extract() = %#v", got)
	}
}

func TestEscapeControlCharsInStrings_OutsideStringsUntouched(t *testing.T) {
	in := "{\n\"a\": \"b\"\n}"
	if got := escapeControlCharsInStrings(in); got != in {
		t.Fatalf("whitespace outside strings was altered: %q", got)
	}
}

func TestEscapeControlCharsInStrings_EscapedQuoteStaysInString(t *testing.T) {
	in := "{\"a\": \"say \\\"hi\nthere\\\"\"}"
	got := escapeControlCharsInStrings(in)
	if !strings.Contains(got, `\n`) {
		t.Fatalf("newline inside string not escaped: %q", got)
	}
	var v any
	if err := json.Unmarshal([]byte(got), &v); err != nil {
		t.Fatalf("escaped output is not valid JSON: %v", err)
	}
}
