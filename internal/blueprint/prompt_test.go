package blueprint

import (
	"strings"
	"testing"
)

func TestBuildDiscoveryPrompt(t *testing.T) {
	p := buildDiscoveryPrompt("FIRST SAMPLE BODY", "SECOND SAMPLE BODY")

	for _, want := range []string{
		"legal document analyst",
		"at least 6 lines",
		"10-12 sections",
		"do NOT output JSON",
		"FIRST SAMPLE BODY",
		"SECOND SAMPLE BODY",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("discovery prompt missing %q", want)
		}
	}
	if strings.Index(p, "FIRST SAMPLE BODY") > strings.Index(p, "SECOND SAMPLE BODY") {
		t.Error("samples embedded out of order")
	}
}

func TestBuildStructuringPrompt(t *testing.T) {
	p := buildStructuringPrompt("1. Caption — parties")

	for _, want := range []string{
		"Convert the following section list",
		"Do NOT remove sections",
		`"sections"`,
		"1. Caption — parties",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("structuring prompt missing %q", want)
		}
	}
}
