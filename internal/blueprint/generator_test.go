package blueprint

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/draftsmith/draftsmith/internal/providers"
)

// Prompt fingerprints for the two phases.
const (
	discoveryMark   = "legal document analyst"
	structuringMark = "Convert the following section list"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

const sixLineDiscovery = `1. Case Caption — Court and parties
2. Summons Notice — Response deadline
3. Factual Allegations — Numbered facts
4. Cause of Action — Legal claims
5. Prayer for Relief — Damages requested
6. Signature Block — Attorney signature`

func TestGenerate_DiscoveryEarlyExitSkipsStructuring(t *testing.T) {
	mock := providers.NewMockGenerator().Stub(discoveryMark, sixLineDiscovery)
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "summons complaint text", "another complaint")

	if bp.FallbackUsed {
		t.Fatal("fallback should not be used")
	}
	if len(bp.Sections) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(bp.Sections))
	}
	if got := mock.CallsMatching(structuringMark); got != 0 {
		t.Fatalf("structuring phase invoked %d times, want 0", got)
	}
	if mock.Calls() != 1 {
		t.Fatalf("expected exactly 1 LLM call, got %d", mock.Calls())
	}
	if bp.Sections[0].Name != "Case Caption" || bp.Sections[0].ID != 1 {
		t.Fatalf("unexpected first section: %+v", bp.Sections[0])
	}
	if bp.Sections[5].Name != "Signature Block" || bp.Sections[5].ID != 6 {
		t.Fatalf("unexpected last section: %+v", bp.Sections[5])
	}
}

func TestGenerate_DiscoveryTransportFailureUsesTemplate(t *testing.T) {
	mock := providers.NewMockGenerator()
	mock.StubErr(discoveryMark, errors.New("connection refused"))
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "SUMMONS in this case", "COMPLAINT against defendant")

	if !bp.FallbackUsed {
		t.Fatal("expected fallback_used=true")
	}
	if bp.Error == "" {
		t.Fatal("expected error message attached")
	}
	want := FallbackSections(DocTypeComplaint)
	if len(bp.Sections) != len(want) {
		t.Fatalf("expected %d complaint template sections, got %d", len(want), len(bp.Sections))
	}
	for i := range want {
		if bp.Sections[i].Name != want[i].Name {
			t.Fatalf("section %d = %q, want %q", i, bp.Sections[i].Name, want[i].Name)
		}
	}
}

func TestGenerate_MotionTemplateSelectedByHeuristic(t *testing.T) {
	mock := providers.NewMockGenerator()
	mock.StubErr(discoveryMark, errors.New("quota exceeded"))
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "NOTICE OF MOTION to dismiss", "motion papers")

	if len(bp.Sections) != 6 {
		t.Fatalf("expected 6 motion template sections, got %d", len(bp.Sections))
	}
	if bp.Sections[1].Name != "Notice of Motion" {
		t.Fatalf("unexpected section: %+v", bp.Sections[1])
	}
}

func TestGenerate_StructuringSuccess(t *testing.T) {
	mock := providers.NewMockGenerator().
		Stub(discoveryMark, "I found two parts: the caption and the body.").
		Stub(structuringMark, `{"sections": [
			{"name": "Case Caption", "purpose": "Court and parties"},
			{"name": "Summons Notice", "purpose": "Deadline"},
			{"name": "Allegations", "purpose": "Facts"},
			{"name": "Relief", "purpose": "Damages"},
			{"name": "Signature Block", "purpose": "Signature"}
		]}`)
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "doc one", "doc two")

	if bp.FallbackUsed {
		t.Fatalf("fallback should not be used: %+v", bp)
	}
	if len(bp.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(bp.Sections))
	}
	if got := mock.CallsMatching(structuringMark); got != 1 {
		t.Fatalf("structuring invoked %d times, want 1", got)
	}
	for i, s := range bp.Sections {
		if s.ID != i+1 {
			t.Fatalf("section %d has id %d", i, s.ID)
		}
	}
}

func TestGenerate_StructuringRetriedExactlyThreeTimes(t *testing.T) {
	mock := providers.NewMockGenerator().
		Stub(discoveryMark, "only prose, nothing numbered").
		Stub(structuringMark, "this is not json at all")
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "some petition", "other petition")

	if got := mock.CallsMatching(structuringMark); got != 3 {
		t.Fatalf("structuring attempted %d times, want exactly 3", got)
	}
	if !bp.FallbackUsed {
		t.Fatal("expected template fallback after retries exhausted")
	}
	if bp.Error == "" {
		t.Fatal("expected last error attached to fallback blueprint")
	}
}

func TestGenerate_StructuringValidationFailureTooFewSections(t *testing.T) {
	mock := providers.NewMockGenerator().
		Stub(discoveryMark, "prose").
		Stub(structuringMark, `{"sections": [{"name": "Only One", "purpose": ""}]}`)
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "a", "b")

	if got := mock.CallsMatching(structuringMark); got != 3 {
		t.Fatalf("structuring attempted %d times, want 3", got)
	}
	if !bp.FallbackUsed {
		t.Fatal("expected fallback after validation failures")
	}
	if !strings.Contains(bp.Error, "too few sections") {
		t.Fatalf("expected validation error attached, got %q", bp.Error)
	}
}

func TestGenerate_StructuringRecoversOnLaterAttempt(t *testing.T) {
	good := `{"sections": [
		{"name": "A", "purpose": ""}, {"name": "B", "purpose": ""},
		{"name": "C", "purpose": ""}, {"name": "D", "purpose": ""},
		{"name": "E", "purpose": ""}
	]}`
	mock := providers.NewMockGenerator().
		Stub(discoveryMark, "prose").
		Stub(structuringMark, "garbage", "still garbage", good)
	g := NewGenerator(mock, discard())

	bp := g.Generate(context.Background(), "a", "b")

	if bp.FallbackUsed {
		t.Fatalf("expected success on third attempt: %+v", bp)
	}
	if got := mock.CallsMatching(structuringMark); got != 3 {
		t.Fatalf("structuring attempted %d times, want 3", got)
	}
	if len(bp.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(bp.Sections))
	}
}

func TestStructureOnce_LooseShapes(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name: "alternate container key",
			response: `{"items": [
				{"title": "Caption"}, {"title": "Notice"}, {"title": "Facts"},
				{"title": "Relief"}, {"title": "Signature"}
			]}`,
			want: []string{"Caption", "Notice", "Facts", "Relief", "Signature"},
		},
		{
			name:     "bare string items",
			response: `["Caption", "Notice", "Facts", "Relief", "Signature"]`,
			want:     []string{"Caption", "Notice", "Facts", "Relief", "Signature"},
		},
		{
			name: "nested under unknown key",
			response: `{"result": {"inner": [
				{"heading": "Caption", "description": "p"},
				{"heading": "Notice"}, {"heading": "Facts"},
				{"heading": "Relief"}, {"heading": "Signature"}
			]}}`,
			want: []string{"Caption", "Notice", "Facts", "Relief", "Signature"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := providers.NewMockGenerator().
				Stub(discoveryMark, "prose").
				Stub(structuringMark, tc.response)
			g := NewGenerator(mock, discard())

			bp := g.Generate(context.Background(), "a", "b")
			if bp.FallbackUsed {
				t.Fatalf("fallback used: %+v", bp)
			}
			if len(bp.Sections) != len(tc.want) {
				t.Fatalf("got %d sections, want %d", len(bp.Sections), len(tc.want))
			}
			for i, name := range tc.want {
				if bp.Sections[i].Name != name {
					t.Fatalf("section %d = %q, want %q", i, bp.Sections[i].Name, name)
				}
			}
		})
	}
}

func TestGuessDocType(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"SUMMONS AND COMPLAINT", DocTypeComplaint},
		{"notice of motion for summary judgment", DocTypeMotion},
		{"verified petition of the plaintiff", DocTypePetition},
		{"affidavit of service", DocTypeAffidavit},
		{"a lease agreement", DocTypeUnknown},
	}
	for _, tc := range cases {
		if got := GuessDocType(tc.text); got != tc.want {
			t.Fatalf("GuessDocType(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestCheckRequired(t *testing.T) {
	bp := &Blueprint{Sections: FallbackSections(DocTypeComplaint)}
	if err := CheckRequired(bp, []string{"Summons", "Caption", "Verification"}); err != nil {
		t.Fatalf("CheckRequired() error = %v", err)
	}
	if err := CheckRequired(bp, []string{"Table of Authorities"}); err == nil {
		t.Fatal("expected missing-section error")
	}
}
