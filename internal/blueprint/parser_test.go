package blueprint

import (
	"reflect"
	"testing"
)

func TestParseDiscoveryList_DashSeparators(t *testing.T) {
	input := "1. Case Caption — Court and parties\n2. Signature Block - Attorney signature"
	got := ParseDiscoveryList(input)
	want := []Pair{
		{Name: "Case Caption", Purpose: "Court and parties"},
		{Name: "Signature Block", Purpose: "Attorney signature"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseDiscoveryList() = %#v, want %#v", got, want)
	}
}

func TestParseDiscoveryList_ParenNumberingAndColon(t *testing.T) {
	input := "1) Venue: Where the action is brought\n2) Prayer for Relief – Requested damages"
	got := ParseDiscoveryList(input)
	want := []Pair{
		{Name: "Venue", Purpose: "Where the action is brought"},
		{Name: "Prayer for Relief", Purpose: "Requested damages"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseDiscoveryList() = %#v, want %#v", got, want)
	}
}

func TestParseDiscoveryList_NoSeparatorWholeLineIsName(t *testing.T) {
	got := ParseDiscoveryList("3. Memorandum of Law")
	want := []Pair{{Name: "Memorandum of Law"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseDiscoveryList() = %#v, want %#v", got, want)
	}
}

func TestParseDiscoveryList_BlankAndBareNumberLinesIgnored(t *testing.T) {
	input := "\n\n1. Caption — Parties\n\n2.\n   \n3. Facts — What happened\n"
	got := ParseDiscoveryList(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %#v", got)
	}
}

func TestParseDiscoveryList_EmptyInput(t *testing.T) {
	if got := ParseDiscoveryList(""); len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
}

func TestCleanText(t *testing.T) {
	in := "a\tb   c\n\n\n\nd"
	want := "a b c\n\nd"
	if got := CleanText(in); got != want {
		t.Fatalf("CleanText() = %q, want %q", got, want)
	}
}
