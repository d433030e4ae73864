package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/draftsmith/draftsmith/internal/blueprint"
)

func TestSaveLoad_SharedFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewTemplateStore(dir, false)

	bp := &blueprint.Blueprint{Sections: []blueprint.Section{{ID: 1, Name: "Caption", Purpose: "p"}}}
	if err := s.Save("req-1", bp, map[string]string{"Caption": "first"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save("req-2", bp, map[string]string{"Caption": "second"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "templates.json" {
		t.Fatalf("expected single templates.json, got %v", entries)
	}

	snap, err := s.Load("whatever")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.Templates["Caption"] != "second" {
		t.Fatalf("last write should win, got %q", snap.Templates["Caption"])
	}
	if len(snap.Blueprint.Sections) != 1 || snap.Blueprint.Sections[0].Name != "Caption" {
		t.Fatalf("blueprint = %+v", snap.Blueprint)
	}
}

func TestSaveLoad_PerRequestKeying(t *testing.T) {
	dir := t.TempDir()
	s := NewTemplateStore(dir, true)

	bp := &blueprint.Blueprint{Sections: []blueprint.Section{{ID: 1, Name: "Caption"}}}
	if err := s.Save("aaa", bp, map[string]string{"Caption": "one"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("bbb", bp, map[string]string{"Caption": "two"}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "templates-aaa.json")); err != nil {
		t.Fatalf("keyed file missing: %v", err)
	}

	snap, err := s.Load("aaa")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.Templates["Caption"] != "one" {
		t.Fatalf("templates = %v", snap.Templates)
	}
}
