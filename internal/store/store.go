// Package store persists per-request intermediate drafting state: the
// blueprint plus the per-section sample templates.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/draftsmith/draftsmith/internal/blueprint"
)

const fileName = "templates.json"

// Snapshot is the persisted unit of request memory. It is written once per
// request as a full overwrite.
type Snapshot struct {
	Blueprint *blueprint.Blueprint `json:"blueprint"`
	Templates map[string]string    `json:"templates"`
}

// TemplateStore writes snapshots to a storage directory. By default every
// request overwrites one templates.json (last write wins); with PerRequest
// enabled each request gets its own keyed file, for deployments where
// concurrent requests must not race on the shared file.
type TemplateStore struct {
	dir        string
	perRequest bool
}

// NewTemplateStore creates a store rooted at dir.
func NewTemplateStore(dir string, perRequest bool) *TemplateStore {
	return &TemplateStore{dir: dir, perRequest: perRequest}
}

// Save persists the blueprint and templates for a request.
func (s *TemplateStore) Save(requestID string, bp *blueprint.Blueprint, templates map[string]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(Snapshot{Blueprint: bp, Templates: templates}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	if err := os.WriteFile(s.path(requestID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write templates: %w", err)
	}
	return nil
}

// Load reads a previously saved snapshot. For the shared-file layout any
// requestID loads the last written snapshot.
func (s *TemplateStore) Load(requestID string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &snap, nil
}

func (s *TemplateStore) path(requestID string) string {
	if s.perRequest && requestID != "" {
		return filepath.Join(s.dir, fmt.Sprintf("templates-%s.json", requestID))
	}
	return filepath.Join(s.dir, fileName)
}
