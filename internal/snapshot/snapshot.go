// Package snapshot persists one extraction pass as a JSON file so a later
// run can re-map and re-filter without the source application. Snapshots
// are plain serialized records, not an incremental store: each file is a
// complete, self-contained copy of what the bridge returned.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lherron/things2todoist/internal/things"
)

// SchemaVersion identifies the snapshot file layout
const SchemaVersion = 1

// Snapshot is a point-in-time copy of everything fetched from Things
type Snapshot struct {
	Meta     Meta             `json:"meta"`
	Areas    []things.Area    `json:"areas,omitempty"`
	Projects []things.Project `json:"projects,omitempty"`
	ToDos    []things.ToDo    `json:"todos,omitempty"`
}

// Meta records when and by which run the snapshot was taken
type Meta struct {
	SchemaVersion int    `json:"schema_version"`
	ExportID      string `json:"export_id"`
	GeneratedAt   string `json:"generated_at"`
}

// New wraps the fetched records with fresh metadata
func New(db *things.Database) *Snapshot {
	return &Snapshot{
		Meta: Meta{
			SchemaVersion: SchemaVersion,
			ExportID:      uuid.NewString(),
			GeneratedAt:   FormatTimestamp(time.Now()),
		},
		Areas:    db.Areas,
		Projects: db.Projects,
		ToDos:    db.ToDos,
	}
}

// Write serializes the records to path as indented JSON
func Write(path string, db *things.Database) (*Snapshot, error) {
	snap := New(db)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate snapshot JSON: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	return snap, nil
}

// Read loads a snapshot and returns the records it carries
func Read(path string) (*things.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Meta.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot schema version %d", snap.Meta.SchemaVersion)
	}

	return &things.Database{
		Areas:    snap.Areas,
		Projects: snap.Projects,
		ToDos:    snap.ToDos,
	}, nil
}

// FormatTimestamp formats a time.Time as ISO-8601 with Z suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
