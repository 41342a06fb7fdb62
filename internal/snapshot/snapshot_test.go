package snapshot

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lherron/things2todoist/internal/testutil"
	"github.com/lherron/things2todoist/internal/things"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	db := &things.Database{
		Areas: []things.Area{{ID: "a1", Name: "Work"}},
		Projects: []things.Project{
			{ID: "p1", Name: "Launch", Status: things.StatusActive, AreaID: "a1"},
		},
		ToDos: []things.ToDo{
			{
				ID:        "t1",
				Title:     "Write report",
				Status:    things.StatusActive,
				DueDate:   "2026-08-30",
				ProjectID: "p1",
				Tags:      []string{"urgent"},
				Checklist: []things.ChecklistItem{{Title: "Draft", Status: things.StatusCompleted}},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "things.json")
	snap, err := Write(path, db)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if snap.Meta.SchemaVersion != SchemaVersion {
		t.Errorf("schema_version = %d", snap.Meta.SchemaVersion)
	}
	if snap.Meta.ExportID == "" {
		t.Error("export_id must be set")
	}
	if snap.Meta.GeneratedAt == "" {
		t.Error("generated_at must be set")
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(got, db) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, db)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

func TestRead_WrongSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "old.json", `{"meta":{"schema_version":99,"export_id":"x","generated_at":"2026-01-01T00:00:00Z"}}`)

	if _, err := Read(path); err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
}
