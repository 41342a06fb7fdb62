package csvout

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lherron/things2todoist/internal/convert"
)

func TestMarshal_HeaderFixed(t *testing.T) {
	// Header is identical regardless of input content.
	empty, err := Marshal(nil)
	if err != nil {
		t.Fatal(err)
	}
	populated, err := Marshal([]convert.Row{
		{Type: convert.RowTask, Content: "Anything", Priority: 1, Indent: 1, DateLang: "en"},
	})
	if err != nil {
		t.Fatal(err)
	}

	wantHeader := "TYPE,CONTENT,DESCRIPTION,PRIORITY,INDENT,AUTHOR,RESPONSIBLE,DATE,DATE_LANG,TIMEZONE,DURATION,DURATION_UNIT"
	for _, data := range [][]byte{empty, populated} {
		first := strings.SplitN(string(data), "\n", 2)[0]
		if strings.TrimRight(first, "\r") != wantHeader {
			t.Errorf("header = %q, want %q", first, wantHeader)
		}
	}
}

func TestMarshal_Record(t *testing.T) {
	data, err := Marshal([]convert.Row{
		{
			Type:        convert.RowTask,
			Content:     "Write report",
			Description: "quarterly numbers",
			Tags:        "#urgent",
			Priority:    4,
			Indent:      2,
			Date:        "2026-08-30 every week",
			DateLang:    "en",
			Timezone:    "Europe/Berlin",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 record, got %d", len(records))
	}

	rec := records[1]
	if rec[0] != "task" {
		t.Errorf("TYPE = %q", rec[0])
	}
	if rec[1] != "Write report #urgent" {
		t.Errorf("CONTENT = %q, tags must ride in content", rec[1])
	}
	if rec[2] != "quarterly numbers" {
		t.Errorf("DESCRIPTION = %q", rec[2])
	}
	if rec[3] != "4" || rec[4] != "2" {
		t.Errorf("PRIORITY/INDENT = %q/%q", rec[3], rec[4])
	}
	if rec[5] != "" || rec[6] != "" || rec[10] != "" || rec[11] != "" {
		t.Error("AUTHOR, RESPONSIBLE, and DURATION columns must stay empty")
	}
	if rec[7] != "2026-08-30 every week" || rec[8] != "en" || rec[9] != "Europe/Berlin" {
		t.Errorf("DATE/DATE_LANG/TIMEZONE = %q/%q/%q", rec[7], rec[8], rec[9])
	}
}

func TestMarshal_Quoting(t *testing.T) {
	data, err := Marshal([]convert.Row{
		{Type: convert.RowTask, Content: `Call "the team", then rest`, Priority: 1, Indent: 1, DateLang: "en"},
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("quoted output does not round-trip: %v", err)
	}
	if records[1][1] != `Call "the team", then rest` {
		t.Errorf("CONTENT = %q", records[1][1])
	}
}

func TestWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "out.csv")

	rows := []convert.Row{
		{Type: convert.RowSection, Content: "Work", Priority: 1, Indent: 1, DateLang: "en"},
	}
	if err := Write(path, rows); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := readCSVFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(records))
	}
	if records[1][0] != "section" || records[1][1] != "Work" {
		t.Errorf("record = %v", records[1])
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	// A directory as the destination file is unwritable on every platform.
	tmpDir := t.TempDir()
	err := Write(tmpDir, nil)
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if !strings.Contains(err.Error(), "failed to write output file") {
		t.Errorf("error = %v", err)
	}
}

func readCSVFile(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return csv.NewReader(strings.NewReader(string(data))).ReadAll()
}
