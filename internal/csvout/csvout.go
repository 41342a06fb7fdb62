// Package csvout serializes mapped rows into the Todoist CSV import format.
package csvout

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lherron/things2todoist/internal/convert"
)

// Header is the column set of the Todoist import contract. It is fixed:
// the consuming service rejects files with a different layout.
var Header = []string{
	"TYPE", "CONTENT", "DESCRIPTION", "PRIORITY", "INDENT",
	"AUTHOR", "RESPONSIBLE", "DATE", "DATE_LANG", "TIMEZONE",
	"DURATION", "DURATION_UNIT",
}

// Marshal renders the header plus one record per row with standard CSV
// quoting. Output is deterministic for a given row list.
func Marshal(rows []convert.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(record(row)); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes rows to path, creating parent directories as needed.
// An unwritable destination is fatal to the caller; no partial-file cleanup
// is attempted.
func Write(path string, rows []convert.Row) error {
	data, err := Marshal(rows)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// record maps a row onto the fixed column set. Tags ride inside CONTENT as
// #tokens, which is how the destination parses labels; AUTHOR, RESPONSIBLE,
// and the DURATION pair stay empty.
func record(r convert.Row) []string {
	content := r.Content
	if r.Tags != "" {
		content = content + " " + r.Tags
	}

	return []string{
		string(r.Type),
		content,
		r.Description,
		strconv.Itoa(r.Priority),
		strconv.Itoa(r.Indent),
		"", // AUTHOR
		"", // RESPONSIBLE
		r.Date,
		r.DateLang,
		r.Timezone,
		"", // DURATION
		"", // DURATION_UNIT
	}
}
