// Package render prints mapped rows for dry runs, so an export can be
// inspected before anything lands on disk.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lherron/things2todoist/internal/convert"
	"gopkg.in/yaml.v3"
)

// Format represents a preview output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json, or yaml)", s)
	}
}

// Preview writes the row list to w in the requested format
func Preview(w io.Writer, rows []convert.Row, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(rows)
	default:
		return previewTable(w, rows)
	}
}

var tableHeaders = []string{"TYPE", "CONTENT", "SECTION", "DATE", "INDENT"}

func previewTable(w io.Writer, rows []convert.Row) error {
	if len(rows) == 0 {
		return nil
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		content := row.Content
		if row.Tags != "" {
			content = content + " " + row.Tags
		}
		cells = append(cells, []string{
			string(row.Type), content, row.Section, row.Date, strconv.Itoa(row.Indent),
		})
	}

	// Calculate column widths
	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	renderRow := func(row []string) error {
		for i, cell := range row {
			if _, err := fmt.Fprintf(w, "%-*s", widths[i], cell); err != nil {
				return err
			}
			if i < len(row)-1 {
				if _, err := fmt.Fprint(w, "  "); err != nil {
					return err
				}
			}
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	if err := renderRow(tableHeaders); err != nil {
		return err
	}
	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	if err := renderRow(separator); err != nil {
		return err
	}

	for _, row := range cells {
		if err := renderRow(row); err != nil {
			return err
		}
	}

	return nil
}
