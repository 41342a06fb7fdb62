package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/lherron/things2todoist/internal/convert"
	"github.com/lherron/things2todoist/internal/csvout"
	"github.com/pmezard/go-difflib/difflib"
)

// diffExisting prints a unified diff between the CSV currently at path and
// the CSV the new rows would produce. A missing previous file is not an
// error; there is simply nothing to compare against yet.
func diffExisting(w io.Writer, path string, rows []convert.Row) error {
	previous, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "%s does not exist yet, nothing to diff\n", path)
			return nil
		}
		return fmt.Errorf("failed to read previous export: %w", err)
	}

	next, err := csvout.Marshal(rows)
	if err != nil {
		return err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(previous)),
		B:        difflib.SplitLines(string(next)),
		FromFile: path + " (previous)",
		ToFile:   path + " (new)",
		Context:  3,
	}
	diffText, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("failed to compute diff: %w", err)
	}

	if diffText == "" {
		fmt.Fprintf(w, "%s is unchanged\n", path)
		return nil
	}
	_, err = fmt.Fprint(w, diffText)
	return err
}
