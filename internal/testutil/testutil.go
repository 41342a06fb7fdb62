package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to a file in a temporary directory
func WriteFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile reads content from a file
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// StubRunner satisfies bridge.Runner without spawning osascript. Responses
// map a substring of the script (e.g. "System Events", "areas") to canned
// output; the first match wins. An unmatched script returns "[]".
type StubRunner struct {
	Responses map[string]string
	Err       error
	// Scripts records every script that was executed, in order
	Scripts []string
}

func (r *StubRunner) Run(ctx context.Context, script string) ([]byte, error) {
	r.Scripts = append(r.Scripts, script)
	if r.Err != nil {
		return nil, r.Err
	}
	for key, out := range r.Responses {
		if strings.Contains(script, key) {
			return []byte(out), nil
		}
	}
	return []byte("[]"), nil
}
