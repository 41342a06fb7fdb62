// Package bridge talks to a running Things 3 instance through osascript.
// It is the only part of the exporter that touches the outside world on the
// source side; everything downstream consumes plain records.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/lherron/things2todoist/internal/things"
)

// ErrAppNotRunning is returned when the Things 3 process cannot be found.
// Callers treat it as a connectivity failure: fatal, no retry.
var ErrAppNotRunning = errors.New("Things 3 is not running")

// Runner executes one AppleScript program and returns its stdout
type Runner interface {
	Run(ctx context.Context, script string) ([]byte, error)
}

// OsascriptRunner shells out to the osascript binary
type OsascriptRunner struct {
	// Path to the osascript binary (default "osascript")
	Path string
	// Timeout bounds a single script execution; zero means no limit
	Timeout time.Duration
}

// Run executes script via osascript -e and returns trimmed stdout
func (r *OsascriptRunner) Run(ctx context.Context, script string) ([]byte, error) {
	path := r.Path
	if path == "" {
		path = "osascript"
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, "-e", script)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("osascript failed: exit code %d, stderr: %s",
				exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("osascript failed: %w", err)
	}

	return []byte(strings.TrimSpace(string(out))), nil
}

// Client fetches Things records over a Runner
type Client struct {
	runner Runner
}

// NewClient creates a client on top of the given runner
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Ping verifies the Things 3 process exists. Returns ErrAppNotRunning when
// the process check succeeds but the app is not up, and wraps any bridge
// failure (osascript missing, script error) in the same connectivity error.
func (c *Client) Ping(ctx context.Context) error {
	out, err := c.runner.Run(ctx, pingScript)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAppNotRunning, err)
	}
	if string(out) != "true" {
		return ErrAppNotRunning
	}
	return nil
}

// Areas returns every area.
func (c *Client) Areas(ctx context.Context) ([]things.Area, error) {
	out, err := c.runner.Run(ctx, areasScript)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}

	var areas []things.Area
	if err := json.Unmarshal(out, &areas); err != nil {
		return nil, fmt.Errorf("failed to parse areas response: %w", err)
	}
	return areas, nil
}

// Projects returns every project with its status normalized.
func (c *Client) Projects(ctx context.Context) ([]things.Project, error) {
	out, err := c.runner.Run(ctx, projectsScript)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	var projects []things.Project
	if err := json.Unmarshal(out, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects response: %w", err)
	}
	for i := range projects {
		projects[i].Status = things.ParseStatus(string(projects[i].Status))
	}
	return projects, nil
}

// ToDos returns every to-do with tags, checklist items, and recurrence
// already nested; statuses are normalized on the way through.
func (c *Client) ToDos(ctx context.Context) ([]things.ToDo, error) {
	out, err := c.runner.Run(ctx, todosScript)
	if err != nil {
		return nil, fmt.Errorf("failed to query to-dos: %w", err)
	}

	var todos []things.ToDo
	if err := json.Unmarshal(out, &todos); err != nil {
		return nil, fmt.Errorf("failed to parse to-dos response: %w", err)
	}
	for i := range todos {
		todos[i].Status = things.ParseStatus(string(todos[i].Status))
		for j := range todos[i].Checklist {
			todos[i].Checklist[j].Status = things.ParseStatus(string(todos[i].Checklist[j].Status))
		}
	}
	return todos, nil
}
