// Package things holds the source-side data model: the read-only records
// fetched from a running Things 3 instance over the AppleScript bridge.
package things

// Status represents the lifecycle state of a project, to-do, or checklist item
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Completed reports whether the status counts as done
func (s Status) Completed() bool {
	return s == StatusCompleted
}

// ParseStatus normalizes the status strings the AppleScript bridge emits.
// Things reports "open" for active items; anything unrecognized is treated
// as active rather than dropped.
func ParseStatus(s string) Status {
	switch s {
	case "completed":
		return StatusCompleted
	case "canceled", "cancelled":
		return StatusCanceled
	default:
		return StatusActive
	}
}

// Area is a top-level grouping, analogous to a folder
type Area struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Project is a named collection of to-dos, optionally under an area
type Project struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Notes  string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status Status `json:"status" yaml:"status"`
	AreaID string `json:"area,omitempty" yaml:"area,omitempty"`
}

// ToDo is a single task record, the base unit of work. ProjectID and AreaID
// are both optional; a to-do with neither is an inbox orphan.
type ToDo struct {
	ID         string          `json:"id" yaml:"id"`
	Title      string          `json:"title" yaml:"title"`
	Notes      string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status     Status          `json:"status" yaml:"status"`
	DueDate    string          `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	ProjectID  string          `json:"project,omitempty" yaml:"project,omitempty"`
	AreaID     string          `json:"area,omitempty" yaml:"area,omitempty"`
	Tags       []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Recurrence string          `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	Checklist  []ChecklistItem `json:"checklist,omitempty" yaml:"checklist,omitempty"`
}

// ChecklistItem always belongs to exactly one to-do
type ChecklistItem struct {
	Title  string `json:"title" yaml:"title"`
	Status Status `json:"status" yaml:"status"`
}

// Database is the complete snapshot fetched once at process start.
// Nothing is ever written back to the source application.
type Database struct {
	Areas    []Area    `json:"areas,omitempty" yaml:"areas,omitempty"`
	Projects []Project `json:"projects,omitempty" yaml:"projects,omitempty"`
	ToDos    []ToDo    `json:"todos,omitempty" yaml:"todos,omitempty"`
}

// AreaByID returns the named area, or nil
func (d *Database) AreaByID(id string) *Area {
	for i := range d.Areas {
		if d.Areas[i].ID == id {
			return &d.Areas[i]
		}
	}
	return nil
}

// ProjectByID returns the named project, or nil
func (d *Database) ProjectByID(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}
