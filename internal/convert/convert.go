// Package convert flattens the hierarchical Things records into the flat
// row list the Todoist CSV import expects. Build is a pure function of the
// fetched records and the filter flags; it never touches the bridge or the
// filesystem.
package convert

import (
	"strings"
	"time"

	"github.com/lherron/things2todoist/internal/things"
)

// RowType classifies an output row
type RowType string

const (
	RowSection RowType = "section"
	RowProject RowType = "project"
	RowTask    RowType = "task"
	RowSubtask RowType = "subtask"
)

// NoAreaSection is the sentinel section for projects and to-dos that have
// no parent area; orphans land here instead of failing the export.
const NoAreaSection = "No Area"

// CompletedMark prefixes the content of completed items, Todoist has no
// completion column in its import schema.
const CompletedMark = "✓ "

// Row is one line of the destination schema. Section records which
// project or area a row belongs to; the CSV itself carries hierarchy only
// through ordering and Indent.
type Row struct {
	Type        RowType `json:"type" yaml:"type"`
	Content     string  `json:"content" yaml:"content"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Section     string  `json:"section,omitempty" yaml:"section,omitempty"`
	Tags        string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Priority    int     `json:"priority" yaml:"priority"`
	Indent      int     `json:"indent" yaml:"indent"`
	Date        string  `json:"date,omitempty" yaml:"date,omitempty"`
	DateLang    string  `json:"date_lang" yaml:"date_lang"`
	Timezone    string  `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// Flags control which entity kinds are emitted and how dates are stamped
type Flags struct {
	SkipCompleted bool
	AreasOnly     bool
	ProjectsOnly  bool
	TodosOnly     bool
	DateLang      string
	Timezone      string
}

// When at least one "only" flag is set, emission restricts to the union of
// the named kinds; with none set, everything is included.
func (f Flags) includeAreas() bool {
	if f.AreasOnly || f.ProjectsOnly || f.TodosOnly {
		return f.AreasOnly
	}
	return true
}

func (f Flags) includeProjects() bool {
	if f.AreasOnly || f.ProjectsOnly || f.TodosOnly {
		return f.ProjectsOnly
	}
	return true
}

func (f Flags) includeToDos() bool {
	if f.AreasOnly || f.ProjectsOnly || f.TodosOnly {
		return f.TodosOnly
	}
	return true
}

// Build flattens db into the ordered row list: areas first, then projects,
// then each to-do followed immediately by its checklist items.
func Build(db *things.Database, flags Flags) []Row {
	lang := flags.DateLang
	if lang == "" {
		lang = "en"
	}

	rows := []Row{}

	if flags.includeAreas() {
		for _, area := range db.Areas {
			rows = append(rows, Row{
				Type:     RowSection,
				Content:  sanitize(area.Name),
				Section:  area.Name,
				Priority: 1,
				Indent:   1,
				DateLang: lang,
				Timezone: flags.Timezone,
			})
		}
	}

	if flags.includeProjects() {
		for _, project := range db.Projects {
			if flags.SkipCompleted && project.Status.Completed() {
				continue
			}

			section := NoAreaSection
			indent := 1
			if area := db.AreaByID(project.AreaID); area != nil {
				section = area.Name
				indent = 2
			}

			content := sanitize(project.Name)
			if project.Status.Completed() {
				content = CompletedMark + content
			}

			rows = append(rows, Row{
				Type:        RowProject,
				Content:     content,
				Description: sanitize(project.Notes),
				Section:     section,
				Priority:    1,
				Indent:      indent,
				DateLang:    lang,
				Timezone:    flags.Timezone,
			})
		}
	}

	if flags.includeToDos() {
		for _, todo := range db.ToDos {
			if flags.SkipCompleted && todo.Status.Completed() {
				continue
			}

			section := NoAreaSection
			indent := 1
			if project := db.ProjectByID(todo.ProjectID); project != nil {
				section = project.Name
				indent = 2
			} else if area := db.AreaByID(todo.AreaID); area != nil {
				section = area.Name
				indent = 2
			}

			content := sanitize(todo.Title)
			if todo.Status.Completed() {
				content = CompletedMark + content
			}

			rows = append(rows, Row{
				Type:        RowTask,
				Content:     content,
				Description: sanitize(todo.Notes),
				Section:     section,
				Tags:        JoinTags(todo.Tags),
				Priority:    priorityFromTags(todo.Tags),
				Indent:      indent,
				Date:        formatDue(todo.DueDate, todo.Recurrence),
				DateLang:    lang,
				Timezone:    flags.Timezone,
			})

			for _, item := range todo.Checklist {
				itemContent := sanitize(item.Title)
				if item.Status.Completed() {
					itemContent = CompletedMark + itemContent
				}

				rows = append(rows, Row{
					Type:     RowSubtask,
					Content:  itemContent,
					Section:  section,
					Priority: 1,
					Indent:   indent + 1,
					DateLang: lang,
					Timezone: flags.Timezone,
				})
			}
		}
	}

	return rows
}

// JoinTags joins a tag list into the destination convention: space-separated
// #tokens with inner spaces replaced by underscores. Empty list joins to "".
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+strings.ReplaceAll(tag, " ", "_"))
	}
	return strings.Join(parts, " ")
}

// Things has no priority field; tags are the conventional stand-in
func priorityFromTags(tags []string) int {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "high") || strings.Contains(lower, "urgent") ||
			strings.Contains(lower, "priority") {
			return 4
		}
	}
	return 1
}

// dueLayouts are the date forms Things emits depending on locale and on
// whether the value came through "as text" or an ISO export.
var dueLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Monday, 2 January 2006 at 15:04:05",
}

// formatDue produces the DATE field: the due date normalized to YYYY-MM-DD,
// followed by the Todoist recurrence phrase when the item repeats. A
// recurring item with no deadline gets the bare phrase.
func formatDue(due, recurrence string) string {
	out := ""
	if due != "" {
		out = due
		for _, layout := range dueLayouts {
			if t, err := time.Parse(layout, due); err == nil {
				out = t.Format("2006-01-02")
				break
			}
		}
	}

	if recurrence != "" {
		phrase := RecurrenceToTodoist(recurrence)
		if out == "" {
			return phrase
		}
		return out + " " + phrase
	}

	return out
}

// sanitize strips carriage returns and collapses doubled newlines so a
// single logical row never spans blank lines in the CSV
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n\n", "\n")
}
