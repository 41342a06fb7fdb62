package things

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"open", StatusActive},
		{"completed", StatusCompleted},
		{"canceled", StatusCanceled},
		{"cancelled", StatusCanceled},
		{"", StatusActive},
		{"garbage", StatusActive},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.input); got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStatusCompleted(t *testing.T) {
	if !StatusCompleted.Completed() {
		t.Error("completed must report done")
	}
	if StatusActive.Completed() || StatusCanceled.Completed() {
		t.Error("active and canceled must not report done")
	}
}

func TestDatabaseLookups(t *testing.T) {
	db := &Database{
		Areas:    []Area{{ID: "a1", Name: "Work"}},
		Projects: []Project{{ID: "p1", Name: "Launch", AreaID: "a1"}},
	}

	if area := db.AreaByID("a1"); area == nil || area.Name != "Work" {
		t.Errorf("AreaByID(a1) = %+v", area)
	}
	if db.AreaByID("missing") != nil {
		t.Error("AreaByID must return nil for unknown id")
	}
	if db.AreaByID("") != nil {
		t.Error("AreaByID must return nil for empty id")
	}
	if project := db.ProjectByID("p1"); project == nil || project.Name != "Launch" {
		t.Errorf("ProjectByID(p1) = %+v", project)
	}
	if db.ProjectByID("nope") != nil {
		t.Error("ProjectByID must return nil for unknown id")
	}
}
