package app

import (
	"strings"
	"testing"
	"time"

	"retrace/internal/config"
	"retrace/internal/timeline"
	"retrace/internal/types"
)

func TestToolChipsOverflow(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{nil, ""},
		{[]string{"Bash"}, "[Bash]"},
		{[]string{"Bash", "Read", "Edit", "Grep", "Glob"}, "[Bash] [Read] [Edit] [Grep] [Glob]"},
		{[]string{"Bash", "Read", "Edit", "Grep", "Glob", "Task", "Write"}, "[Bash] [Read] [Edit] [Grep] [Glob] +2"},
	}
	for _, tc := range cases {
		if got := toolChips(tc.names); got != tc.want {
			t.Fatalf("toolChips(%v) = %q, want %q", tc.names, got, tc.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-5 * time.Minute), "Today 11:55"},
		{now.Add(-3 * time.Hour), "Today 09:00"},
		{now.Add(-24 * time.Hour), "Yesterday 12:00"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{now.Add(-30 * 24 * time.Hour), "May 16"},
		{time.Date(2024, time.December, 20, 8, 0, 0, 0, time.UTC), "Dec 20, 2024"},
		{time.Time{}, "unknown"},
	}
	for _, tc := range cases {
		if got := relativeTime(now, tc.at); got != tc.want {
			t.Fatalf("relativeTime(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestHomeRowsProjectMode(t *testing.T) {
	m := newTestModel(t)
	m.prefs.ViewMode = config.ViewModeProject
	m.projects = []types.Project{
		{Path: "/a", Name: "alpha", SessionCount: 2},
		{Path: "/b", Name: "beta", SessionCount: 1},
	}

	rows := m.homeRows()
	if len(rows) != 3 || rows[0].kind != rowHeader {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[1].kind != rowProject || rows[1].id != "/a" {
		t.Fatalf("unexpected first project row: %+v", rows[1])
	}
	if m.selectableCount() != 2 {
		t.Fatalf("selectable count = %d, want 2", m.selectableCount())
	}
}

func TestHomeRowsTimelineMode(t *testing.T) {
	m := newTestModel(t)
	m.prefs.ViewMode = config.ViewModeTimeline
	now := time.Now()
	m.sessions = []types.SessionSummary{
		{ID: "today", UpdatedAt: now},
		{ID: "older", UpdatedAt: now.AddDate(0, -2, 0)},
	}
	m.groups = timeline.GroupSessions(now, m.sessions)

	rows := m.homeRows()
	groups := 0
	sessions := 0
	for _, row := range rows {
		switch row.kind {
		case rowGroup:
			groups++
		case rowSession:
			sessions++
		}
	}
	if groups != 2 || sessions != 2 {
		t.Fatalf("expected 2 group rows and 2 sessions, got %d/%d: %+v", groups, sessions, rows)
	}
	if rows[0].kind != rowGroup || rows[0].label != "Today (1)" {
		t.Fatalf("first row must be the Today group with its count, got %+v", rows[0])
	}

	m.selection = 1
	row, ok := m.selectedRow()
	if !ok || row.id != "today" {
		t.Fatalf("row after the Today header must be the newest session, got %+v", row)
	}
}

func TestTimelineGroupCollapse(t *testing.T) {
	m := newTestModel(t)
	m.prefs.ViewMode = config.ViewModeTimeline
	now := time.Now()
	m.sessions = []types.SessionSummary{
		{ID: "today", UpdatedAt: now},
		{ID: "older", UpdatedAt: now.AddDate(0, -2, 0)},
	}
	m.groups = timeline.GroupSessions(now, m.sessions)

	m.selection = 0
	m.activateSelection()
	rows := m.homeRows()
	for _, row := range rows {
		if row.kind == rowSession && row.id == "today" {
			t.Fatalf("collapsed group must hide its sessions: %+v", rows)
		}
	}

	m.activateSelection()
	if m.selectableCount() != 4 {
		t.Fatalf("re-expanding must restore sessions, got %d selectable", m.selectableCount())
	}
}

func TestJumpGroupMovesBetweenHeaders(t *testing.T) {
	m := newTestModel(t)
	m.prefs.ViewMode = config.ViewModeTimeline
	now := time.Now()
	m.sessions = []types.SessionSummary{
		{ID: "today", UpdatedAt: now},
		{ID: "older", UpdatedAt: now.AddDate(0, -2, 0)},
	}
	m.groups = timeline.GroupSessions(now, m.sessions)

	m.selection = 1
	m.jumpGroup(1)
	row, _ := m.selectedRow()
	if row.kind != rowGroup || row.id == "Today" {
		t.Fatalf("jump forward must land on the next group header, got %+v", row)
	}
	m.jumpGroup(-1)
	row, _ = m.selectedRow()
	if row.kind != rowGroup || row.id != "Today" {
		t.Fatalf("jump back must land on the Today header, got %+v", row)
	}
}

func TestHomeRowsSearchResultsTakePriority(t *testing.T) {
	m := newTestModel(t)
	m.searchResults = []types.SearchResult{{SessionID: "s1", Title: "hit"}}
	m.searchQuery = "hit"

	rows := m.homeRows()
	if len(rows) != 2 || rows[1].kind != rowResult || rows[1].id != "s1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestResultRowsPerMatchedMessage(t *testing.T) {
	m := newTestModel(t)
	m.searchResults = []types.SearchResult{
		{SessionID: "s1", Title: "hit", MatchedContent: "first match"},
		{SessionID: "s1", Title: "hit", MatchedContent: "second match"},
	}
	m.searchQuery = "zz"

	rows := m.homeRows()
	if len(rows) != 3 || rows[1].idx != 0 || rows[2].idx != 1 {
		t.Fatalf("each matched message needs its own row: %+v", rows)
	}
	first := m.renderResultRow(rows[1], 120, false)
	second := m.renderResultRow(rows[2], 120, false)
	if !strings.Contains(first, "first match") || !strings.Contains(second, "second match") {
		t.Fatalf("rows for the same session must keep their own snippets:\n%q\n%q", first, second)
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	m := newTestModel(t)
	m.projects = []types.Project{{Path: "/a", Name: "alpha"}}

	m.moveSelection(-3)
	if m.selection != 0 {
		t.Fatalf("selection must clamp at 0, got %d", m.selection)
	}
	m.moveSelection(10)
	if m.selection != 0 {
		t.Fatalf("selection must clamp to last row, got %d", m.selection)
	}
}
