package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"retrace/internal/config"
	"retrace/internal/highlight"
	"retrace/internal/types"
)

const maxToolChips = 5

type homeRowKind int

const (
	rowHeader homeRowKind = iota
	rowGroup
	rowProject
	rowSession
	rowResult
)

type homeRow struct {
	kind    homeRowKind
	label   string
	id      string
	project string
	// idx points into searchResults for result rows; search returns one
	// entry per matched message, so session ids recur across rows.
	idx int
}

// homeRows flattens the current home state into display rows. Headers
// are not selectable.
func (m *Model) homeRows() []homeRow {
	if len(m.searchResults) > 0 {
		rows := []homeRow{{kind: rowHeader, label: fmt.Sprintf("Results for %q", m.searchQuery)}}
		for i, result := range m.searchResults {
			rows = append(rows, homeRow{kind: rowResult, id: result.SessionID, idx: i})
		}
		return rows
	}
	if m.prefs.ViewMode == config.ViewModeProject && m.activeProject == "" {
		rows := []homeRow{{kind: rowHeader, label: "Projects"}}
		for _, project := range m.projects {
			rows = append(rows, homeRow{kind: rowProject, id: project.Path, label: project.Name})
		}
		return rows
	}
	if m.prefs.ViewMode == config.ViewModeProject {
		rows := []homeRow{{kind: rowHeader, label: projectHeader(m.projects, m.activeProject)}}
		for _, session := range m.sessions {
			rows = append(rows, homeRow{kind: rowSession, id: session.ID})
		}
		return rows
	}
	var rows []homeRow
	for _, group := range m.groups {
		rows = append(rows, homeRow{
			kind:  rowGroup,
			id:    group.Label,
			label: fmt.Sprintf("%s (%d)", group.Label, len(group.Sessions)),
		})
		if m.collapsedGroups[group.Label] {
			continue
		}
		for _, session := range group.Sessions {
			rows = append(rows, homeRow{kind: rowSession, id: session.ID})
		}
	}
	return rows
}

func projectHeader(projects []types.Project, path string) string {
	for _, project := range projects {
		if project.Path == path {
			return project.Name
		}
	}
	return path
}

func (m *Model) selectableCount() int {
	count := 0
	for _, row := range m.homeRows() {
		if row.kind != rowHeader {
			count++
		}
	}
	return count
}

func (m *Model) moveSelection(delta int) {
	count := m.selectableCount()
	if count == 0 {
		return
	}
	m.selection += delta
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= count {
		m.selection = count - 1
	}
}

func (m *Model) clampSelection() {
	count := m.selectableCount()
	if count == 0 {
		m.selection = 0
		return
	}
	if m.selection >= count {
		m.selection = count - 1
	}
}

func (m *Model) selectedRow() (homeRow, bool) {
	idx := 0
	for _, row := range m.homeRows() {
		if row.kind == rowHeader {
			continue
		}
		if idx == m.selection {
			return row, true
		}
		idx++
	}
	return homeRow{}, false
}

func (m *Model) activateSelection() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	switch row.kind {
	case rowGroup:
		m.collapsedGroups[row.id] = !m.collapsedGroups[row.id]
		m.clampSelection()
		return m, nil
	case rowProject:
		m.activeProject = row.id
		m.selection = 0
		return m, m.refreshHome()
	case rowSession, rowResult:
		return m, m.openSession(row.id)
	}
	return m, nil
}

// jumpGroup moves the selection to the previous or next timeline group
// header.
func (m *Model) jumpGroup(delta int) {
	var groupAt []int
	idx := 0
	for _, row := range m.homeRows() {
		if row.kind == rowHeader {
			continue
		}
		if row.kind == rowGroup {
			groupAt = append(groupAt, idx)
		}
		idx++
	}
	if len(groupAt) == 0 {
		return
	}
	if delta > 0 {
		for _, at := range groupAt {
			if at > m.selection {
				m.selection = at
				return
			}
		}
		m.selection = groupAt[len(groupAt)-1]
		return
	}
	for i := len(groupAt) - 1; i >= 0; i-- {
		if groupAt[i] < m.selection {
			m.selection = groupAt[i]
			return
		}
	}
	m.selection = groupAt[0]
}

func (m *Model) viewHomeScreen() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Retrace"))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(m.prefs.Source))
	b.WriteString("  ")
	if m.prefs.ViewMode == config.ViewModeProject {
		b.WriteString(tabActiveStyle.Render(" projects "))
		b.WriteString(tabStyle.Render(" timeline "))
	} else {
		b.WriteString(tabStyle.Render(" projects "))
		b.WriteString(tabActiveStyle.Render(" timeline "))
	}
	if m.loading {
		b.WriteString("  ")
		b.WriteString(m.loader.View())
	}
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	width := max(40, m.width)
	height := max(minContentHeight, m.height-chromeLines)
	lines := m.renderHomeRows(width)
	lines = clipToSelection(lines, m.homeRowLineIndex(), height)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter open · / search · tab view · s source · u usage · q quit"))
	return b.String()
}

// homeRowLineIndex returns the line index of the selected row within the
// rendered row list, for scroll clipping.
func (m *Model) homeRowLineIndex() int {
	idx := 0
	line := 0
	for _, row := range m.homeRows() {
		if row.kind == rowHeader {
			line++
			continue
		}
		if idx == m.selection {
			return line
		}
		idx++
		line++
	}
	return 0
}

func clipToSelection(lines []string, selected, height int) []string {
	if len(lines) <= height {
		return lines
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}

func (m *Model) renderHomeRows(width int) []string {
	rows := m.homeRows()
	if len(rows) == 0 || (len(rows) == 1 && rows[0].kind == rowHeader && len(m.sessions) == 0 && len(m.projects) == 0) {
		return []string{sessionMetaStyle.Render("No sessions recorded yet.")}
	}

	sessionsByID := map[string]types.SessionSummary{}
	for _, session := range m.sessions {
		sessionsByID[session.ID] = session
	}
	for _, group := range m.groups {
		for _, session := range group.Sessions {
			sessionsByID[session.ID] = session
		}
	}

	var lines []string
	idx := 0
	for _, row := range rows {
		selected := row.kind != rowHeader && idx == m.selection
		if row.kind != rowHeader {
			idx++
		}
		switch row.kind {
		case rowHeader:
			lines = append(lines, groupLabelStyle.Render(row.label))
		case rowGroup:
			lines = append(lines, m.renderGroupRow(row, width, selected))
		case rowProject:
			lines = append(lines, m.renderProjectRow(row, width, selected))
		case rowSession:
			lines = append(lines, m.renderSessionRow(sessionsByID[row.id], width, selected))
		case rowResult:
			lines = append(lines, m.renderResultRow(row, width, selected))
		}
	}
	return lines
}

func (m *Model) renderGroupRow(row homeRow, width int, selected bool) string {
	marker := "▾"
	if m.collapsedGroups[row.id] {
		marker = "▸"
	}
	line := xansi.Truncate(marker+" "+row.label, width, "…")
	if selected {
		return selectedStyle.Render(line)
	}
	return groupLabelStyle.Render(line)
}

func (m *Model) renderProjectRow(row homeRow, width int, selected bool) string {
	var count int
	for _, project := range m.projects {
		if project.Path == row.id {
			count = project.SessionCount
		}
	}
	line := fmt.Sprintf("  %s %s", row.label, sessionMetaStyle.Render(fmt.Sprintf("(%d sessions)", count)))
	if selected {
		return selectedStyle.Render(xansi.Truncate(line, width, "…"))
	}
	return projectStyle.Render(xansi.Truncate(line, width, "…"))
}

func (m *Model) renderSessionRow(session types.SessionSummary, width int, selected bool) string {
	title := session.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	meta := fmt.Sprintf("%s · %d msgs", relativeTime(time.Now(), session.UpdatedAt), session.MessageCount)
	chips := toolChips(session.ToolNames)
	line := "  " + title + "  " + sessionMetaStyle.Render(meta)
	if chips != "" {
		line += "  " + toolChipStyle.Render(chips)
	}
	line = xansi.Truncate(line, width, "…")
	if selected {
		return selectedStyle.Render(line)
	}
	return sessionStyle.Render(line)
}

func (m *Model) renderResultRow(row homeRow, width int, selected bool) string {
	if row.idx < 0 || row.idx >= len(m.searchResults) {
		return ""
	}
	result := m.searchResults[row.idx]
	snippet := renderHighlighted(result.MatchedContent, m.searchQuery)
	line := "  "
	if result.Source != "" {
		line += badgeStyle.Render(result.Source) + " "
	}
	line += result.Title + ": " + snippet
	meta := make([]string, 0, 3)
	if result.MessageType != "" {
		meta = append(meta, result.MessageType)
	}
	if result.ProjectName != "" {
		meta = append(meta, result.ProjectName)
	}
	if !result.Timestamp.IsZero() {
		meta = append(meta, relativeTime(time.Now(), result.Timestamp))
	}
	if len(meta) > 0 {
		line += "  " + sessionMetaStyle.Render(strings.Join(meta, " · "))
	}
	line = xansi.Truncate(line, width, "…")
	if selected {
		return selectedStyle.Render(line)
	}
	return sessionStyle.Render(line)
}

// renderHighlighted styles every occurrence of the query within text.
func renderHighlighted(text, query string) string {
	spans := highlight.Spans(text, query)
	var b strings.Builder
	for _, span := range spans {
		if span.Highlighted {
			b.WriteString(matchStyle.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// toolChips shows up to five tool names and folds the rest into "+N".
func toolChips(names []string) string {
	if len(names) == 0 {
		return ""
	}
	shown := names
	if len(shown) > maxToolChips {
		shown = shown[:maxToolChips]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, name := range shown {
		parts = append(parts, "["+name+"]")
	}
	if extra := len(names) - len(shown); extra > 0 {
		parts = append(parts, fmt.Sprintf("+%d", extra))
	}
	return strings.Join(parts, " ")
}

// relativeTime formats listing timestamps: Today/Yesterday with the
// clock time, day counts inside a week, short dates beyond.
func relativeTime(now, t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	local := t.In(now.Location())
	days := int(math.Round(calendarDay(now).Sub(calendarDay(local)).Hours() / 24))
	switch {
	case days <= 0:
		return "Today " + local.Format("15:04")
	case days == 1:
		return "Yesterday " + local.Format("15:04")
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case local.Year() == now.Year():
		return local.Format("Jan 2")
	default:
		return local.Format("Jan 2, 2006")
	}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
