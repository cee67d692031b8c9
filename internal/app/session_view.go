package app

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"retrace/internal/diff"
	"retrace/internal/toolcall"
	"retrace/internal/transcript"
)

func (m *Model) viewSessionScreen() string {
	var b strings.Builder
	title := m.sessionID
	if m.detail != nil && strings.TrimSpace(m.detail.Title) != "" {
		title = m.detail.Title
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(m.prefs.Source))
	b.WriteString("  ")
	if m.tab == tabTranscript {
		b.WriteString(tabActiveStyle.Render(" transcript "))
		b.WriteString(tabStyle.Render(fmt.Sprintf(" files (%d) ", m.fileChangeCount())))
	} else {
		b.WriteString(tabStyle.Render(" transcript "))
		b.WriteString(tabActiveStyle.Render(fmt.Sprintf(" files (%d) ", m.fileChangeCount())))
	}
	if m.loading {
		b.WriteString("  ")
		b.WriteString(m.loader.View())
	}
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	copyLabel := "y copy context"
	if m.tstate.Copied(contextCopyKey(m.sessionID)) {
		copyLabel = "context copied!"
	}
	b.WriteString(helpStyle.Render("n/p select · enter expand · c copy message · " + copyLabel + " · tab files · esc back"))
	return b.String()
}

func (m *Model) fileChangeCount() int {
	if m.detail == nil {
		return 0
	}
	return len(m.detail.FileChanges)
}

func (m *Model) contentWidth() int {
	return max(40, m.viewport.Width()-2)
}

func (m *Model) renderTranscript() string {
	if m.detail == nil {
		return "Loading session..."
	}
	if len(m.views) == 0 {
		return sessionMetaStyle.Render("This session has no messages.")
	}
	width := m.contentWidth()
	var blocks []string
	for i, view := range m.views {
		blocks = append(blocks, m.renderMessage(view, i == m.msgCursor, width))
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderMessage(view transcript.MessageView, selected bool, width int) string {
	var b strings.Builder

	role := "assistant"
	style := agentBubbleStyle
	if view.Message.IsUser() {
		role = "you"
		style = userBubbleStyle
	}
	meta := role
	if !view.Message.Timestamp.IsZero() {
		meta += " · " + view.Message.Timestamp.Format("15:04:05")
	}
	if selected {
		meta = "> " + meta
		if m.tstate.Copied(view.Message.ID) {
			meta += "  " + copiedButtonStyle.Render("copied!")
		} else {
			meta += "  " + copyButtonStyle.Render("[c]opy")
		}
	}
	b.WriteString(sessionMetaStyle.Render(meta))
	b.WriteString("\n")

	content := strings.TrimSpace(view.Message.Content)
	if content != "" {
		body := content
		if !view.Message.IsUser() {
			body = renderMarkdown(content, width-4)
		}
		b.WriteString(style.Width(width).Render(body))
		b.WriteString("\n")
	}

	for _, call := range view.ToolCalls {
		b.WriteString(m.renderToolCall(call, width))
	}
	return b.String()
}

func (m *Model) renderToolCall(call transcript.ToolCallView, width int) string {
	var b strings.Builder

	expanded := m.tstate.Expanded(call.Call.ID)
	marker := "+"
	if expanded {
		marker = "-"
	}
	header := fmt.Sprintf("%s %s %s",
		marker,
		toolColorStyle(call.Descriptor.Color).Render(call.Descriptor.Badge+" "+call.Call.Name),
		toolSummaryStyle.Render(call.Summary),
	)
	if call.Variant == toolcall.VariantDiff {
		header += "  " + diffAddedStyle.Render(fmt.Sprintf("+%d", call.DiffStats.Added)) +
			" " + diffRemovedStyle.Render(fmt.Sprintf("-%d", call.DiffStats.Removed))
	}
	b.WriteString(xansi.Truncate(header, width, "…"))
	b.WriteString("\n")

	if !expanded {
		return b.String()
	}
	b.WriteString(m.renderToolDetail(call, width))
	return b.String()
}

func (m *Model) renderToolDetail(call transcript.ToolCallView, width int) string {
	switch call.Variant {
	case toolcall.VariantDiff:
		return renderDiff(call.Diff, width)
	case toolcall.VariantCode:
		return renderCode(call.Code, width)
	case toolcall.VariantFileList:
		return renderFileList(call.ResultLines, width)
	case toolcall.VariantMarkdown, toolcall.VariantTaskPrompt:
		return renderMarkdown(call.Markdown, width-2) + "\n"
	case toolcall.VariantQuestions:
		return renderQuestions(call.Questions, width)
	case toolcall.VariantTodos:
		return renderTodos(call.Todos, width)
	case toolcall.VariantWebFetch:
		return renderKeyedRaw("url: "+call.Call.InputString("url"), call.Call.ResultText(), width)
	case toolcall.VariantWebSearch:
		return renderKeyedRaw("query: "+call.Call.InputString("query"), call.Call.ResultText(), width)
	case toolcall.VariantTaskCreate:
		return renderKeyedRaw("subject: "+call.Call.InputString("subject"), call.Call.InputString("description"), width)
	case toolcall.VariantTaskUpdate:
		return renderKeyedRaw(call.Summary, call.Call.ResultText(), width)
	case toolcall.VariantRaw:
		return renderCode(toolcall.NormalizeEscapes(call.Call.ResultText()), width)
	default:
		if call.Descriptor.Category == toolcall.CategoryFileEdit {
			return ""
		}
		return sessionMetaStyle.Render("  no output") + "\n"
	}
}

// renderDiff prints unified-diff style lines with dual line-number
// gutters.
func renderDiff(lines []diff.Line, width int) string {
	var b strings.Builder
	for _, line := range lines {
		gutter := diffNumberStyle.Render(fmt.Sprintf("%4s %4s", diffNumber(line.OldNumber), diffNumber(line.NewNumber)))
		var body string
		switch line.Kind {
		case diff.Added:
			body = diffAddedStyle.Render("+ " + line.Content)
		case diff.Removed:
			body = diffRemovedStyle.Render("- " + line.Content)
		default:
			body = diffContextStyle.Render("  " + line.Content)
		}
		b.WriteString(xansi.Truncate("  "+gutter+" "+body, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}

func diffNumber(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func renderCode(code string, width int) string {
	code = strings.TrimRight(code, "\n")
	if code == "" {
		return ""
	}
	var b strings.Builder
	for i, line := range strings.Split(code, "\n") {
		gutter := diffNumberStyle.Render(fmt.Sprintf("%4d", i+1))
		b.WriteString(xansi.Truncate("  "+gutter+" "+line, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFileList(files []string, width int) string {
	if len(files) == 0 {
		return sessionMetaStyle.Render("  no matches") + "\n"
	}
	var b strings.Builder
	for _, file := range files {
		b.WriteString(xansi.Truncate("  "+file, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuestions(questions []toolcall.Question, width int) string {
	var b strings.Builder
	for _, q := range questions {
		label := q.Question
		if q.Header != "" {
			label = q.Header + ": " + label
		}
		b.WriteString(xansi.Truncate("  "+label, width, "…"))
		b.WriteString("\n")
		for _, option := range q.Options {
			line := "    · " + option.Label
			if option.Description != "" {
				line += " " + sessionMetaStyle.Render(option.Description)
			}
			b.WriteString(xansi.Truncate(line, width, "…"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderTodos(todos []toolcall.Todo, width int) string {
	var b strings.Builder
	for _, todo := range todos {
		mark := "[ ]"
		switch todo.Status {
		case "completed":
			mark = "[x]"
		case "in_progress":
			mark = "[~]"
		}
		b.WriteString(xansi.Truncate("  "+mark+" "+todo.Content, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderKeyedRaw(header, body string, width int) string {
	var b strings.Builder
	if strings.TrimSpace(header) != "" {
		b.WriteString(xansi.Truncate("  "+sessionMetaStyle.Render(header), width, "…"))
		b.WriteString("\n")
	}
	if strings.TrimSpace(body) != "" {
		b.WriteString(renderCode(toolcall.NormalizeEscapes(body), width))
	}
	return b.String()
}

func (m *Model) renderFileChanges() string {
	if m.detail == nil {
		return "Loading session..."
	}
	if len(m.detail.FileChanges) == 0 {
		return sessionMetaStyle.Render("No file changes recorded for this session.")
	}
	width := m.contentWidth()
	var b strings.Builder
	for _, change := range m.detail.FileChanges {
		line := fmt.Sprintf("%s  %s", change.FilePath, sessionMetaStyle.Render(fmt.Sprintf("v%d", change.Version)))
		if !change.Timestamp.IsZero() {
			line += "  " + sessionMetaStyle.Render(change.Timestamp.Format("2006-01-02 15:04"))
		}
		if change.BackupFile != nil && *change.BackupFile != "" {
			line += "  " + sessionMetaStyle.Render("backup: "+*change.BackupFile)
		}
		b.WriteString(xansi.Truncate(line, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}
