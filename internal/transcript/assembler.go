// Package transcript turns raw session messages into render-ready views:
// each tool call is classified, its detail content is precomputed for the
// variant the panel will use, and per-view interaction state (expansion,
// copy feedback) lives alongside.
package transcript

import (
	"retrace/internal/diff"
	"retrace/internal/toolcall"
	"retrace/internal/types"
)

// ToolCallView is one tool call with everything the renderer needs
// resolved up front.
type ToolCallView struct {
	Call       *types.ToolCall
	Descriptor toolcall.Descriptor
	Summary    string
	Variant    toolcall.Variant

	// Populated according to Variant; unused fields stay zero.
	Diff        []diff.Line
	DiffStats   diff.Stats
	Code        string
	ResultLines []string
	Markdown    string
	Questions   []toolcall.Question
	Todos       []toolcall.Todo
}

// MessageView pairs a message with its assembled tool-call views.
type MessageView struct {
	Message   types.Message
	ToolCalls []ToolCallView
}

// Build assembles views for a full message list, preserving order.
func Build(messages []types.Message) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, BuildMessage(message))
	}
	return views
}

// BuildMessage assembles the view for a single message.
func BuildMessage(message types.Message) MessageView {
	view := MessageView{Message: message}
	for i := range message.ToolCalls {
		view.ToolCalls = append(view.ToolCalls, buildToolCall(&message.ToolCalls[i]))
	}
	return view
}

func buildToolCall(call *types.ToolCall) ToolCallView {
	view := ToolCallView{
		Call:       call,
		Descriptor: toolcall.Lookup(call.Name),
		Summary:    toolcall.Summary(call),
		Variant:    toolcall.DetailVariant(call),
	}
	switch view.Variant {
	case toolcall.VariantDiff:
		oldText := call.InputString("old_string")
		newText := call.InputString("new_string")
		view.Diff = diff.Lines(oldText, newText)
		view.DiffStats = diff.Count(view.Diff)
	case toolcall.VariantCode:
		if content := call.InputString("content"); content != "" {
			view.Code = content
		} else {
			view.Code = toolcall.StripLineNumbers(toolcall.NormalizeEscapes(call.ResultText()))
		}
	case toolcall.VariantFileList:
		view.ResultLines = toolcall.SplitResultLines(call.ResultText())
	case toolcall.VariantMarkdown:
		view.Markdown = toolcall.NormalizeEscapes(call.InputString("plan"))
	case toolcall.VariantTaskPrompt:
		view.Markdown = toolcall.NormalizeEscapes(call.InputString("prompt"))
	case toolcall.VariantQuestions:
		view.Questions = toolcall.Questions(call)
	case toolcall.VariantTodos:
		view.Todos = toolcall.Todos(call)
	}
	return view
}
