// Package toolcall classifies recorded tool invocations for display: a
// presentation category per tool name, a one-line summary of the input,
// and the detail-view variant the expanded panel should use. Tool names
// are an open set; anything unrecognized falls back to a generic entry.
package toolcall

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"retrace/internal/types"
)

type Category string

const (
	CategoryTerminal Category = "terminal"
	CategoryFileRead Category = "file-read"
	CategoryFileEdit Category = "file-edit"
	CategorySearch   Category = "search"
	CategoryPlan     Category = "plan"
	CategoryTask     Category = "task"
	CategoryWeb      Category = "web"
	CategoryQuestion Category = "question"
	CategoryTodo     Category = "todo"
	CategoryGeneric  Category = "generic"
)

// Variant selects the structured renderer for the expanded detail panel.
type Variant string

const (
	VariantDiff       Variant = "diff"
	VariantCode       Variant = "code"
	VariantFileList   Variant = "file-list"
	VariantMarkdown   Variant = "markdown"
	VariantTaskPrompt Variant = "task-prompt"
	VariantWebFetch   Variant = "web-fetch"
	VariantWebSearch  Variant = "web-search"
	VariantQuestions  Variant = "questions"
	VariantTodos      Variant = "todos"
	VariantTaskCreate Variant = "task-create"
	VariantTaskUpdate Variant = "task-update"
	VariantRaw        Variant = "raw"
	VariantNone       Variant = "none"
)

const (
	summaryMaxRunes       = 60
	fallbackValueMaxRunes = 50
	fallbackMaxFields     = 3
)

// Descriptor is one row of the classification table: presentation
// attributes plus the summary and detail selectors for a tool name.
type Descriptor struct {
	Category  Category
	Badge     string
	Color     string
	summarize func(call *types.ToolCall) string
	detail    func(call *types.ToolCall) Variant
}

var descriptors = map[string]Descriptor{
	"Bash": {
		Category:  CategoryTerminal,
		Badge:     "[cmd]",
		Color:     "70",
		summarize: func(c *types.ToolCall) string { return c.InputString("command") },
		detail:    rawOrNone,
	},
	"Read": {
		Category:  CategoryFileRead,
		Badge:     "[read]",
		Color:     "39",
		summarize: filePathSummary,
		detail: func(c *types.ToolCall) Variant {
			if c.HasResult() {
				return VariantCode
			}
			return VariantNone
		},
	},
	"Write": {
		Category:  CategoryFileEdit,
		Badge:     "[write]",
		Color:     "135",
		summarize: filePathSummary,
		detail: func(c *types.ToolCall) Variant {
			if c.InputString("content") != "" {
				return VariantCode
			}
			return rawOrNone(c)
		},
	},
	"Edit": {
		Category:  CategoryFileEdit,
		Badge:     "[edit]",
		Color:     "135",
		summarize: filePathSummary,
		detail: func(c *types.ToolCall) Variant {
			if _, ok := c.Input["old_string"]; !ok {
				return rawOrNone(c)
			}
			if _, ok := c.Input["new_string"]; !ok {
				return rawOrNone(c)
			}
			return VariantDiff
		},
	},
	"NotebookEdit": {
		Category:  CategoryFileEdit,
		Badge:     "[edit]",
		Color:     "135",
		summarize: fallbackSummary,
		detail:    rawOrNone,
	},
	"Grep": {
		Category:  CategorySearch,
		Badge:     "[grep]",
		Color:     "208",
		summarize: patternSummary,
		detail:    fileListOrNone,
	},
	"Glob": {
		Category:  CategorySearch,
		Badge:     "[glob]",
		Color:     "208",
		summarize: patternSummary,
		detail:    fileListOrNone,
	},
	"ExitPlanMode": {
		Category: CategoryPlan,
		Badge:    "[plan]",
		Color:    "63",
		summarize: func(c *types.ToolCall) string {
			return truncateSummary(collapseNewlines(c.InputString("plan")), true)
		},
		detail: func(c *types.ToolCall) Variant {
			if c.InputString("plan") != "" {
				return VariantMarkdown
			}
			return rawOrNone(c)
		},
	},
	"EnterPlanMode": {
		Category:  CategoryPlan,
		Badge:     "[plan]",
		Color:     "63",
		summarize: fallbackSummary,
		detail:    rawOrNone,
	},
	"Task": {
		Category: CategoryTask,
		Badge:    "[task]",
		Color:    "178",
		summarize: func(c *types.ToolCall) string {
			summary := c.InputString("description")
			if summary == "" {
				summary = collapseNewlines(c.InputString("prompt"))
			}
			return truncateSummary(summary, true)
		},
		detail: func(c *types.ToolCall) Variant {
			if c.InputString("prompt") != "" {
				return VariantTaskPrompt
			}
			return rawOrNone(c)
		},
	},
	"WebFetch": {
		Category:  CategoryWeb,
		Badge:     "[web]",
		Color:     "45",
		summarize: func(c *types.ToolCall) string { return c.InputString("url") },
		detail:    func(c *types.ToolCall) Variant { return VariantWebFetch },
	},
	"WebSearch": {
		Category:  CategoryWeb,
		Badge:     "[web]",
		Color:     "45",
		summarize: func(c *types.ToolCall) string { return c.InputString("query") },
		detail:    func(c *types.ToolCall) Variant { return VariantWebSearch },
	},
	"AskUserQuestion": {
		Category: CategoryQuestion,
		Badge:    "[ask]",
		Color:    "205",
		summarize: func(c *types.ToolCall) string {
			questions := Questions(c)
			if len(questions) == 0 {
				return ""
			}
			return truncateSummary(questions[0].Question, false)
		},
		detail: func(c *types.ToolCall) Variant {
			if len(Questions(c)) > 0 {
				return VariantQuestions
			}
			return rawOrNone(c)
		},
	},
	"TodoWrite": {
		Category: CategoryTodo,
		Badge:    "[todo]",
		Color:    "36",
		summarize: func(c *types.ToolCall) string {
			return fmt.Sprintf("%d items", len(Todos(c)))
		},
		detail: func(c *types.ToolCall) Variant {
			if len(Todos(c)) > 0 {
				return VariantTodos
			}
			return rawOrNone(c)
		},
	},
	"TaskCreate": {
		Category:  CategoryTodo,
		Badge:     "[todo]",
		Color:     "36",
		summarize: func(c *types.ToolCall) string { return c.InputString("subject") },
		detail:    func(c *types.ToolCall) Variant { return VariantTaskCreate },
	},
	"TaskUpdate": {
		Category: CategoryTodo,
		Badge:    "[todo]",
		Color:    "36",
		summarize: func(c *types.ToolCall) string {
			status := c.InputString("status")
			if status == "" {
				status = "updated"
			}
			return fmt.Sprintf("#%s -> %s", inputFieldString(c, "taskId"), status)
		},
		detail: func(c *types.ToolCall) Variant { return VariantTaskUpdate },
	},
	"TaskOutput": {
		Category:  CategoryTodo,
		Badge:     "[todo]",
		Color:     "36",
		summarize: fallbackSummary,
		detail:    rawOrNone,
	},
	"TaskList": {
		Category:  CategoryTodo,
		Badge:     "[todo]",
		Color:     "36",
		summarize: fallbackSummary,
		detail:    rawOrNone,
	},
}

var genericDescriptor = Descriptor{
	Category:  CategoryGeneric,
	Badge:     "[tool]",
	Color:     "245",
	summarize: fallbackSummary,
	detail:    rawOrNone,
}

// Lookup returns the descriptor for a tool name, falling back to the
// generic entry for names not in the table.
func Lookup(name string) Descriptor {
	if d, ok := descriptors[name]; ok {
		return d
	}
	return genericDescriptor
}

// Summary produces the one-line header text for a tool call.
func Summary(call *types.ToolCall) string {
	if call == nil {
		return ""
	}
	return Lookup(call.Name).summarize(call)
}

// DetailVariant selects the expanded-panel renderer for a tool call.
func DetailVariant(call *types.ToolCall) Variant {
	if call == nil {
		return VariantNone
	}
	return Lookup(call.Name).detail(call)
}

func rawOrNone(call *types.ToolCall) Variant {
	if call.HasResult() {
		return VariantRaw
	}
	return VariantNone
}

func fileListOrNone(call *types.ToolCall) Variant {
	if call.HasResult() {
		return VariantFileList
	}
	return VariantNone
}

func filePathSummary(call *types.ToolCall) string {
	return call.InputString("file_path")
}

func patternSummary(call *types.ToolCall) string {
	pattern := call.InputString("pattern")
	path := call.InputString("path")
	if path == "" {
		return pattern
	}
	return pattern + " in " + path
}

// fallbackSummary renders up to three input fields as "key: value" pairs,
// truncating each value to 50 characters. Keys are sorted: decoding into
// a map loses the wire order, and a stable summary beats a shifting one.
func fallbackSummary(call *types.ToolCall) string {
	if len(call.Input) == 0 {
		return ""
	}
	keys := make([]string, 0, len(call.Input))
	for key := range call.Input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > fallbackMaxFields {
		keys = keys[:fallbackMaxFields]
	}
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := call.Input[key]
		text, ok := value.(string)
		if !ok {
			encoded, err := json.Marshal(value)
			if err != nil {
				text = fmt.Sprintf("%v", value)
			} else {
				text = string(encoded)
			}
		}
		if runes := []rune(text); len(runes) > fallbackValueMaxRunes {
			text = string(runes[:fallbackValueMaxRunes]) + "..."
		}
		parts = append(parts, key+": "+text)
	}
	return strings.Join(parts, ", ")
}

// truncateSummary caps a summary at 60 characters; withEllipsis appends
// "..." when the input was longer.
func truncateSummary(text string, withEllipsis bool) string {
	runes := []rune(text)
	if len(runes) <= summaryMaxRunes {
		return text
	}
	if withEllipsis {
		return string(runes[:summaryMaxRunes]) + "..."
	}
	return string(runes[:summaryMaxRunes])
}

// collapseNewlines flattens both literal and backslash-escaped newline
// sequences to single spaces for one-line summaries.
func collapseNewlines(text string) string {
	replacer := strings.NewReplacer(
		"\\r\\n", " ",
		"\\n", " ",
		"\r\n", " ",
		"\n", " ",
	)
	return replacer.Replace(text)
}

func inputFieldString(call *types.ToolCall, key string) string {
	if call == nil || call.Input == nil {
		return ""
	}
	switch value := call.Input[key].(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}
