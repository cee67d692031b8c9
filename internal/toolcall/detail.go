package toolcall

import (
	"regexp"
	"strings"

	"retrace/internal/types"
)

// Question is one entry of an AskUserQuestion input.
type Question struct {
	Question string
	Header   string
	Options  []QuestionOption
}

type QuestionOption struct {
	Label       string
	Description string
}

// Todo is one entry of a TodoWrite input.
type Todo struct {
	Content    string
	ActiveForm string
	Status     string
}

// Questions decodes the questions array of an AskUserQuestion call.
// Malformed entries are skipped rather than failing the whole list.
func Questions(call *types.ToolCall) []Question {
	var questions []Question
	for _, entry := range call.InputList("questions") {
		q := Question{
			Question: stringField(entry, "question"),
			Header:   stringField(entry, "header"),
		}
		if options, ok := entry["options"].([]any); ok {
			for _, raw := range options {
				option, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				q.Options = append(q.Options, QuestionOption{
					Label:       stringField(option, "label"),
					Description: stringField(option, "description"),
				})
			}
		}
		questions = append(questions, q)
	}
	return questions
}

// Todos decodes the todos array of a TodoWrite call.
func Todos(call *types.ToolCall) []Todo {
	var todos []Todo
	for _, entry := range call.InputList("todos") {
		todos = append(todos, Todo{
			Content:    stringField(entry, "content"),
			ActiveForm: stringField(entry, "activeForm"),
			Status:     stringField(entry, "status"),
		})
	}
	return todos
}

func stringField(m map[string]any, key string) string {
	value, _ := m[key].(string)
	return value
}

// lineNumberPrefix matches the "   123→" prefix the recorder prepends to
// each line of a file-read result.
var lineNumberPrefix = regexp.MustCompile(`^\s*\d+→`)

// StripLineNumbers removes per-line "N→" prefixes from a file-read
// result, returning the bare file content. Lines without the prefix pass
// through unchanged.
func StripLineNumbers(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if loc := lineNumberPrefix.FindStringIndex(line); loc != nil {
			lines[i] = line[loc[1]:]
		}
	}
	return strings.Join(lines, "\n")
}

// NormalizeEscapes rewrites backslash-escaped line and tab sequences as
// their literal characters. Some recorded results arrive double-encoded.
func NormalizeEscapes(text string) string {
	replacer := strings.NewReplacer(
		"\\r\\n", "\n",
		"\\n", "\n",
		"\\t", "\t",
	)
	return replacer.Replace(text)
}

// SplitResultLines splits a result into its non-empty lines, for
// file-list style outputs.
func SplitResultLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
