// Package highlight splits text into spans around case-insensitive literal
// occurrences of a query term, for search-result rendering.
package highlight

import "strings"

// Span is one run of text; Highlighted spans correspond to occurrences of
// the query. Concatenating the Text of all spans reproduces the input.
type Span struct {
	Text        string
	Highlighted bool
}

// Spans locates every case-insensitive occurrence of query in text. The
// query is matched literally; characters that look like pattern syntax
// have no special meaning. An empty or whitespace-only query yields one
// unhighlighted span holding the whole text.
func Spans(text, query string) []Span {
	if strings.TrimSpace(query) == "" {
		return []Span{{Text: text}}
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		// Lowercasing shifted byte offsets (rare non-ASCII case pairs);
		// fall back to a fold-aware scan on the original bytes.
		return foldSpans(text, query)
	}

	var spans []Span
	pos := 0
	for pos < len(lowerText) {
		idx := strings.Index(lowerText[pos:], lowerQuery)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(lowerQuery)
		if start > pos {
			spans = append(spans, Span{Text: text[pos:start]})
		}
		spans = append(spans, Span{Text: text[start:end], Highlighted: true})
		pos = end
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:]})
	}
	if len(spans) == 0 {
		return []Span{{Text: text}}
	}
	return spans
}

func foldSpans(text, query string) []Span {
	var spans []Span
	pos := 0
	for i := 0; i+len(query) <= len(text); {
		if strings.EqualFold(text[i:i+len(query)], query) {
			if i > pos {
				spans = append(spans, Span{Text: text[pos:i]})
			}
			spans = append(spans, Span{Text: text[i : i+len(query)], Highlighted: true})
			i += len(query)
			pos = i
			continue
		}
		i++
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:]})
	}
	if len(spans) == 0 {
		return []Span{{Text: text}}
	}
	return spans
}
