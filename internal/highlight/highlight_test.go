package highlight

import (
	"strings"
	"testing"
)

func joinSpans(spans []Span) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

func TestSpansEmptyQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		spans := Spans("hello world", query)
		if len(spans) != 1 || spans[0].Highlighted || spans[0].Text != "hello world" {
			t.Fatalf("query %q: expected single unhighlighted span, got %+v", query, spans)
		}
	}
}

func TestSpansCaseInsensitiveMatch(t *testing.T) {
	spans := Spans("Hello World", "world")
	want := []Span{
		{Text: "Hello "},
		{Text: "World", Highlighted: true},
	}
	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %+v", len(want), spans)
	}
	for i, span := range spans {
		if span != want[i] {
			t.Fatalf("span %d: got %+v want %+v", i, span, want[i])
		}
	}
}

func TestSpansLiteralSpecialCharacters(t *testing.T) {
	spans := Spans("a.b.c", ".")
	highlighted := 0
	for _, span := range spans {
		if span.Highlighted {
			if span.Text != "." {
				t.Fatalf("highlighted span must be a literal dot, got %q", span.Text)
			}
			highlighted++
		}
	}
	if highlighted != 2 {
		t.Fatalf("expected 2 highlighted dots, got %d: %+v", highlighted, spans)
	}
	if joinSpans(spans) != "a.b.c" {
		t.Fatalf("concatenation must reproduce input, got %q", joinSpans(spans))
	}
}

func TestSpansAllOccurrences(t *testing.T) {
	spans := Spans("go GO Go gone", "go")
	highlighted := 0
	for _, span := range spans {
		if span.Highlighted {
			highlighted++
			if !strings.EqualFold(span.Text, "go") {
				t.Fatalf("highlighted span %q does not equal query", span.Text)
			}
		}
	}
	// "gone" contains a fourth occurrence of the substring.
	if highlighted != 4 {
		t.Fatalf("expected 4 highlighted occurrences, got %d: %+v", highlighted, spans)
	}
}

func TestSpansReconstruction(t *testing.T) {
	cases := []struct{ text, query string }{
		{"", "x"},
		{"no match here", "zzz"},
		{"abcabc", "abc"},
		{"xAbcx", "ABC"},
		{"((()))", "("},
	}
	for _, tc := range cases {
		spans := Spans(tc.text, tc.query)
		if joinSpans(spans) != tc.text {
			t.Fatalf("text %q query %q: concatenation %q != input", tc.text, tc.query, joinSpans(spans))
		}
	}
}

func TestSpansAdjacentMatches(t *testing.T) {
	spans := Spans("abcabc", "abc")
	if len(spans) != 2 {
		t.Fatalf("expected two adjacent highlighted spans, got %+v", spans)
	}
	for _, span := range spans {
		if !span.Highlighted {
			t.Fatalf("expected all spans highlighted, got %+v", spans)
		}
	}
}
