package toolcall

import (
	"reflect"
	"testing"
)

func TestStripLineNumbers(t *testing.T) {
	in := "     1→package main\n     2→\n    10→func main() {}\nno prefix line"
	want := "package main\n\nfunc main() {}\nno prefix line"
	if got := StripLineNumbers(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStripLineNumbersPreservesArrowInContent(t *testing.T) {
	in := "     1→a → b"
	if got := StripLineNumbers(in); got != "a → b" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeEscapes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`line1\nline2`, "line1\nline2"},
		{`a\r\nb`, "a\nb"},
		{`col1\tcol2`, "col1\tcol2"},
		{"already\nliteral", "already\nliteral"},
	}
	for _, tc := range cases {
		if got := NormalizeEscapes(tc.in); got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitResultLines(t *testing.T) {
	got := SplitResultLines("a.go\n\n  \nb.go\nc.go\n")
	want := []string{"a.go", "b.go", "c.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if lines := SplitResultLines("  \n\n"); lines != nil {
		t.Fatalf("blank input must yield no lines, got %v", lines)
	}
}
