package app

import "testing"

func TestFormatTokens(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1.0K"},
		{1_250, "1.2K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.00M"},
		{3_456_000, "3.46M"},
	}
	for _, tc := range cases {
		if got := formatTokens(tc.in); got != tc.want {
			t.Fatalf("formatTokens(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{0.004, "<$0.01"},
		{0.01, "$0.01"},
		{1.5, "$1.50"},
		{12.345, "$12.35"},
	}
	for _, tc := range cases {
		if got := formatCost(tc.in); got != tc.want {
			t.Fatalf("formatCost(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCostPrecise(t *testing.T) {
	if got := formatCostPrecise(0.0042); got != "$0.0042" {
		t.Fatalf("formatCostPrecise(0.0042) = %q", got)
	}
	if got := formatCostPrecise(0); got != "$0.0000" {
		t.Fatalf("formatCostPrecise(0) = %q", got)
	}
}

func TestModelDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"claude-sonnet-4-20250514", "Sonnet 4"},
		{"claude-3-5-haiku-20241022", "Haiku"},
		{"claude-opus-4", "Opus 4"},
		{"gpt-4o", "gpt-4o"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		if got := modelDisplayName(tc.in); got != tc.want {
			t.Fatalf("modelDisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
