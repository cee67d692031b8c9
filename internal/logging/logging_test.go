package logging

import (
	"errors"
	"strings"
	"testing"
)

func TestLogfmtLine(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, Info)
	log.Info("session loaded", F("session", "s1"), F("messages", 12))

	line := buf.String()
	if !strings.Contains(line, "level=info") || !strings.Contains(line, "msg=\"session loaded\"") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "session=s1") || !strings.Contains(line, "messages=12") {
		t.Fatalf("fields missing: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line must end with newline: %q", line)
	}
}

func TestLevelFilter(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, Warn)
	log.Debug("hidden")
	log.Info("hidden too")
	log.Error("shown", F("err", errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("low levels must be filtered: %q", out)
	}
	if !strings.Contains(out, "err=boom") {
		t.Fatalf("error field missing: %q", out)
	}
}

func TestWithAccumulatesFields(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, Info).With(F("source", "claude"))
	log.Info("fetch", F("path", "/api/sessions"))

	line := buf.String()
	if !strings.Contains(line, "source=claude") || !strings.Contains(line, "path=/api/sessions") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
