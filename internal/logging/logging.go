// Package logging is a small logfmt logger. The TUI owns stdout, so the
// default sink is a file under the data directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type logfmtLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	fields []Field
}

func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = io.Discard
	}
	return &logfmtLogger{mu: &sync.Mutex{}, out: out, level: level}
}

func Nop() Logger {
	return New(io.Discard, Error)
}

// NewFileLogger appends to the log file at path, creating parent
// directories on first use.
func NewFileLogger(path string, level Level) (Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f, nil
}

func (l *logfmtLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &logfmtLogger{mu: l.mu, out: l.out, level: l.level, fields: merged}
}

func (l *logfmtLogger) Debug(msg string, fields ...Field) { l.write(Debug, msg, fields) }
func (l *logfmtLogger) Info(msg string, fields ...Field)  { l.write(Info, msg, fields) }
func (l *logfmtLogger) Warn(msg string, fields ...Field)  { l.write(Warn, msg, fields) }
func (l *logfmtLogger) Error(msg string, fields ...Field) { l.write(Error, msg, fields) }

func (l *logfmtLogger) write(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}
	var b strings.Builder
	b.WriteString("ts=")
	b.WriteString(time.Now().UTC().Format(time.RFC3339Nano))
	b.WriteString(" level=")
	b.WriteString(levelString(level))
	b.WriteString(" msg=")
	b.WriteString(encode(msg))
	for _, field := range l.fields {
		b.WriteByte(' ')
		b.WriteString(field.Key)
		b.WriteByte('=')
		b.WriteString(encode(field.Value))
	}
	for _, field := range fields {
		b.WriteByte(' ')
		b.WriteString(field.Key)
		b.WriteByte('=')
		b.WriteString(encode(field.Value))
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}

func encode(value any) string {
	var text string
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Duration:
		text = v.String()
	case string:
		text = v
	case error:
		text = v.Error()
	case fmt.Stringer:
		text = v.String()
	default:
		text = fmt.Sprintf("%v", v)
	}
	if text == "" {
		return `""`
	}
	if strings.ContainsAny(text, " \t\n\r\"=") {
		return strconv.Quote(text)
	}
	return text
}

func levelString(level Level) string {
	switch level {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}
