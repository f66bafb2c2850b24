package logging

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// DefaultLogger is a simple console logger used when no application
// logger is installed. Warnings and errors go to stderr, everything
// else to stdout.
type DefaultLogger struct {
	level     Level
	fields    Fields
	useColors bool
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		level:     InfoLevel,
		fields:    make(Fields),
		useColors: true,
	}
}

func (l *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < l.level {
		return
	}

	merged := make(Fields, len(l.fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	if err != nil {
		merged["error"] = err.Error()
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02T15:04:05.000Z07:00"))
	sb.WriteByte(' ')

	label := level.String()
	if l.useColors {
		switch level {
		case WarnLevel:
			label = ColorYellow + label + ColorReset
		case ErrorLevel, FatalLevel:
			label = ColorRed + ColorBold + label + ColorReset
		}
	}
	sb.WriteString(label)
	sb.WriteByte(' ')
	sb.WriteString(msg)

	if len(merged) > 0 {
		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, merged[k])
		}
	}

	out := os.Stdout
	if level >= WarnLevel {
		out = os.Stderr
	}
	fmt.Fprintln(out, sb.String())

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (l *DefaultLogger) Debug(msg string, fields ...Fields) {
	l.log(DebugLevel, nil, msg, fields...)
}

func (l *DefaultLogger) Info(msg string, fields ...Fields) {
	l.log(InfoLevel, nil, msg, fields...)
}

func (l *DefaultLogger) Warn(msg string, fields ...Fields) {
	l.log(WarnLevel, nil, msg, fields...)
}

func (l *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	l.log(ErrorLevel, err, msg, fields...)
}

func (l *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	l.log(FatalLevel, err, msg, fields...)
}

func (l *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &DefaultLogger{
		level:     l.level,
		fields:    merged,
		useColors: l.useColors,
	}
}

func (l *DefaultLogger) WithContext(ctx context.Context) Logger {
	return l
}

func (l *DefaultLogger) SetLevel(level Level) {
	l.level = level
}

// NoOpLogger discards all log output
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
