package sentry

import (
	"io"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level represents the severity level for the sentry writer.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// breadcrumbLevel maps a writer level onto the sentry breadcrumb level.
func (l Level) breadcrumbLevel() gosentry.Level {
	switch l {
	case LevelError:
		return gosentry.LevelError
	case LevelWarning:
		return gosentry.LevelWarning
	default:
		return gosentry.LevelInfo
	}
}

// Writer tees log lines to an inner writer and to sentry. Error lines are
// captured as sentry messages; every line is also left as a breadcrumb so the
// trail leading to a captured error is visible.
type Writer struct {
	inner io.Writer
	level Level
}

// NewWriter creates a Writer that tees to inner and forwards to Sentry.
func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.inner.Write(p)

	if !enabled {
		return n, err
	}

	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return n, err
	}

	gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
		Level:    w.level.breadcrumbLevel(),
		Category: "log",
		Message:  msg,
	})
	if w.level == LevelError {
		gosentry.CaptureMessage(msg)
	}
	return n, err
}
