// Package logging builds the structured logger used by the calc command.
package logging

import (
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a logger that writes text records to term and, if file is not
// nil, JSON records to file. Records below level are dropped by both.
func New(term io.Writer, file io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(term, opts)}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// ParseLevel parses a level name such as "debug" or "WARN". An empty name is
// the info level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if name == "" {
		return l, nil
	}
	err := l.UnmarshalText([]byte(strings.TrimSpace(name)))
	return l, err
}
