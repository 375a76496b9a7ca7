// Package diag routes pipeline diagnostics to slog and an optional text sink
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marker-anchor/status"
)

// Sink receives the latest diagnostic line, replacing the previous one
type Sink interface {
	SetText(text string)
}

// Emitter writes each diagnostic to the logger and mirrors it into the sink
type Emitter struct {
	logger *slog.Logger
	sink   Sink

	statLast *status.AtomicString
	count    atomic.Int64
}

// New creates an Emitter; nil logger falls back to slog.Default, nil sink disables mirroring
func New(logger *slog.Logger, sink Sink, reg *status.Registry) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Emitter{logger: logger, sink: sink}
	if reg != nil {
		e.statLast = reg.Strings.Get(status.KeyLastDiagnostic)
	}
	return e
}

// Nop discards everything, for tests and headless runs
func Nop() *Emitter {
	return New(slog.New(slog.NewTextHandler(discard{}, nil)), nil, nil)
}

// With returns an Emitter sharing the sink with extra logger attributes
func (e *Emitter) With(args ...any) *Emitter {
	return &Emitter{
		logger:   e.logger.With(args...),
		sink:     e.sink,
		statLast: e.statLast,
	}
}

// Logger exposes the underlying logger
func (e *Emitter) Logger() *slog.Logger {
	return e.logger
}

// Info emits a diagnostic line at info level
func (e *Emitter) Info(msg string, args ...any) {
	e.emit(slog.LevelInfo, msg, args)
}

// Warn emits a diagnostic line at warn level
func (e *Emitter) Warn(msg string, args ...any) {
	e.emit(slog.LevelWarn, msg, args)
}

// Debug goes to the logger only, never to the sink
func (e *Emitter) Debug(msg string, args ...any) {
	e.logger.Debug(msg, args...)
}

// Count returns the number of lines emitted by this emitter
func (e *Emitter) Count() int64 {
	return e.count.Load()
}

func (e *Emitter) emit(level slog.Level, msg string, args []any) {
	e.count.Add(1)
	e.logger.Log(context.Background(), level, msg, args...)

	if e.sink == nil && e.statLast == nil {
		return
	}
	line := Format(msg, args...)
	if e.sink != nil {
		e.sink.SetText(line)
	}
	if e.statLast != nil {
		e.statLast.Store(line)
	}
}

// Format renders msg and key/value pairs as a single display line
func Format(msg string, args ...any) string {
	r := slog.NewRecord(time.Time{}, slog.LevelInfo, msg, 0)
	r.Add(args...)
	line := msg
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
		return true
	})
	return line
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
