// Copyright 2026 The tagfs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger provides the structured logging ambient stack shared by the
// CLI and the filesystem frontend. It wraps log/slog with the teacher's
// rotation story (lumberjack) so long-running mounts don't grow an unbounded
// log file.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity mirrors the teacher's off/error/warn/info/debug/trace ranking,
// collapsed onto slog's four levels (trace and debug both map to LevelDebug).
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
	SeverityDebug Severity = "debug"
	SeverityTrace Severity = "trace"
)

func (s Severity) level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityWarn:
		return slog.LevelWarn
	case SeverityDebug, SeverityTrace:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Config controls where and how log lines are written.
type Config struct {
	// "json" or "text".
	Format string
	// Severity below which records are dropped. SeverityOff disables logging
	// entirely.
	Severity Severity
	// When non-empty, log lines are written to this path (rotated via
	// lumberjack) instead of stderr.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger per cfg. The returned io.Closer should be closed on
// shutdown when FilePath is set; it is a no-op otherwise.
func New(cfg Config) (*slog.Logger, io.Closer) {
	if cfg.Severity == SeverityOff {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.FilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		}
		w = lj
		closer = lj
	}

	opts := &slog.HandlerOptions{Level: cfg.Severity.level()}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler), closer
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// defaultLogger is the process-wide logger set once by the CLI at startup and
// read by internal/vfs for fatal diagnostics. It starts as a discard logger,
// which covers any use before Init is called (e.g. in unit tests of other
// packages).
var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init installs l as the process-wide default logger.
func Init(l *slog.Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger installed by Init, or a discard
// logger if Init was never called.
func Default() *slog.Logger {
	return defaultLogger
}

// Fatal logs msg at error severity with attrs and terminates the process.
// This is the "programmer error" path of spec §7: lookup of an unknown
// inode, a wrong-variant accessor, or any other invariant violation inside
// the core.
func Fatal(ctx context.Context, msg string, attrs ...any) {
	defaultLogger.ErrorContext(ctx, msg, attrs...)
	os.Exit(1)
}
