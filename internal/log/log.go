// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log wraps go.uber.org/zap for the analyzer's server log
// channel (spec.md §6 "emit a warning diagnostic on the server log
// channel", §7 "Internal errors are reported on a separate log
// channel"). gopls's own internal/event is unexported from x/tools
// and cannot be imported by a new module, so this follows buf's
// buflsp choice of zap for the same role.
package log

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger
)

func init() {
	l, _ := zap.NewProduction()
	logger = l.Sugar()
}

// SetVerbose swaps the global logger for a development-mode one when
// verboseOutput is enabled (spec.md §6 "verboseOutput").
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	var l *zap.Logger
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		l, _ = cfg.Build()
	} else {
		l, _ = zap.NewProduction()
	}
	logger = l.Sugar()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Infof logs an informational message.
func Infof(format string, args ...any) { get().Infof(format, args...) }

// Warnf logs a recoverable problem — spec.md's "SoftError" /
// unresolved-setting channel.
func Warnf(format string, args ...any) { get().Warnf(format, args...) }

// Errorf logs an Internal error (spec.md §7 "Internal"): logged,
// surfaced as a failed response, never poisons the World.
func Errorf(format string, args ...any) { get().Errorf(format, args...) }

// NewTraceID mints an opaque request-scoped id for correlating the log
// lines a single server request emits, the role cue's own LSP server
// assigns per-request ids (internal/lsp/server) and buf's buflsp
// threads through its request-scoped *zap.Logger.
func NewTraceID() string { return uuid.NewString() }

// Traced returns a logger whose Infof/Warnf/Errorf calls are tagged
// with the given trace id, for following one request's log lines
// across a busy server channel.
type Traced struct{ id string }

// WithTrace starts a Traced logger for id (see [NewTraceID]).
func WithTrace(id string) Traced { return Traced{id: id} }

func (t Traced) Infof(format string, args ...any) {
	get().Infof("[%s] "+format, append([]any{t.id}, args...)...)
}

func (t Traced) Warnf(format string, args ...any) {
	get().Warnf("[%s] "+format, append([]any{t.id}, args...)...)
}

func (t Traced) Errorf(format string, args ...any) {
	get().Errorf("[%s] "+format, append([]any{t.id}, args...)...)
}

// Bugf records an unexpected invariant violation — a soft assertion
// in the style of gopls's internal/bug.Reportf: it logs loudly but
// does not crash the process, since a single bad analysis must never
// take down the whole session (spec.md §7 "Internal ... never
// poisons the World").
func Bugf(format string, args ...any) {
	get().Errorf("BUG: "+format, args...)
	if os.Getenv("TYPLSP_PANIC_ON_BUG") != "" {
		panic(logger.Desugar().Name() + ": " + format)
	}
}

// Sync flushes any buffered log entries; callers should defer this
// at process exit.
func Sync() { _ = get().Sync() }
