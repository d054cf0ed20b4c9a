// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package logging holds the silent default logger shared by the engine
// sub-packages.
package logging

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that discards all records. Enabled reports
// false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that silently discards all output.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

// Or returns l, or a silent logger when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// IsNop reports whether l discards everything at every level.
func IsNop(l *slog.Logger) bool {
	if l == nil {
		return true
	}
	_, ok := l.Handler().(nopHandler)
	return ok
}
