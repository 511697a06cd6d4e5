// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Package logz is a thin verbosity-gated wrapper over the standard
// library's log.Logger, matching the teacher's printf-to-stdout texture
// (cmd/gini/main.go) rather than introducing a structured logging
// library.
package logz

import (
	"log"
	"os"
)

// L is a verbosity-gated logger: Logf only writes when level <= Verbosity.
type L struct {
	Verbosity int
	logger    *log.Logger
}

// New creates a logger writing to stderr with no timestamp prefix,
// matching the teacher's plain diagnostic output.
func New(verbosity int) *L {
	return &L{Verbosity: verbosity, logger: log.New(os.Stderr, "", 0)}
}

// Logf writes format/args if level is at or below the configured
// verbosity.
func (l *L) Logf(level int, format string, args ...interface{}) {
	if l == nil || level > l.Verbosity {
		return
	}
	l.logger.Printf(format, args...)
}
