// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package otrace provides the ambient logging/diagnostics used across
// OFS commands: structured error logging via logrus, and a verbose-only
// step timer for the -V/--verbose flag.
package otrace

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Errorf logs msg via logrus at Error level and returns it as a plain
// error, so call sites can both diagnose and propagate in one call.
func Errorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	logrus.Error(msg)
	return fmt.Errorf("%s", msg)
}

// Warnf logs a non-fatal diagnostic via logrus at Warn level, used
// when index.json fails to parse and loads as empty.
func Warnf(format string, a ...any) {
	logrus.Warnf(format, a...)
}

// Tracker prints verbose-only step timing to stderr, silent unless the
// command was invoked with -V/--verbose.
type Tracker struct {
	verbose bool
	last    time.Time
}

// NewTracker returns a Tracker that is silent unless verbose is true.
func NewTracker(verbose bool) *Tracker {
	return &Tracker{verbose: verbose, last: time.Now()}
}

// StepNext prints the elapsed time since the previous step, prefixed
// with the given label, when verbose mode is enabled.
func (t *Tracker) StepNext(format string, a ...any) {
	if !t.verbose {
		return
	}
	s := fmt.Sprintf(format, a...)
	now := time.Now()
	fmt.Fprintf(os.Stderr, "* %s (%v)\n", strings.TrimSuffix(s, "\n"), now.Sub(t.last))
	t.last = now
}

// Printf prints a verbose-only diagnostic line without timing.
func (t *Tracker) Printf(format string, a ...any) {
	if !t.verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "* %s\n", strings.TrimSuffix(fmt.Sprintf(format, a...), "\n"))
}
