// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package command implements the eight user-facing subcommands: init,
// add, status, commit, log, checkout, diff, and verify. Each is a
// small struct with kong flag tags and a Run(g *Globals) error method.
package command

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Globals carries the flags shared across every subcommand.
type Globals struct {
	Verbose bool        `short:"V" name:"verbose" help:"Make the operation more talkative"`
	NoColor bool        `name:"no-color" help:"Disable color output"`
	Version VersionFlag `short:"v" name:"version" help:"Show version number and quit"`
	CWD     string      `name:"cwd" help:"Set the path to the repository worktree" type:"path"`
}

// DbgPrint prints a verbose-only diagnostic line, one "* "-prefixed
// line per newline in the formatted message.
func (g *Globals) DbgPrint(format string, args ...any) {
	if !g.Verbose {
		return
	}
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	var buf bytes.Buffer
	for _, s := range strings.Split(message, "\n") {
		buf.WriteString("* ")
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	os.Stderr.Write(buf.Bytes())
}

// ColorEnabled reports whether stdout output should be colorized: off
// when --no-color was passed, when NO_COLOR is set (per no-color.org),
// or when stdout is not a terminal.
func (g *Globals) ColorEnabled() bool {
	if g.NoColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) || term.IsTerminal(int(fd))
}

// Worktree resolves the directory a command should operate in: CWD if
// set, else the process's current directory.
func (g *Globals) Worktree() (string, error) {
	if g.CWD != "" {
		return g.CWD, nil
	}
	return os.Getwd()
}

// VersionFlag implements kong's "print and exit" boolean-flag idiom.
type VersionFlag bool

// Version is the CLI's reported version string.
const Version = "0.1.0"

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println("ofs version " + Version)
	app.Exit(0)
	return nil
}

func diev(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", a...)
}

func warnv(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", a...)
}
