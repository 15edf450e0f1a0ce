// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Command ofs is the local-first, single-user version control CLI.
package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ofs-vcs/ofs/internal/command"
)

// App assembles every subcommand into a single kong-parsed tree.
type App struct {
	command.Globals
	Init     command.Init     `cmd:"init" help:"Create an empty OFS repository"`
	Add      command.Add      `cmd:"add" help:"Add file contents to the index"`
	Status   command.Status   `cmd:"status" help:"Show the working tree status"`
	Commit   command.Commit   `cmd:"commit" help:"Record staged changes to the repository"`
	Log      command.Log      `cmd:"log" help:"Show commit history"`
	Checkout command.Checkout `cmd:"checkout" help:"Restore the working tree to a commit and detach HEAD"`
	Diff     command.Diff     `cmd:"diff" help:"Show changes between working tree, index, and commits"`
	Verify   command.Verify   `cmd:"verify" help:"Check repository integrity"`
}

func main() {
	var app App
	ctx := kong.Parse(&app,
		kong.Name("ofs"),
		kong.Description("OFS - a local-first, single-user, content-addressed version control system"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	start := time.Now()
	err := ctx.Run(&app.Globals)
	if app.Verbose {
		app.DbgPrint("time spent: %v", time.Since(start))
	}
	if err != nil {
		os.Exit(1)
	}
}
