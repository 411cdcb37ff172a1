// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// docsync computes, inspects, and applies document diffs between snapshot files.
//
// Usage:
//
//	docsync diff [flags] OLD NEW      print the diff from OLD to NEW
//	docsync apply [flags] DOC DIFF    apply DIFF to DOC and print the result
//	docsync preview [flags] DOC DIFF  print a line diff of what applying DIFF does to DOC
//	docsync show [flags] DIFF         print a human readable form of DIFF
//	docsync watch [flags] FILE        print a diff whenever FILE changes
//
// Snapshots are JSON, YAML, or TOML files, chosen by extension. Diffs are written in the JSON
// transport encoding unless -format asks for something else.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"znkr.io/docsync/internal/snapshot"
	"znkr.io/docsync/textpatch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	margin  int
	context int
	minimal bool
	compat  bool
	strict  bool
	format  string
	color   string
	verbose bool
}

func (cfg *config) register(fs *flag.FlagSet) {
	fs.IntVar(&cfg.margin, "margin", 4, "number of context characters around each patch hunk")
	fs.IntVar(&cfg.context, "context", 3, "number of context lines in previews")
	fs.BoolVar(&cfg.minimal, "minimal", false, "compute minimal text diffs")
	fs.BoolVar(&cfg.compat, "compat", false, "compute text diffs like diff-match-patch does")
	fs.BoolVar(&cfg.strict, "strict", false, "fail if a patch hunk can't be applied")
	fs.StringVar(&cfg.format, "format", "", "output format: json, yaml, or toml")
	fs.StringVar(&cfg.color, "color", "auto", "colorize output: auto, always, or never")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug messages")
}

// makeOptions returns the options for computing diffs.
func (cfg *config) makeOptions() []textpatch.Option {
	opts := []textpatch.Option{textpatch.Margin(cfg.margin)}
	if cfg.minimal {
		opts = append(opts, textpatch.Minimal())
	}
	if cfg.compat {
		opts = append(opts, textpatch.Compat())
	}
	return opts
}

// applyOptions returns the options for applying diffs.
func (cfg *config) applyOptions() []textpatch.Option {
	return []textpatch.Option{textpatch.Margin(cfg.margin)}
}

// outputFormat returns the format selected with -format or def if there is none.
func (cfg *config) outputFormat(def snapshot.Format) (snapshot.Format, error) {
	if cfg.format == "" {
		return def, nil
	}
	return snapshot.ParseFormat(cfg.format)
}

// app is the state shared by all commands.
type app struct {
	cfg    config
	stdout io.Writer
	log    *slog.Logger
}

type command struct {
	name  string
	args  []string
	help  string
	run   func(ctx context.Context, a *app, args []string) error
	flags []string
}

var commands = []command{
	{
		name:  "diff",
		args:  []string{"OLD", "NEW"},
		help:  "print the diff from snapshot OLD to snapshot NEW",
		run:   runDiff,
		flags: []string{"margin", "minimal", "compat", "format", "v"},
	},
	{
		name:  "apply",
		args:  []string{"DOC", "DIFF"},
		help:  "apply DIFF to snapshot DOC and print the resulting snapshot",
		run:   runApply,
		flags: []string{"margin", "strict", "format", "v"},
	},
	{
		name:  "preview",
		args:  []string{"DOC", "DIFF"},
		help:  "print a line diff of what applying DIFF does to the text of snapshot DOC",
		run:   runPreview,
		flags: []string{"margin", "strict", "context", "color", "v"},
	},
	{
		name:  "show",
		args:  []string{"DIFF"},
		help:  "print a human readable form of DIFF",
		run:   runShow,
		flags: []string{"color", "v"},
	},
	{
		name:  "watch",
		args:  []string{"FILE"},
		help:  "print a JSON diff line whenever snapshot FILE changes",
		run:   runWatch,
		flags: []string{"margin", "minimal", "compat", "v"},
	},
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: docsync COMMAND [flags] ARGS...\n\ncommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-7s %-10s %s\n", cmd.name, strings.Join(cmd.args, " "), cmd.help)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return flag.ErrHelp
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	a := &app{stdout: stdout}
	all := flag.NewFlagSet("", flag.ContinueOnError)
	a.cfg.register(all)
	fs := flag.NewFlagSet("docsync "+cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	for _, name := range cmd.flags {
		fs.Var(all.Lookup(name).Value, name, all.Lookup(name).Usage)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: docsync %s [flags] %s\n\n%s\n\nflags:\n", cmd.name, strings.Join(cmd.args, " "), cmd.help)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != len(cmd.args) {
		fs.Usage()
		return fmt.Errorf("%s: expected %d arguments, got %d", cmd.name, len(cmd.args), fs.NArg())
	}
	switch a.cfg.color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid -color value %q", a.cfg.color)
	}

	level := slog.LevelInfo
	if a.cfg.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).With("cmd", cmd.name)

	return cmd.run(ctx, a, fs.Args())
}
