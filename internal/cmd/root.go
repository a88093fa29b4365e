// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd assembles the typlsp CLI surface (spec.md §6). It replaces
// gopls's unexported internal/tool flag dispatcher with
// github.com/spf13/cobra + pflag, the stack cuelang.org/go and
// bufbuild/buf use for their own root command trees.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/typst-community/typlsp/internal/log"
	"github.com/typst-community/typlsp/internal/settings"
)

// globalFlags are bound on the root command and read by every subcommand,
// mirroring cue's addGlobalFlags(cmd.PersistentFlags()).
type globalFlags struct {
	rootPath  string
	fontPaths []string
	mirror    string
	replay    string
	verbose   bool
}

// addGlobalFlags binds the flags every subcommand reads through
// globalFlags, taking the *pflag.FlagSet directly rather than going
// through cobra.Command, matching cue's cmd/cue/cmd/flags.go
// addGlobalFlags(f *pflag.FlagSet).
func addGlobalFlags(f *pflag.FlagSet, flags *globalFlags) {
	f.StringVar(&flags.rootPath, "root", "", "workspace root path")
	f.StringSliceVar(&flags.fontPaths, "font-path", nil, "additional font search directory (repeatable)")
	f.StringVar(&flags.mirror, "mirror", "", "record the jsonrpc2 session to the given file (no-op, host boundary concern)")
	f.StringVar(&flags.replay, "replay", "", "replay a recorded jsonrpc2 session from the given file (no-op, host boundary concern)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
}

// NewRoot constructs the top-level "typlsp" command.
func NewRoot() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "typlsp",
		Short: "Language server and tooling for the analyzer's typesetting language",

		// Errors and usage are printed by the subcommand itself; don't
		// let cobra print them a second time.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	addGlobalFlags(root.PersistentFlags(), flags)

	root.AddCommand(
		newLSPCommand(flags),
		newProbeCommand(flags),
		newDAPCommand(flags),
		newPreviewCommand(flags),
	)
	root.InitDefaultCompletionCmd()

	return root
}

// optionsFrom builds the settings.Options baseline every subcommand starts
// from: defaults, then a "typlsp.yaml" project file if the workspace root
// has one, then the persistent flags set on the root command (flags win,
// the same precedence order spec.md §6 gives client config over both).
func optionsFrom(flags *globalFlags) *settings.Options {
	opts := settings.DefaultOptions()

	root := flags.rootPath
	if root == "" {
		root = "."
	}
	if err := settings.LoadProjectFile(opts, root); err != nil {
		log.Warnf("typlsp.yaml: %v", err)
	}

	if flags.rootPath != "" {
		opts.RootPath = flags.rootPath
	}
	if len(flags.fontPaths) > 0 {
		opts.FontPaths = flags.fontPaths
	}
	opts.VerboseOutput = flags.verbose
	return opts
}
