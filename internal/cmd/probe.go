// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/typst-community/typlsp/internal/query"
	"github.com/typst-community/typlsp/internal/world"
)

// newProbeCommand builds the "probe" subcommand: a one-shot, non-LSP check
// that runs the same analysis pipeline against a single file and prints its
// diagnostics, for scripting and CI use outside an editor session.
func newProbeCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "analyze a single file and print its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, flags, args[0])
		},
	}
	return cmd
}

func runProbe(cmd *cobra.Command, flags *globalFlags, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}

	w := world.NewSession(optionsFrom(flags))
	facade := query.NewFacade(w)
	id := w.Open(protocol.DocumentURI("file://"+path), string(text), 1)

	diags := facade.Diagnostics(id)
	// x/text's Printer picks a locale-appropriate plural/number form for
	// the summary line, the same way cue's exitOnErr links x/text as its
	// CLI output localizer (cmd/cue/cmd/common.go's getLang/message.Printer).
	p := message.NewPrinter(localeFromEnv())
	out := cmd.OutOrStdout()
	for _, d := range diags {
		fmt.Fprintf(out, "%s: %s: %s\n", path, severityLabel(d.Severity), d.Message)
	}
	if hasError(diags) {
		return p.Errorf("probe: %d diagnostic(s) reported", len(diags))
	}
	return nil
}

// localeFromEnv mirrors cue's getLang(): LC_ALL then LANG, POSIX-style.
func localeFromEnv() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

func severityLabel(sev query.DiagnosticSeverity) string {
	if sev == query.SeverityWarning {
		return "warning"
	}
	return "error"
}

func hasError(diags []query.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == query.SeverityError {
			return true
		}
	}
	return false
}
