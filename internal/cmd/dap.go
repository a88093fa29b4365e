// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDAPCommand builds the "dap" subcommand named in spec.md §6's CLI
// surface. A debug adapter sits above the analyzer core (spec.md §1 lists
// it among the external collaborators this repository does not shape), so
// this is a stub that fails clearly rather than silently doing nothing.
func newDAPCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:    "dap",
		Short:  "debug adapter protocol server (not implemented by this analyzer)",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("dap: debug adapter support is outside this analyzer's scope")
		},
	}
}
