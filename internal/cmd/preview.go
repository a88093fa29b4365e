// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPreviewCommand builds the "preview" subcommand named in spec.md §6's
// CLI surface. Document preview streaming is one of the collaborators
// spec.md §1 explicitly places above the core, so this is a stub that
// fails clearly rather than silently doing nothing.
func newPreviewCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:    "preview",
		Short:  "render a live preview (not implemented by this analyzer)",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("preview: document preview streaming is outside this analyzer's scope")
		},
	}
}
