// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command typlsp is the language server and CLI front-end for the
// analyzer described in SPEC_FULL.md.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/typst-community/typlsp/internal/cmd"
)

func main() {
	root := cmd.NewRoot()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
