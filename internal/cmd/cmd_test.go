// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRootRegistersSubcommands(t *testing.T) {
	root := NewRoot()
	want := map[string]bool{"lsp": false, "probe": false, "dap": false, "preview": false, "completion": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestProbeReportsNoDiagnosticsOnCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.typ")
	if err := os.WriteFile(path, []byte("#let x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := NewRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"probe", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("probe on a clean file: %v", err)
	}
}

func TestProbeFailsOnMissingFile(t *testing.T) {
	root := NewRoot()
	root.SetArgs([]string{"probe", filepath.Join(t.TempDir(), "missing.typ")})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected an error probing a nonexistent file")
	}
}

func TestDAPAndPreviewAreStubs(t *testing.T) {
	for _, name := range []string{"dap", "preview"} {
		root := NewRoot()
		root.SetArgs([]string{name})
		if err := root.ExecuteContext(context.Background()); err == nil {
			t.Errorf("expected %q to report that it is unimplemented", name)
		}
	}
}
