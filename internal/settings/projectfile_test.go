// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProjectFileAppliesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	contents := "rootPath: /work\nfontPaths:\n  - /fonts/a\n  - /fonts/b\nsemanticTokens: disable\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typlsp.yaml"), []byte(contents), 0o644))

	opts := DefaultOptions()
	require.NoError(t, LoadProjectFile(opts, dir))

	require.Equal(t, "/work", opts.RootPath)
	require.Equal(t, []string{"/fonts/a", "/fonts/b"}, opts.FontPaths)
	require.Equal(t, SemanticTokensDisable, opts.SemanticTokens)
}

func TestLoadProjectFileMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	require.NoError(t, LoadProjectFile(opts, dir))
	require.Equal(t, DefaultOptions(), opts)
}

func TestLoadProjectFileRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typlsp.yaml"), []byte("not: [valid"), 0o644))

	opts := DefaultOptions()
	require.Error(t, LoadProjectFile(opts, dir))
}
