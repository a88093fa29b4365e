// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"testing"

	"go.lsp.dev/protocol"
	"golang.org/x/tools/txtar"

	"github.com/typst-community/typlsp/internal/settings"
)

// multiFileFixture loads a txtar archive (gopls's own marker-test idiom,
// golang-tools/gopls/internal/util/fingerprint/fingerprint_test.go) whose
// files become a small project rooted at /project, and opens each of them
// in a fresh Session.
func multiFileFixture(t *testing.T, archive string) (*Session, map[string]SourceID) {
	t.Helper()
	opts := settings.DefaultOptions()
	opts.RootPath = "/project"
	s := NewSession(opts)

	arc := txtar.Parse([]byte(archive))
	ids := make(map[string]SourceID, len(arc.Files))
	for _, f := range arc.Files {
		uri := protocol.DocumentURI("file:///project/" + f.Name)
		ids[f.Name] = s.Open(uri, string(f.Data), 1)
	}
	return s, ids
}

func TestResolvePathAcrossTxtarFixture(t *testing.T) {
	s, ids := multiFileFixture(t, `
-- main.typ --
#import "lib.typ": greet
#greet()
-- lib.typ --
#let greet() = "hi"
`)

	got, ok := s.ResolvePath(ids["main.typ"], "lib.typ")
	if !ok {
		t.Fatal("expected lib.typ to resolve from main.typ")
	}
	if got != ids["lib.typ"] {
		t.Fatalf("resolved to SourceID %d, want %d", got, ids["lib.typ"])
	}
}

func TestResolvePathRejectsEscapingRoot(t *testing.T) {
	s, ids := multiFileFixture(t, `
-- sub/main.typ --
#import "../../../outside.typ"
`)
	if _, ok := s.ResolvePath(ids["sub/main.typ"], "../../../outside.typ"); ok {
		t.Fatal("expected a path escaping the root to be rejected")
	}
}
