// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exprinfo

import (
	"testing"

	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

func TestBuildResolvesLocalRef(t *testing.T) {
	tree := syntax.Parse("#let x = 1\n#let y = x")
	hier := lexical.Build(tree)
	info := Build(0, tree, hier, nil, nil, nil)

	yLet := tree.Root.Children[2] // Children[1] is the "\n" text node
	yExpr, ok := info.Exprs[yLet.ID]
	if !ok {
		t.Fatal("missing expr for y binding")
	}
	ref := info.Exprs[yExpr.Body]
	if ref == nil || ref.Kind != ExprRef || ref.Unresolved {
		t.Fatalf("expected resolved ref to x, got %+v", ref)
	}
}

func TestBuildUnresolvedNameRecordsDiagnostic(t *testing.T) {
	tree := syntax.Parse("#let y = undefinedName")
	hier := lexical.Build(tree)
	info := Build(0, tree, hier, nil, nil, nil)
	if len(info.Unresolved) != 1 {
		t.Fatalf("got %d unresolved, want 1", len(info.Unresolved))
	}
	if info.Unresolved[0].Kind != UnresolvedName {
		t.Fatalf("got kind %v, want UnresolvedName", info.Unresolved[0].Kind)
	}
}

type fakeResolver struct {
	targets map[string]SourceID
}

func (f fakeResolver) ResolveImport(from SourceID, path string) (SourceID, bool) {
	id, ok := f.targets[path]
	return id, ok
}

func TestBuildCyclicImportDetected(t *testing.T) {
	tree := syntax.Parse(`#import "self.typ"`)
	hier := lexical.Build(tree)
	resolver := fakeResolver{targets: map[string]SourceID{"self.typ": 0}}
	visiting := map[SourceID]bool{0: true}
	info := Build(0, tree, hier, resolver, nil, visiting)
	found := false
	for _, u := range info.Unresolved {
		if u.Kind == CyclicImport {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CyclicImport diagnostic, got %+v", info.Unresolved)
	}
}

func TestNeedsRebuildWhitespaceOnly(t *testing.T) {
	old := syntax.Parse("#let x = 1")
	updated := syntax.Parse("#let x   =   1")
	if NeedsRebuild(old, updated) {
		t.Fatal("whitespace-only edit should not require rebuild")
	}
}

func TestNeedsRebuildTypingComment(t *testing.T) {
	old := syntax.Parse("/// @typing (int) -> int\n#let f(x) = x")
	updated := syntax.Parse("/// @typing (str) -> str\n#let f(x) = x")
	if !NeedsRebuild(old, updated) {
		t.Fatal("changed @typing annotation should require rebuild")
	}
}
