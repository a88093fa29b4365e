// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"strings"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/typst-community/typlsp/internal/defresolver"
	"github.com/typst-community/typlsp/internal/settings"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/world"
)

func newFacade(t *testing.T, text string) (*Facade, SourceID) {
	t.Helper()
	s := world.NewSession(settings.DefaultOptions())
	id := s.Open(protocol.DocumentURI("file:///a.typ"), text, 1)
	return NewFacade(s), id
}

func offsetOf(text, substr string) int {
	return strings.Index(text, substr)
}

func lastOffsetOf(text, substr string) int {
	return strings.LastIndex(text, substr)
}

func TestDefinitionFindsLocalBinding(t *testing.T) {
	text := "#let x = 1\n#let y = x"
	f, id := newFacade(t, text)
	def, ok := f.Definition(id, lastOffsetOf(text, "x"))
	if !ok {
		t.Fatal("expected a definition")
	}
	if def.Kind != defresolver.DefBinding {
		t.Fatalf("got kind %v, want DefBinding", def.Kind)
	}
}

func TestHoverReportsInferredType(t *testing.T) {
	text := "#let x = 1\n#let y = x"
	f, id := newFacade(t, text)
	res, ok := f.Hover(id, lastOffsetOf(text, "x"))
	if !ok {
		t.Fatal("expected a hover result")
	}
	if res.Kind != "binding" {
		t.Fatalf("got kind %q, want binding", res.Kind)
	}
}

func TestReferencesFindsBothUses(t *testing.T) {
	text := "#let x = 1\n#let y = x\n#let z = x"
	f, id := newFacade(t, text)
	locs := f.References(id, offsetOf(text, "#let y = x")+9, false)
	if len(locs) != 2 {
		t.Fatalf("got %d references, want 2", len(locs))
	}
}

func TestPrepareRenameRejectsBuiltin(t *testing.T) {
	text := "#let y = rgb(1, 2, 3)"
	f, id := newFacade(t, text)
	_, err := f.PrepareRename(id, offsetOf(text, "rgb")+1)
	if err == nil {
		t.Fatal("expected an error renaming a built-in")
	}
}

func TestRenameCollectsAllSites(t *testing.T) {
	text := "#let x = 1\n#let y = x"
	f, id := newFacade(t, text)
	edits, err := f.Rename(id, lastOffsetOf(text, "x"), "z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edits) != 2 {
		t.Fatalf("got %d edits, want 2 (1 declaration + 1 reference)", len(edits))
	}
}

func TestSignatureHelpResolvesParamNames(t *testing.T) {
	text := "#let f(x, y) = x\n#let z = f(1, 2)"
	f, id := newFacade(t, text)
	res, ok := f.SignatureHelp(id, offsetOf(text, "(1, 2)")+1)
	if !ok {
		t.Fatal("expected a signature help result")
	}
	if len(res.Signatures) != 1 || len(res.Signatures[0].Positional) != 2 {
		t.Fatalf("got %+v, want a 2-param signature", res.Signatures)
	}
}

func TestDocumentSymbolsListsBindings(t *testing.T) {
	text := "#let x = 1\n#let f(a) = a"
	f, id := newFacade(t, text)
	syms := f.DocumentSymbols(id)
	if len(syms) != 2 {
		t.Fatalf("got %d symbols, want 2", len(syms))
	}
}

func TestWorkspaceSymbolsMatchesSubstring(t *testing.T) {
	f, _ := newFacade(t, "#let frobnicate = 1")
	syms := f.WorkspaceSymbols("frob")
	if len(syms) != 1 {
		t.Fatalf("got %d symbols, want 1", len(syms))
	}
}

func TestFoldingRangesCoverMultilineBlocks(t *testing.T) {
	text := "#let f(x) = {\n  x\n}"
	f, id := newFacade(t, text)
	ranges := f.FoldingRanges(id)
	if len(ranges) == 0 {
		t.Fatal("expected at least one folding range for the multi-line block")
	}
}

func TestSemanticTokensCoversLiteralsAndIdents(t *testing.T) {
	text := "#let x = 1"
	f, id := newFacade(t, text)
	toks := f.SemanticTokens(id)
	if len(toks) == 0 {
		t.Fatal("expected at least one semantic token")
	}
}

func TestInlayHintsAnnotatesLetBinding(t *testing.T) {
	text := "#let x = 1"
	f, id := newFacade(t, text)
	hints := f.InlayHints(id, syntax.Span{Start: 0, End: len(text)})
	found := false
	for _, h := range hints {
		if h.Kind == HintInferredType {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an inferred-type inlay hint for the let binding")
	}
}

func TestDiagnosticsReportsUnresolvedName(t *testing.T) {
	text := "#let y = undefinedThing"
	f, id := newFacade(t, text)
	diags := f.Diagnostics(id)
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for the unresolved name")
	}
}

func TestCompletionMergesScopeAndBuiltins(t *testing.T) {
	text := "#let localVar = 1\n#let y = "
	f, id := newFacade(t, text)
	items := f.Completion(id, len(text))
	var hasLocal, hasBuiltin bool
	for _, it := range items {
		if it.Label == "localVar" {
			hasLocal = true
		}
		if it.Label == "text" {
			hasBuiltin = true
		}
	}
	if !hasLocal {
		t.Error("expected localVar to be suggested")
	}
	if !hasBuiltin {
		t.Error("expected a built-in to be suggested")
	}
}
