// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/typst-community/typlsp/internal/lexical"
)

// symbolShape strips Span and Source before comparing, the same way
// golang-tools/gopls/internal/cache/filemap_test.go diffs two trees of
// test-only summary structs rather than the full cache entries.
type symbolShape struct {
	Name     string
	Kind     lexical.Kind
	Children []symbolShape
}

func shapeOf(syms []Symbol) []symbolShape {
	if len(syms) == 0 {
		return nil
	}
	out := make([]symbolShape, len(syms))
	for i, s := range syms {
		out[i] = symbolShape{Name: s.Name, Kind: s.Kind, Children: shapeOf(s.Children)}
	}
	return out
}

func TestDocumentSymbolsNestsBlockScopes(t *testing.T) {
	text := "#let outer(x) = {\n  #let inner = x\n  inner\n}"
	f, id := newFacade(t, text)
	got := shapeOf(f.DocumentSymbols(id))

	want := []symbolShape{
		{
			Name: "outer",
			Kind: lexical.KindFunction,
			Children: []symbolShape{
				{Name: "inner", Kind: lexical.KindLet},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document symbols mismatch (-want +got):\n%s", diff)
	}
}
