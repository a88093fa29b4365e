// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lexical

import (
	"testing"

	"github.com/typst-community/typlsp/internal/syntax"
)

func TestBuildBasic(t *testing.T) {
	tree := syntax.Parse("#let x = 1\n= Title\n<my-label>")
	h := Build(tree)
	var kinds []Kind
	for _, c := range h.Root.Children {
		kinds = append(kinds, c.Kind)
	}
	want := []Kind{KindLet, KindHeading, KindLabel}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}

func TestFunctionVisibleFromOwnStart(t *testing.T) {
	tree := syntax.Parse("#let f(x) = f(x)")
	h := Build(tree)
	fn := h.Root.Children[0]
	if fn.Kind != KindFunction {
		t.Fatalf("got kind %v, want Function", fn.Kind)
	}
	if fn.VisibleFrom != fn.Span.Start {
		t.Fatalf("function visible from %d, want own start %d", fn.VisibleFrom, fn.Span.Start)
	}
}

func TestLetVisibleAfterOwnEnd(t *testing.T) {
	tree := syntax.Parse("#let x = 1")
	h := Build(tree)
	let := h.Root.Children[0]
	if let.VisibleFrom != let.Span.End {
		t.Fatalf("let visible from %d, want own end %d", let.VisibleFrom, let.Span.End)
	}
}

func TestLookupShadowing(t *testing.T) {
	tree := syntax.Parse("#let x = 1\n#let f = (x) => x")
	h := Build(tree)
	// offset inside the closure body "x" at the very end.
	offset := len(tree.Src) - 1
	found := Lookup(h, offset, "x")
	if found == nil {
		t.Fatal("expected to find binding for x")
	}
}
