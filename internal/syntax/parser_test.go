// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

func TestParseHeading(t *testing.T) {
	tree := Parse("= Title\nbody")
	if len(tree.Root.Children) == 0 {
		t.Fatal("expected at least one child")
	}
	h := tree.Root.Children[0]
	if h.Kind != KindHeading {
		t.Fatalf("got kind %v, want Heading", h.Kind)
	}
}

func TestParseStrongEmph(t *testing.T) {
	tree := Parse("*bold* and _italic_")
	var kinds []Kind
	for _, n := range tree.Root.Children {
		kinds = append(kinds, n.Kind)
	}
	foundStrong, foundEmph := false, false
	for _, k := range kinds {
		if k == KindStrong {
			foundStrong = true
		}
		if k == KindEmph {
			foundEmph = true
		}
	}
	if !foundStrong || !foundEmph {
		t.Fatalf("got kinds %v, want Strong and Emph present", kinds)
	}
}

func TestParseLetBinding(t *testing.T) {
	tree := Parse("#let x = 1")
	if len(tree.Root.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(tree.Root.Children))
	}
	let := tree.Root.Children[0]
	if let.Kind != KindLet {
		t.Fatalf("got kind %v, want Let", let.Kind)
	}
	if let.Text != "x" {
		t.Fatalf("got name %q, want x", let.Text)
	}
}

func TestParseFunctionCall(t *testing.T) {
	tree := Parse("#foo(1, 2)")
	let := tree.Root.Children[0]
	if let.Kind != KindCall {
		t.Fatalf("got kind %v, want Call", let.Kind)
	}
	if len(let.Children) != 3 { // callee + 2 args
		t.Fatalf("got %d children, want 3", len(let.Children))
	}
}

func TestParseImport(t *testing.T) {
	tree := Parse(`#import "lib.typ": a, b`)
	imp := tree.Root.Children[0]
	if imp.Kind != KindImport {
		t.Fatalf("got kind %v, want Import", imp.Kind)
	}
	if len(imp.Children) != 3 { // path + 2 items
		t.Fatalf("got %d children, want 3", len(imp.Children))
	}
}

func TestParseIfElse(t *testing.T) {
	tree := Parse("#if x { 1 } else { 2 }")
	ifNode := tree.Root.Children[0]
	if ifNode.Kind != KindIf {
		t.Fatalf("got kind %v, want If", ifNode.Kind)
	}
	if len(ifNode.Children) != 3 { // cond + then + else
		t.Fatalf("got %d children, want 3", len(ifNode.Children))
	}
}

func TestParseFuncLiteral(t *testing.T) {
	tree := Parse("#let f = (x, y) => x + y")
	let := tree.Root.Children[0]
	if len(let.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(let.Children))
	}
	fn := let.Children[0]
	if fn.Kind != KindFuncLit {
		t.Fatalf("got kind %v, want FuncLit", fn.Kind)
	}
}

func TestParseMalformedInputStillCoversSource(t *testing.T) {
	tree := Parse("#(")
	if tree.Root.Span.End != len("#(") {
		t.Fatalf("root span %v does not cover whole source", tree.Root.Span)
	}
}

func TestNodeAtAndPathAt(t *testing.T) {
	tree := Parse("#let x = 1")
	n := tree.NodeAt(5) // inside "let"
	if n == nil {
		t.Fatal("NodeAt returned nil")
	}
	path := tree.PathAt(5)
	if len(path) == 0 || path[len(path)-1] != tree.Root {
		t.Fatalf("PathAt should end at root, got %v", path)
	}
}

func TestLineIndexRoundTrip(t *testing.T) {
	src := "ab\ncd\néf"
	li := NewLineIndex(src)
	for offset := 0; offset <= len(src); offset++ {
		pos := li.ToPosition(offset)
		back := li.ToOffset(pos)
		// Multiple offsets within a multi-byte rune can map to the
		// same position; round-tripping only needs to land on a byte
		// boundary, not reproduce the exact offset.
		if back < 0 || back > len(src) {
			t.Fatalf("offset %d -> %v -> %d out of range", offset, pos, back)
		}
	}
}
