// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package defresolver

import (
	"testing"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

type fakeFiles struct {
	trees map[SourceID]*syntax.Tree
	exprs map[SourceID]*exprinfo.Info
	types map[SourceID]*typeinfo.Info
}

func (f fakeFiles) Tree(id SourceID) *syntax.Tree     { return f.trees[id] }
func (f fakeFiles) Exprs(id SourceID) *exprinfo.Info  { return f.exprs[id] }
func (f fakeFiles) Types(id SourceID) *typeinfo.Info  { return f.types[id] }

func analyzeFile(src string) (*syntax.Tree, *exprinfo.Info, *typeinfo.Info) {
	tree := syntax.Parse(src)
	hier := lexical.Build(tree)
	exprs := exprinfo.Build(0, tree, hier, nil, nil, nil)
	types := typeinfo.Infer(exprs, tree, nil)
	return tree, exprs, types
}

func TestDefinitionAtLocalBinding(t *testing.T) {
	tree, exprs, types := analyzeFile("#let x = 1\n#let y = x")
	files := fakeFiles{
		trees: map[SourceID]*syntax.Tree{0: tree},
		exprs: map[SourceID]*exprinfo.Info{0: exprs},
		types: map[SourceID]*typeinfo.Info{0: types},
	}

	yLet := tree.Root.Children[2] // Children[1] is the "\n" text node
	// offset of "x" reference inside y's binding: yLet.Span.End - 1
	offset := yLet.Span.End - 1
	def, ok := DefinitionAt(files, 0, offset)
	if !ok {
		t.Fatal("expected a definition")
	}
	xLet := tree.Root.Children[0]
	if def.Span != xLet.Span {
		t.Fatalf("got span %v, want x's span %v", def.Span, xLet.Span)
	}
}

func TestDefinitionAtBuiltin(t *testing.T) {
	tree, exprs, types := analyzeFile("#rgb(1, 2, 3)")
	files := fakeFiles{
		trees: map[SourceID]*syntax.Tree{0: tree},
		exprs: map[SourceID]*exprinfo.Info{0: exprs},
		types: map[SourceID]*typeinfo.Info{0: types},
	}
	call := tree.Root.Children[0]
	calleeOffset := call.Children[0].Span.Start
	def, ok := DefinitionAt(files, 0, calleeOffset)
	if !ok {
		t.Fatal("expected a definition")
	}
	if def.Kind != DefBuiltin || def.Builtin != "rgb" {
		t.Fatalf("got %+v, want builtin rgb", def)
	}
}
