// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigresolver

import (
	"testing"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

type fakeFiles struct {
	tree  *syntax.Tree
	exprs *exprinfo.Info
}

func (f fakeFiles) Tree(exprinfo.SourceID) *syntax.Tree    { return f.tree }
func (f fakeFiles) Exprs(exprinfo.SourceID) *exprinfo.Info { return f.exprs }

func TestSignaturesOfFunction(t *testing.T) {
	tree := syntax.Parse("#let f(x, y) = x")
	hier := lexical.Build(tree)
	exprs := exprinfo.Build(0, tree, hier, nil, nil, nil)
	r := &Resolver{Files: fakeFiles{tree: tree, exprs: exprs}}

	fn := tree.Root.Children[0]
	sigs := r.SignaturesOf(exprinfo.DefID{Source: 0, Expr: fn.ID})
	if len(sigs) != 1 {
		t.Fatalf("got %d signatures, want 1", len(sigs))
	}
	if len(sigs[0].Positional) != 2 {
		t.Fatalf("got %d params, want 2", len(sigs[0].Positional))
	}
}

func TestSignaturesOfBuiltinIsNil(t *testing.T) {
	r := &Resolver{}
	sigs := r.SignaturesOf(exprinfo.DefID{Builtin: "rgb"})
	if sigs != nil {
		t.Fatalf("got %v, want nil for builtin", sigs)
	}
}

func TestParseTypingAnnotation(t *testing.T) {
	params, ret, ok := ParseTypingAnnotation("@typing (int, str) -> bool")
	if !ok {
		t.Fatal("expected ok")
	}
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if ret.String() != "bool" {
		t.Fatalf("got return %v, want bool", ret)
	}
}

func TestParseTypingAnnotationAbsent(t *testing.T) {
	_, _, ok := ParseTypingAnnotation("just a plain comment")
	if ok {
		t.Fatal("expected ok=false when no @typing present")
	}
}
