// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typeinfo

import (
	"testing"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

func analyze(t *testing.T, src string) (*exprinfo.Info, *syntax.Tree, *Info) {
	t.Helper()
	tree := syntax.Parse(src)
	hier := lexical.Build(tree)
	exprs := exprinfo.Build(0, tree, hier, nil, nil, nil)
	info := Infer(exprs, tree, nil)
	return exprs, tree, info
}

func TestInferIntLiteral(t *testing.T) {
	exprs, tree, info := analyze(t, "#let x = 1")
	typ := info.TypeAt(exprs, tree, 9) // offset 9 is the literal "1"
	if typ.Tag != TPrimitive || typ.Primitive != Int {
		t.Fatalf("got %v, want int for an int literal", typ)
	}
}

func TestInferLetPropagatesLiteralType(t *testing.T) {
	tree := syntax.Parse("#let x = 1\n#let y = x")
	hier := lexical.Build(tree)
	exprs := exprinfo.Build(0, tree, hier, nil, nil, nil)
	info := Infer(exprs, tree, nil)

	xLet := tree.Root.Children[0]
	xType := info.Types[xLet.ID]
	if xType == nil || xType.Tag != TPrimitive || xType.Primitive != Int {
		t.Fatalf("got %v, want int", xType)
	}
}

func TestUnionDedupesStructurally(t *testing.T) {
	u := UnionType(PrimitiveType(Int), PrimitiveType(Str), PrimitiveType(Int))
	if u.Tag != TUnion {
		t.Fatalf("got tag %v, want union", u.Tag)
	}
	if len(u.Items) != 2 {
		t.Fatalf("got %d items, want 2 after dedup", len(u.Items))
	}
}

func TestSubstitutionBindAndResolve(t *testing.T) {
	s := NewSubstitution()
	v := s.Fresh()
	s.Bind(v, PrimitiveType(Str))
	got := s.Resolve(v)
	if got.Tag != TPrimitive || got.Primitive != Str {
		t.Fatalf("got %v, want str", got)
	}
}

func TestAdmitsAnyAbsorbs(t *testing.T) {
	if !Admits(AnyType(), PrimitiveType(Int)) {
		t.Fatal("Any should admit everything")
	}
	if !Admits(PrimitiveType(Int), NeverType()) {
		t.Fatal("everything should admit Never")
	}
}

func TestAdmitsPrecUpperBound(t *testing.T) {
	bound := PrecType(PrimitiveType(Int))
	if !Admits(bound, PrimitiveType(Int)) {
		t.Fatal("Prec<int> should admit int")
	}
	if Admits(bound, PrimitiveType(Str)) {
		t.Fatal("Prec<int> should not admit str")
	}
}

func TestOverloadDeclaredOrderStableUnderAddition(t *testing.T) {
	sigA := &Signature{Positional: []Param{{Name: "x", Type: PrimitiveType(Int), Required: true}}, Return: PrimitiveType(Int)}
	sigs := []*Signature{sigA}
	args := []*Type{PrimitiveType(Int)}

	inf := &inferer{subst: NewSubstitution(), info: &Info{Types: map[exprinfo.ExprID]*Type{}}}
	var before []*Type
	for _, s := range sigs {
		if inf.tryUnifyCall(s, args) {
			before = append(before, s.Return)
		}
	}

	sigB := &Signature{Positional: []Param{{Name: "x", Type: PrimitiveType(Str), Required: true}}, Return: PrimitiveType(Str)}
	sigsExtended := []*Signature{sigA, sigB} // unused overload added
	var after []*Type
	for _, s := range sigsExtended {
		if inf.tryUnifyCall(s, args) {
			after = append(after, s.Return)
		}
	}
	if len(before) != 1 || len(after) != 1 || before[0].String() != after[0].String() {
		t.Fatalf("adding an unused overload changed the binding: before=%v after=%v", before, after)
	}
}
