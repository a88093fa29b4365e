// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/typst-community/typlsp/internal/callresolver"
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
)

// InlayHintKind distinguishes the two hint shapes this analyzer
// produces (SPEC_FULL.md's supplemented "inlay hints" feature,
// grounded on gopls's internal/golang/inlay_hint.go which emits both
// parameter-name and inferred-type hints).
type InlayHintKind uint8

const (
	HintParamName InlayHintKind = iota
	HintInferredType
)

// InlayHint is one rendered hint at a position.
type InlayHint struct {
	Offset int
	Label  string
	Kind   InlayHintKind
}

// InlayHints implements the supplemented inlay-hints query: a
// parameter-name hint before each positional call argument whose
// callee has a resolvable signature, plus an inferred-type hint after
// every "#let" binding that has an inferred type, whether or not a
// @typing comment precedes it (spec.md §4.9's hover type is rendered
// inline here too, same data
// source).
func (f *Facade) InlayHints(id SourceID, span syntax.Span) []InlayHint {
	tree := f.World.Tree(id)
	exprs := f.World.Exprs(id)
	types := f.World.Types(id)
	if tree == nil || exprs == nil || types == nil {
		return nil
	}
	var hints []InlayHint
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if n.Kind == syntax.KindCall {
			hints = append(hints, paramNameHints(f, id, n, exprs)...)
		}
		if n.Kind == syntax.KindLet {
			if t, ok := types.Types[n.ID]; ok {
				hints = append(hints, InlayHint{Offset: n.Span.End, Label: ": " + t.String(), Kind: HintInferredType})
			}
		}
		for _, c := range n.Children {
			if c.Span.Start <= span.End && c.Span.End >= span.Start {
				walk(c)
			}
		}
	}
	walk(tree.Root)
	return hints
}

func paramNameHints(f *Facade, id SourceID, call *syntax.Node, exprs *exprinfo.Info) []InlayHint {
	if len(call.Children) == 0 {
		return nil
	}
	callee := call.Children[0]
	ref, ok := exprs.Exprs[callee.ID]
	if !ok || ref.Kind != exprinfo.ExprRef || ref.Unresolved {
		return nil
	}
	sigs := f.Sigs.SignaturesOf(ref.Ref)
	if len(sigs) == 0 {
		return nil
	}
	positional, named := splitArgs(call)
	binding := callresolver.ResolveCall(sigs[0], positional, named)
	var hints []InlayHint
	for paramIdx, argID := range binding.ParamToArg {
		if paramIdx >= len(sigs[0].Positional) {
			continue
		}
		argSpan := spanOf(call, argID)
		hints = append(hints, InlayHint{
			Offset: argSpan.Start,
			Label:  sigs[0].Positional[paramIdx].Name + ": ",
			Kind:   HintParamName,
		})
	}
	return hints
}

func spanOf(call *syntax.Node, id exprinfo.ExprID) syntax.Span {
	var found syntax.Span
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if n.ID == id {
			found = n.Span
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(call)
	return found
}
