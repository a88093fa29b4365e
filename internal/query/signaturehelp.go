// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/typst-community/typlsp/internal/callresolver"
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

// SignatureHelpResult bundles the candidate signatures for the call
// enclosing offset plus the argument binding for the first one
// (spec.md §4.9 "signature_help"), mirroring CallResolver's output
// shape so the LSP layer can highlight the active parameter directly.
type SignatureHelpResult struct {
	Signatures  []*typeinfo.Signature
	ActiveIndex int
	Binding     callresolver.Binding
}

// SignatureHelp implements spec.md §4.9's signature-help query: find
// the smallest enclosing Call node, resolve its callee's candidate
// signatures through SigResolver, and bind the call's current
// arguments against the first candidate through CallResolver.
func (f *Facade) SignatureHelp(id SourceID, offset int) (SignatureHelpResult, bool) {
	tree := f.World.Tree(id)
	exprs := f.World.Exprs(id)
	if tree == nil || exprs == nil {
		return SignatureHelpResult{}, false
	}
	path := tree.PathAt(offset)
	var call *syntax.Node
	for _, n := range path {
		if n.Kind == syntax.KindCall {
			call = n
			break
		}
	}
	if call == nil {
		return SignatureHelpResult{}, false
	}
	e, ok := exprs.Exprs[call.ID]
	if !ok || e.Kind != exprinfo.ExprCall {
		return SignatureHelpResult{}, false
	}
	calleeExpr, ok := exprs.Exprs[e.Callee]
	if !ok || calleeExpr.Kind != exprinfo.ExprRef || calleeExpr.Unresolved {
		return SignatureHelpResult{}, false
	}
	sigs := f.Sigs.SignaturesOf(calleeExpr.Ref)
	if len(sigs) == 0 {
		return SignatureHelpResult{}, false
	}

	positional, named := splitArgs(call)
	binding := callresolver.ResolveCall(sigs[0], positional, named)
	return SignatureHelpResult{Signatures: sigs, ActiveIndex: 0, Binding: binding}, true
}

// splitArgs walks a Call node's KindArg children, separating bare
// positional arguments from "name: expr" named arguments (spec.md
// §4.8's input shape for CallResolver).
func splitArgs(call *syntax.Node) ([]exprinfo.ExprID, []callresolver.NamedArg) {
	var positional []exprinfo.ExprID
	var named []callresolver.NamedArg
	for _, c := range call.Children {
		if c.Kind != syntax.KindArg || len(c.Children) == 0 {
			continue
		}
		if len(c.Children) == 2 {
			named = append(named, callresolver.NamedArg{Name: c.Children[0].Text, Expr: c.Children[1].ID})
			continue
		}
		positional = append(positional, c.Children[0].ID)
	}
	return positional, named
}
