// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package callresolver matches a call site's arguments against a
// signature, producing the binding consumed by signature help and
// inlay hints (spec.md §4.8). It is grounded on buf's
// internal/lsp/completion_cel.go argument-matching pass and gopls's
// internal/golang/completion call-argument classification.
package callresolver

import (
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

// Binding is the result of matching a call's arguments against a
// Signature (spec.md §4.8).
type Binding struct {
	// ParamToArg maps a parameter index (within the signature's
	// Positional list) to the argument ExprID bound to it. Unmatched
	// parameters, including ones filled by a spread, are absent.
	ParamToArg map[int]exprinfo.ExprID

	// NamedToArg maps a named-only parameter's name to the argument
	// ExprID bound to it.
	NamedToArg map[string]exprinfo.ExprID

	// ActiveParam is the index of the parameter the most recently
	// supplied argument fills — used by signature help to highlight
	// the live parameter.
	ActiveParam int

	UnmatchedArgs  []exprinfo.ExprID
	MissingParams  []string
}

// NamedArg is one "name: expr" argument at a call site, as produced
// by dict-literal-shaped argument parsing.
type NamedArg struct {
	Name string
	Expr exprinfo.ExprID
}

// ResolveCall matches positional then named arguments against sig
// (spec.md §4.8): positional arguments fill positional params in
// order, then spill into Spread if present; named arguments bind by
// name; anything left over is reported rather than silently dropped.
func ResolveCall(sig *typeinfo.Signature, positional []exprinfo.ExprID, named []NamedArg) Binding {
	b := Binding{ParamToArg: map[int]exprinfo.ExprID{}}
	if sig == nil {
		b.UnmatchedArgs = positional
		for _, n := range named {
			b.UnmatchedArgs = append(b.UnmatchedArgs, n.Expr)
		}
		return b
	}

	filled := make([]bool, len(sig.Positional))
	i := 0
	for ; i < len(positional) && i < len(sig.Positional); i++ {
		b.ParamToArg[i] = positional[i]
		filled[i] = true
		b.ActiveParam = i
	}
	if i < len(positional) {
		if sig.Spread != nil {
			// The remaining positional arguments are absorbed by the
			// spread parameter.
			b.ActiveParam = len(sig.Positional)
		} else {
			b.UnmatchedArgs = append(b.UnmatchedArgs, positional[i:]...)
		}
	}

	byName := map[string]int{}
	for idx, p := range sig.Positional {
		byName[p.Name] = idx
	}
	for _, n := range named {
		if idx, ok := byName[n.Name]; ok {
			if filled[idx] {
				b.UnmatchedArgs = append(b.UnmatchedArgs, n.Expr)
				continue
			}
			b.ParamToArg[idx] = n.Expr
			filled[idx] = true
			b.ActiveParam = idx
			continue
		}
		if _, ok := sig.Named[n.Name]; ok {
			if b.NamedToArg == nil {
				b.NamedToArg = map[string]exprinfo.ExprID{}
			}
			b.NamedToArg[n.Name] = n.Expr
			continue
		}
		b.UnmatchedArgs = append(b.UnmatchedArgs, n.Expr)
	}

	for idx, p := range sig.Positional {
		if !filled[idx] && p.Required && !p.Variadic {
			b.MissingParams = append(b.MissingParams, p.Name)
		}
	}
	for name, p := range sig.Named {
		if p.Required {
			if _, has := b.NamedToArg[name]; !has {
				b.MissingParams = append(b.MissingParams, name)
			}
		}
	}
	return b
}
