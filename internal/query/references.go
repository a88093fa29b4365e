// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/typst-community/typlsp/internal/defresolver"
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/refresolver"
)

// References implements spec.md §4.9's find-references query: resolve
// the definition under the cursor, then delegate the workspace-wide
// scan to RefResolver. includeDeclaration mirrors the LSP
// ReferenceContext flag of the same name.
func (f *Facade) References(id SourceID, offset int, includeDeclaration bool) []refresolver.Location {
	def, ok := defresolver.DefinitionAt(f.World, id, offset)
	if !ok || def.Kind == defresolver.DefBuiltin {
		return nil
	}
	defID := exprinfo.DefID{Source: def.Source, Expr: nodeIDFromSpan(f, def)}
	locs := f.Refs.References(defID)
	if includeDeclaration {
		locs = append(locs, refresolver.Location{Source: def.Source, Span: def.Span})
	}
	return locs
}

// nodeIDFromSpan recovers the syntax.NodeID a Definition points at, so
// RefResolver's DefID-keyed index can be queried; Definition itself
// only carries a Span since that is all callers addressing a location
// need, but DefID requires the originating node identity.
func nodeIDFromSpan(f *Facade, def defresolver.Definition) exprinfo.ExprID {
	tree := f.World.Tree(def.Source)
	if tree == nil {
		return 0
	}
	for _, n := range tree.Nodes {
		if n.Span == def.Span {
			return n.ID
		}
	}
	return 0
}
