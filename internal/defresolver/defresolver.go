// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package defresolver implements goto-definition over ExprInfo and
// TypeInfo (spec.md §4.5). It is grounded on gopls's
// internal/golang/definition.go: find the smallest enclosing
// reference node, then lift its resolved identity to a location
// triple.
package defresolver

import (
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

// SourceID aliases exprinfo's opaque per-snapshot file identifier.
type SourceID = exprinfo.SourceID

// Files is the narrow view of a snapshot's per-file analyses that
// defresolver needs. internal/world implements this across every open
// and transitively-imported file.
type Files interface {
	Tree(SourceID) *syntax.Tree
	Exprs(SourceID) *exprinfo.Info
	Types(SourceID) *typeinfo.Info
}

// DefinitionKind classifies the located definition for UI purposes.
type DefinitionKind uint8

const (
	DefBinding DefinitionKind = iota
	DefImportedModule
	DefField
	DefBuiltin
)

// Definition is a resolved {source, span, kind} triple (spec.md
// §4.5).
type Definition struct {
	Source SourceID
	Span   syntax.Span
	Kind   DefinitionKind
	// Builtin is set when Kind == DefBuiltin; there is no source span
	// to navigate to.
	Builtin string
}

// DefinitionAt finds the smallest Ref node whose span covers offset
// within file id, and returns its resolved definition, if any.
func DefinitionAt(files Files, id SourceID, offset int) (Definition, bool) {
	tree := files.Tree(id)
	exprs := files.Exprs(id)
	if tree == nil || exprs == nil {
		return Definition{}, false
	}
	e := exprs.ExprAt(tree, offset)
	if e == nil {
		return Definition{}, false
	}
	switch e.Kind {
	case exprinfo.ExprRef:
		return definitionFromRef(files, e)
	case exprinfo.ExprFieldAccess:
		return definitionFromFieldAccess(files, id, e)
	case exprinfo.ExprImport, exprinfo.ExprModuleRef:
		if e.Module != 0 {
			moduleTree := files.Tree(e.Module)
			if moduleTree == nil {
				return Definition{}, false
			}
			return Definition{Source: e.Module, Span: moduleTree.Root.Span, Kind: DefImportedModule}, true
		}
		return Definition{}, false
	default:
		return Definition{}, false
	}
}

func definitionFromRef(files Files, e *exprinfo.Expr) (Definition, bool) {
	if e.Unresolved {
		return Definition{}, false
	}
	if e.Ref.IsBuiltin() {
		return Definition{Kind: DefBuiltin, Builtin: e.Ref.Builtin}, true
	}
	targetTree := files.Tree(e.Ref.Source)
	if targetTree == nil {
		return Definition{}, false
	}
	for _, n := range targetTree.Nodes {
		if n.ID == e.Ref.Expr {
			return Definition{Source: e.Ref.Source, Span: n.Span, Kind: DefBinding}, true
		}
	}
	return Definition{}, false
}

// definitionFromFieldAccess implements spec.md §4.5's "a.b at offset
// b returns the definition site of field b on the principal type of
// a" rule, consulting TypeInfo for the base expression's type.
func definitionFromFieldAccess(files Files, id SourceID, e *exprinfo.Expr) (Definition, bool) {
	types := files.Types(id)
	if types == nil {
		return Definition{}, false
	}
	baseT, ok := types.Types[e.Base]
	if !ok || baseT == nil || baseT.Tag != typeinfo.TRecord {
		return Definition{}, false
	}
	for _, f := range baseT.Fields {
		if f.Name == e.Field && f.DeclSpan != (syntax.Span{}) {
			return Definition{Source: SourceID(f.DeclSource), Span: f.DeclSpan, Kind: DefField}, true
		}
	}
	return Definition{}, false
}
