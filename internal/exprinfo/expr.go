// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exprinfo builds the per-file, name-resolved expression IR
// (spec.md §3 "ExprInfo", §4.3). It is grounded on two teachers: the
// shape of gopls's internal/golang metadata.Graph for the
// import/module-graph side, and cue-lang/cue's internal/lsp
// definitions package for the idea of a lazily-walked, structurally
// tagged expression representation over a non-Go grammar.
package exprinfo

import "github.com/typst-community/typlsp/internal/syntax"

// ExprID addresses one Expr within a single file's ExprInfo. It is
// always the NodeID of the syntax node the expression was built from.
type ExprID = syntax.NodeID

// SourceID is the opaque per-snapshot file identifier; exprinfo only
// needs it as an opaque key; internal/world defines its concrete
// meaning.
type SourceID int32

// DefID is either a reference into another file's expressions or a
// built-in tag (spec.md's DefId = (SourceId, ExprId) | BuiltinId).
type DefID struct {
	Source  SourceID
	Expr    ExprID
	Builtin string // non-empty iff this DefID names a built-in
}

// IsBuiltin reports whether d refers to a built-in rather than a
// user-written expression.
func (d DefID) IsBuiltin() bool { return d.Builtin != "" }

// ExprKind tags the variant held by an Expr (spec.md §3: "Expr is a
// tagged variant").
type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprRef
	ExprFieldAccess
	ExprCall
	ExprLambda
	ExprBlock
	ExprShow
	ExprSet
	ExprImport
	ExprModuleRef
)

// Expr is one node of the expression IR. Only the fields relevant to
// Kind are populated; this mirrors a tagged union via a flat struct,
// the same encoding gopls uses for its own typed IR nodes (no
// interface-per-variant boilerplate, one type switch on Kind).
type Expr struct {
	ID   ExprID
	Kind ExprKind
	Span syntax.Span

	// ExprRef
	Ref         DefID
	Unresolved  bool // true if Ref could not be determined
	Name        string

	// ExprFieldAccess
	Base  ExprID
	Field string

	// ExprCall
	Callee ExprID
	Args   []ExprID

	// ExprLambda
	Params []string
	Body   ExprID

	// ExprBlock
	Stmts []ExprID

	// ExprShow / ExprSet
	Selector ExprID
	Target   ExprID

	// ExprImport / ExprModuleRef
	Module SourceID
	Path   string
}

// Import is one resolved (or unresolved) import statement.
type Import struct {
	Span syntax.Span
	Path string

	// Module and HasModule are set whenever the import path resolves to
	// a SourceID, even when that target forms a cyclic import: a
	// dependent (spec.md §4.11) still needs Module's content hash to
	// know when to invalidate, regardless of whether the cycle made the
	// import unusable for name binding.
	Module    SourceID
	HasModule bool

	// Resolved is true only when Module is safe to bind items/exports
	// from: HasModule but not cyclic.
	Resolved bool
	Items    []string // names explicitly bound by "import path: a, b"
}

// ResolutionErrorKind distinguishes why a name failed to resolve.
type ResolutionErrorKind uint8

const (
	UnresolvedName ResolutionErrorKind = iota
	UnresolvedImport
	CyclicImport
)

// ResolutionError is one entry of Info.Unresolved (spec.md's
// ResolutionError).
type ResolutionError struct {
	Kind ResolutionErrorKind
	Span syntax.Span
	Name string
}

// Info is the full per-file ExprInfo value (spec.md §3).
type Info struct {
	Exprs      map[ExprID]*Expr
	Imports    []Import
	Exports    map[string]ExprID
	Unresolved []ResolutionError
}

// ExprAt returns the expression whose syntax span is the smallest one
// containing offset, or nil if offset falls outside every expression.
func (info *Info) ExprAt(tree *syntax.Tree, offset int) *Expr {
	n := tree.NodeAt(offset)
	for n != nil {
		if e, ok := info.Exprs[n.ID]; ok {
			return e
		}
		n = smallestAncestorContaining(tree, n, offset)
	}
	return nil
}

// smallestAncestorContaining walks the path from the root back down
// to find the next ancestor above n, since Node has no parent link
// (spec.md §9 "parent link by re-traversal").
func smallestAncestorContaining(tree *syntax.Tree, n *syntax.Node, offset int) *syntax.Node {
	path := tree.PathAt(offset)
	for i, p := range path {
		if p.ID == n.ID && i+1 < len(path) {
			return path[i+1]
		}
	}
	return nil
}
