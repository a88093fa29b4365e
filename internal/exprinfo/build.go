// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exprinfo

import (
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

// ImportResolver resolves an import path string to a SourceID, as
// seen from the file identified by from. internal/world implements
// this; exprinfo only depends on the narrow interface (spec.md §4.1
// "resolve_path") to avoid a cyclic package dependency.
type ImportResolver interface {
	ResolveImport(from SourceID, path string) (SourceID, bool)
}

// ExportsOf returns the other file's ExprInfo export table, used to
// bind "import path: a, b" items and whole-module references. Passed
// in rather than looked up via a World reference so Build stays a
// pure function of its inputs (spec.md §4.3: "structural: the same
// source text ... produces equal ExprInfo values").
type ExportsOf func(SourceID) map[string]ExprID

// Build walks tree and hier to produce Info (spec.md §4.3). self
// identifies the file being built: it is passed back to resolver, marks
// the file as visiting to detect import cycles, and is the Source of
// every DefID this build records for a local binding.
func Build(self SourceID, tree *syntax.Tree, hier *lexical.Hierarchy, resolver ImportResolver, exportsOf ExportsOf, visiting map[SourceID]bool) *Info {
	b := &builder{
		self:      self,
		tree:      tree,
		hier:      hier,
		resolver:  resolver,
		exportsOf: exportsOf,
		info:      &Info{Exprs: map[ExprID]*Expr{}, Exports: map[string]ExprID{}},
		visiting:  visiting,
	}
	if b.visiting == nil {
		b.visiting = map[SourceID]bool{}
	}
	b.visiting[self] = true
	defer delete(b.visiting, self)

	for _, c := range tree.Root.Children {
		b.walkStmt(c, hier.Root)
	}
	return b.info
}

type builder struct {
	self      SourceID
	tree      *syntax.Tree
	hier      *lexical.Hierarchy
	resolver  ImportResolver
	exportsOf ExportsOf
	info      *Info
	visiting  map[SourceID]bool
}

func (b *builder) record(e *Expr) *Expr {
	b.info.Exprs[e.ID] = e
	return e
}

// walkStmt dispatches over the syntax Kind closed set and emits the
// corresponding Expr (or nothing, for markup/trivia nodes that never
// carry an ExprInfo entry).
func (b *builder) walkStmt(n *syntax.Node, scope *lexical.Node) *Expr {
	switch n.Kind {
	case syntax.KindLet:
		return b.walkLet(n, scope)
	case syntax.KindImport:
		return b.walkImport(n)
	case syntax.KindIf, syntax.KindFor, syntax.KindWhile:
		for _, c := range n.Children {
			b.walkStmt(c, scope)
		}
		return nil
	case syntax.KindCodeBlock:
		return b.walkBlock(n, scope)
	case syntax.KindShow:
		return b.walkShow(n, scope)
	case syntax.KindSet:
		return b.walkSet(n, scope)
	default:
		return b.walkExpr(n, scope)
	}
}

func (b *builder) walkLet(n *syntax.Node, scope *lexical.Node) *Expr {
	var body *syntax.Node
	isFunc := false
	for _, c := range n.Children {
		if c.Kind != syntax.KindParam {
			body = c
		} else {
			isFunc = true
		}
	}
	var bodyExpr *Expr
	if body != nil {
		bodyExpr = b.walkExpr(body, scope)
	}
	e := &Expr{ID: n.ID, Kind: ExprLit, Span: n.Span, Name: n.Text}
	if bodyExpr != nil {
		e.Body = bodyExpr.ID
		e.Kind = ExprLambda
		if !isFunc {
			// "let name = expr" binds the value itself: a one-statement
			// block, so the binding's type is the value's type.
			e.Kind = ExprBlock
			e.Stmts = []ExprID{bodyExpr.ID}
		}
	}
	b.record(e)
	if n.Text != "" {
		b.info.Exports[n.Text] = n.ID
	}
	return e
}

func (b *builder) walkImport(n *syntax.Node) *Expr {
	if len(n.Children) == 0 {
		return nil
	}
	pathNode := n.Children[0]
	imp := Import{Span: n.Span, Path: pathNode.Text}
	if b.resolver != nil {
		if mod, ok := b.resolver.ResolveImport(b.self, pathNode.Text); ok {
			// Module is recorded regardless of cyclic status: callers that
			// track cross-file dependencies (spec.md §4.11's content-hash
			// invalidation) need the target even when Resolved is false.
			imp.Module = mod
			imp.HasModule = true
			if b.visiting[mod] {
				b.info.Unresolved = append(b.info.Unresolved, ResolutionError{
					Kind: CyclicImport, Span: n.Span, Name: pathNode.Text,
				})
			} else {
				imp.Resolved = true
			}
		} else {
			b.info.Unresolved = append(b.info.Unresolved, ResolutionError{
				Kind: UnresolvedImport, Span: n.Span, Name: pathNode.Text,
			})
		}
	}
	for _, c := range n.Children[1:] {
		if c.Kind == syntax.KindImportItem {
			imp.Items = append(imp.Items, c.Text)
			if imp.Resolved && b.exportsOf != nil {
				if exprID, ok := b.exportsOf(imp.Module)[c.Text]; ok {
					b.info.Exports[c.Text] = exprID
				}
			}
		}
	}
	b.info.Imports = append(b.info.Imports, imp)
	e := &Expr{ID: n.ID, Kind: ExprImport, Span: n.Span, Path: pathNode.Text, Module: imp.Module}
	return b.record(e)
}

func (b *builder) walkBlock(n *syntax.Node, scope *lexical.Node) *Expr {
	var stmts []ExprID
	for _, c := range n.Children {
		if e := b.walkStmt(c, scope); e != nil {
			stmts = append(stmts, e.ID)
		}
	}
	return b.record(&Expr{ID: n.ID, Kind: ExprBlock, Span: n.Span, Stmts: stmts})
}

func (b *builder) walkShow(n *syntax.Node, scope *lexical.Node) *Expr {
	e := &Expr{ID: n.ID, Kind: ExprShow, Span: n.Span}
	if len(n.Children) == 2 {
		e.Selector = b.walkExpr(n.Children[0], scope).ID
		e.Target = b.walkExpr(n.Children[1], scope).ID
	} else if len(n.Children) == 1 {
		e.Target = b.walkExpr(n.Children[0], scope).ID
	}
	return b.record(e)
}

func (b *builder) walkSet(n *syntax.Node, scope *lexical.Node) *Expr {
	e := &Expr{ID: n.ID, Kind: ExprSet, Span: n.Span}
	if len(n.Children) == 1 {
		e.Target = b.walkExpr(n.Children[0], scope).ID
	}
	return b.record(e)
}

// walkExpr handles the expression-grammar kinds shared by code and
// math mode (spec.md §4.3's "math mode shares the identifier
// namespace with code mode").
func (b *builder) walkExpr(n *syntax.Node, scope *lexical.Node) *Expr {
	switch n.Kind {
	case syntax.KindIdent, syntax.KindMathAtom:
		return b.walkRef(n, scope)
	case syntax.KindLiteral:
		return b.record(&Expr{ID: n.ID, Kind: ExprLit, Span: n.Span, Name: n.Text})
	case syntax.KindFieldAcc:
		return b.walkFieldAccess(n, scope)
	case syntax.KindCall:
		return b.walkCall(n, scope)
	case syntax.KindFuncLit:
		return b.walkFuncLit(n, scope)
	case syntax.KindParenExpr, syntax.KindArrayLit, syntax.KindDictLit, syntax.KindDestructure:
		var stmts []ExprID
		for _, c := range n.Children {
			if e := b.walkExpr(c, scope); e != nil {
				stmts = append(stmts, e.ID)
			}
		}
		return b.record(&Expr{ID: n.ID, Kind: ExprBlock, Span: n.Span, Stmts: stmts})
	case syntax.KindUnaryExpr, syntax.KindBinaryExpr:
		for _, c := range n.Children {
			b.walkExpr(c, scope)
		}
		return b.record(&Expr{ID: n.ID, Kind: ExprBlock, Span: n.Span})
	case syntax.KindContentBlock, syntax.KindMarkup:
		var stmts []ExprID
		for _, c := range n.Children {
			if e := b.walkStmt(c, scope); e != nil {
				stmts = append(stmts, e.ID)
			}
		}
		return b.record(&Expr{ID: n.ID, Kind: ExprBlock, Span: n.Span, Stmts: stmts})
	default:
		return b.record(&Expr{ID: n.ID, Kind: ExprLit, Span: n.Span})
	}
}

func (b *builder) walkRef(n *syntax.Node, scope *lexical.Node) *Expr {
	e := &Expr{ID: n.ID, Kind: ExprRef, Span: n.Span, Name: n.Text}
	if found := lexical.Lookup(b.hier, n.Span.Start, n.Text); found != nil {
		e.Ref = DefID{Source: b.self, Expr: found.Syntax}
	} else if exprID, ok := b.info.Exports[n.Text]; ok {
		e.Ref = DefID{Source: b.self, Expr: exprID}
	} else if isBuiltin(n.Text) {
		e.Ref = DefID{Builtin: n.Text}
	} else {
		e.Unresolved = true
		b.info.Unresolved = append(b.info.Unresolved, ResolutionError{
			Kind: UnresolvedName, Span: n.Span, Name: n.Text,
		})
	}
	return b.record(e)
}

func (b *builder) walkFieldAccess(n *syntax.Node, scope *lexical.Node) *Expr {
	if len(n.Children) != 2 {
		return b.record(&Expr{ID: n.ID, Kind: ExprLit, Span: n.Span})
	}
	base := b.walkExpr(n.Children[0], scope)
	field := n.Children[1]
	return b.record(&Expr{ID: n.ID, Kind: ExprFieldAccess, Span: n.Span, Base: base.ID, Field: field.Text})
}

func (b *builder) walkCall(n *syntax.Node, scope *lexical.Node) *Expr {
	if len(n.Children) == 0 {
		return b.record(&Expr{ID: n.ID, Kind: ExprLit, Span: n.Span})
	}
	callee := b.walkExpr(n.Children[0], scope)
	var args []ExprID
	for _, c := range n.Children[1:] {
		if c.Kind != syntax.KindArg || len(c.Children) == 0 {
			continue
		}
		// A named arg's KindArg node holds [key, value]; only the value
		// is an expression to resolve. A positional arg holds [value].
		valueNode := c.Children[0]
		if len(c.Children) == 2 {
			valueNode = c.Children[1]
		}
		if a := b.walkExpr(valueNode, scope); a != nil {
			args = append(args, a.ID)
		}
	}
	return b.record(&Expr{ID: n.ID, Kind: ExprCall, Span: n.Span, Callee: callee.ID, Args: args})
}

func (b *builder) walkFuncLit(n *syntax.Node, scope *lexical.Node) *Expr {
	var params []string
	var body ExprID
	for i, c := range n.Children {
		if i == len(n.Children)-1 {
			if e := b.walkExpr(c, scope); e != nil {
				body = e.ID
			}
			continue
		}
		params = append(params, c.Text)
	}
	return b.record(&Expr{ID: n.ID, Kind: ExprLambda, Span: n.Span, Params: params, Body: body})
}

// isBuiltin reports whether name is one of the analyzer's small
// static built-in table (spec.md §4.9 completion: "merges with a
// static built-in table"). Kept intentionally small; real coverage
// lives in a data table, not enumerated exhaustively here.
func isBuiltin(name string) bool {
	switch name {
	case "text", "rgb", "cmyk", "luma", "image", "table", "grid", "par", "heading",
		"list", "enum", "terms", "math", "align", "pad", "box", "block",
		"len", "str", "int", "float", "type", "repr", "assert", "panic",
		"range", "zip", "enumerate", "sorted", "lower", "upper":
		return true
	}
	return false
}
