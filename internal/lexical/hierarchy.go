// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lexical builds the per-file scope tree (spec.md §3
// "LexicalHierarchy", §4.2) consumed by ExprInfo's name resolution and
// by the document-symbol/folding/workspace-symbol queries. It is
// grounded on gopls's internal/golang symbols.go: a single
// post-order walk of the syntax tree that classifies nodes against a
// closed kind set and threads name visibility through sibling order.
package lexical

import "github.com/typst-community/typlsp/internal/syntax"

// Kind is the closed set of scope-tree node kinds (spec.md §3).
type Kind uint8

const (
	KindModule Kind = iota
	KindFunction
	KindClosure
	KindLet
	KindImport
	KindHeading
	KindLabel
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindFunction:
		return "Function"
	case KindClosure:
		return "Closure"
	case KindLet:
		return "Let"
	case KindImport:
		return "Import"
	case KindHeading:
		return "Heading"
	case KindLabel:
		return "Label"
	case KindField:
		return "Field"
	default:
		return "Unknown"
	}
}

// Node is one entry in the scope tree. Name is empty for nodes that
// don't bind or label anything on their own (spec.md only requires a
// name for bindings, headings, and labels).
type Node struct {
	Kind     Kind
	Name     string
	Span     syntax.Span
	Syntax   syntax.NodeID
	Children []*Node

	// VisibleFrom is the byte offset after which Name is visible to
	// sibling lookups in the enclosing scope (spec.md §4.2: "visible
	// after the binding's end span", except for KindFunction which is
	// visible from its own Span.Start to permit recursion).
	VisibleFrom int
}

// Hierarchy is the full scope tree for one file, rooted at an
// implicit KindModule node.
type Hierarchy struct {
	Root *Node
}

// Build runs the single post-order traversal that produces a
// Hierarchy from a parsed syntax tree (spec.md §4.2).
func Build(tree *syntax.Tree) *Hierarchy {
	b := &builder{tree: tree}
	children := b.walkChildren(tree.Root)
	root := &Node{
		Kind:     KindModule,
		Span:     tree.Root.Span,
		Syntax:   tree.Root.ID,
		Children: children,
	}
	return &Hierarchy{Root: root}
}

type builder struct {
	tree *syntax.Tree
}

// walkChildren visits n's children in source order, producing scope
// nodes for the forms that introduce one, and recursing into every
// child that does not, so scope nodes nested inside blocks, calls or
// markup are still collected. A child that does introduce a node is
// not walked here; classify collects whatever it nests.
func (b *builder) walkChildren(n *syntax.Node) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if node := b.classify(c); node != nil {
			out = append(out, node)
			continue
		}
		out = append(out, b.walkChildren(c)...)
	}
	return out
}

func (b *builder) classify(n *syntax.Node) *Node {
	switch n.Kind {
	case syntax.KindLet:
		return b.classifyLet(n)
	case syntax.KindImport:
		return b.classifyImport(n)
	case syntax.KindHeading:
		return &Node{Kind: KindHeading, Name: n.Text, Span: n.Span, Syntax: n.ID, VisibleFrom: n.Span.End}
	case syntax.KindLabel:
		return &Node{Kind: KindLabel, Name: n.Text, Span: n.Span, Syntax: n.ID, VisibleFrom: n.Span.End}
	case syntax.KindFuncLit:
		return &Node{
			Kind:        KindClosure,
			Span:        n.Span,
			Syntax:      n.ID,
			Children:    b.walkChildren(n),
			VisibleFrom: n.Span.Start,
		}
	case syntax.KindFieldAcc:
		if len(n.Children) == 2 {
			field := n.Children[1]
			return &Node{Kind: KindField, Name: field.Text, Span: field.Span, Syntax: field.ID}
		}
	}
	return nil
}

// classifyLet handles both "#let name = expr" (KindLet) and "#let
// name(params) = expr" (KindFunction, recursion-visible from its own
// start per spec.md §4.2).
func (b *builder) classifyLet(n *syntax.Node) *Node {
	isFunc := false
	for _, c := range n.Children {
		if c.Kind == syntax.KindParam {
			isFunc = true
		}
	}
	kind := KindLet
	visibleFrom := n.Span.End
	if isFunc {
		kind = KindFunction
		visibleFrom = n.Span.Start
	}
	return &Node{
		Kind:        kind,
		Name:        n.Text,
		Span:        n.Span,
		Syntax:      n.ID,
		Children:    b.walkChildren(n),
		VisibleFrom: visibleFrom,
	}
}

func (b *builder) classifyImport(n *syntax.Node) *Node {
	var children []*Node
	for _, c := range n.Children {
		if c.Kind == syntax.KindImportItem {
			children = append(children, &Node{
				Kind:        KindImport,
				Name:        c.Text,
				Span:        c.Span,
				Syntax:      c.ID,
				VisibleFrom: n.Span.End,
			})
		}
	}
	return &Node{
		Kind:        KindImport,
		Span:        n.Span,
		Syntax:      n.ID,
		Children:    children,
		VisibleFrom: n.Span.End,
	}
}

// Lookup finds the innermost binding named name that is visible at
// offset, searching from root down the path of scopes that contain
// offset and preferring the closest enclosing scope (ordinary lexical
// shadowing).
func Lookup(h *Hierarchy, offset int, name string) *Node {
	return lookup(h.Root, offset, name)
}

func lookup(scope *Node, offset int, name string) *Node {
	var found *Node
	for _, c := range scope.Children {
		if c.Span.Contains(offset) {
			if inner := lookup(c, offset, name); inner != nil {
				found = inner
			}
		}
	}
	if found != nil {
		return found
	}
	for _, c := range scope.Children {
		if (c.Kind == KindLet || c.Kind == KindFunction || c.Kind == KindImport) &&
			c.Name == name && offset >= c.VisibleFrom {
			found = c
		}
	}
	return found
}
