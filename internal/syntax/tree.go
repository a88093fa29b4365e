// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Span is a half-open byte-offset interval [Start, End) into a file's
// text. It is the sole addressing scheme [Node]s use; there are no
// direct pointers across files (spec.md §9 "Cyclic structures").
type Span struct {
	Start, End int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether offset lies within the span, treating the
// end as inclusive so that a query "immediately after" a token still
// matches it (gopls's NodeLocation has the same convention at EOF).
func (s Span) Contains(offset int) bool { return s.Start <= offset && offset <= s.End }

// StrictlyContains reports whether other is nested inside s, as
// required by the LexicalHierarchy invariant (spec.md §3: "each
// child's span is strictly contained in its parent's").
func (s Span) StrictlyContains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End && (s.Start != other.Start || s.End != other.End)
}

// NodeID addresses a [Node] within a single file's tree. It is only
// meaningful paired with a SourceId (spec.md's SyntaxNodeId).
type NodeID int32

// Node is one element of an immutable, structurally-shared syntax
// tree. Parent links are not stored; callers that need a parent
// re-traverse from the root (spec.md's "parent link by re-traversal").
type Node struct {
	ID       NodeID
	Kind     Kind
	Mode     Mode
	Span     Span
	Children []*Node

	// Text is set for leaf nodes (idents, literals, text runs,
	// comments) where the exact source slice matters and is cheap to
	// retain, and on a few composite nodes for their name or operator (a
	// Let's bound name, a Unary/BinaryExpr's operator, a dict entry's
	// key); other composite nodes reconstruct text from their span via
	// the owning [Tree].
	Text string
}

// Tree is the parsed form of one file's text, plus the slice of
// diagnostics the parser accumulated along the way. Trees never abort
// on malformed input (spec.md §7 SyntaxError): unparsable spans become
// [KindErrorNode] leaves so the tree still covers the whole file.
type Tree struct {
	Src   string
	Root  *Node
	Nodes []*Node // indexed by NodeID
	Diags []Diagnostic
}

// Diagnostic is a syntax-level error recorded during parsing.
type Diagnostic struct {
	Span    Span
	Message string
}

// NodeAt returns the smallest node whose span contains offset,
// descending through children in source order. It is the primitive
// every resolver builds "at a cursor position" queries on top of.
func (t *Tree) NodeAt(offset int) *Node {
	return smallestContaining(t.Root, offset)
}

func smallestContaining(n *Node, offset int) *Node {
	if n == nil || !n.Span.Contains(offset) {
		return nil
	}
	for _, c := range n.Children {
		if found := smallestContaining(c, offset); found != nil {
			return found
		}
	}
	return n
}

// PathAt returns the chain of nodes containing offset, from the
// smallest one up to the root, leaf first — the analog of
// golang.org/x/tools/go/ast/astutil.PathEnclosingInterval, used
// throughout the resolvers to classify "what kind of thing is the
// cursor inside of".
func (t *Tree) PathAt(offset int) []*Node {
	var path []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || !n.Span.Contains(offset) {
			return
		}
		path = append(path, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
	// walk appends root-first already because of recursion order; but
	// children are visited in a loop after appending n, so the slice is
	// already root-to-leaf. Reverse it so callers get leaf-to-root,
	// which is what most consumers (smallest-enclosing-node-first) want.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Text returns the source text spanned by n.
func (t *Tree) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return t.Src[n.Span.Start:n.Span.End]
}
