// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"sort"
	"strings"

	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

// CompletionContext classifies the cursor's syntactic position
// (spec.md §4.9 "classifies the cursor by syntactic context").
type CompletionContext uint8

const (
	CtxMarkup CompletionContext = iota
	CtxMath
	CtxCode
	CtxString
	CtxRaw
	CtxComment
)

// CompletionItem is one candidate (spec.md §4.9 "merges with a
// static built-in table").
type CompletionItem struct {
	Label  string
	Detail string
}

var builtinCompletions = []CompletionItem{
	{Label: "text", Detail: "fn(..) -> content"},
	{Label: "rgb", Detail: "fn(..) -> color"},
	{Label: "image", Detail: "fn(..) -> content"},
	{Label: "table", Detail: "fn(..) -> content"},
	{Label: "heading", Detail: "fn(..) -> content"},
	{Label: "align", Detail: "fn(..) -> content"},
	{Label: "len", Detail: "fn(..) -> int"},
	{Label: "str", Detail: "fn(..) -> str"},
}

// Completion implements spec.md §4.9's completion adapter: classify
// the cursor, gather candidates from the enclosing lexical scope plus
// the type at the parent expression, merge with the built-in table.
func (f *Facade) Completion(id SourceID, offset int) []CompletionItem {
	tree := f.World.Tree(id)
	if tree == nil {
		return nil
	}
	ctx := classifyContext(tree, offset)

	var items []CompletionItem
	switch ctx {
	case CtxString, CtxRaw, CtxComment:
		return nil
	case CtxCode, CtxMath, CtxMarkup:
		items = append(items, scopeCompletions(f, id, tree, offset)...)
		items = append(items, namedArgCompletions(f, id, tree, offset)...)
	}
	items = append(items, builtinCompletions...)
	return dedupSorted(items)
}

func classifyContext(tree *syntax.Tree, offset int) CompletionContext {
	path := tree.PathAt(offset)
	for _, n := range path {
		switch n.Kind {
		case syntax.KindRaw:
			return CtxRaw
		case syntax.KindComment, syntax.KindTypingDoc:
			return CtxComment
		case syntax.KindLiteral:
			if strings.HasPrefix(n.Text, `"`) {
				return CtxString
			}
		case syntax.KindMath, syntax.KindMathAtom:
			return CtxMath
		}
		if n.Mode == syntax.ModeCode {
			return CtxCode
		}
	}
	return CtxMarkup
}

func scopeCompletions(f *Facade, id SourceID, tree *syntax.Tree, offset int) []CompletionItem {
	hier := f.World.Hierarchy(id)
	if hier == nil {
		return nil
	}
	var items []CompletionItem
	var walk func(n *lexical.Node)
	walk = func(n *lexical.Node) {
		if (n.Kind == lexical.KindLet || n.Kind == lexical.KindFunction || n.Kind == lexical.KindImport) &&
			n.Name != "" && offset >= n.VisibleFrom {
			items = append(items, CompletionItem{Label: n.Name})
		}
		for _, c := range n.Children {
			if c.Span.Start <= offset {
				walk(c)
			}
		}
	}
	walk(hier.Root)
	return items
}

// namedArgCompletions implements spec.md's example: "inside a
// named-argument slot, suggest the parameter's type's members" — here
// specialized to suggesting the parameter names themselves when the
// cursor is inside an argument list, since that is the information
// CallResolver's Binding already carries.
func namedArgCompletions(f *Facade, id SourceID, tree *syntax.Tree, offset int) []CompletionItem {
	path := tree.PathAt(offset)
	for _, n := range path {
		if n.Kind != syntax.KindCall || len(n.Children) == 0 {
			continue
		}
		callee := n.Children[0]
		exprs := f.World.Exprs(id)
		if exprs == nil {
			continue
		}
		ref, ok := exprs.Exprs[callee.ID]
		if !ok || ref.Unresolved {
			continue
		}
		sigs := f.Sigs.SignaturesOf(ref.Ref)
		var items []CompletionItem
		for _, sig := range sigs {
			for name, p := range sig.Named {
				items = append(items, CompletionItem{Label: name + ":", Detail: p.Type.String()})
			}
		}
		return items
	}
	return nil
}

func dedupSorted(items []CompletionItem) []CompletionItem {
	seen := map[string]bool{}
	var out []CompletionItem
	for _, it := range items {
		if seen[it.Label] {
			continue
		}
		seen[it.Label] = true
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
