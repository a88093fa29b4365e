// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"strings"

	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

// Symbol is one entry of a document-symbol or workspace-symbol result
// (spec.md §4.9 "document_symbols" / supplemented "workspace_symbols").
type Symbol struct {
	Name     string
	Kind     lexical.Kind
	Span     syntax.Span
	Source   SourceID
	Children []Symbol
}

// DocumentSymbols implements spec.md §4.9's document-symbol query:
// the named nodes of LexicalHierarchy, nested.
func (f *Facade) DocumentSymbols(id SourceID) []Symbol {
	hier := f.World.Hierarchy(id)
	if hier == nil {
		return nil
	}
	return symbolsOf(id, hier.Root.Children)
}

func symbolsOf(id SourceID, nodes []*lexical.Node) []Symbol {
	var out []Symbol
	for _, n := range nodes {
		if n.Name == "" {
			out = append(out, symbolsOf(id, n.Children)...)
			continue
		}
		out = append(out, Symbol{
			Name:     n.Name,
			Kind:     n.Kind,
			Span:     n.Span,
			Source:   id,
			Children: symbolsOf(id, n.Children),
		})
	}
	return out
}

// WorkspaceSymbols implements the supplemented workspace-wide symbol
// search: a substring match over every tracked file's document
// symbols, case-insensitive, matching gopls's
// internal/golang/workspace_symbol.go fuzzy-ish default matcher
// simplified to substring (spec.md's Non-goals exclude a fuzzy
// matcher implementation, but the query itself is in scope).
func (f *Facade) WorkspaceSymbols(query string) []Symbol {
	query = strings.ToLower(query)
	var out []Symbol
	for _, id := range f.World.AllSources() {
		for _, sym := range flatten(f.DocumentSymbols(id)) {
			if strings.Contains(strings.ToLower(sym.Name), query) {
				out = append(out, sym)
			}
		}
	}
	return out
}

func flatten(syms []Symbol) []Symbol {
	var out []Symbol
	for _, s := range syms {
		out = append(out, s)
		out = append(out, flatten(s.Children)...)
	}
	return out
}

// FoldingRange is one collapsible region (spec.md §4.9 "folding").
type FoldingRange struct {
	Span syntax.Span
	Kind string // "region", "comment"
}

// FoldingRanges implements spec.md §4.9's folding query: every
// composite node whose span crosses more than one line is a candidate
// region; block comments fold as "comment" regions.
func (f *Facade) FoldingRanges(id SourceID) []FoldingRange {
	tree := f.World.Tree(id)
	snap := f.World.Snapshot()
	sf := snap.File(id)
	if tree == nil || sf == nil {
		return nil
	}
	var out []FoldingRange
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if isFoldable(n.Kind) {
			startLine := sf.LineIndex.ToPosition(n.Span.Start).Line
			endLine := sf.LineIndex.ToPosition(n.Span.End).Line
			if endLine > startLine {
				kind := "region"
				if n.Kind == syntax.KindComment {
					kind = "comment"
				}
				out = append(out, FoldingRange{Span: n.Span, Kind: kind})
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree.Root)
	return out
}

func isFoldable(k syntax.Kind) bool {
	switch k {
	case syntax.KindCodeBlock, syntax.KindContentBlock, syntax.KindParenExpr,
		syntax.KindArrayLit, syntax.KindDictLit, syntax.KindIf, syntax.KindFor,
		syntax.KindWhile, syntax.KindComment:
		return true
	}
	return false
}
