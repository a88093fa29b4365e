// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"sort"
	"strings"

	"github.com/typst-community/typlsp/internal/syntax"
)

// ImportEdit is one text replacement organize-imports produces.
type ImportEdit struct {
	Span    syntax.Span
	NewText string
}

// OrganizeImports implements the supplemented "typlsp.organizeImports"
// command (SPEC_FULL.md §5), modeled on buf's organize_imports.go: collect
// every top-level "#import" statement, drop exact-duplicate paths, sort
// the rest by path, and replace the whole run with the canonicalized
// block. Imports with named items ("#import "a.typ": x, y") are left
// untouched — only bare whole-module imports are reordered, since
// deduplicating named items would change which names are in scope.
func (f *Facade) OrganizeImports(id SourceID) []ImportEdit {
	tree := f.World.Tree(id)
	if tree == nil {
		return nil
	}
	var plain []*syntax.Node
	for _, n := range tree.Root.Children {
		if n.Kind == syntax.KindImport && len(n.Children) == 1 {
			plain = append(plain, n)
		}
	}
	if len(plain) < 2 {
		return nil
	}
	// The replaced span runs from the first bare import to the last, so
	// anything else inside it (a named import, say) means no edit.
	first, last := plain[0].Span.Start, plain[len(plain)-1].Span.End
	for _, n := range tree.Root.Children {
		if n.Span.Start < first || n.Span.End > last {
			continue
		}
		if n.Kind == syntax.KindText && strings.TrimSpace(n.Text) == "" {
			continue
		}
		if n.Kind != syntax.KindImport || len(n.Children) != 1 {
			return nil
		}
	}

	seen := map[string]bool{}
	var paths []string
	for _, n := range plain {
		path := n.Children[0].Text
		if seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var text strings.Builder
	for i, p := range paths {
		if i > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(`#import "` + p + `"`)
	}

	span := syntax.Span{Start: plain[0].Span.Start, End: plain[len(plain)-1].Span.End}
	return []ImportEdit{{Span: span, NewText: text.String()}}
}
