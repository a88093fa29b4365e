// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refresolver

import (
	"sync"
	"testing"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/syntax"
)

type fakeFiles struct {
	ids   []SourceID
	exprs map[SourceID]*exprinfo.Info
}

func (f fakeFiles) AllSources() []SourceID           { return f.ids }
func (f fakeFiles) Exprs(id SourceID) *exprinfo.Info { return f.exprs[id] }

func TestReferencesFindsAllUses(t *testing.T) {
	tree := syntax.Parse("#let x = 1\n#let y = x\n#let z = x")
	hier := lexical.Build(tree)
	exprs := exprinfo.Build(0, tree, hier, nil, nil, nil)

	files := fakeFiles{ids: []SourceID{0}, exprs: map[SourceID]*exprinfo.Info{0: exprs}}
	r := NewResolver(files)

	xLet := tree.Root.Children[0]
	def := exprinfo.DefID{Source: 0, Expr: xLet.ID}
	locs := r.References(def)
	if len(locs) != 2 {
		t.Fatalf("got %d references, want 2", len(locs))
	}
}

func TestReferencesCachePerFile(t *testing.T) {
	tree := syntax.Parse("#let x = 1\n#let y = x")
	hier := lexical.Build(tree)
	exprs := exprinfo.Build(0, tree, hier, nil, nil, nil)
	files := fakeFiles{ids: []SourceID{0}, exprs: map[SourceID]*exprinfo.Info{0: exprs}}
	r := NewResolver(files)

	xLet := tree.Root.Children[0]
	def := exprinfo.DefID{Source: 0, Expr: xLet.ID}
	r.References(def)
	if _, ok := r.cache[0]; !ok {
		t.Fatal("expected file to be cached after first scan")
	}
	r.References(def) // should hit the cache, not rebuild
	if r.cache[0].exprs != exprs {
		t.Fatal("cache entry should still point at the same ExprInfo")
	}
}

// TestReferencesConcurrentCallersDoNotRaceCache exercises a single
// shared Resolver the way query.Facade holds it: concurrent
// References calls across several files must not race on cache, since
// reader tasks are allowed to run queries in parallel.
func TestReferencesConcurrentCallersDoNotRaceCache(t *testing.T) {
	ids := make([]SourceID, 0, 8)
	exprs := map[SourceID]*exprinfo.Info{}
	for i := SourceID(0); i < 8; i++ {
		tree := syntax.Parse("#let x = 1\n#let y = x\n#let z = x")
		hier := lexical.Build(tree)
		exprs[i] = exprinfo.Build(i, tree, hier, nil, nil, nil)
		ids = append(ids, i)
	}
	files := fakeFiles{ids: ids, exprs: exprs}
	r := NewResolver(files)

	def := exprinfo.DefID{Source: 0, Expr: 0}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.References(def)
		}()
	}
	wg.Wait()
}
