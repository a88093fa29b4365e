// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refresolver implements find-references over DefResolver and
// ExprInfo (spec.md §4.6). It is grounded on gopls's
// internal/golang/references.go, which has the same "scan every
// candidate file, memoize per-file" shape.
package refresolver

import (
	"sync"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
)

// SourceID aliases exprinfo's opaque file identifier.
type SourceID = exprinfo.SourceID

// Location is a reference site.
type Location struct {
	Source SourceID
	Span   syntax.Span
}

// Files is the narrow per-file view refresolver needs. Unlike
// defresolver, it also needs the full set of tracked files to scan.
type Files interface {
	AllSources() []SourceID
	Exprs(SourceID) *exprinfo.Info
}

// cacheEntry memoizes one file's reference set, keyed by the
// exprinfo.Info pointer identity: since ExprInfo is rebuilt (a new
// pointer) exactly when its content changes (spec.md §4.3
// structural-equality guarantee), pointer identity is a valid,
// ABA-free cache key here (spec.md §4.6 "memoizes per-file reference
// sets keyed by the file's ExprInfo hash").
type cacheEntry struct {
	exprs *exprinfo.Info
	refs  map[exprinfo.DefID][]Location
}

// Resolver finds references across the currently tracked file set,
// caching each file's DefID->[]Location index until that file's
// ExprInfo pointer changes. Shared by a single *query.Facade across
// the Server's lifetime (spec.md §5: "any number of reader tasks may
// hold snapshots and run queries in parallel"), so cache reads and
// writes are guarded by mu.
type Resolver struct {
	Files Files

	mu    sync.Mutex
	cache map[SourceID]cacheEntry
}

func NewResolver(files Files) *Resolver {
	return &Resolver{Files: files, cache: map[SourceID]cacheEntry{}}
}

// References returns every reference to def across every file the
// Files view knows about (spec.md §4.6).
func (r *Resolver) References(def exprinfo.DefID) []Location {
	var out []Location
	for _, id := range r.Files.AllSources() {
		for _, loc := range r.referencesInFile(id, def) {
			out = append(out, loc)
		}
	}
	return out
}

func (r *Resolver) referencesInFile(id SourceID, def exprinfo.DefID) []Location {
	exprs := r.Files.Exprs(id)
	if exprs == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.cache[id]; ok && entry.exprs == exprs {
		return entry.refs[def]
	}
	index := map[exprinfo.DefID][]Location{}
	for _, e := range exprs.Exprs {
		if e.Kind != exprinfo.ExprRef || e.Unresolved {
			continue
		}
		index[e.Ref] = append(index[e.Ref], Location{Source: id, Span: e.Span})
	}
	r.cache[id] = cacheEntry{exprs: exprs, refs: index}
	return index[def]
}
