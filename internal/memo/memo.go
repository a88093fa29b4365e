// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memo implements the shared memoization table described in
// spec.md §5 "Shared resource policy": a concurrent map keyed by
// content-hash tuples, with per-key single-flight semantics so
// concurrent callers for the same key share one in-flight computation.
//
// No library in the retrieved corpus vendors an LRU or memoization
// table (checked golang-tools, buf, cue-lang/cue, and
// termfx-morfx's go.mod — none import one), so the map itself is a
// plain Go map guarded by a sync.RWMutex; the single-flight
// coalescing on top of it is golang.org/x/sync/singleflight, already
// a real dependency of gopls (internal/cache uses it for the same
// purpose, keyed by snapshot+package rather than by content hash).
package memo

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key is a tuple of content hashes: the hash of the file itself plus
// the hashes of every dependency the computation actually read
// (spec.md §4.11 "Every memoized value records the set of
// content_hashes it read").
type Key struct {
	Primary string
	Deps    string // pre-joined, stable-ordered hash of dependency hashes
}

// entry is one memoized value plus the dependency hashes it was
// computed from, so a later snapshot can check for staleness even
// when Key.Deps itself wasn't known until after computing the value
// (spec.md §4.11's invalidation rule).
type entry struct {
	value any
	deps  []string
}

// Table is a concurrent, content-hash-keyed memoization table with
// single-flight coalescing (spec.md §5, §4.11).
type Table struct {
	mu    sync.RWMutex
	cache map[string]entry
	group singleflight.Group
}

func NewTable() *Table {
	return &Table{cache: map[string]entry{}}
}

// Compute returns the memoized value for key, computing it via fn if
// absent. Concurrent callers for the same key block on the same
// underlying computation and receive the same result (spec.md §5).
// fn returns the value plus the list of dependency content hashes it
// read while computing it, which Valid later checks for staleness.
func (t *Table) Compute(ctx context.Context, key string, fn func(context.Context) (any, []string, error)) (any, error) {
	t.mu.RLock()
	if e, ok := t.cache[key]; ok {
		t.mu.RUnlock()
		return e.value, nil
	}
	t.mu.RUnlock()

	v, err, _ := t.group.Do(key, func() (any, error) {
		t.mu.RLock()
		if e, ok := t.cache[key]; ok {
			t.mu.RUnlock()
			return e.value, nil
		}
		t.mu.RUnlock()

		value, deps, err := fn(ctx)
		if err != nil {
			// Partial memoization entries are not published on
			// cancellation or failure (spec.md §5 "Cancellation").
			return nil, err
		}
		t.mu.Lock()
		t.cache[key] = entry{value: value, deps: deps}
		t.mu.Unlock()
		return value, nil
	})
	return v, err
}

// Invalidate drops key from the table, e.g. because one of its
// recorded dependency hashes no longer matches the current snapshot.
func (t *Table) Invalidate(key string) {
	t.mu.Lock()
	delete(t.cache, key)
	t.mu.Unlock()
}

// InvalidateDependents drops every cached entry whose recorded deps
// include hash, e.g. because the file that hash belonged to was just
// edited or closed (spec.md §4.11: "invalidated ... when ... one of
// its imports (by content hash) changes"). This is what makes the
// deps recorded by Compute's fn actually load-bearing: a cached
// ExprInfo/TypeInfo for file B that read file A's content hash as a
// dependency is dropped here when A's old hash no longer matches
// anything live, forcing B's next Compute call to rebuild against A's
// current text.
func (t *Table) InvalidateDependents(hash string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, e := range t.cache {
		for _, d := range e.deps {
			if d == hash {
				delete(t.cache, k)
				break
			}
		}
	}
}

// Deps returns the dependency hashes key's cached value was computed
// from, for staleness checks driven from outside the table (e.g. the
// World deciding whether to call Invalidate after publishing a new
// snapshot).
func (t *Table) Deps(key string) ([]string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.cache[key]
	if !ok {
		return nil, false
	}
	return e.deps, true
}

// Len reports how many entries are currently memoized, for tests and
// instrumentation (spec.md §8 scenario 6 wants "an instrumentation
// counter exposed to tests").
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cache)
}
