// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"testing"
	"time"

	"go.lsp.dev/protocol"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/settings"
)

func TestOpenEditSnapshotRevisionIncreases(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	id := s.Open("file:///a.typ", "#let x = 1", 1)
	snap1 := s.Snapshot()
	s.Edit(id, "#let x = 2", 2)
	snap2 := s.Snapshot()
	if snap2.Revision <= snap1.Revision {
		t.Fatalf("revision did not increase: %d -> %d", snap1.Revision, snap2.Revision)
	}
	if snap1.File(id).Text == snap2.File(id).Text {
		t.Fatal("edit did not change text")
	}
}

func TestSnapshotsOfEqualRevisionAreStructurallyEqual(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	s.Open("file:///a.typ", "x", 1)
	snapA := s.Snapshot()
	snapB := s.Snapshot()
	if snapA.Revision != snapB.Revision {
		t.Fatal("expected same revision from repeated Snapshot() calls without mutation")
	}
	if snapA.sources.Len() != snapB.sources.Len() {
		t.Fatal("expected structurally equal snapshots")
	}
}

func TestCloseRemovesFile(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	id := s.Open("file:///a.typ", "x", 1)
	s.Close(id)
	if s.Snapshot().File(id) != nil {
		t.Fatal("expected file to be removed after Close")
	}
}

func TestExprsAndTypesMemoizedAcrossSnapshots(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	id := s.Open("file:///a.typ", "#let x = 1", 1)
	info1 := s.Exprs(id)
	other := s.Open("file:///b.typ", "#let y = 2", 1)
	_ = other
	info2 := s.Exprs(id)
	if info1 != info2 {
		t.Fatal("expected memoized ExprInfo to survive an unrelated snapshot cycle")
	}
}

func TestResolvePathRelative(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	a := s.Open(protocol.DocumentURI("file:///root/a.typ"), `#import "b.typ"`, 1)
	s.Open(protocol.DocumentURI("file:///root/b.typ"), "#let z = 1", 1)
	resolved, ok := s.ResolvePath(a, "b.typ")
	if !ok {
		t.Fatal("expected b.typ to resolve")
	}
	if s.Snapshot().File(resolved) == nil {
		t.Fatal("resolved id does not name a tracked file")
	}
}

// TestExprsDoesNotCollideOnIdenticalContent guards against keying the
// memo table by content hash alone: two distinct files sharing the
// exact same text must still get independently-scoped ExprInfo, since
// a DefID's Source component is baked in relative to "self" at build
// time.
func TestExprsDoesNotCollideOnIdenticalContent(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	text := "#let x = 1\n#let y = x"
	a := s.Open(protocol.DocumentURI("file:///a.typ"), text, 1)
	b := s.Open(protocol.DocumentURI("file:///b.typ"), text, 1)

	infoA := s.Exprs(a)
	infoB := s.Exprs(b)
	if infoA == infoB {
		t.Fatal("expected independent ExprInfo for distinct files with identical content")
	}

	tree := s.Tree(a)
	yLet := tree.Root.Children[2] // Children[1] is the "\n" text node
	yExprA := infoA.Exprs[yLet.ID]
	refA := infoA.Exprs[yExprA.Body]
	if refA.Ref.Source != a {
		t.Fatalf("file a's ref resolved into source %d, want %d", refA.Ref.Source, a)
	}

	yExprB := infoB.Exprs[yLet.ID]
	refB := infoB.Exprs[yExprB.Body]
	if refB.Ref.Source != b {
		t.Fatalf("file b's ref resolved into source %d, want %d", refB.Ref.Source, b)
	}
}

// TestExprsInvalidatedByImportEdit covers spec.md §4.3/§4.11: editing
// an imported file must invalidate the importer's cached ExprInfo, not
// just the edited file's own entry.
func TestExprsInvalidatedByImportEdit(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	a := s.Open(protocol.DocumentURI("file:///root/a.typ"), "#let shared = 1", 1)
	b := s.Open(protocol.DocumentURI("file:///root/b.typ"), `#import "a.typ": shared`+"\n#let y = shared", 1)

	info1 := s.Exprs(b)
	tree := s.Tree(b)
	yLet := tree.Root.Children[2] // Children[1] is the "\n" text node
	ref1 := info1.Exprs[info1.Exprs[yLet.ID].Body]
	if ref1.Unresolved {
		t.Fatalf("expected shared to resolve via import, got unresolved ref: %+v", ref1)
	}

	s.Edit(a, "#let shared = 2", 2)
	info2 := s.Exprs(b)
	if info1 == info2 {
		t.Fatal("expected importer's cached ExprInfo to be invalidated after editing the imported file")
	}
}

// TestExprsHandlesCyclicImportWithoutDeadlock covers spec.md
// §4.3/§4.11/§8 "Cycle tolerance": a genuine two-file A<->B cycle via
// item-binding imports must resolve (not hang on singleflight
// re-entrancy) and must record a CyclicImport diagnostic.
func TestExprsHandlesCyclicImportWithoutDeadlock(t *testing.T) {
	s := NewSession(settings.DefaultOptions())
	a := s.Open(protocol.DocumentURI("file:///root/a.typ"), `#import "b.typ": bee`+"\n#let ay = 1", 1)
	b := s.Open(protocol.DocumentURI("file:///root/b.typ"), `#import "a.typ": ay`+"\n#let bee = 1", 1)

	type result struct{ a, b *exprinfo.Info }
	done := make(chan result, 1)
	go func() {
		infoA := s.Exprs(a)
		infoB := s.Exprs(b)
		done <- result{infoA, infoB}
	}()
	select {
	case r := <-done:
		if r.a == nil || r.b == nil {
			t.Fatal("expected non-nil ExprInfo on both sides of the cyclic import")
		}
		found := false
		for _, info := range []*exprinfo.Info{r.a, r.b} {
			for _, u := range info.Unresolved {
				if u.Kind == exprinfo.CyclicImport {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("expected a CyclicImport diagnostic on one side, got a=%+v b=%+v", r.a.Unresolved, r.b.Unresolved)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Exprs on a cyclic import chain did not return: likely singleflight deadlock")
	}
}
