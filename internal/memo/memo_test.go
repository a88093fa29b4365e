// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memo

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestComputeCachesResult(t *testing.T) {
	table := NewTable()
	var calls int32
	fn := func(context.Context) (any, []string, error) {
		atomic.AddInt32(&calls, 1)
		return 42, []string{"dep1"}, nil
	}
	for i := 0; i < 3; i++ {
		v, err := table.Compute(context.Background(), "k", fn)
		if err != nil {
			t.Fatal(err)
		}
		if v.(int) != 42 {
			t.Fatalf("got %v, want 42", v)
		}
	}
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}
}

func TestComputeConcurrentCallersShareOneComputation(t *testing.T) {
	table := NewTable()
	var calls int32
	start := make(chan struct{})
	fn := func(context.Context) (any, []string, error) {
		<-start
		atomic.AddInt32(&calls, 1)
		return "v", nil, nil
	}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Compute(context.Background(), "shared", fn)
		}()
	}
	close(start)
	wg.Wait()
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	table := NewTable()
	var calls int32
	fn := func(context.Context) (any, []string, error) {
		atomic.AddInt32(&calls, 1)
		return calls, nil, nil
	}
	table.Compute(context.Background(), "k", fn)
	table.Invalidate("k")
	table.Compute(context.Background(), "k", fn)
	if calls != 2 {
		t.Fatalf("got %d calls, want 2 after invalidation", calls)
	}
}

func TestInvalidateDependentsDropsEveryEntryRecordingHash(t *testing.T) {
	table := NewTable()
	fn := func(v any, deps []string) func(context.Context) (any, []string, error) {
		return func(context.Context) (any, []string, error) { return v, deps, nil }
	}
	table.Compute(context.Background(), "self", fn("self-v", []string{"hashA"}))
	table.Compute(context.Background(), "importer", fn("importer-v", []string{"hashA", "hashB"}))
	table.Compute(context.Background(), "unrelated", fn("unrelated-v", []string{"hashC"}))

	table.InvalidateDependents("hashA")

	if table.Len() != 1 {
		t.Fatalf("got %d entries after InvalidateDependents, want 1", table.Len())
	}
	if _, ok := table.Deps("unrelated"); !ok {
		t.Fatal("expected entry with an unrelated dep to survive InvalidateDependents")
	}
	if _, ok := table.Deps("self"); ok {
		t.Fatal("expected entry recording the invalidated hash as its own dep to be dropped")
	}
	if _, ok := table.Deps("importer"); ok {
		t.Fatal("expected an importer's entry recording the invalidated hash to be dropped")
	}
}

func TestLenTracksEntries(t *testing.T) {
	table := NewTable()
	fn := func(context.Context) (any, []string, error) { return 1, nil, nil }
	table.Compute(context.Background(), "a", fn)
	table.Compute(context.Background(), "b", fn)
	if table.Len() != 2 {
		t.Fatalf("got %d, want 2", table.Len())
	}
}
