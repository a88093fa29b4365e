// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package world implements the World component (spec.md §4.1): the
// process-wide set of source files, their immutable snapshots, and
// path/package resolution. It is grounded on gopls's
// internal/cache Session/View/Snapshot lifecycle split, simplified
// to a single session per process (this analyzer has no multi-root
// workspace concept beyond spec.md §6's rootPath).
package world

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/file"
	"github.com/typst-community/typlsp/internal/lexical"
	"github.com/typst-community/typlsp/internal/memo"
	"github.com/typst-community/typlsp/internal/settings"
	"github.com/typst-community/typlsp/internal/sigresolver"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
	"github.com/typst-community/typlsp/internal/util/immutable"
	"github.com/typst-community/typlsp/internal/util/pathutil"
)

// SourceID is a stable integer identifier for a file within a
// snapshot (spec.md §3). It is invalid across snapshots produced by a
// different Session.
type SourceID = exprinfo.SourceID

// SourceFile is the per-file record a Snapshot holds (spec.md §3).
type SourceFile struct {
	ID        SourceID
	URI       protocol.DocumentURI
	Path      string
	Text      string
	Version   int32
	Hash      file.Hash
	LineIndex *syntax.LineIndex
	Tree      *syntax.Tree
}

// Snapshot is an immutable value shared structurally with its
// predecessor (spec.md §3). Readers hold a Snapshot and never
// observe a subsequent edit. sources/byPath use [immutable.Map], the
// same wrapper gopls's own internal/cache.Snapshot uses for this exact
// purpose (see that package's doc comment: "used for additional type
// safety when a Snapshot shares structure with its predecessor").
type Snapshot struct {
	Revision uint64
	sources  immutable.Map[SourceID, *SourceFile]
	byPath   immutable.Map[string, SourceID]
	roots    []string
	Fonts    *FontIndex
	Packages *PackageIndex
}

// File returns the SourceFile for id within this snapshot, or nil.
func (s *Snapshot) File(id SourceID) *SourceFile {
	sf, _ := s.sources.Value(id)
	return sf
}

// URIs lists every file currently tracked by the snapshot, in stable
// ID order.
func (s *Snapshot) URIs() []protocol.DocumentURI {
	ids := s.sources.Keys()
	sortSourceIDs(ids)
	out := make([]protocol.DocumentURI, len(ids))
	for i, id := range ids {
		sf, _ := s.sources.Value(id)
		out[i] = sf.URI
	}
	return out
}

func sortSourceIDs(ids []SourceID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

// Session owns the process-wide set of source files and publishes new
// Snapshots on every mutation (spec.md §4.1, §5 "single-writer,
// many-reader"). All mutating methods take Session's single mutex,
// matching the scheduling model's "a single task serializes edits".
type Session struct {
	mu      sync.Mutex
	cur     *Snapshot
	nextID  SourceID
	options *settings.Options
	memo    *memo.Table
	sigs    *sigresolver.Resolver
}

// NewSession creates an empty Session with the given options.
func NewSession(opts *settings.Options) *Session {
	if opts == nil {
		opts = settings.DefaultOptions()
	}
	s := &Session{
		options: opts,
		memo:    memo.NewTable(),
		cur: &Snapshot{
			sources:  immutable.MapOf(map[SourceID]*SourceFile{}),
			byPath:   immutable.MapOf(map[string]SourceID{}),
			Fonts:    NewFontIndex(opts.SystemFonts, opts.FontPaths),
			Packages: NewPackageIndex(),
		},
	}
	s.sigs = &sigresolver.Resolver{Files: s}
	return s
}

// Open admits a new file into the World (spec.md §4.1 "open").
func (s *Session) Open(uri protocol.DocumentURI, text string, version int32) SourceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.publishLocked(func(sources map[SourceID]*SourceFile, byPath map[string]SourceID) {
		sf := s.buildFile(id, uri, text, version)
		sources[id] = sf
		byPath[pathOf(uri)] = id
	})
	return id
}

// Edit replaces a file's whole text (spec.md §4.1 "edit"; this World
// always replaces whole text, deferring range-edit coalescing to the
// outer LSP layer as spec.md §4.1 permits: "caller's choice").
func (s *Session) Edit(id SourceID, newText string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.cur.File(id)
	if old == nil {
		return
	}
	s.publishLocked(func(sources map[SourceID]*SourceFile, byPath map[string]SourceID) {
		sf := s.buildFile(id, old.URI, newText, version)
		sources[id] = sf
	})
	// old.Hash no longer matches any live file: drop every memoized
	// ExprInfo/TypeInfo that read it as a dependency, including id's own
	// (self is always among its own deps) and any importer of id
	// (spec.md §4.3/§4.11 cross-file invalidation).
	s.memo.InvalidateDependents(old.Hash.String())
}

// Close removes a file from the World (spec.md §4.1 "close"); its
// SourceID is not reused.
func (s *Session) Close(id SourceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.cur.File(id)
	if old == nil {
		return
	}
	s.publishLocked(func(sources map[SourceID]*SourceFile, byPath map[string]SourceID) {
		delete(sources, id)
		delete(byPath, pathOf(old.URI))
	})
	s.memo.InvalidateDependents(old.Hash.String())
}

// publishLocked clones the current snapshot's maps (structural
// sharing: only the changed entries are new) and applies mutate,
// then installs the result as the new current snapshot with an
// incremented revision (spec.md §3 "cheap to clone", §8 "Snapshot
// monotonicity"). The plain maps mutate sees are re-wrapped as
// [immutable.Map] before publication, so no reader ever observes a
// mutable map.
func (s *Session) publishLocked(mutate func(sources map[SourceID]*SourceFile, byPath map[string]SourceID)) {
	sources := cloneFiles(s.cur.sources)
	byPath := cloneByPath(s.cur.byPath)
	mutate(sources, byPath)
	s.cur = &Snapshot{
		Revision: s.cur.Revision + 1,
		sources:  immutable.MapOf(sources),
		byPath:   immutable.MapOf(byPath),
		roots:    s.cur.roots,
		Fonts:    s.cur.Fonts,
		Packages: s.cur.Packages,
	}
}

func cloneFiles(m immutable.Map[SourceID, *SourceFile]) map[SourceID]*SourceFile {
	out := make(map[SourceID]*SourceFile, m.Len())
	m.Range(func(k SourceID, v *SourceFile) { out[k] = v })
	return out
}

func cloneByPath(m immutable.Map[string, SourceID]) map[string]SourceID {
	out := make(map[string]SourceID, m.Len())
	m.Range(func(k string, v SourceID) { out[k] = v })
	return out
}

func (s *Session) buildFile(id SourceID, uri protocol.DocumentURI, text string, version int32) *SourceFile {
	return &SourceFile{
		ID:        id,
		URI:       uri,
		Path:      pathOf(uri),
		Text:      text,
		Version:   version,
		Hash:      file.HashOf([]byte(text)),
		LineIndex: syntax.NewLineIndex(text),
		Tree:      syntax.Parse(text),
	}
}

func pathOf(uri protocol.DocumentURI) string {
	s := string(uri)
	s = strings.TrimPrefix(s, "file://")
	return s
}

// FindByURI looks up the SourceID currently bound to uri. The LSP layer
// identifies files by URI on didChange/didClose; this is the inverse of
// the URI recorded on Open.
func (s *Session) FindByURI(uri protocol.DocumentURI) (SourceID, bool) {
	snap := s.Snapshot()
	return snap.byPath.Value(pathOf(uri))
}

// Snapshot returns the current snapshot (spec.md §4.1 "snapshot()").
// The returned value is safe to use from any goroutine and is
// unaffected by subsequent edits (spec.md §5).
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// ResolvePath implements spec.md §4.1's path/package resolution:
// absolute paths rooted at the configured workspace root (or the
// file's own parent directory when rootPath is "-"); package
// specifiers of the form "@namespace/name:version" go through the
// PackageIndex; anything else is resolved relative to base's
// directory.
func (s *Session) ResolvePath(base SourceID, ref string) (SourceID, bool) {
	snap := s.Snapshot()
	if strings.HasPrefix(ref, "@") {
		pkgPath, ok := snap.Packages.Resolve(ref)
		if !ok {
			return 0, false
		}
		ref = pkgPath
	}
	baseFile := snap.File(base)
	target := joinPath(baseFile, ref, s.options.RootPath)
	if root := s.options.RootPath; root != "" && root != "-" && !pathutil.InDir(root, target) {
		return 0, false
	}
	id, ok := snap.byPath.Value(target)
	return id, ok
}

func joinPath(base *SourceFile, ref string, rootPath string) string {
	if strings.HasPrefix(ref, "/") {
		if rootPath == "-" || rootPath == "" {
			return ref
		}
		return rootPath + ref
	}
	if base == nil {
		return ref
	}
	dir := dirOf(base.Path)
	return normalizeJoin(dir, ref)
}

func dirOf(p string) string {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

func normalizeJoin(dir, ref string) string {
	if dir == "" {
		return ref
	}
	parts := strings.Split(dir+"/"+ref, "/")
	var out []string
	for _, p := range parts {
		switch p {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, p)
		}
	}
	return "/" + strings.Join(out, "/")
}

// ResolveImport adapts ResolvePath to exprinfo.ImportResolver.
func (s *Session) ResolveImport(from SourceID, path string) (SourceID, bool) {
	return s.ResolvePath(from, path)
}

// --- analysis accessors: Tree/Exprs/Types on demand, memoized by content hash ---

// Tree returns the parsed syntax tree for id, satisfying
// defresolver.Files, sigresolver.Files and refresolver.Files.
func (s *Session) Tree(id SourceID) *syntax.Tree {
	sf := s.Snapshot().File(id)
	if sf == nil {
		return nil
	}
	return sf.Tree
}

// Exprs returns the memoized ExprInfo for id. The memo key is scoped
// to id (not just its content hash, since two open files can share
// identical text and must never share a cache entry — the DefIDs a
// build bakes in are relative to "self"). Staleness instead flows
// through the recorded deps: the file's own content hash plus every
// resolved import's content hash at build time (spec.md §4.11: "keyed
// ... invalidated ... when the file itself or one of its imports (by
// content hash) changes"); Edit/Close call
// [memo.Table.InvalidateDependents] with a file's old hash, which
// drops this entry (and every importer's entry) once that hash is no
// longer current.
func (s *Session) Exprs(id SourceID) *exprinfo.Info {
	return s.exprsVisiting(id, nil)
}

// exprsVisiting is Exprs plus the set of SourceIDs currently being
// built higher up this same call chain (spec.md §4.3/§4.11/§8 "cycle
// tolerance"). visiting is checked before touching the memo table at
// all: a cyclic import (A -> B -> A) is detected the moment the inner
// call reaches an id already on the chain, without ever re-entering
// singleflight for a key whose computation is still in flight on this
// goroutine (which would otherwise deadlock, since that computation
// can only finish after this call returns). Each recursive call gets
// its own copy of visiting, so a diamond (A imports B and C, both of
// which import D) doesn't falsely treat D as cyclic on its second
// encounter.
func (s *Session) exprsVisiting(id SourceID, visiting map[SourceID]bool) *exprinfo.Info {
	if visiting[id] {
		return nil
	}
	snap := s.Snapshot()
	sf := snap.File(id)
	if sf == nil {
		return nil
	}
	key := fmt.Sprintf("exprinfo:%d", id)
	v, err := s.memo.Compute(context.Background(), key, func(context.Context) (any, []string, error) {
		hier := lexical.Build(sf.Tree)
		childVisiting := visitingWith(visiting, id)
		exportsOf := func(mod SourceID) map[string]exprinfo.ExprID {
			info := s.exprsVisiting(mod, childVisiting)
			if info == nil {
				return nil
			}
			return info.Exports
		}
		info := exprinfo.Build(id, sf.Tree, hier, s, exportsOf, childVisiting)
		return info, importDeps(snap, sf, info), nil
	})
	if err != nil {
		return nil
	}
	return v.(*exprinfo.Info)
}

// visitingWith copies parent (the enclosing call chain's visiting set)
// and adds id, without mutating parent itself: siblings in the same
// import graph (e.g. two unrelated imports of the same file) must not
// see each other's visiting markers.
func visitingWith(parent map[SourceID]bool, id SourceID) map[SourceID]bool {
	out := make(map[SourceID]bool, len(parent)+1)
	for k := range parent {
		out[k] = true
	}
	out[id] = true
	return out
}

// importDeps lists the content-hash dependencies a just-built ExprInfo
// read: the file's own hash plus every import it resolved to a module
// (spec.md §4.11), regardless of whether that import was cyclic — a
// cyclic diagnosis can itself become stale once the other side of the
// cycle is edited.
func importDeps(snap *Snapshot, sf *SourceFile, info *exprinfo.Info) []string {
	deps := []string{sf.Hash.String()}
	if info == nil {
		return deps
	}
	for _, imp := range info.Imports {
		if !imp.HasModule {
			continue
		}
		if modFile := snap.File(imp.Module); modFile != nil {
			deps = append(deps, modFile.Hash.String())
		}
	}
	return deps
}

// Types returns the memoized TypeInfo for id, keyed and invalidated
// the same way Exprs is (see that method's doc comment): TypeInfo is
// derived from ExprInfo, so it depends on exactly the same file set.
func (s *Session) Types(id SourceID) *typeinfo.Info {
	snap := s.Snapshot()
	sf := snap.File(id)
	if sf == nil {
		return nil
	}
	key := fmt.Sprintf("typeinfo:%d", id)
	v, err := s.memo.Compute(context.Background(), key, func(context.Context) (any, []string, error) {
		exprs := s.Exprs(id)
		info := typeinfo.Infer(exprs, sf.Tree, s.sigs)
		return info, importDeps(snap, sf, exprs), nil
	})
	if err != nil {
		return nil
	}
	return v.(*typeinfo.Info)
}

// Hierarchy returns the lexical scope tree for id (recomputed, not
// memoized: it is cheap and every exprinfo build already does this
// pass internally).
func (s *Session) Hierarchy(id SourceID) *lexical.Hierarchy {
	tree := s.Tree(id)
	if tree == nil {
		return nil
	}
	return lexical.Build(tree)
}

// MemoLen exposes the memoization table's entry count for tests that
// assert cache reuse across snapshot cycles (spec.md §8 "No cache
// leaks").
func (s *Session) MemoLen() int { return s.memo.Len() }

// AllSources lists every SourceID currently tracked, satisfying
// refresolver.Files for workspace-wide reference scans.
func (s *Session) AllSources() []SourceID {
	snap := s.Snapshot()
	ids := snap.sources.Keys()
	sortSourceIDs(ids)
	return ids
}
