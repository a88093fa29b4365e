// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements the thin per-feature adapters consumed by
// the outer protocol layer (spec.md §4.9 "Query facade"). Each file
// in this package is grounded on the golang-tools source file of the
// matching name under internal/golang (completion.go, hover.go,
// definition.go, references.go, rename.go, signature_help.go,
// semantic_tokens.go, symbols.go, inlay_hint.go), generalized from Go
// semantics to this document language's.
package query

import (
	"github.com/typst-community/typlsp/internal/refresolver"
	"github.com/typst-community/typlsp/internal/sigresolver"
	"github.com/typst-community/typlsp/internal/world"
)

// SourceID aliases the World's opaque file identifier.
type SourceID = world.SourceID

// Facade bundles the World session with the resolvers every query
// adapter needs. One Facade is created per Session (internal/server
// owns the single instance, per spec.md §4.1's single-World model).
//
// *world.Session already satisfies defresolver.Files and
// sigresolver.Files structurally (both interfaces are defined in
// terms of the same SourceID alias), so no adapter type is needed
// between World and the resolvers.
type Facade struct {
	World *world.Session
	Refs  *refresolver.Resolver
	Sigs  *sigresolver.Resolver
}

// NewFacade wires a Facade on top of an already-constructed World
// session.
func NewFacade(w *world.Session) *Facade {
	return &Facade{
		World: w,
		Refs:  refresolver.NewResolver(w),
		Sigs:  &sigresolver.Resolver{Files: w},
	}
}
