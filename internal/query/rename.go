// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"

	"github.com/typst-community/typlsp/internal/defresolver"
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
)

// RenameEdit is one text replacement a rename produces.
type RenameEdit struct {
	Source SourceID
	Span   syntax.Span
}

// PrepareRename implements spec.md §4.9's "prepare_rename" half of
// rename: reject renaming built-ins and cross-package definitions
// (scenario 4), returning the span that would be renamed in place.
func (f *Facade) PrepareRename(id SourceID, offset int) (defresolver.Definition, error) {
	def, ok := defresolver.DefinitionAt(f.World, id, offset)
	if !ok {
		return defresolver.Definition{}, fmt.Errorf("no renameable symbol at this position")
	}
	switch def.Kind {
	case defresolver.DefBuiltin:
		return defresolver.Definition{}, fmt.Errorf("cannot rename a built-in")
	case defresolver.DefImportedModule:
		return defresolver.Definition{}, fmt.Errorf("cannot rename an imported module reference")
	}
	if def.Source != id {
		return defresolver.Definition{}, fmt.Errorf("cannot rename a definition declared in another file")
	}
	return def, nil
}

// Rename implements spec.md §4.9's rename query: after PrepareRename
// accepts the position, collect every reference plus the declaration
// itself as edit sites.
func (f *Facade) Rename(id SourceID, offset int, newName string) ([]RenameEdit, error) {
	def, err := f.PrepareRename(id, offset)
	if err != nil {
		return nil, err
	}
	var edits []RenameEdit
	edits = append(edits, RenameEdit{Source: def.Source, Span: def.Span})

	defID := exprinfo.DefID{Source: def.Source, Expr: nodeIDFromSpan(f, def)}
	for _, loc := range f.Refs.References(defID) {
		edits = append(edits, RenameEdit{Source: loc.Source, Span: loc.Span})
	}
	return edits, nil
}
