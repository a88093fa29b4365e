// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/typst-community/typlsp/internal/defresolver"
)

// Definition implements spec.md §4.9's goto-definition query: a thin
// wrapper translating DefResolver's Definition into whatever the
// caller needs to address a location with.
func (f *Facade) Definition(id SourceID, offset int) (defresolver.Definition, bool) {
	return defresolver.DefinitionAt(f.World, id, offset)
}
