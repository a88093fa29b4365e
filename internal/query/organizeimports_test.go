// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrganizeImportsDedupsAndSorts(t *testing.T) {
	text := "#import \"c.typ\"\n#import \"a.typ\"\n#import \"a.typ\"\n"
	f, id := newFacade(t, text)
	edits := f.OrganizeImports(id)
	require.Len(t, edits, 1)
	require.Equal(t, "#import \"a.typ\"\n#import \"c.typ\"", edits[0].NewText)
}

func TestOrganizeImportsLeavesNamedImportsAlone(t *testing.T) {
	text := "#import \"a.typ\": x\n"
	f, id := newFacade(t, text)
	require.Nil(t, f.OrganizeImports(id))
}

func TestOrganizeImportsNoopOnSingleImport(t *testing.T) {
	text := "#import \"a.typ\"\n"
	f, id := newFacade(t, text)
	require.Nil(t, f.OrganizeImports(id))
}
