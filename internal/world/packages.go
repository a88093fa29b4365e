// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Package is one entry of the PackageIndex: a namespaced, versioned
// dependency resolved to a local path (spec.md §4.1 "package
// specifiers @namespace/name:version").
type Package struct {
	Namespace string
	Name      string
	Version   string
	Path      string // resolved local root, opaque to exprinfo/typeinfo
}

// PackageIndex resolves "@namespace/name:version" specifiers. It is
// loaded once per process and refreshed on explicit signal (spec.md
// §5), the same lifecycle as FontIndex. Version comparison uses
// golang.org/x/mod/semver — already a real dependency via gopls's own
// module-version handling — generalized here from Go module versions
// to this language's package versions, which follow the same semver
// grammar per its registry's published schema.
type PackageIndex struct {
	packages map[string][]Package // keyed by "@namespace/name"
}

func NewPackageIndex() *PackageIndex {
	return &PackageIndex{packages: map[string][]Package{}}
}

// Register adds or replaces a known package version, e.g. after the
// World rescans a package cache directory.
func (idx *PackageIndex) Register(p Package) {
	key := "@" + p.Namespace + "/" + p.Name
	idx.packages[key] = append(idx.packages[key], p)
}

// Resolve parses a "@namespace/name:version" or "@namespace/name"
// specifier (which resolves to the highest known semver) and returns
// its local path.
func (idx *PackageIndex) Resolve(spec string) (string, bool) {
	name, version, hasVersion := strings.Cut(spec, ":")
	candidates := idx.packages[name]
	if len(candidates) == 0 {
		return "", false
	}
	if hasVersion {
		for _, c := range candidates {
			if c.Version == version {
				return c.Path, true
			}
		}
		return "", false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if semverLess(best.Version, c.Version) {
			best = c
		}
	}
	return best.Path, true
}

func semverLess(a, b string) bool {
	av, bv := normalizeSemver(a), normalizeSemver(b)
	return semver.Compare(av, bv) < 0
}

func normalizeSemver(v string) string {
	if v == "" {
		return "v0.0.0"
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}
