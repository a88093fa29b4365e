// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package file

import "fmt"

// Kind describes the kind of a file tracked by the world.
type Kind int

const (
	// UnknownKind is a file type we don't know about.
	UnknownKind = Kind(iota)

	// Source is a document-language source file.
	Source
	// Manifest is a package manifest file (e.g. a lock file consulted
	// under projectResolution=lockDatabase).
	Manifest
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Manifest:
		return "manifest"
	default:
		return fmt.Sprintf("internal error: unknown file kind %d", k)
	}
}

// KindForLang returns the file kind associated with the given language ID
// (from protocol.TextDocumentItem.LanguageID), or UnknownKind if the
// language ID is not recognized.
func KindForLang(langID string) Kind {
	switch langID {
	case "typst", "typ":
		return Source
	case "json", "jsonc":
		return Manifest
	default:
		return UnknownKind
	}
}
