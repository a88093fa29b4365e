// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

// DiagnosticSeverity mirrors the two levels of the LSP's severity
// scale this analyzer actually produces, error and warning (no
// "information" or "hint" severity diagnostics are emitted here; inlay
// hints cover that role instead).
type DiagnosticSeverity uint8

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
)

// Diagnostic is one aggregated finding (spec.md §7): a SyntaxError, a
// ResolutionError, a CyclicImport, or a TypeError, normalized to one
// shape so the LSP layer can publish them together under a single
// monotonically increasing version number.
type Diagnostic struct {
	Span     syntax.Span
	Message  string
	Severity DiagnosticSeverity
	Source   string // "syntax", "resolution", "types"
}

// Diagnostics implements spec.md §7's aggregation: gather every
// SyntaxError, ResolutionError and TypeError for id into one ordered
// slice (syntax first, then resolution, then types, each in the order
// its producing pass recorded them, so output is deterministic given
// deterministic inputs per spec.md §4.4 "Determinism").
func (f *Facade) Diagnostics(id SourceID) []Diagnostic {
	tree := f.World.Tree(id)
	if tree == nil {
		return nil
	}
	var out []Diagnostic
	for _, d := range tree.Diags {
		out = append(out, Diagnostic{Span: d.Span, Message: d.Message, Severity: SeverityError, Source: "syntax"})
	}
	if exprs := f.World.Exprs(id); exprs != nil {
		for _, r := range exprs.Unresolved {
			out = append(out, Diagnostic{Span: r.Span, Message: resolutionMessage(r), Severity: SeverityError, Source: "resolution"})
		}
	}
	if types := f.World.Types(id); types != nil {
		for _, e := range types.Diagnostics {
			out = append(out, Diagnostic{Span: e.Span, Message: typeMessage(e), Severity: SeverityWarning, Source: "types"})
		}
	}
	return out
}

func resolutionMessage(r exprinfo.ResolutionError) string {
	switch r.Kind {
	case exprinfo.UnresolvedName:
		return "unresolved name: " + r.Name
	case exprinfo.UnresolvedImport:
		return "unresolved import: " + r.Name
	case exprinfo.CyclicImport:
		return "cyclic import: " + r.Name
	default:
		return "unresolved reference: " + r.Name
	}
}

func typeMessage(e typeinfo.TypeError) string {
	switch e.Kind {
	case typeinfo.ArityMismatch:
		return "no overload accepts these arguments"
	case typeinfo.FieldAbsent:
		return "type " + e.Actual.String() + " has no such field"
	case typeinfo.UnificationFailure:
		return "type mismatch: expected " + e.Expected.String() + ", got " + e.Actual.String()
	default:
		return "type error"
	}
}
