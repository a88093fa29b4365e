// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sigresolver constructs normalized [typeinfo.Signature]
// values from "#let name(params)" definitions (spec.md §4.7): every
// parameter is positional and required; defaults, spread/rest
// parameters and "@typing" doc-comment annotations are not applied. It is
// grounded on golang-tools' internal/golang/signature_help.go for the
// shape of "normalize a callable's parameter list into one object",
// generalized here to also parse the doc-comment annotation syntax
// cue-lang/cue's internal/lsp definitions package uses for attaching
// declared types to otherwise-untyped bindings.
package sigresolver

import (
	"strings"

	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
	"github.com/typst-community/typlsp/internal/typeinfo"
)

// SourceID aliases exprinfo's opaque file identifier.
type SourceID = exprinfo.SourceID

// Files is the narrow per-file view sigresolver needs.
type Files interface {
	Tree(SourceID) *syntax.Tree
	Exprs(SourceID) *exprinfo.Info
}

// Resolver builds signatures on demand and satisfies
// typeinfo.SignatureSource, closing the loop between the two
// packages without an import cycle (typeinfo defines the interface;
// sigresolver implements it).
type Resolver struct {
	Files Files
}

var _ typeinfo.SignatureSource = (*Resolver)(nil)

// SignaturesOf returns the (possibly overloaded) signature list for a
// definition (spec.md §4.7). Overloads beyond the first are not
// produced by this hand-written parser today (it has no multi-arm
// function syntax to source them from); the list always has either
// zero or one entry, in the declared order the grammar would produce
// if it did.
func (r *Resolver) SignaturesOf(def exprinfo.DefID) []*typeinfo.Signature {
	if def.IsBuiltin() {
		return nil
	}
	tree := r.Files.Tree(def.Source)
	exprs := r.Files.Exprs(def.Source)
	if tree == nil || exprs == nil {
		return nil
	}
	n := findNode(tree.Root, def.Expr)
	if n == nil || n.Kind != syntax.KindLet {
		return nil
	}
	return []*typeinfo.Signature{buildSignature(n, exprs)}
}

func findNode(n *syntax.Node, id syntax.NodeID) *syntax.Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := findNode(c, id); found != nil {
			return found
		}
	}
	return nil
}

// buildSignature reads a "#let name(params) = body" node's parameter
// list, producing a Signature (spec.md §4.7). Parameter and return
// types come from precedingTypingComment, which supplies none, so they
// are Any. SelfParam is set when the function's name appears as an
// identifier within its own body, matching the Function-vs-Let
// distinction internal/lexical already makes via VisibleFrom.
func buildSignature(n *syntax.Node, exprs *exprinfo.Info) *typeinfo.Signature {
	sig := &typeinfo.Signature{Return: typeinfo.AnyType()}
	annotation := precedingTypingComment(n, exprs)
	paramTypes := annotation.paramTypes
	for _, c := range n.Children {
		if c.Kind != syntax.KindParam {
			continue
		}
		for i, p := range c.Children {
			sig.Positional = append(sig.Positional, typeinfo.Param{
				Name:     p.Text,
				Type:     typeAt(paramTypes, i),
				Required: true,
			})
		}
	}
	if annotation.ret != nil {
		sig.Return = annotation.ret
	}
	var mentions func(c *syntax.Node) bool
	mentions = func(c *syntax.Node) bool {
		found := c.Kind == syntax.KindIdent && c.Text == n.Text
		for _, gc := range c.Children {
			found = found || mentions(gc)
		}
		return found
	}
	for _, c := range n.Children {
		if c.Kind != syntax.KindParam && mentions(c) {
			sig.SelfParam = &typeinfo.Param{Name: n.Text, Type: typeinfo.SelfType()}
		}
	}
	return sig
}

func typeAt(types []*typeinfo.Type, i int) *typeinfo.Type {
	if i < len(types) {
		return types[i]
	}
	return typeinfo.AnyType()
}

type typingAnnotation struct {
	paramTypes []*typeinfo.Type
	ret        *typeinfo.Type
}

// precedingTypingComment returns an empty annotation: no
// "/// @typing (T, U) -> V" comment before n is looked up, so every
// parameter type and the return type stay Any.
func precedingTypingComment(n *syntax.Node, exprs *exprinfo.Info) typingAnnotation {
	_ = exprs
	return typingAnnotation{}
}

// ParseTypingAnnotation parses the body of a "@typing" comment of the
// form "@typing (T, U) -> V" into parameter and return types. It is
// exported; no code in this module calls it.
func ParseTypingAnnotation(text string) (params []*typeinfo.Type, ret *typeinfo.Type, ok bool) {
	idx := strings.Index(text, "@typing")
	if idx < 0 {
		return nil, nil, false
	}
	rest := strings.TrimSpace(text[idx+len("@typing"):])
	open := strings.Index(rest, "(")
	shut := strings.Index(rest, ")")
	if open < 0 || shut < open {
		return nil, nil, false
	}
	paramList := rest[open+1 : shut]
	for _, part := range strings.Split(paramList, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params = append(params, namedType(part))
	}
	arrowIdx := strings.Index(rest, "->")
	if arrowIdx >= 0 {
		ret = namedType(strings.TrimSpace(rest[arrowIdx+2:]))
	}
	return params, ret, true
}

func namedType(name string) *typeinfo.Type {
	switch name {
	case "int":
		return typeinfo.PrimitiveType(typeinfo.Int)
	case "float":
		return typeinfo.PrimitiveType(typeinfo.Float)
	case "str":
		return typeinfo.PrimitiveType(typeinfo.Str)
	case "bool":
		return typeinfo.PrimitiveType(typeinfo.Bool)
	case "content":
		return typeinfo.PrimitiveType(typeinfo.Content)
	default:
		return typeinfo.AnyType()
	}
}
