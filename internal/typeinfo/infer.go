// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typeinfo

import (
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
)

// TypeErrorKind distinguishes why inference failed at a node
// (spec.md §7 "TypeError").
type TypeErrorKind uint8

const (
	UnificationFailure TypeErrorKind = iota
	ArityMismatch
	FieldAbsent
)

// TypeError is one entry of Info.Diagnostics.
type TypeError struct {
	Span     syntax.Span
	Kind     TypeErrorKind
	Expected *Type
	Actual   *Type
}

// SignatureSource supplies the candidate signatures for a DefID,
// bridging to internal/sigresolver without creating an import cycle
// (sigresolver itself depends on typeinfo for Signature/Type).
type SignatureSource interface {
	SignaturesOf(exprinfo.DefID) []*Signature
}

// Info is the full per-file type environment (spec.md §3 "TypeInfo").
type Info struct {
	Types        map[exprinfo.ExprID]*Type
	Constraints  []Constraint
	Substitution *Substitution
	Diagnostics  []TypeError
}

// TypeAt returns the inferred type of the expression smallest
// containing offset, or Any if offset is outside every expression
// (spec.md §4.4 "type_at").
func (info *Info) TypeAt(exprs *exprinfo.Info, tree *syntax.Tree, offset int) *Type {
	e := exprs.ExprAt(tree, offset)
	if e == nil {
		return AnyType()
	}
	if t, ok := info.Types[e.ID]; ok {
		return t
	}
	return AnyType()
}

// Infer runs constraint generation and unification over exprs,
// producing an Info (spec.md §4.4). Constraint generation is ordered
// by syntax-tree pre-order, and substitution iteration (where it
// affects output, e.g. diagnostic order) is by union-find root id, so
// that no Go map iteration order leaks into results (spec.md §4.4
// "Determinism").
func Infer(exprs *exprinfo.Info, tree *syntax.Tree, sigs SignatureSource) *Info {
	inf := &inferer{
		exprs: exprs,
		subst: NewSubstitution(),
		info: &Info{
			Types:        map[exprinfo.ExprID]*Type{},
			Substitution: nil,
		},
		sigs: sigs,
	}
	order := preorder(tree.Root)
	for _, n := range order {
		if e, ok := exprs.Exprs[n.ID]; ok {
			inf.infer(e)
		}
	}
	inf.info.Substitution = inf.subst
	// Resolve every recorded type through the final substitution so
	// callers never observe an intermediate TVar.
	for id, t := range inf.info.Types {
		inf.info.Types[id] = inf.subst.deepResolve(t)
	}
	return inf.info
}

func preorder(n *syntax.Node) []*syntax.Node {
	out := []*syntax.Node{n}
	for _, c := range n.Children {
		out = append(out, preorder(c)...)
	}
	return out
}

type inferer struct {
	exprs *exprinfo.Info
	subst *Substitution
	info  *Info
	sigs  SignatureSource
}

func (inf *inferer) typeOf(id exprinfo.ExprID) *Type {
	if t, ok := inf.info.Types[id]; ok {
		return t
	}
	if e, ok := inf.exprs.Exprs[id]; ok {
		return inf.infer(e)
	}
	return AnyType()
}

func (inf *inferer) infer(e *exprinfo.Expr) *Type {
	if t, ok := inf.info.Types[e.ID]; ok {
		return t
	}
	// Guard against re-entrant inference on self-referential
	// structures by provisionally recording Any before recursing.
	inf.info.Types[e.ID] = AnyType()

	var t *Type
	switch e.Kind {
	case exprinfo.ExprLit:
		t = inf.inferLiteral(e)
	case exprinfo.ExprRef:
		t = inf.inferRef(e)
	case exprinfo.ExprFieldAccess:
		t = inf.inferFieldAccess(e)
	case exprinfo.ExprCall:
		t = inf.inferCall(e)
	case exprinfo.ExprLambda:
		t = inf.inferLambda(e)
	case exprinfo.ExprBlock:
		t = inf.inferBlock(e)
	case exprinfo.ExprImport, exprinfo.ExprModuleRef:
		t = AnyType()
	case exprinfo.ExprShow, exprinfo.ExprSet:
		t = inf.inferShowSet(e)
	default:
		t = AnyType()
	}
	inf.info.Types[e.ID] = t
	return t
}

func (inf *inferer) inferLiteral(e *exprinfo.Expr) *Type {
	if e.Unresolved || e.Name == "" {
		return AnyType()
	}
	switch e.Name {
	case "true", "false":
		return PrimitiveType(Bool)
	case "none":
		return NeverType()
	case "auto":
		return AutoType()
	}
	if isNumeric(e.Name) {
		if containsDot(e.Name) {
			return PrimitiveType(Float)
		}
		return PrimitiveType(Int)
	}
	return PrimitiveType(Str)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r == '.') {
			// allow a trailing unit suffix like "pt"/"em"/"%"
			return r == 'p' || r == 't' || r == 'e' || r == 'm' || r == '%' || r == 'c' || r == 'x'
		}
	}
	return true
}

func containsDot(s string) bool {
	for _, r := range s {
		if r == '.' {
			return true
		}
	}
	return false
}

func (inf *inferer) inferRef(e *exprinfo.Expr) *Type {
	if e.Unresolved {
		return AnyType()
	}
	if e.Ref.IsBuiltin() {
		return builtinType(e.Ref.Builtin)
	}
	// Cross-file references are resolved by the caller: TypeAt/Infer
	// only see a single file's exprinfo.Info, so a Ref naming another
	// SourceId resolves to Any here; internal/query joins cross-file
	// hover/definition through DefResolver instead.
	return inf.typeOf(e.Ref.Expr)
}

func builtinType(name string) *Type {
	// A minimal static table; spec.md §4.9 notes completion/hover
	// merge with "a static built-in table" and this mirrors that for
	// type purposes.
	switch name {
	case "rgb", "cmyk", "luma":
		return FuncType(&Signature{Return: PrimitiveType(Color)})
	case "len":
		return FuncType(&Signature{Return: PrimitiveType(Int)})
	case "str":
		return FuncType(&Signature{Return: PrimitiveType(Str)})
	case "int":
		return FuncType(&Signature{Return: PrimitiveType(Int)})
	case "float":
		return FuncType(&Signature{Return: PrimitiveType(Float)})
	default:
		return AnyType()
	}
}

func (inf *inferer) inferFieldAccess(e *exprinfo.Expr) *Type {
	baseT := inf.typeOf(e.Base)
	switch baseT.Tag {
	case TRecord:
		for _, f := range baseT.Fields {
			if f.Name == e.Field {
				return f.Type
			}
		}
		inf.info.Diagnostics = append(inf.info.Diagnostics, TypeError{
			Span: e.Span, Kind: FieldAbsent, Actual: baseT,
		})
		return AnyType()
	case TArr, TDict:
		switch e.Field {
		case "len":
			return FuncType(&Signature{Return: PrimitiveType(Int)})
		case "at":
			return FuncType(&Signature{Return: baseT.Elem})
		case "map":
			return FuncType(&Signature{Return: ArrType(AnyType())})
		}
		return AnyType()
	default:
		return AnyType()
	}
}

// inferCall implements spec.md §4.4's call rule: for each candidate
// signature of the callee, unify argument types against parameter
// types, discarding candidates that fail; the result is the union of
// surviving candidates' return types. Candidates are tried in the
// callee's declared order and that order alone breaks ties among
// otherwise-equal survivors (spec.md §4.4 "Overload tie-breaks";
// spec.md §9 notes no further ad-hoc preference is documented, so none
// is implemented here).
func (inf *inferer) inferCall(e *exprinfo.Expr) *Type {
	calleeT := inf.typeOf(e.Callee)
	argTypes := make([]*Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = inf.typeOf(a)
	}

	sigs := inf.candidateSignatures(calleeT, e.Callee)
	if len(sigs) == 0 {
		return AnyType()
	}
	var survivors []*Type
	anyMatched := false
	for _, sig := range sigs {
		if inf.tryUnifyCall(sig, argTypes) {
			anyMatched = true
			survivors = append(survivors, PropagateReturn(sig.Return))
		}
	}
	if !anyMatched {
		inf.info.Diagnostics = append(inf.info.Diagnostics, TypeError{
			Span: e.Span, Kind: ArityMismatch,
		})
		return AnyType()
	}
	return UnionType(survivors...)
}

func (inf *inferer) candidateSignatures(calleeT *Type, calleeID exprinfo.ExprID) []*Signature {
	if calleeT.Tag == TFunc {
		return []*Signature{calleeT.Sig}
	}
	if inf.sigs == nil {
		return nil
	}
	if ref, ok := inf.exprs.Exprs[calleeID]; ok && ref.Kind == exprinfo.ExprRef {
		return inf.sigs.SignaturesOf(ref.Ref)
	}
	return nil
}

func (inf *inferer) tryUnifyCall(sig *Signature, args []*Type) bool {
	required := 0
	for _, p := range sig.Positional {
		if p.Required {
			required++
		}
	}
	if len(args) < required {
		return false
	}
	if len(args) > len(sig.Positional) && sig.Spread == nil {
		return false
	}
	for i, p := range sig.Positional {
		if i >= len(args) {
			break
		}
		effective := PropagateParam(p.Type, args[i])
		if effective.Tag == TNever && p.Type != nil && p.Type.Tag != TNever {
			return false
		}
		if !Admits(p.Type, args[i]) && p.Type != nil && p.Type.Tag != TAny {
			return false
		}
	}
	return true
}

func (inf *inferer) inferLambda(e *exprinfo.Expr) *Type {
	params := make([]Param, len(e.Params))
	for i, name := range e.Params {
		v := inf.subst.Fresh()
		params[i] = Param{Name: name, Type: VarType(v), Required: true}
	}
	var ret *Type = AnyType()
	if body, ok := inf.exprs.Exprs[e.Body]; ok {
		ret = inf.infer(body)
	}
	return FuncType(&Signature{Positional: params, Return: ret})
}

func (inf *inferer) inferBlock(e *exprinfo.Expr) *Type {
	var last *Type = NeverType()
	for _, s := range e.Stmts {
		last = inf.typeOf(s)
	}
	if len(e.Stmts) == 0 {
		return NeverType()
	}
	return last
}

func (inf *inferer) inferShowSet(e *exprinfo.Expr) *Type {
	if e.Target != 0 {
		inf.typeOf(e.Target)
	}
	if e.Selector != 0 {
		inf.typeOf(e.Selector)
	}
	return NeverType()
}
