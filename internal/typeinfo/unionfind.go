// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typeinfo

// Substitution is a union-find over TypeVar, mapping each variable to
// either a representative variable or a concrete Type (spec.md §3
// "substitution: UnionFind<TypeVar, Type>"). Iteration order for
// anything derived from a Substitution is by root id, never by Go map
// order, to satisfy spec.md §4.4's determinism requirement.
type Substitution struct {
	parent map[TypeVar]TypeVar
	bound  map[TypeVar]*Type // set only at a root
	next   TypeVar
}

func NewSubstitution() *Substitution {
	return &Substitution{parent: map[TypeVar]TypeVar{}, bound: map[TypeVar]*Type{}}
}

// Fresh allocates a new, unbound type variable.
func (s *Substitution) Fresh() TypeVar {
	v := s.next
	s.next++
	s.parent[v] = v
	return v
}

// Find returns the representative root of v, path-compressing as it
// goes.
func (s *Substitution) Find(v TypeVar) TypeVar {
	p, ok := s.parent[v]
	if !ok {
		s.parent[v] = v
		return v
	}
	if p == v {
		return v
	}
	root := s.Find(p)
	s.parent[v] = root
	return root
}

// Resolve follows v to its bound concrete Type, if any, returning
// VarType(root) when the variable is still free.
func (s *Substitution) Resolve(v TypeVar) *Type {
	root := s.Find(v)
	if t, ok := s.bound[root]; ok {
		return s.deepResolve(t)
	}
	return VarType(root)
}

// deepResolve recursively resolves nested TVar occurrences so callers
// never see a partially-substituted Type.
func (s *Substitution) deepResolve(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Tag {
	case TVar:
		root := s.Find(t.Var)
		if bound, ok := s.bound[root]; ok && bound != t {
			return s.deepResolve(bound)
		}
		return VarType(root)
	case TArr, TDict, TPrec, TSucc:
		return &Type{Tag: t.Tag, Elem: s.deepResolve(t.Elem)}
	case TTuple, TUnion:
		items := make([]*Type, len(t.Items))
		for i, it := range t.Items {
			items[i] = s.deepResolve(it)
		}
		return &Type{Tag: t.Tag, Items: items}
	case TRecord:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Type: s.deepResolve(f.Type)}
		}
		return &Type{Tag: TRecord, Fields: fields}
	default:
		return t
	}
}

// Bind unifies v with t. If t is itself an unbound TVar, the two
// variables are merged (by lower-id-wins, for determinism); otherwise
// v's root is bound directly to t.
func (s *Substitution) Bind(v TypeVar, t *Type) {
	root := s.Find(v)
	if t.Tag == TVar {
		other := s.Find(t.Var)
		if other == root {
			return
		}
		lo, hi := root, other
		if hi < lo {
			lo, hi = hi, lo
		}
		s.parent[hi] = lo
		if b, ok := s.bound[hi]; ok {
			s.bound[lo] = b
			delete(s.bound, hi)
		}
		return
	}
	s.bound[root] = t
}
