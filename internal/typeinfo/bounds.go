// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typeinfo

// This file resolves the open question in spec.md §9 on Prec/Succ
// propagation: "treat as covariant in return, contravariant in param
// absent evidence otherwise." Concretely:
//
//   - A Prec<T> (upper/subtype bound) appearing in a function's
//     return position propagates covariantly: the caller sees
//     whatever Prec<T> the callee declares, unwidened.
//   - A Prec<T> or Succ<T> appearing in parameter position is
//     contravariant: unifying an argument against it narrows the
//     *parameter's* bound to the argument's type rather than the
//     other way around, so a tighter-bounded caller can still satisfy
//     a looser-bounded parameter.

// PropagateReturn adjusts a return type's bound according to the
// covariant-in-return rule: Prec<T> and Succ<T> pass through
// unchanged, since the callee's own bound is already the tightest
// correct description of what it returns.
func PropagateReturn(ret *Type) *Type {
	return ret
}

// PropagateParam adjusts a parameter's bound type against an
// argument's inferred type under the contravariant-in-param rule:
// when the parameter declares Prec<T>, the effective constraint
// becomes the argument type only if it is Admits(T); the parameter's
// own bound is never widened by the call site.
func PropagateParam(paramBound, argType *Type) *Type {
	if paramBound == nil {
		return argType
	}
	switch paramBound.Tag {
	case TPrec:
		if Admits(paramBound.Elem, argType) {
			return argType
		}
		return NeverType()
	case TSucc:
		if Admits(argType, paramBound.Elem) {
			return argType
		}
		return NeverType()
	default:
		return argType
	}
}

// Admits reports whether a value of type sub may be used where a
// value of type sup is expected (the subtyping relation the bounded
// variables are checked against). Any absorbs everything; Never is a
// subtype of everything; otherwise admission requires structural
// equality, except unions (a union admits sup if every arm does, and
// is admitted by sup if some arm is).
func Admits(sup, sub *Type) bool {
	if sup == nil || sub == nil {
		return true
	}
	if sup.Tag == TAny || sub.Tag == TNever {
		return true
	}
	if sub.Tag == TUnion {
		for _, arm := range sub.Items {
			if !Admits(sup, arm) {
				return false
			}
		}
		return true
	}
	if sup.Tag == TUnion {
		for _, arm := range sup.Items {
			if Admits(arm, sub) {
				return true
			}
		}
		return false
	}
	if sup.Tag == TPrec {
		return Admits(sup.Elem, sub)
	}
	if sup.Tag == TSucc {
		return Admits(sub, sup.Elem)
	}
	return sup.String() == sub.String()
}
