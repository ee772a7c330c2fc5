// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package permbox

import (
	"github.com/hml-lang/permbox/types"
)

// mergeOutcome is the result of attempting to fold two permissions known to
// describe the same point into one.
//
// A conflict (two claims that cannot coexist, e.g. two exclusive permissions)
// is deliberately non-fatal at this layer: callers degrade it to keeping both
// permissions side by side. The explicit variant keeps that swallow-policy
// visible at every call site.
type mergeOutcome int

const (
	// mergeBoth: neither permission subsumes the other; keep both.
	mergeBoth mergeOutcome = iota
	// mergeOne: the two permissions folded into a single one.
	mergeOne
	// mergeConflict: the two permissions cannot soundly coexist.
	mergeConflict
)

// typesEqual is structural equality modulo point resolution and recorded
// flexible structure. Used as the fast path of refineType and for invariant
// type arguments.
func (env *Env) typesEqual(t1, t2 types.Type) bool {
	t1 = env.resolveStructure(t1)
	t2 = env.resolveStructure(t2)
	switch t1 := t1.(type) {
	case types.Unknown:
		_, ok := t2.(types.Unknown)
		return ok
	case types.Dynamic:
		_, ok := t2.(types.Dynamic)
		return ok
	case types.Empty:
		_, ok := t2.(types.Empty)
		return ok
	case *types.Bound:
		t2, ok := t2.(*types.Bound)
		return ok && t1.Index == t2.Index
	case *types.Open:
		t2, ok := t2.(*types.Open)
		return ok && env.Same(t1.Point, t2.Point)
	case *types.Singleton:
		t2, ok := t2.(*types.Singleton)
		return ok && env.Same(t1.Point, t2.Point)
	case *types.Q:
		t2, ok := t2.(*types.Q)
		return ok && t1.Quant == t2.Quant && t1.Binding.Kind == t2.Binding.Kind &&
			env.typesEqual(t1.Body, t2.Body)
	case *types.Arrow:
		t2, ok := t2.(*types.Arrow)
		return ok && env.typeListsEqual(t1.Args, t2.Args) && env.typesEqual(t1.Return, t2.Return)
	case *types.Tuple:
		t2, ok := t2.(*types.Tuple)
		return ok && env.typeListsEqual(t1.Components, t2.Components)
	case *types.App:
		t2, ok := t2.(*types.App)
		return ok && t1.Data == t2.Data && env.typeListsEqual(t1.Args, t2.Args)
	case *types.Concrete:
		t2, ok := t2.(*types.Concrete)
		if !ok || t1.Data != t2.Data || t1.Datacon != t2.Datacon || len(t1.Fields) != len(t2.Fields) {
			return false
		}
		for i := range t1.Fields {
			if t1.Fields[i].Name != t2.Fields[i].Name ||
				!env.typesEqual(t1.Fields[i].Type, t2.Fields[i].Type) {
				return false
			}
		}
		return true
	case *types.Anchored:
		t2, ok := t2.(*types.Anchored)
		return ok && env.Same(t1.Point, t2.Point) && env.typesEqual(t1.What, t2.What)
	case *types.Star:
		t2, ok := t2.(*types.Star)
		return ok && env.typesEqual(t1.Left, t2.Left) && env.typesEqual(t1.Right, t2.Right)
	case *types.Bar:
		t2, ok := t2.(*types.Bar)
		return ok && env.typesEqual(t1.Type, t2.Type) && env.typesEqual(t1.Perm, t2.Perm)
	}
	return false
}

func (env *Env) typeListsEqual(ts1, ts2 []types.Type) bool {
	if len(ts1) != len(ts2) {
		return false
	}
	for i := range ts1 {
		if !env.typesEqual(ts1[i], ts2[i]) {
			return false
		}
	}
	return true
}

// resolveStructure substitutes the recorded structure of an instantiated
// flexible variable.
func (env *Env) resolveStructure(t types.Type) types.Type {
	for {
		o, ok := t.(*types.Open)
		if !ok {
			return t
		}
		s, ok := env.Structure(o.Point)
		if !ok {
			return t
		}
		t = s
	}
}

// viewable reports whether the structure of a type is observable by a third
// party holding a reference of that type: concrete shapes, arrows, tuples,
// and applications of data types with known branches. A viewable permission
// cannot coexist with an exclusive claim on the same point.
func (env *Env) viewable(t types.Type) bool {
	switch t := env.resolveStructure(t).(type) {
	case *types.Concrete, *types.Arrow, *types.Tuple:
		return true
	case *types.App:
		return !t.Data.IsAbstract()
	}
	return false
}

// refineType decides how two permissions already known to describe the same
// point combine: into one tighter permission, kept side by side, or in
// conflict.
//
// The environment is threaded only on the mergeOne path; on mergeBoth and
// mergeConflict the input environment is returned unchanged, so callers can
// continue from it directly.
func (env *Env) refineType(t1, t2 types.Type) (*Env, types.Type, mergeOutcome) {
	if env.typesEqual(t1, t2) {
		return env, t1, mergeOne
	}

	f1, f2 := env.FactOf(t1), env.FactOf(t2)
	switch {
	case f1 == types.Exclusive && f2 == types.Exclusive:
		// simultaneous exclusive claims on one point
		return env, nil, mergeConflict
	case f1 == types.Exclusive && env.viewable(t2),
		f2 == types.Exclusive && env.viewable(t1):
		return env, nil, mergeConflict
	}

	r1 := env.resolveStructure(t1)
	r2 := env.resolveStructure(t2)
	if r1 != t1 || r2 != t2 {
		// a flexible variable with recorded structure: substitute and retry
		return env.refineType(r1, r2)
	}

	if _, ok := t1.(types.Unknown); ok {
		return env, t2, mergeOne
	}
	if _, ok := t2.(types.Unknown); ok {
		return env, t1, mergeOne
	}
	if _, ok := t1.(*types.Q); ok {
		return env, nil, mergeBoth
	}
	if _, ok := t2.(*types.Q); ok {
		return env, nil, mergeBoth
	}

	switch t1 := t1.(type) {
	case *types.App:
		if t2, ok := t2.(*types.App); ok && t1.Data == t2.Data {
			if env.typeListsEqual(t1.Args, t2.Args) {
				return env, t1, mergeOne
			}
		}
		if t2, ok := t2.(*types.Concrete); ok {
			return env.refineAppConcrete(t1, t2)
		}

	case *types.Concrete:
		switch t2 := t2.(type) {
		case *types.Concrete:
			if t1.Data != t2.Data || t1.Datacon != t2.Datacon {
				// two different tags for the same value
				return env, nil, mergeConflict
			}
			if len(t1.Fields) != len(t2.Fields) {
				return env, nil, mergeConflict
			}
			env2 := env
			for i := range t1.Fields {
				p1 := singletonPoint(t1.Fields[i].Type)
				p2 := singletonPoint(t2.Fields[i].Type)
				env2 = env2.Unify(p1, p2)
			}
			return env2, t1, mergeOne
		case *types.App:
			env2, merged, outcome := env.refineAppConcrete(t2, t1)
			return env2, merged, outcome
		}

	case *types.Tuple:
		if t2, ok := t2.(*types.Tuple); ok {
			if len(t1.Components) != len(t2.Components) {
				return env, nil, mergeConflict
			}
			env2 := env
			for i := range t1.Components {
				p1 := singletonPoint(t1.Components[i])
				p2 := singletonPoint(t2.Components[i])
				env2 = env2.Unify(p1, p2)
			}
			return env2, t1, mergeOne
		}
	}

	return env, nil, mergeBoth
}

// refineAppConcrete merges a still-folded type application against an
// unfolded concrete type of the same nominal type, by unfolding the matching
// branch of the application and retrying. When the branch cannot be
// committed to, the permissions are kept separate: the application could
// denote an abstract supertype.
func (env *Env) refineAppConcrete(app *types.App, c *types.Concrete) (*Env, types.Type, mergeOutcome) {
	if app.Data != c.Data {
		return env, nil, mergeBoth
	}
	_, branch := app.Data.FindBranch(c.Datacon)
	if branch == nil {
		return env, nil, mergeBoth
	}
	inst := types.InstantiateBranch(app.Data, branch, app.Args)
	env2, unfolded := env.unfold(inst, c.Datacon, nil)
	env2, merged, outcome := env2.refineType(unfolded, c)
	if outcome != mergeOne {
		// drop the unfolding allocations along with the failed attempt
		return env, nil, outcome
	}
	return env2, merged, mergeOne
}

func singletonPoint(t types.Type) Point {
	s, ok := t.(*types.Singleton)
	if !ok {
		panic("permbox: internal error: field is not in expanded form: " + types.TypeString(t))
	}
	return s.Point
}

// refine inserts a permission into a point's list, attempting to fold it with
// each permission already held and replacing the first one it merges with.
// First fit, not best fit: the order of the existing list affects precision
// but never soundness. Conflicting pairs are kept side by side.
func (env *Env) refine(p Point, t types.Type) *Env {
	p = env.Resolve(p)
	perms := env.GetPermissions(p)
	for i := 0; i < perms.Len(); i++ {
		t0 := perms.Get(i)
		env2, merged, outcome := env.refineType(t0, t)
		switch outcome {
		case mergeBoth:
			continue
		case mergeConflict:
			// conflicting pairs stay in the list side by side
			continue
		}
		return env2.ReplaceTerm(p, func(cur types.PermList) types.PermList {
			// the list may have shifted under recursive unification;
			// locate the absorbed permission by identity
			if j := cur.IndexOf(t0); j >= 0 {
				return cur.Set(j, merged)
			}
			return cur.Append(merged)
		})
	}
	return env.ReplaceTerm(p, func(cur types.PermList) types.PermList {
		return cur.Append(t)
	})
}

// Unify records that two points denote the same value: every permission held
// by p2 is re-added onto p1 (inconsistencies being checked by refine along the
// way) and p2 is collapsed into p1. Collapsing first makes recursive
// unification through structure fields terminate.
func (env *Env) Unify(p1, p2 Point) *Env {
	p1, p2 = env.Resolve(p1), env.Resolve(p2)
	if p1 == p2 {
		return env
	}
	if env.Kind(p1) != env.Kind(p2) {
		panic("permbox: internal error: unifying points of different kinds")
	}
	perms := env.GetPermissions(p2)
	env = env.MergeLeft(p1, p2)
	perms.Range(func(_ int, t types.Type) bool {
		env = env.refine(p1, t)
		return true
	})
	return env
}
