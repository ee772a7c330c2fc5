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

// Sub tries to consume a permission of the given type from a point. A false
// result means the permission is not available; the returned environment is
// then the caller's original one, untouched, so checking can continue from it.
func (env *Env) Sub(p Point, t types.Type) (*Env, bool) {
	p = env.Resolve(p)

	switch t.(type) {
	case types.Unknown:
		// asserts nothing
		return env, true
	case types.Dynamic:
		// dynamic ownership requires unique access
		ok := false
		env.GetPermissions(p).Range(func(_ int, held types.Type) bool {
			if env.IsExclusive(held) {
				ok = true
				return false
			}
			return true
		})
		return env, ok
	}

	clean, perms := collectType(t)
	env2, ok := env.subClean(p, clean)
	if !ok {
		return env, false
	}
	env2, ok = env2.subPermList(perms)
	if !ok {
		return env, false
	}
	return env2, true
}

// subPermList discharges a list of permissions, deferring any permission
// whose anchor point is still an undetermined flexible variable: subtracting
// the others may instantiate it. A round that makes no progress while
// deferred entries remain fails.
func (env *Env) subPermList(perms []types.Type) (*Env, bool) {
	pending := perms
	for len(pending) > 0 {
		progressed := false
		var deferred []types.Type
		for _, perm := range pending {
			if a, ok := perm.(*types.Anchored); ok {
				q := env.Resolve(a.Point)
				if env.IsFlexible(q) && !env.HasStructure(q) {
					deferred = append(deferred, perm)
					continue
				}
			}
			env2, ok := env.subPermAtom(perm)
			if !ok {
				return env, false
			}
			env = env2
			progressed = true
		}
		if !progressed {
			return env, false
		}
		pending = deferred
	}
	return env, true
}

func (env *Env) subPermAtom(t types.Type) (*Env, bool) {
	switch t := t.(type) {
	case types.Empty:
		return env, true
	case *types.Anchored:
		return env.Sub(t.Point, t.What)
	default:
		panic("permbox: internal error: not a permission: " + types.TypeString(t))
	}
}

// SubPerm distributes subtraction over a permission-kinded type's conjunction
// structure. A false result hands back the caller's environment untouched,
// even when some conjuncts had already been discharged.
func (env *Env) SubPerm(t types.Type) (*Env, bool) {
	if types.KindOf(t) != types.KPerm {
		panic("permbox: internal error: not a permission: " + types.TypeString(t))
	}
	env2, ok := env.subPermList(types.FlattenStar(t))
	if !ok {
		return env, false
	}
	return env2, true
}

// subClean extracts a bare (collected) type from a point's permission list.
// Non-singleton permissions are tried before singleton ones, so that flexible
// unification prefers binding to a real structural type rather than an alias
// equation. The first permission the type can be extracted from is consumed,
// unless it is duplicable, in which case it stays in place.
func (env *Env) subClean(p Point, t types.Type) (*Env, bool) {
	p = env.Resolve(p)
	if _, ok := t.(types.Unknown); ok {
		return env, true
	}
	perms := env.GetPermissions(p)

	order := make([]int, 0, perms.Len())
	perms.Range(func(i int, held types.Type) bool {
		if _, isSingleton := held.(*types.Singleton); !isSingleton {
			order = append(order, i)
		}
		return true
	})
	perms.Range(func(i int, held types.Type) bool {
		if _, isSingleton := held.(*types.Singleton); isSingleton {
			order = append(order, i)
		}
		return true
	})

	for _, i := range order {
		held := perms.Get(i)
		if s, ok := held.(*types.Singleton); ok && env.Same(s.Point, p) {
			// the self-singleton provides only itself; recursing into the
			// point's own permissions through it would not terminate
			if env.typesEqual(held, t) {
				return env, true
			}
			if o, ok := t.(*types.Open); ok {
				q := env.Resolve(o.Point)
				if env.IsFlexible(q) && !env.HasStructure(q) {
					return env.InstantiateFlexible(q, &types.Singleton{Point: p}), true
				}
			}
			continue
		}
		env2, ok := env.subType(held, t)
		if !ok {
			continue
		}
		if env2.IsDuplicable(held) {
			return env2, true
		}
		// affine and exclusive permissions are moved, not copied
		env2 = env2.ReplaceTerm(p, func(cur types.PermList) types.PermList {
			if j := cur.IndexOf(held); j >= 0 {
				return cur.Remove(j)
			}
			return cur
		})
		return env2, true
	}
	return env, false
}

// subType decides whether a held type provides a requested type, possibly
// instantiating flexible variables along the way. On failure the input
// environment is returned unchanged.
func (env *Env) subType(t1, t2 types.Type) (*Env, bool) {
	if _, ok := t2.(types.Unknown); ok {
		return env, true
	}
	if env.typesEqual(t1, t2) {
		return env, true
	}

	// quantifiers: the goal side binds rigidly, the held side flexibly
	if q, ok := t2.(*types.Q); ok && q.Quant == types.Forall {
		env2, body := env.openBinding(q, false)
		return env2.subTypeOrBacktrack(env, t1, body)
	}
	if q, ok := t1.(*types.Q); ok && q.Quant == types.Forall {
		env2, body := env.openBinding(q, true)
		return env2.subTypeOrBacktrack(env, body, t2)
	}
	if q, ok := t1.(*types.Q); ok && q.Quant == types.Exists {
		env2, body := env.openBinding(q, false)
		return env2.subTypeOrBacktrack(env, body, t2)
	}
	if q, ok := t2.(*types.Q); ok && q.Quant == types.Exists {
		env2, body := env.openBinding(q, true)
		return env2.subTypeOrBacktrack(env, t1, body)
	}

	switch t1 := t1.(type) {
	case *types.Tuple:
		t2, ok := t2.(*types.Tuple)
		if !ok || len(t1.Components) != len(t2.Components) {
			break
		}
		env2 := env
		for i := range t1.Components {
			p := singletonPoint(t1.Components[i])
			var ok bool
			env2, ok = env2.subComponent(p, t2.Components[i])
			if !ok {
				return env, false
			}
		}
		return env2, true

	case *types.Concrete:
		switch t2 := t2.(type) {
		case *types.Concrete:
			if t1.Data != t2.Data || t1.Datacon != t2.Datacon || len(t1.Fields) != len(t2.Fields) {
				return env, false
			}
			env2 := env
			for i := range t1.Fields {
				p := singletonPoint(t1.Fields[i].Type)
				var ok bool
				env2, ok = env2.subComponent(p, t2.Fields[i].Type)
				if !ok {
					return env, false
				}
			}
			return env2, true

		case *types.App:
			// an unfolded constructor provides its folded nominal type
			if t1.Data != t2.Data {
				break
			}
			_, branch := t2.Data.FindBranch(t1.Datacon)
			if branch == nil {
				return env, false
			}
			inst := types.InstantiateBranch(t2.Data, branch, t2.Args)
			if len(inst.Fields) != len(t1.Fields) {
				return env, false
			}
			env2 := env
			for i := range t1.Fields {
				p := singletonPoint(t1.Fields[i].Type)
				var ok bool
				env2, ok = env2.subComponent(p, inst.Fields[i].Type)
				if !ok {
					return env, false
				}
			}
			return env2, true
		}

	case *types.App:
		if t2, ok := t2.(*types.App); ok && t1.Data == t2.Data {
			env2 := env
			for i, param := range t1.Data.Params {
				a1, a2 := t1.Args[i], t2.Args[i]
				var ok bool
				switch param.Variance {
				case types.Covariant:
					env2, ok = env2.subType(a1, a2)
				case types.Contravariant:
					env2, ok = env2.subType(a2, a1)
				case types.Bivariant:
					ok = true
				default: // invariant
					env2, ok = env2.equalModuloFlex(a1, a2)
				}
				if !ok {
					return env, false
				}
			}
			return env2, true
		}

	case *types.Arrow:
		t2, ok := t2.(*types.Arrow)
		if !ok || len(t1.Args) != len(t2.Args) {
			break
		}
		env2 := env
		for i := range t1.Args {
			var ok bool
			env2, ok = env2.subType(t2.Args[i], t1.Args[i])
			if !ok {
				return env, false
			}
		}
		env2, ok = env2.subType(t1.Return, t2.Return)
		if !ok {
			return env, false
		}
		return env2, true
	}

	return env.compareModuloFlex(t1, t2)
}

// subTypeOrBacktrack recurses and, on failure, returns the environment the
// caller held before opening a binding.
func (env *Env) subTypeOrBacktrack(orig *Env, t1, t2 types.Type) (*Env, bool) {
	env2, ok := env.subType(t1, t2)
	if !ok {
		return orig, false
	}
	return env2, true
}

// subComponent checks that a held component point provides a requested
// component type. The held side is always a singleton of a point (expanded
// form); the requested side may be a singleton, an alias requirement, or a
// structural type extracted from the point's own permissions.
func (env *Env) subComponent(p Point, want types.Type) (*Env, bool) {
	if s, ok := want.(*types.Singleton); ok {
		q := env.Resolve(s.Point)
		if env.Same(p, q) {
			return env, true
		}
		if env.IsFlexible(q) && !env.HasStructure(q) {
			return env.InstantiateFlexible(q, &types.Singleton{Point: env.Resolve(p)}), true
		}
		if s2, ok := env.Structure(q); ok {
			return env.subComponent(p, s2)
		}
		return env, false
	}
	return env.subClean(p, want)
}

// openBinding binds the quantified variable of t as a fresh point, rigid or
// flexible, and opens the body with it.
func (env *Env) openBinding(t *types.Q, flexible bool) (*Env, types.Type) {
	var p Point
	if flexible {
		env, p = env.BindFlexible(t.Binding)
	} else {
		env, p = env.BindRigid(t.Binding)
	}
	return env, types.OpenWith(t.Body, &types.Open{Point: p})
}

// equalModuloFlex is equality up to flexible-variable instantiation, used for
// invariant type arguments.
func (env *Env) equalModuloFlex(t1, t2 types.Type) (*Env, bool) {
	if env.typesEqual(t1, t2) {
		return env, true
	}
	return env.compareModuloFlex(t1, t2)
}

// compareModuloFlex is the fallback of subType: instantiate a flexible point
// against the other side, unify two variables when one is flexible, or recurse
// into a point's already-recorded structure.
func (env *Env) compareModuloFlex(t1, t2 types.Type) (*Env, bool) {
	o1, _ := t1.(*types.Open)
	o2, _ := t2.(*types.Open)

	if o1 != nil && o2 != nil {
		p1, p2 := env.Resolve(o1.Point), env.Resolve(o2.Point)
		if p1 == p2 {
			return env, true
		}
		f1 := env.IsFlexible(p1) && !env.HasStructure(p1)
		f2 := env.IsFlexible(p2) && !env.HasStructure(p2)
		switch {
		case f2:
			return env.MergeLeft(p1, p2), true
		case f1:
			return env.MergeLeft(p2, p1), true
		}
	}

	if o2 != nil {
		p2 := env.Resolve(o2.Point)
		if s, ok := env.Structure(p2); ok {
			return env.subType(t1, s)
		}
		if env.IsFlexible(p2) {
			if !types.FactLeq(env.FactOf(t1), env.PointFact(p2)) {
				return env, false
			}
			return env.InstantiateFlexible(p2, t1), true
		}
	}

	if o1 != nil {
		p1 := env.Resolve(o1.Point)
		if s, ok := env.Structure(p1); ok {
			return env.subType(s, t2)
		}
		if env.IsFlexible(p1) {
			if !types.FactLeq(env.FactOf(t2), env.PointFact(p1)) {
				return env, false
			}
			return env.InstantiateFlexible(p1, t2), true
		}
	}

	if s1, ok := t1.(*types.Singleton); ok {
		if s2, ok := t2.(*types.Singleton); ok {
			return env, env.Same(s1.Point, s2.Point)
		}
		// a singleton provides whatever its point provides
		return env.subClean(s1.Point, t2)
	}

	return env, false
}
