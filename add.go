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

// Add registers that a point now also has a permission of the given type.
// Never fails: ill-kinded input is a bug in the caller, not a user error.
//
// The type is first unfolded (allocating fresh points for structural fields),
// then collected into a bare type plus extracted side permissions, each side
// permission re-added recursively, and finally the bare type is refined into
// the point's permission list.
func (env *Env) Add(p Point, t types.Type) *Env {
	return env.add(p, t, nil)
}

func (env *Env) add(p Point, t types.Type, expanding map[*types.DataType]bool) *Env {
	p = env.Resolve(p)
	if types.KindOf(t) == types.KPerm {
		panic("permbox: internal error: adding a permission-kinded type to a point: " + types.TypeString(t))
	}
	if s, ok := t.(*types.Singleton); ok {
		// p = q: the two points denote the same value
		return env.Unify(p, s.Point)
	}
	env, t = env.unfold(t, env.PointName(p), expanding)
	t, perms := collectType(t)
	env = env.refine(p, t)
	for _, perm := range perms {
		env = env.AddPerm(perm)
	}
	return env
}

// AddPerm registers a permission-kinded type: a conjunction of anchored
// permissions.
func (env *Env) AddPerm(t types.Type) *Env {
	switch t := t.(type) {
	case types.Empty:
		return env
	case *types.Star:
		return env.AddPerm(t.Left).AddPerm(t.Right)
	case *types.Anchored:
		return env.Add(t.Point, t.What)
	default:
		panic("permbox: internal error: not a permission: " + types.TypeString(t))
	}
}

// FullMerge unconditionally folds every permission of p2 into p1 through Add,
// then collapses p2 into p1. Used when the caller knows externally that the
// two points denote the same value and wants the full-precision merge rather
// than the cheaper Unify.
func (env *Env) FullMerge(p1, p2 Point) *Env {
	p1, p2 = env.Resolve(p1), env.Resolve(p2)
	if p1 == p2 {
		return env
	}
	perms := env.GetPermissions(p2)
	env = env.MergeLeft(p1, p2)
	perms.Range(func(_ int, t types.Type) bool {
		env = env.Add(p1, t)
		return true
	})
	return env
}
