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

// Merge computes the environment valid after either of two control-flow
// branches. Both branch environments must derive from base. For every point
// of base, a permission survives the join exactly when an equivalent
// permission is held on both sides; anything present on one side only is
// dropped — soundly, since code after the join cannot assume it.
//
// The left environment is the carrier of the result, so points allocated
// inside the left branch stay resolvable from permissions that survive.
func Merge(base, left, right *Env) *Env {
	result := left
	for id := 0; id < base.NumPoints(); id++ {
		p := Point(id)
		if left.Resolve(p) != p {
			continue
		}
		if left.Kind(p) != types.KTerm {
			continue
		}
		kept := types.NewPermListBuilder()
		left.GetPermissions(p).Range(func(_ int, t types.Type) bool {
			rp := right.Resolve(p)
			onRight := false
			right.GetPermissions(rp).Range(func(_ int, u types.Type) bool {
				if permEquiv(left, right, base.NumPoints(), t, u, make(map[pointPair]bool)) {
					onRight = true
					return false
				}
				return true
			})
			if onRight {
				kept.Append(t)
			}
			return true
		})
		keptList := kept.Build()
		result = result.ReplaceTerm(p, func(types.PermList) types.PermList {
			return keptList
		})
	}
	return result
}

type pointPair struct {
	l, r Point
}

// permEquiv compares a permission from the left branch against one from the
// right branch. Points below the base bound are compared by representative;
// branch-local points are compared by recursively folding each side in its
// own environment, with a visited set to keep cyclic structures from looping.
func permEquiv(le, re *Env, baseNext int, t1, t2 types.Type, seen map[pointPair]bool) bool {
	t1 = le.resolveStructure(t1)
	t2 = re.resolveStructure(t2)
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
		if !ok {
			return false
		}
		p1, p2 := le.Resolve(t1.Point), re.Resolve(t2.Point)
		return p1 == p2 && int(p1) < baseNext
	case *types.Singleton:
		t2, ok := t2.(*types.Singleton)
		if !ok {
			return false
		}
		return pointEquiv(le, re, baseNext, t1.Point, t2.Point, seen)
	case *types.Q:
		t2, ok := t2.(*types.Q)
		return ok && t1.Quant == t2.Quant && t1.Binding.Kind == t2.Binding.Kind &&
			permEquiv(le, re, baseNext, t1.Body, t2.Body, seen)
	case *types.Arrow:
		t2, ok := t2.(*types.Arrow)
		return ok && permEquivList(le, re, baseNext, t1.Args, t2.Args, seen) &&
			permEquiv(le, re, baseNext, t1.Return, t2.Return, seen)
	case *types.Tuple:
		t2, ok := t2.(*types.Tuple)
		return ok && permEquivList(le, re, baseNext, t1.Components, t2.Components, seen)
	case *types.App:
		t2, ok := t2.(*types.App)
		return ok && t1.Data == t2.Data && permEquivList(le, re, baseNext, t1.Args, t2.Args, seen)
	case *types.Concrete:
		t2, ok := t2.(*types.Concrete)
		if !ok || t1.Data != t2.Data || t1.Datacon != t2.Datacon || len(t1.Fields) != len(t2.Fields) {
			return false
		}
		for i := range t1.Fields {
			if t1.Fields[i].Name != t2.Fields[i].Name ||
				!permEquiv(le, re, baseNext, t1.Fields[i].Type, t2.Fields[i].Type, seen) {
				return false
			}
		}
		return true
	case *types.Anchored:
		t2, ok := t2.(*types.Anchored)
		return ok && pointEquiv(le, re, baseNext, t1.Point, t2.Point, seen) &&
			permEquiv(le, re, baseNext, t1.What, t2.What, seen)
	case *types.Star:
		t2, ok := t2.(*types.Star)
		return ok && permEquiv(le, re, baseNext, t1.Left, t2.Left, seen) &&
			permEquiv(le, re, baseNext, t1.Right, t2.Right, seen)
	}
	return false
}

func permEquivList(le, re *Env, baseNext int, ts1, ts2 []types.Type, seen map[pointPair]bool) bool {
	if len(ts1) != len(ts2) {
		return false
	}
	for i := range ts1 {
		if !permEquiv(le, re, baseNext, ts1[i], ts2[i], seen) {
			return false
		}
	}
	return true
}

// pointEquiv compares a left-branch point against a right-branch point.
func pointEquiv(le, re *Env, baseNext int, p1, p2 Point, seen map[pointPair]bool) bool {
	p1, p2 = le.Resolve(p1), re.Resolve(p2)
	if p1 == p2 && int(p1) < baseNext {
		return true
	}
	pair := pointPair{p1, p2}
	if seen[pair] {
		// back-edge of a cyclic structure: assume equal, the cycle entry
		// decides
		return true
	}
	seen[pair] = true
	defer delete(seen, pair)

	f1, ok1 := le.Fold(p1)
	f2, ok2 := re.Fold(p2)
	if !ok1 || !ok2 {
		return false
	}
	return permEquiv(le, re, baseNext, f1, f2, seen)
}
