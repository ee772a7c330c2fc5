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

// collectType strips permissions nested inside a value type, returning the
// bare type plus the extracted permissions. Purely structural; terminates
// because every step strictly decreases the permission-nesting depth.
func collectType(t types.Type) (types.Type, []types.Type) {
	switch t := t.(type) {
	case *types.Bar:
		inner, ps := collectType(t.Type)
		for _, p := range types.FlattenStar(t.Perm) {
			cp, more := collectType(p)
			ps = append(ps, cp)
			ps = append(ps, more...)
		}
		return inner, ps

	case *types.Tuple:
		var ps []types.Type
		comps := make([]types.Type, len(t.Components))
		for i, c := range t.Components {
			cc, more := collectType(c)
			comps[i] = cc
			ps = append(ps, more...)
		}
		return &types.Tuple{Components: comps}, ps

	case *types.Concrete:
		var ps []types.Type
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			ft, more := collectType(f.Type)
			fields[i] = types.Field{Name: f.Name, Type: ft}
			ps = append(ps, more...)
		}
		return &types.Concrete{Data: t.Data, Datacon: t.Datacon, Fields: fields}, ps

	case *types.Anchored:
		w, ps := collectType(t.What)
		return &types.Anchored{Point: t.Point, What: w}, ps

	case *types.Star:
		var ps []types.Type
		conjuncts := types.FlattenStar(t)
		out := make([]types.Type, len(conjuncts))
		for i, c := range conjuncts {
			cc, more := collectType(c)
			out[i] = cc
			ps = append(ps, more...)
		}
		return types.MkStar(out), ps

	default:
		return t, nil
	}
}

// unfold rewrites the fields of a structural type into singletons of fresh
// term points, each fresh point receiving the field's original type. This is
// what allows strong (type-changing) updates to individual fields later.
//
// A type application of a data type with exactly one branch is substituted and
// unfolded; multi-branch applications stay folded, because without knowing the
// active tag no single branch's layout can be soundly committed to.
//
// expanding tracks the data types already expanded on this chain; a recursive
// occurrence of a single-branch type stays folded, which bounds the expansion.
func (env *Env) unfold(t types.Type, hint string, expanding map[*types.DataType]bool) (*Env, types.Type) {
	switch t := t.(type) {
	case *types.Tuple:
		comps := make([]types.Type, len(t.Components))
		for i, c := range t.Components {
			env, comps[i] = env.unfoldComponent(c, hint, expanding)
		}
		return env, &types.Tuple{Components: comps}

	case *types.Concrete:
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			var ft types.Type
			env, ft = env.unfoldComponent(f.Type, hint+"."+f.Name, expanding)
			fields[i] = types.Field{Name: f.Name, Type: ft}
		}
		return env, &types.Concrete{Data: t.Data, Datacon: t.Datacon, Fields: fields}

	case *types.App:
		if !t.Data.IsAbstract() && len(t.Data.Branches) == 1 && !expanding[t.Data] {
			if expanding == nil {
				expanding = make(map[*types.DataType]bool, 1)
			}
			expanding[t.Data] = true
			c := types.InstantiateBranch(t.Data, t.Data.Branches[0], t.Args)
			env, u := env.unfold(c, hint, expanding)
			delete(expanding, t.Data)
			return env, u
		}
		return env, t

	default:
		return env, t
	}
}

func (env *Env) unfoldComponent(c types.Type, hint string, expanding map[*types.DataType]bool) (*Env, types.Type) {
	if s, ok := c.(*types.Singleton); ok {
		return env, s
	}
	env, p := env.BindTerm(hint)
	env = env.add(p, c, expanding)
	return env, &types.Singleton{Point: p}
}
