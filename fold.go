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

// Fold reconstructs a single best-effort descriptive type for a point, for
// diagnostics and merge-point reporting. It succeeds only when exactly one
// non-trivial permission is held (the point's own self-singleton does not
// count); zero permissions means the value is fully unknown, more than one is
// ambiguous. Never used for soundness decisions.
func (env *Env) Fold(p Point) (types.Type, bool) {
	return env.foldPoint(p, make(map[Point]bool))
}

// FoldType rewrites the inner singletons of a type into the folded types of
// their points.
func (env *Env) FoldType(t types.Type) (types.Type, bool) {
	return env.foldType(t, make(map[Point]bool))
}

func (env *Env) foldPoint(p Point, seen map[Point]bool) (types.Type, bool) {
	p = env.Resolve(p)
	if seen[p] {
		return nil, false
	}
	seen[p] = true
	defer delete(seen, p)

	var nontrivial []types.Type
	env.GetPermissions(p).Range(func(_ int, t types.Type) bool {
		if s, ok := t.(*types.Singleton); ok && env.Same(s.Point, p) {
			return true
		}
		nontrivial = append(nontrivial, t)
		return true
	})
	if len(nontrivial) != 1 {
		return nil, false
	}
	return env.foldType(nontrivial[0], seen)
}

func (env *Env) foldType(t types.Type, seen map[Point]bool) (types.Type, bool) {
	switch t := t.(type) {
	case *types.Singleton:
		return env.foldPoint(t.Point, seen)

	case *types.Tuple:
		comps := make([]types.Type, len(t.Components))
		for i, c := range t.Components {
			fc, ok := env.foldType(c, seen)
			if !ok {
				return nil, false
			}
			comps[i] = fc
		}
		return &types.Tuple{Components: comps}, true

	case *types.Concrete:
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			ft, ok := env.foldType(f.Type, seen)
			if !ok {
				return nil, false
			}
			fields[i] = types.Field{Name: f.Name, Type: ft}
		}
		return &types.Concrete{Data: t.Data, Datacon: t.Datacon, Fields: fields}, true

	case *types.App:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			fa, ok := env.foldType(a, seen)
			if !ok {
				return nil, false
			}
			args[i] = fa
		}
		return &types.App{Data: t.Data, Args: args}, true

	case *types.Open:
		if s, ok := env.Structure(t.Point); ok {
			return env.foldType(s, seen)
		}
		return t, true

	default:
		return t, true
	}
}
