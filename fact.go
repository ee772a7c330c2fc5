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

// FactOf computes the fact of a type by structural recursion, consulting the
// cached facts of declared data types and the assumed facts of type variables.
func (env *Env) FactOf(t types.Type) types.Fact {
	switch t := t.(type) {
	case types.Unknown, types.Dynamic, types.Empty:
		return types.Duplicable

	case *types.Singleton:
		// equations are freely copyable
		return types.Duplicable

	case *types.Arrow:
		return types.Duplicable

	case *types.Bound:
		return types.Affine

	case *types.Open:
		p := env.Resolve(t.Point)
		if s, ok := env.Structure(p); ok {
			return env.FactOf(s)
		}
		return env.PointFact(p)

	case *types.Q:
		return env.FactOf(t.Body)

	case *types.Tuple:
		return env.composeFacts(t.Components)

	case *types.Concrete:
		if t.Data != nil && t.Data.Mutable {
			return types.Exclusive
		}
		fs := make([]types.Fact, len(t.Fields))
		for i, f := range t.Fields {
			fs[i] = env.FactOf(f.Type)
		}
		return types.ComposeFacts(fs...)

	case *types.App:
		f, known := t.Data.Fact()
		if !known {
			panic("permbox: internal error: data type " + t.Data.Name + " was not analyzed")
		}
		switch f {
		case types.Exclusive:
			return types.Exclusive
		case types.Affine:
			return types.Affine
		}
		// duplicable declarations are duplicable exactly when their
		// arguments are
		return env.composeFacts(t.Args)

	case *types.Anchored:
		return env.FactOf(t.What)

	case *types.Star:
		return types.ComposeFacts(env.FactOf(t.Left), env.FactOf(t.Right))

	case *types.Bar:
		return types.ComposeFacts(env.FactOf(t.Type), env.FactOf(t.Perm))
	}
	return types.Affine
}

func (env *Env) composeFacts(ts []types.Type) types.Fact {
	fs := make([]types.Fact, len(ts))
	for i, t := range ts {
		fs[i] = env.FactOf(t)
	}
	return types.ComposeFacts(fs...)
}

// IsDuplicable reports whether a permission of this type may be silently
// copied.
func (env *Env) IsDuplicable(t types.Type) bool {
	return env.FactOf(t) == types.Duplicable
}

// IsExclusive reports whether this type claims unique ownership of mutable
// state.
func (env *Env) IsExclusive(t types.Type) bool {
	return env.FactOf(t) == types.Exclusive
}

// AnalyzeDataTypes computes the facts of a group of mutually recursive data
// type declarations by least fixed point: every non-mutable declaration starts
// out assumed duplicable, and assumptions are raised to affine until a pass
// changes nothing. Mutable declarations are exclusive outright. Groups must be
// analyzed in dependency order; re-analyzing an already-analyzed group is a
// no-op.
func AnalyzeDataTypes(group []*types.DataType) {
	assume := make(map[*types.DataType]types.Fact, len(group))
	done := true
	for _, d := range group {
		if _, known := d.Fact(); !known {
			done = false
		}
		switch {
		case d.Mutable:
			assume[d] = types.Exclusive
		default:
			assume[d] = types.Duplicable
		}
	}
	if done {
		return
	}
	for {
		changed := false
		for _, d := range group {
			if d.Mutable || d.IsAbstract() {
				continue
			}
			f := declFact(d, assume)
			if f != assume[d] {
				assume[d] = f
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for _, d := range group {
		if d.IsAbstract() {
			continue
		}
		d.SetFact(assume[d])
	}
}

// declFact computes the fact of a declaration under the current assumptions.
// Parameters are treated as duplicable: the declaration's fact describes its
// own structure, and uses compose argument facts on top of it.
func declFact(d *types.DataType, assume map[*types.DataType]types.Fact) types.Fact {
	var fs []types.Fact
	for _, b := range d.Branches {
		for _, f := range b.Fields {
			fs = append(fs, fieldFact(f.Type, assume))
		}
	}
	return types.ComposeFacts(fs...)
}

func fieldFact(t types.Type, assume map[*types.DataType]types.Fact) types.Fact {
	switch t := t.(type) {
	case types.Unknown, types.Dynamic, types.Empty:
		return types.Duplicable
	case *types.Singleton:
		return types.Duplicable
	case *types.Arrow:
		return types.Duplicable
	case *types.Bound:
		return types.Duplicable
	case *types.Q:
		return fieldFact(t.Body, assume)
	case *types.Tuple:
		var fs []types.Fact
		for _, c := range t.Components {
			fs = append(fs, fieldFact(c, assume))
		}
		return types.ComposeFacts(fs...)
	case *types.App:
		var head types.Fact
		if f, ok := assume[t.Data]; ok {
			head = f
		} else if f, known := t.Data.Fact(); known {
			head = f
		} else {
			// out-of-group forward reference: groups were not analyzed
			// in dependency order
			panic("permbox: internal error: data type " + t.Data.Name + " was not analyzed")
		}
		if head != types.Duplicable {
			return types.Affine
		}
		var fs []types.Fact
		for _, a := range t.Args {
			fs = append(fs, fieldFact(a, assume))
		}
		return types.ComposeFacts(fs...)
	case *types.Concrete:
		if t.Data != nil && t.Data.Mutable {
			return types.Affine
		}
		var fs []types.Fact
		for _, f := range t.Fields {
			fs = append(fs, fieldFact(f.Type, assume))
		}
		return types.ComposeFacts(fs...)
	default:
		return types.Affine
	}
}
