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

package types

// OpenWith substitutes a type for the outermost bound variable of a
// quantifier body.
func OpenWith(body Type, u Type) Type {
	return Subst(body, []Type{u}, 0)
}

// Subst replaces Bound{cutoff+i} with args[i] throughout t, shifting the
// arguments under any binders crossed on the way down.
func Subst(t Type, args []Type, cutoff int) Type {
	switch t := t.(type) {
	case *Bound:
		if t.Index >= cutoff && t.Index-cutoff < len(args) {
			return Shift(args[t.Index-cutoff], cutoff, 0)
		}
		return t
	case *Q:
		return &Q{Quant: t.Quant, Binding: t.Binding, Body: Subst(t.Body, args, cutoff+1)}
	case *Arrow:
		return &Arrow{Args: substList(t.Args, args, cutoff), Return: Subst(t.Return, args, cutoff)}
	case *Tuple:
		return &Tuple{Components: substList(t.Components, args, cutoff)}
	case *App:
		return &App{Data: t.Data, Args: substList(t.Args, args, cutoff)}
	case *Concrete:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Type: Subst(f.Type, args, cutoff)}
		}
		return &Concrete{Data: t.Data, Datacon: t.Datacon, Fields: fields}
	case *Anchored:
		return &Anchored{Point: t.Point, What: Subst(t.What, args, cutoff)}
	case *Star:
		return &Star{Left: Subst(t.Left, args, cutoff), Right: Subst(t.Right, args, cutoff)}
	case *Bar:
		return &Bar{Type: Subst(t.Type, args, cutoff), Perm: Subst(t.Perm, args, cutoff)}
	default:
		// Unknown, Dynamic, Open, Singleton, Empty
		return t
	}
}

// Shift adds d to every bound variable at or above the cutoff.
func Shift(t Type, d, cutoff int) Type {
	if d == 0 {
		return t
	}
	switch t := t.(type) {
	case *Bound:
		if t.Index >= cutoff {
			return &Bound{Index: t.Index + d}
		}
		return t
	case *Q:
		return &Q{Quant: t.Quant, Binding: t.Binding, Body: Shift(t.Body, d, cutoff+1)}
	case *Arrow:
		return &Arrow{Args: shiftList(t.Args, d, cutoff), Return: Shift(t.Return, d, cutoff)}
	case *Tuple:
		return &Tuple{Components: shiftList(t.Components, d, cutoff)}
	case *App:
		return &App{Data: t.Data, Args: shiftList(t.Args, d, cutoff)}
	case *Concrete:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Type: Shift(f.Type, d, cutoff)}
		}
		return &Concrete{Data: t.Data, Datacon: t.Datacon, Fields: fields}
	case *Anchored:
		return &Anchored{Point: t.Point, What: Shift(t.What, d, cutoff)}
	case *Star:
		return &Star{Left: Shift(t.Left, d, cutoff), Right: Shift(t.Right, d, cutoff)}
	case *Bar:
		return &Bar{Type: Shift(t.Type, d, cutoff), Perm: Shift(t.Perm, d, cutoff)}
	default:
		return t
	}
}

func substList(ts []Type, args []Type, cutoff int) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Subst(t, args, cutoff)
	}
	return out
}

func shiftList(ts []Type, d, cutoff int) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Shift(t, d, cutoff)
	}
	return out
}
