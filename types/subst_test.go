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

import (
	"testing"
)

func TestOpenWith(t *testing.T) {
	intT := NewAbstract("int", Duplicable)
	// forall a. (a, int)
	body := &Tuple{Components: []Type{&Bound{Index: 0}, &App{Data: intT}}}

	opened := OpenWith(body, &Open{Point: 7})
	if got := TypeString(opened); got != "(!7, int)" {
		t.Fatalf("opened: %s", got)
	}
}

func TestOpenWithSkipsInnerBinders(t *testing.T) {
	// forall a. forall b. (b, a): opening the outer binder must leave the
	// inner one alone
	body := &Q{
		Quant:   Forall,
		Binding: Binding{Name: "b", Kind: KType},
		Body:    &Tuple{Components: []Type{&Bound{Index: 0}, &Bound{Index: 1}}},
	}
	opened := OpenWith(body, &Open{Point: 7})
	if got := TypeString(opened); got != "forall b. (b, !7)" {
		t.Fatalf("opened: %s", got)
	}
}

func TestInstantiateBranch(t *testing.T) {
	intT := NewAbstract("int", Duplicable)
	// data box a = Box {inner: a}
	box := &DataType{
		Name:   "box",
		Params: []TypeParam{{Name: "a", Kind: KType, Variance: Covariant}},
	}
	box.Branches = []*Branch{
		{Datacon: "Box", Fields: []Field{{Name: "inner", Type: &Bound{Index: 0}}}},
	}

	c := InstantiateBranch(box, box.Branches[0], []Type{&App{Data: intT}})
	if got := TypeString(c); got != "Box {inner = int}" {
		t.Fatalf("instantiated: %s", got)
	}
}

func TestShiftUnderBinder(t *testing.T) {
	// shifting must not touch variables bound inside the shifted term
	inner := &Q{
		Quant:   Forall,
		Binding: Binding{Name: "b", Kind: KType},
		Body:    &Tuple{Components: []Type{&Bound{Index: 0}, &Bound{Index: 1}}},
	}
	shifted := Shift(inner, 1, 0)
	q, ok := shifted.(*Q)
	if !ok {
		t.Fatalf("shifted: %s", TypeString(shifted))
	}
	tu := q.Body.(*Tuple)
	if tu.Components[0].(*Bound).Index != 0 {
		t.Fatalf("bound variable was shifted: %s", TypeString(shifted))
	}
	if tu.Components[1].(*Bound).Index != 2 {
		t.Fatalf("free variable was not shifted: %s", TypeString(shifted))
	}
}
