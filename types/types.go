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

// Point is an abstract, globally-unique address for a program-level binder or
// a type variable within a checking environment. Points are allocated by the
// environment and must always be resolved to their representative before use.
type Point int

// Type is the base interface for all type and permission terms.
type Type interface {
	TypeName() string
}

func (t Unknown) TypeName() string    { return "Unknown" }
func (t Dynamic) TypeName() string    { return "Dynamic" }
func (t *Bound) TypeName() string     { return "Bound" }
func (t *Open) TypeName() string      { return "Open" }
func (t *Q) TypeName() string         { return "Q" }
func (t *Arrow) TypeName() string     { return "Arrow" }
func (t *Tuple) TypeName() string     { return "Tuple" }
func (t *App) TypeName() string       { return "App" }
func (t *Concrete) TypeName() string  { return "Concrete" }
func (t *Singleton) TypeName() string { return "Singleton" }
func (t *Anchored) TypeName() string  { return "Anchored" }
func (t *Star) TypeName() string      { return "Star" }
func (t Empty) TypeName() string      { return "Empty" }
func (t *Bar) TypeName() string       { return "Bar" }

// Unknown carries no information about a value. Subtracting it always
// succeeds; it is duplicable.
type Unknown struct{}

// Dynamic is the type of values whose ownership is tested at runtime.
// Subtracting it requires the point to hold some exclusive permission.
type Dynamic struct{}

// Bound is a de Bruijn variable, bound by an enclosing quantifier or by the
// parameters of a data type declaration.
type Bound struct {
	Index int
}

// Open is a free variable: a type-kind point in the environment, either rigid
// or flexible (not yet instantiated).
type Open struct {
	Point Point
}

// Quantifier distinguishes universal from existential quantification.
type Quantifier int

const (
	Forall Quantifier = iota
	Exists
)

func (q Quantifier) String() string {
	if q == Forall {
		return "forall"
	}
	return "exists"
}

// Binding names a quantified variable and records its kind and assumed fact.
// The zero fact, Affine, assumes nothing about the variable.
type Binding struct {
	Name string
	Kind Kind
	Fact Fact
}

// Q is a quantified type: `forall (a : kind) body` or `exists (a : kind) body`.
// The body refers to the bound variable through Bound indices.
type Q struct {
	Quant   Quantifier
	Binding Binding
	Body    Type
}

// Arrow is a function type: `(t1, t2) -> t`. Arguments are contravariant, the
// return type is covariant.
type Arrow struct {
	Args   []Type
	Return Type
}

// Tuple is a product type: `(t1, t2)`. After unfolding, every component is a
// Singleton.
type Tuple struct {
	Components []Type
}

// App is the application of a declared (possibly abstract) data type to
// arguments: `list int`.
type App struct {
	Data *DataType
	Args []Type
}

// Field is a named component of a constructor branch or of an unfolded
// concrete type.
type Field struct {
	Name string
	Type Type
}

// Concrete is an unfolded constructor of a data type: `Cons {head: t; tail: u}`.
// After unfolding, every field type is a Singleton.
type Concrete struct {
	Data    *DataType
	Datacon string
	Fields  []Field
}

// FindField returns the index of a named field, or -1.
func (t *Concrete) FindField(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Singleton is the type of values exactly equal to the value denoted by a
// point: `=p`. Singletons are the mechanism for strong updates to fields.
type Singleton struct {
	Point Point
}

// Anchored is a permission: `p @ t` asserts that point p has type t.
type Anchored struct {
	Point Point
	What  Type
}

// Star is the conjunction of two permissions.
type Star struct {
	Left, Right Type
}

// Empty is the trivial permission.
type Empty struct{}

// Bar attaches a permission to a value type: `t | p`. Bars are eliminated by
// collection; they never survive inside a point's permission list.
type Bar struct {
	Type Type
	Perm Type
}

// FlattenStar flattens a permission into its atomic conjuncts, dropping Empty.
func FlattenStar(t Type) []Type {
	var acc []Type
	return flattenStar(acc, t)
}

func flattenStar(acc []Type, t Type) []Type {
	switch t := t.(type) {
	case *Star:
		return flattenStar(flattenStar(acc, t.Left), t.Right)
	case Empty:
		return acc
	default:
		return append(acc, t)
	}
}

// MkStar rebuilds a permission from a list of conjuncts.
func MkStar(perms []Type) Type {
	switch len(perms) {
	case 0:
		return Empty{}
	case 1:
		return perms[0]
	}
	t := perms[0]
	for _, p := range perms[1:] {
		t = &Star{Left: t, Right: p}
	}
	return t
}
