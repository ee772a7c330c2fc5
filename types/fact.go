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

// Fact classifies a type with respect to copy semantics.
type Fact int

const (
	// Affine types may be moved but not copied. The zero value: this is the
	// default for structures of unknown composition and for bound type
	// variables that declare nothing stronger.
	Affine Fact = iota
	// Duplicable types may be freely copied: immutable, non-address-holding data.
	Duplicable
	// Exclusive types denote unique ownership of mutable state; copying would
	// create an aliasing hazard.
	Exclusive
)

func (f Fact) String() string {
	switch f {
	case Duplicable:
		return "duplicable"
	case Exclusive:
		return "exclusive"
	case Affine:
		return "affine"
	}
	return "invalid"
}

// FactLeq is the partial order on facts. Affine is the top element; duplicable
// and exclusive are incomparable with each other.
func FactLeq(f1, f2 Fact) bool {
	return f1 == f2 || f2 == Affine
}

// ComposeFacts combines the facts of the components of a structure. A compound
// value is duplicable only when every component is; any non-duplicable
// component makes the compound affine (the compound itself is not exclusive:
// exclusivity is a property of an address, not of a container of addresses).
func ComposeFacts(facts ...Fact) Fact {
	for _, f := range facts {
		if f != Duplicable {
			return Affine
		}
	}
	return Duplicable
}
