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

// Variance of a data type parameter.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
	Bivariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	case Bivariant:
		return "bivariant"
	}
	return "invariant"
}

// TypeParam is a formal parameter of a data type declaration.
type TypeParam struct {
	Name     string
	Kind     Kind
	Variance Variance
}

// Branch is one constructor of a data type. Field types refer to the
// declaration's parameters through Bound indices (parameter i is Bound{i} at
// the outermost level).
type Branch struct {
	Datacon string
	Fields  []Field
}

// DataType is a declared algebraic data type. A nil Branches slice declares an
// abstract type (only its fact is known). Declarations are registered once and
// shared; the computed fact is cached on the declaration by fact analysis.
type DataType struct {
	Name    string
	Params  []TypeParam
	Mutable bool
	Branches []*Branch

	fact      Fact
	factKnown bool
}

// NewAbstract declares an abstract type with an assumed fact.
func NewAbstract(name string, fact Fact, params ...TypeParam) *DataType {
	return &DataType{Name: name, Params: params, fact: fact, factKnown: true}
}

// IsAbstract reports whether the declaration has no branches.
func (d *DataType) IsAbstract() bool { return d.Branches == nil }

// Arity returns the number of type parameters.
func (d *DataType) Arity() int { return len(d.Params) }

// Fact returns the cached fact of the declaration, if analysis has run.
func (d *DataType) Fact() (Fact, bool) { return d.fact, d.factKnown }

// SetFact records the fact computed by analysis. Re-recording the same fact is
// a no-op; analysis is responsible for reaching a fixed point first.
func (d *DataType) SetFact(f Fact) {
	d.fact, d.factKnown = f, true
}

// FindBranch returns the branch for a data constructor name, or -1 and nil.
func (d *DataType) FindBranch(datacon string) (int, *Branch) {
	for i, b := range d.Branches {
		if b.Datacon == datacon {
			return i, b
		}
	}
	return -1, nil
}

// InstantiateBranch substitutes type arguments for the declaration's
// parameters within a branch, producing a concrete (still folded) type.
func InstantiateBranch(d *DataType, b *Branch, args []Type) *Concrete {
	fields := make([]Field, len(b.Fields))
	for i, f := range b.Fields {
		fields[i] = Field{Name: f.Name, Type: Subst(f.Type, args, 0)}
	}
	return &Concrete{Data: d, Datacon: b.Datacon, Fields: fields}
}
