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

// Kind classifies points and type terms.
type Kind int

const (
	// KTerm is the kind of points denoting program-level binders.
	KTerm Kind = iota
	// KType is the kind of ordinary value types and type variables.
	KType
	// KPerm is the kind of permissions (anchored permissions, conjunctions, empty).
	KPerm
)

func (k Kind) String() string {
	switch k {
	case KTerm:
		return "term"
	case KType:
		return "type"
	case KPerm:
		return "perm"
	}
	return "invalid"
}

// KindOf returns the kind of a type term. Bound and open variables default to
// KType; a binding carries the authoritative kind for a variable.
func KindOf(t Type) Kind {
	switch t := t.(type) {
	case *Anchored, *Star, Empty:
		return KPerm
	case *Bar:
		return KType
	case *Q:
		return KindOf(t.Body)
	default:
		return KType
	}
}
