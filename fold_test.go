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
	"testing"

	"github.com/hml-lang/permbox/types"
)

func TestFoldUnfoldedTuple(t *testing.T) {
	intT := intDecl()
	boolT := types.NewAbstract("bool", types.Duplicable)
	env := NewEnv()
	env, p := env.BindTerm("x")

	env = env.Add(p, &types.Tuple{Components: []types.Type{
		&types.App{Data: intT},
		&types.App{Data: boolT},
	}})

	folded, ok := env.Fold(p)
	if !ok {
		t.Fatalf("folding failed")
	}
	if s := types.TypeString(folded); s != "(int, bool)" {
		t.Fatalf("folded: %s", s)
	}
}

func TestFoldAmbiguous(t *testing.T) {
	a := types.NewAbstract("A", types.Duplicable)
	b := types.NewAbstract("B", types.Duplicable)
	env := NewEnv()
	env, p := env.BindTerm("x")
	env = env.Add(p, &types.App{Data: a})
	env = env.Add(p, &types.App{Data: b})

	if _, ok := env.Fold(p); ok {
		t.Fatalf("folded a point holding two distinct permissions")
	}
}

func TestFoldBareUnknown(t *testing.T) {
	env := NewEnv()
	env, p := env.BindTerm("x")

	// only the self-singleton is held; there is nothing to report
	if _, ok := env.Fold(p); ok {
		t.Fatalf("folded a point holding no permissions")
	}
}

func TestFoldTypeRewritesSingletons(t *testing.T) {
	intT := intDecl()
	boolT := types.NewAbstract("bool", types.Duplicable)
	env := NewEnv()
	env, x := env.BindTerm("x")
	env, y := env.BindTerm("y")
	env = env.Add(x, &types.App{Data: intT})
	env = env.Add(y, &types.App{Data: boolT})

	folded, ok := env.FoldType(&types.Tuple{Components: []types.Type{
		&types.Singleton{Point: x},
		&types.Singleton{Point: y},
	}})
	if !ok {
		t.Fatalf("folding failed")
	}
	if s := types.TypeString(folded); s != "(int, bool)" {
		t.Fatalf("folded: %s", s)
	}

	// a singleton of a point holding nothing descriptive cannot be rewritten
	env, z := env.BindTerm("z")
	if _, ok := env.FoldType(&types.Singleton{Point: z}); ok {
		t.Fatalf("folded a singleton of a bare point")
	}
}

func TestFoldCyclicFails(t *testing.T) {
	// mutable data loop = Loop {next: loop}
	loop := &types.DataType{Name: "loop", Mutable: true}
	loop.Branches = []*types.Branch{
		{Datacon: "Loop", Fields: []types.Field{{Name: "next", Type: &types.App{Data: loop}}}},
	}
	AnalyzeDataTypes([]*types.DataType{loop})

	env := NewEnv()
	env, p := env.BindTerm("x")
	env = env.Add(p, &types.Concrete{Data: loop, Datacon: "Loop", Fields: []types.Field{
		{Name: "next", Type: &types.Singleton{Point: p}},
	}})

	if _, ok := env.Fold(p); ok {
		t.Fatalf("folded a cyclic structure")
	}
}
