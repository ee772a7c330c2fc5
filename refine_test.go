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

// cellDecl declares `mutable data cell = Cell {contents: unknown}`.
func cellDecl() *types.DataType {
	d := &types.DataType{
		Name:    "cell",
		Mutable: true,
		Branches: []*types.Branch{
			{Datacon: "Cell", Fields: []types.Field{{Name: "contents", Type: types.Unknown{}}}},
		},
	}
	AnalyzeDataTypes([]*types.DataType{d})
	return d
}

// pairDecl declares `data pair = Pair {first: unknown; second: unknown}`.
func pairDecl() *types.DataType {
	d := &types.DataType{
		Name: "pair",
		Branches: []*types.Branch{
			{Datacon: "Pair", Fields: []types.Field{
				{Name: "first", Type: types.Unknown{}},
				{Name: "second", Type: types.Unknown{}},
			}},
		},
	}
	AnalyzeDataTypes([]*types.DataType{d})
	return d
}

func TestAddDuplicableIdempotent(t *testing.T) {
	intT := intDecl()
	env := NewEnv()
	env, p := env.BindTerm("x")

	intApp := &types.App{Data: intT}
	env = env.Add(p, intApp)
	env = env.Add(p, intApp)

	perms := nonSelfPerms(env, p)
	if len(perms) != 1 {
		t.Fatalf("perms: %v", permStrings(env, p))
	}
	if s := types.TypeStringNamed(perms[0], env); s != "int" {
		t.Fatalf("perm: %s", s)
	}
}

func TestExclusiveConflictKeepsBoth(t *testing.T) {
	cell := cellDecl()
	env := NewEnv()
	env, p := env.BindTerm("c")

	// Two independent exclusive claims on the same point. Each Add unfolds
	// the constructor into its own fresh field point, so the claims cannot
	// fold into one; they must both survive, side by side.
	c := &types.Concrete{Data: cell, Datacon: "Cell", Fields: []types.Field{
		{Name: "contents", Type: types.Unknown{}},
	}}
	env = env.Add(p, c)
	env = env.Add(p, c)

	perms := nonSelfPerms(env, p)
	if len(perms) != 2 {
		t.Fatalf("perms: %v", permStrings(env, p))
	}
	for _, perm := range perms {
		if !env.IsExclusive(perm) {
			t.Fatalf("non-exclusive survivor: %s", types.TypeStringNamed(perm, env))
		}
	}
}

func TestRefineUnknownAbsorbed(t *testing.T) {
	intT := intDecl()
	env := NewEnv()
	env, p := env.BindTerm("x")

	env = env.Add(p, types.Unknown{})
	env = env.Add(p, &types.App{Data: intT})

	perms := nonSelfPerms(env, p)
	if len(perms) != 1 {
		t.Fatalf("perms: %v", permStrings(env, p))
	}
	if s := types.TypeStringNamed(perms[0], env); s != "int" {
		t.Fatalf("perm: %s", s)
	}
}

func TestUnifyPropagatesPermissions(t *testing.T) {
	intT := intDecl()
	env := NewEnv()
	env, p1 := env.BindTerm("x")
	env, p2 := env.BindTerm("y")
	env = env.Add(p2, &types.App{Data: intT})

	env = env.Unify(p1, p2)
	if !env.Same(p1, p2) {
		t.Fatalf("points not merged")
	}
	perms := nonSelfPerms(env, p1)
	if len(perms) != 1 {
		t.Fatalf("perms: %v", permStrings(env, p1))
	}
	if s := types.TypeStringNamed(perms[0], env); s != "int" {
		t.Fatalf("perm: %s", s)
	}
}

func TestFullMergeCombinesPermissions(t *testing.T) {
	cell := cellDecl()
	intT := intDecl()
	env := NewEnv()
	env, p1 := env.BindTerm("x")
	env, p2 := env.BindTerm("y")
	env = env.Add(p1, &types.App{Data: intT})
	env = env.Add(p2, &types.Concrete{Data: cell, Datacon: "Cell", Fields: []types.Field{
		{Name: "contents", Type: types.Unknown{}},
	}})

	env2 := env.FullMerge(p1, p2)
	if !env2.Same(p1, p2) {
		t.Fatalf("points not merged")
	}
	// everything y held was re-added onto x
	perms := nonSelfPerms(env2, p1)
	if len(perms) != 2 {
		t.Fatalf("perms: %v", permStrings(env2, p1))
	}
	// merging an already-merged pair changes nothing
	if env3 := env2.FullMerge(p1, p2); env3 != env2 {
		t.Fatalf("re-merge returned a different environment")
	}
	// the original environment keeps the points apart
	if env.Same(p1, p2) {
		t.Fatalf("original environment was modified")
	}
}

func TestRefineConcreteUnifiesFields(t *testing.T) {
	pair := pairDecl()
	intT := intDecl()
	env := NewEnv()
	env, p := env.BindTerm("p")
	env, f1 := env.BindTerm("f1")
	env, f2 := env.BindTerm("f2")
	env = env.Add(f1, &types.App{Data: intT})

	mk := func(first, second Point) *types.Concrete {
		return &types.Concrete{Data: pair, Datacon: "Pair", Fields: []types.Field{
			{Name: "first", Type: &types.Singleton{Point: first}},
			{Name: "second", Type: &types.Singleton{Point: second}},
		}}
	}
	env = env.Add(p, mk(f1, f2))
	env = env.Add(p, mk(f2, f1))

	// the two concretes fold into one, equating f1 and f2
	perms := nonSelfPerms(env, p)
	if len(perms) != 1 {
		t.Fatalf("perms: %v", permStrings(env, p))
	}
	if !env.Same(f1, f2) {
		t.Fatalf("field points were not unified")
	}
	// f1's int permission survived the collapse
	if len(nonSelfPerms(env, f2)) != 1 {
		t.Fatalf("field perms: %v", permStrings(env, f2))
	}
}
