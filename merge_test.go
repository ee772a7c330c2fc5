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

	"github.com/google/go-cmp/cmp"

	"github.com/hml-lang/permbox/types"
)

func TestMergeIntersectsPermissions(t *testing.T) {
	a := types.NewAbstract("A", types.Duplicable)
	b := types.NewAbstract("B", types.Duplicable)
	c := types.NewAbstract("C", types.Duplicable)

	base := NewEnv()
	base, p := base.BindTerm("x")

	left := base.Add(p, &types.App{Data: a}).Add(p, &types.App{Data: b})
	right := base.Add(p, &types.App{Data: a}).Add(p, &types.App{Data: c})

	merged := Merge(base, left, right)
	want := []string{"=x", "A"}
	if diff := cmp.Diff(want, permStrings(merged, p)); diff != "" {
		t.Fatalf("permissions after join (-want +got):\n%s", diff)
	}
}

func TestMergeKeepsEquivalentStructure(t *testing.T) {
	pair := pairDecl()
	intT := intDecl()

	base := NewEnv()
	base, p := base.BindTerm("x")

	// both branches build the same shape out of branch-local points
	build := func(env *Env) *Env {
		env, f1 := env.BindTerm("f1")
		env, f2 := env.BindTerm("f2")
		env = env.Add(f1, &types.App{Data: intT})
		env = env.Add(f2, &types.App{Data: intT})
		return env.Add(p, &types.Concrete{Data: pair, Datacon: "Pair", Fields: []types.Field{
			{Name: "first", Type: &types.Singleton{Point: f1}},
			{Name: "second", Type: &types.Singleton{Point: f2}},
		}})
	}
	left, right := build(base), build(base)

	merged := Merge(base, left, right)
	perms := nonSelfPerms(merged, p)
	if len(perms) != 1 {
		t.Fatalf("perms after join: %v", permStrings(merged, p))
	}
	folded, ok := merged.Fold(p)
	if !ok {
		t.Fatalf("folding failed after join")
	}
	if s := types.TypeString(folded); s != "Pair {first = int; second = int}" {
		t.Fatalf("folded: %s", s)
	}
}

func TestMergeDropsOneSidedStructure(t *testing.T) {
	pair := pairDecl()
	intT := intDecl()
	boolT := types.NewAbstract("bool", types.Duplicable)

	base := NewEnv()
	base, p := base.BindTerm("x")

	build := func(env *Env, field *types.DataType) *Env {
		env, f1 := env.BindTerm("f1")
		env, f2 := env.BindTerm("f2")
		env = env.Add(f1, &types.App{Data: field})
		env = env.Add(f2, &types.App{Data: field})
		return env.Add(p, &types.Concrete{Data: pair, Datacon: "Pair", Fields: []types.Field{
			{Name: "first", Type: &types.Singleton{Point: f1}},
			{Name: "second", Type: &types.Singleton{Point: f2}},
		}})
	}
	left, right := build(base, intT), build(base, boolT)

	// the shapes agree but the field contents do not
	merged := Merge(base, left, right)
	if perms := nonSelfPerms(merged, p); len(perms) != 0 {
		t.Fatalf("perms after join: %v", permStrings(merged, p))
	}
}
