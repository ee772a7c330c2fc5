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

func intDecl() *types.DataType { return types.NewAbstract("int", types.Duplicable) }

// nonSelfPerms returns the permissions of a point excluding its own
// self-singleton.
func nonSelfPerms(env *Env, p Point) []types.Type {
	var out []types.Type
	env.GetPermissions(p).Range(func(_ int, t types.Type) bool {
		if s, ok := t.(*types.Singleton); ok && env.Same(s.Point, p) {
			return true
		}
		out = append(out, t)
		return true
	})
	return out
}

func permStrings(env *Env, p Point) []string {
	var out []string
	env.GetPermissions(p).Range(func(_ int, t types.Type) bool {
		out = append(out, types.TypeStringNamed(t, env))
		return true
	})
	return out
}

func TestBindTermSelfSingleton(t *testing.T) {
	env := NewEnv()
	env, p := env.BindTerm("x")

	perms := env.GetPermissions(p)
	if perms.Len() != 1 {
		t.Fatalf("perms: %d", perms.Len())
	}
	if s := types.TypeStringNamed(perms.Get(0), env); s != "=x" {
		t.Fatalf("perm: %s", s)
	}
	if env.Kind(p) != types.KTerm {
		t.Fatalf("kind: %v", env.Kind(p))
	}
}

func TestEnvPersistence(t *testing.T) {
	intT := intDecl()
	env := NewEnv()
	env, p := env.BindTerm("x")

	env2 := env.Add(p, &types.App{Data: intT})
	if len(nonSelfPerms(env, p)) != 0 {
		t.Fatalf("original environment was modified: %v", permStrings(env, p))
	}
	if len(nonSelfPerms(env2, p)) != 1 {
		t.Fatalf("derived environment perms: %v", permStrings(env2, p))
	}
}

func TestMergeLeft(t *testing.T) {
	env := NewEnv()
	env, p1 := env.BindTerm("x")
	env, p2 := env.BindTerm("y")

	if env.Same(p1, p2) {
		t.Fatalf("fresh points compare equal")
	}
	env2 := env.MergeLeft(p1, p2)
	if !env2.Same(p1, p2) {
		t.Fatalf("merged points compare unequal")
	}
	if env2.Resolve(p2) != p1 {
		t.Fatalf("representative: %d", env2.Resolve(p2))
	}
	// merging is idempotent
	env3 := env2.MergeLeft(p1, p2)
	if env3.Resolve(p2) != p1 {
		t.Fatalf("representative after re-merge: %d", env3.Resolve(p2))
	}
	// the original environment still keeps the points apart
	if env.Same(p1, p2) {
		t.Fatalf("original environment was modified")
	}
}

func TestInstantiateFlexible(t *testing.T) {
	intT := intDecl()
	env := NewEnv()
	env, a := env.BindFlexible(types.Binding{Name: "a", Kind: types.KType})

	if !env.IsFlexible(a) || env.HasStructure(a) {
		t.Fatalf("fresh flexible point: flexible=%v structure=%v", env.IsFlexible(a), env.HasStructure(a))
	}
	env2 := env.InstantiateFlexible(a, &types.App{Data: intT})
	s, ok := env2.Structure(a)
	if !ok {
		t.Fatalf("no structure recorded")
	}
	if str := types.TypeString(s); str != "int" {
		t.Fatalf("structure: %s", str)
	}
	if env.HasStructure(a) {
		t.Fatalf("original environment was modified")
	}
}
