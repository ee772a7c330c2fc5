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
	"strconv"

	"github.com/benbjohnson/immutable"
	"github.com/hml-lang/permbox/types"
)

// Point is an abstract address for a program variable or type variable.
type Point = types.Point

const noParent = Point(-1)

var emptyPoints = immutable.NewSortedMap(nil)

// pointInfo is the per-point record stored in the environment. Records are
// immutable once stored; every update clones.
type pointInfo struct {
	// parent links a merged point to the point it was collapsed into.
	// noParent marks a representative.
	parent    Point
	kind      types.Kind
	name      string
	flexible  bool
	fact      types.Fact
	structure types.Type
	perms     types.PermList
}

func (i *pointInfo) clone() *pointInfo {
	c := *i
	return &c
}

// Env is the persistent state of a checking run: a set of points, each with a
// kind, an optional name, an optional structural instantiation (flexible
// points) and the permissions currently held (term points).
//
// Every operation is functional: an update returns a new Env sharing maximal
// structure with the old one. A failed operation therefore leaves the caller
// free to continue from the environment it already holds; this is a
// correctness requirement for backtracking, not a style choice.
type Env struct {
	points *immutable.SortedMap // int(Point) -> *pointInfo
	nextID int
}

// NewEnv creates an empty environment. One environment is created per
// top-level declaration group being checked.
func NewEnv() *Env {
	return &Env{points: emptyPoints}
}

// NumPoints returns the number of points ever allocated. Point ids below this
// bound are valid in this environment and in every environment derived from it.
func (env *Env) NumPoints() int { return env.nextID }

// BindTerm allocates a fresh term point. The point starts out holding its own
// self-singleton permission.
func (env *Env) BindTerm(hint string) (*Env, Point) {
	p := Point(env.nextID)
	info := &pointInfo{
		parent: noParent,
		kind:   types.KTerm,
		name:   hint,
		fact:   types.Affine,
		perms:  types.SingletonPermList(&types.Singleton{Point: p}),
	}
	return &Env{points: env.points.Set(int(p), info), nextID: env.nextID + 1}, p
}

// BindRigid allocates a fresh rigid type variable.
func (env *Env) BindRigid(b types.Binding) (*Env, Point) {
	return env.bindVar(b, false)
}

// BindFlexible allocates a fresh flexible type variable, to be instantiated
// later by unification.
func (env *Env) BindFlexible(b types.Binding) (*Env, Point) {
	return env.bindVar(b, true)
}

func (env *Env) bindVar(b types.Binding, flexible bool) (*Env, Point) {
	p := Point(env.nextID)
	info := &pointInfo{
		parent:   noParent,
		kind:     b.Kind,
		name:     b.Name,
		flexible: flexible,
		fact:     b.Fact,
		perms:    types.EmptyPermList,
	}
	return &Env{points: env.points.Set(int(p), info), nextID: env.nextID + 1}, p
}

func (env *Env) rawInfo(p Point) *pointInfo {
	v, ok := env.points.Get(int(p))
	if !ok {
		panic("permbox: internal error: unknown point " + strconv.Itoa(int(p)))
	}
	return v.(*pointInfo)
}

// Resolve follows merge links to the representative point.
func (env *Env) Resolve(p Point) Point {
	for {
		info := env.rawInfo(p)
		if info.parent == noParent {
			return p
		}
		p = info.parent
	}
}

func (env *Env) info(p Point) *pointInfo { return env.rawInfo(env.Resolve(p)) }

// Same reports whether two points resolve to the same representative.
func (env *Env) Same(p1, p2 Point) bool {
	return env.Resolve(p1) == env.Resolve(p2)
}

// Kind returns the kind of the point.
func (env *Env) Kind(p Point) types.Kind { return env.info(p).kind }

// PointName returns the human-readable hint name of the point, if any.
// Env implements types.PointNamer.
func (env *Env) PointName(p Point) string { return env.info(p).name }

// PointFact returns the assumed fact of a type variable.
func (env *Env) PointFact(p Point) types.Fact { return env.info(p).fact }

// IsFlexible reports whether the point is a flexible type variable.
func (env *Env) IsFlexible(p Point) bool { return env.info(p).flexible }

// HasStructure reports whether a flexible point has been instantiated.
func (env *Env) HasStructure(p Point) bool { return env.info(p).structure != nil }

// Structure returns the structural instantiation recorded for a flexible
// point, if any.
func (env *Env) Structure(p Point) (types.Type, bool) {
	s := env.info(p).structure
	return s, s != nil
}

// GetPermissions returns the permissions currently held by a term point.
func (env *Env) GetPermissions(p Point) types.PermList {
	info := env.info(p)
	if info.kind != types.KTerm {
		return types.EmptyPermList
	}
	return info.perms
}

func (env *Env) setInfo(p Point, info *pointInfo) *Env {
	return &Env{points: env.points.Set(int(p), info), nextID: env.nextID}
}

// ReplaceTerm applies a functional update to a term point's permission list.
func (env *Env) ReplaceTerm(p Point, f func(types.PermList) types.PermList) *Env {
	p = env.Resolve(p)
	info := env.rawInfo(p)
	if info.kind != types.KTerm {
		panic("permbox: internal error: point " + strconv.Itoa(int(p)) + " does not denote a term")
	}
	c := info.clone()
	c.perms = f(info.perms)
	return env.setInfo(p, c)
}

// MergeLeft collapses p2 into p1: all subsequent lookups of p2 resolve to p1.
// Idempotent; never creates a merge cycle because the link is installed on a
// representative and points at a distinct representative. The permissions of
// p2 are dropped here; Unify re-adds them.
func (env *Env) MergeLeft(p1, p2 Point) *Env {
	p1, p2 = env.Resolve(p1), env.Resolve(p2)
	if p1 == p2 {
		return env
	}
	old2 := env.rawInfo(p2)
	c2 := old2.clone()
	c2.parent = p1
	c2.structure = nil
	c2.perms = types.EmptyPermList
	env = env.setInfo(p2, c2)
	info1 := env.rawInfo(p1)
	if info1.name == "" && old2.name != "" {
		c1 := info1.clone()
		c1.name = old2.name
		env = env.setInfo(p1, c1)
	}
	return env
}

// InstantiateFlexible records the structural instantiation of a flexible
// point. Calling it on a rigid or already-instantiated point is a bug in the
// caller.
func (env *Env) InstantiateFlexible(p Point, t types.Type) *Env {
	p = env.Resolve(p)
	info := env.rawInfo(p)
	if !info.flexible {
		panic("permbox: internal error: instantiating a rigid point " + strconv.Itoa(int(p)))
	}
	if info.structure != nil {
		panic("permbox: internal error: point " + strconv.Itoa(int(p)) + " is already instantiated")
	}
	c := info.clone()
	c.structure = t
	return env.setInfo(p, c)
}
