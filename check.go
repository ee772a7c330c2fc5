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
	"github.com/hml-lang/permbox/ast"
	"github.com/hml-lang/permbox/types"
)

// Check processes a list of top-level declarations in order. Each value
// declaration is checked against the environment left by the previous ones,
// and its name enters the scope of the following declarations. The first
// failure stops checking.
func (c *Checker) Check(decls []ast.Decl) error {
	for _, d := range decls {
		switch d := d.(type) {
		case *ast.ValDecl:
			p, err := c.inferExpr(d.Value)
			if err != nil {
				return err
			}
			c.scope[d.Name] = p
			if c.Config.Trace {
				c.Log.Printf("val %s: point %s", d.Name, c.env.PointName(p))
			}
		}
	}
	return nil
}

// PointOf returns the point bound to a checked top-level name.
func (c *Checker) PointOf(name string) (Point, bool) {
	p, ok := c.scope[name]
	return p, ok
}

// TypeOf folds the permissions of a checked top-level name back into a single
// descriptive type, for reporting.
func (c *Checker) TypeOf(name string) (types.Type, bool) {
	p, ok := c.scope[name]
	if !ok {
		return nil, false
	}
	return c.env.Fold(p)
}

func (c *Checker) missingPerm(at ast.Expr, p Point, want types.Type) *CheckError {
	return checkErrorf(PermissionMissing, at, "%s @ %s is not available",
		c.env.PointName(p), types.TypeStringNamed(want, c.env))
}

func (c *Checker) bindTerm(hint string) Point {
	env, p := c.env.BindTerm(hint)
	c.env = env
	return p
}

// inferExpr checks one expression, extending the checker's environment with a
// fresh point holding the permissions the expression produces.
func (c *Checker) inferExpr(e ast.Expr) (Point, *CheckError) {
	switch e := e.(type) {
	case *ast.Int:
		p := c.bindTerm("int literal")
		c.env = c.env.Add(p, &types.App{Data: c.intType})
		return p, nil

	case *ast.Bool:
		p := c.bindTerm("bool literal")
		c.env = c.env.Add(p, &types.App{Data: c.boolType})
		return p, nil

	case *ast.Var:
		p, ok := c.scope[e.Name]
		if !ok {
			return 0, checkErrorf(UnboundVariable, e, "variable %s is not in scope", e.Name)
		}
		return p, nil

	case *ast.BinOp:
		lp, err := c.inferExpr(e.Left)
		if err != nil {
			return 0, err
		}
		rp, err := c.inferExpr(e.Right)
		if err != nil {
			return 0, err
		}
		intT := &types.App{Data: c.intType}
		env, ok := c.env.Sub(lp, intT)
		if !ok {
			return 0, c.missingPerm(e.Left, lp, intT)
		}
		c.env = env
		env, ok = c.env.Sub(rp, intT)
		if !ok {
			return 0, c.missingPerm(e.Right, rp, intT)
		}
		c.env = env
		p := c.bindTerm(e.Op)
		switch e.Op {
		case "<", "<=", ">", ">=", "==", "!=":
			c.env = c.env.Add(p, &types.App{Data: c.boolType})
		default:
			c.env = c.env.Add(p, intT)
		}
		return p, nil

	case *ast.Let:
		vp, err := c.inferExpr(e.Value)
		if err != nil {
			return 0, err
		}
		prev, shadowed := c.scope[e.Var]
		c.scope[e.Var] = vp
		p, err := c.inferExpr(e.Body)
		if shadowed {
			c.scope[e.Var] = prev
		} else {
			delete(c.scope, e.Var)
		}
		return p, err

	case *ast.New:
		return c.inferNew(e)

	case *ast.Select:
		vp, err := c.inferExpr(e.Value)
		if err != nil {
			return 0, err
		}
		concrete, _, cerr := c.concretePerm(vp, e)
		if cerr != nil {
			return 0, cerr
		}
		idx := concrete.FindField(e.Field)
		if idx < 0 {
			return 0, checkErrorf(NoSuchField, e, "constructor %s has no field %s", concrete.Datacon, e.Field)
		}
		s, ok := concrete.Fields[idx].Type.(*types.Singleton)
		if !ok {
			panic("permbox: internal error: field is not in expanded form")
		}
		return s.Point, nil

	case *ast.SetField:
		return c.inferSetField(e)

	case *ast.TupleExpr:
		comps := make([]types.Type, len(e.Items))
		for i, item := range e.Items {
			ip, err := c.inferExpr(item)
			if err != nil {
				return 0, err
			}
			comps[i] = &types.Singleton{Point: ip}
		}
		p := c.bindTerm("tuple")
		c.env = c.env.Add(p, &types.Tuple{Components: comps})
		return p, nil

	case *ast.If:
		cp, err := c.inferExpr(e.Cond)
		if err != nil {
			return 0, err
		}
		boolT := &types.App{Data: c.boolType}
		env, ok := c.env.Sub(cp, boolT)
		if !ok {
			return 0, c.missingPerm(e.Cond, cp, boolT)
		}
		c.env = env

		// The destination point must exist in the base environment so the
		// join can compare both branches against it.
		dest := c.bindTerm("if")
		base := c.env

		c.env = base
		tp, err := c.inferExpr(e.Then)
		if err != nil {
			return 0, err
		}
		c.env = c.env.Unify(dest, tp)
		left := c.env

		c.env = base
		ep, err := c.inferExpr(e.Else)
		if err != nil {
			return 0, err
		}
		c.env = c.env.Unify(dest, ep)
		right := c.env

		c.env = Merge(base, left, right)
		if c.Config.Trace {
			if t, ok := c.env.Fold(dest); ok {
				c.Log.Printf("join: %s", types.TypeStringNamed(t, c.env))
			}
		}
		return dest, nil
	}
	panic("permbox: internal error: unhandled expression " + e.ExprName())
}

func (c *Checker) inferNew(e *ast.New) (Point, *CheckError) {
	d, ok := c.datacons[e.Datacon]
	if !ok {
		return 0, checkErrorf(UnknownDatacon, e, "data constructor %s is not declared", e.Datacon)
	}
	_, branch := d.FindBranch(e.Datacon)

	given := make(map[string]Point, len(e.Fields))
	for _, f := range e.Fields {
		if _, dup := given[f.Name]; dup {
			return 0, checkErrorf(DuplicateField, e, "field %s is initialized more than once", f.Name)
		}
		fp, err := c.inferExpr(f.Value)
		if err != nil {
			return 0, err
		}
		given[f.Name] = fp
	}
	for _, f := range e.Fields {
		if branchField(branch, f.Name) == nil {
			return 0, checkErrorf(ExtraField, e, "constructor %s has no field %s", e.Datacon, f.Name)
		}
	}
	for _, f := range branch.Fields {
		if _, ok := given[f.Name]; !ok {
			return 0, checkErrorf(MissingField, e, "constructor %s requires field %s", e.Datacon, f.Name)
		}
	}

	// Instantiate the declaration's parameters with flexible variables, then
	// check each initializer against the declared field type. The subtraction
	// is speculative: ownership of the initializers stays with their points,
	// the constructed value refers to them through singletons.
	args := make([]types.Type, d.Arity())
	for i, param := range d.Params {
		env, ap := c.env.BindFlexible(types.Binding{Name: param.Name, Kind: param.Kind})
		c.env = env
		args[i] = &types.Open{Point: ap}
	}
	inst := types.InstantiateBranch(d, branch, args)
	for _, f := range inst.Fields {
		fp := given[f.Name]
		if _, ok := c.env.Sub(fp, f.Type); !ok {
			return 0, checkErrorf(TypeMismatch, e, "field %s does not have type %s",
				f.Name, types.TypeStringNamed(f.Type, c.env))
		}
	}

	fields := make([]types.Field, len(branch.Fields))
	for i, f := range branch.Fields {
		fields[i] = types.Field{Name: f.Name, Type: &types.Singleton{Point: given[f.Name]}}
	}
	p := c.bindTerm(e.Datacon)
	c.env = c.env.Add(p, &types.Concrete{Data: d, Datacon: e.Datacon, Fields: fields})
	return p, nil
}

func (c *Checker) inferSetField(e *ast.SetField) (Point, *CheckError) {
	vp, err := c.inferExpr(e.Value)
	if err != nil {
		return 0, err
	}
	np, err := c.inferExpr(e.New)
	if err != nil {
		return 0, err
	}
	concrete, idx, cerr := c.concretePerm(vp, e)
	if cerr != nil {
		return 0, cerr
	}
	if !concrete.Data.Mutable {
		return 0, checkErrorf(CannotAssign, e, "type %s is immutable", concrete.Data.Name)
	}
	fieldIdx := concrete.FindField(e.Field)
	if fieldIdx < 0 {
		return 0, checkErrorf(NoSuchField, e, "constructor %s has no field %s", concrete.Datacon, e.Field)
	}

	// Strong update: retarget the field's singleton at the new point. The
	// old field point keeps whatever permissions it held.
	fields := make([]types.Field, len(concrete.Fields))
	copy(fields, concrete.Fields)
	fields[fieldIdx] = types.Field{Name: e.Field, Type: &types.Singleton{Point: np}}
	updated := &types.Concrete{Data: concrete.Data, Datacon: concrete.Datacon, Fields: fields}
	vp = c.env.Resolve(vp)
	c.env = c.env.ReplaceTerm(vp, func(perms types.PermList) types.PermList {
		return perms.Set(idx, updated)
	})

	p := c.bindTerm("assign")
	c.env = c.env.Add(p, &types.Tuple{})
	return p, nil
}

// concretePerm locates a concrete permission held by a point, unfolding a
// single-branch type application in place when that is all the point holds.
// The returned index addresses the permission within the point's list.
func (c *Checker) concretePerm(p Point, at ast.Expr) (*types.Concrete, int, *CheckError) {
	p = c.env.Resolve(p)
	var (
		concrete *types.Concrete
		idx      int
	)
	c.env.GetPermissions(p).Range(func(i int, t types.Type) bool {
		switch t := c.env.resolveStructure(t).(type) {
		case *types.Concrete:
			concrete, idx = t, i
			return false
		case *types.App:
			if !t.Data.IsAbstract() && len(t.Data.Branches) == 1 {
				env, u := c.env.unfold(t, c.env.PointName(p), nil)
				if u, ok := u.(*types.Concrete); ok {
					c.env = env.ReplaceTerm(p, func(perms types.PermList) types.PermList {
						return perms.Set(i, u)
					})
					concrete, idx = u, i
					return false
				}
			}
			return true
		}
		return true
	})
	if concrete == nil {
		return nil, 0, checkErrorf(NotConcrete, at, "no concrete permission is held for this value")
	}
	return concrete, idx, nil
}

func branchField(b *types.Branch, name string) *types.Field {
	for i := range b.Fields {
		if b.Fields[i].Name == name {
			return &b.Fields[i]
		}
	}
	return nil
}
