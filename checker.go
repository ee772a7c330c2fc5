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
	"io"
	"log"

	"github.com/hml-lang/permbox/internal/util"
	"github.com/hml-lang/permbox/types"
)

// Checker drives the permission algebra over a declaration list. It owns the
// current environment, the lexical scope, and the registered data types.
type Checker struct {
	Config Config
	Log    *log.Logger

	env      *Env
	scope    map[string]Point
	decls    map[string]*types.DataType
	datacons map[string]*types.DataType

	intType  *types.DataType
	boolType *types.DataType
}

// NewChecker returns a checker with the builtin types registered. A nil logger
// discards trace output.
func NewChecker(cfg Config, logger *log.Logger) *Checker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Checker{
		Config:   cfg,
		Log:      logger,
		env:      NewEnv(),
		scope:    make(map[string]Point),
		decls:    make(map[string]*types.DataType),
		datacons: make(map[string]*types.DataType),
	}
	c.intType = types.NewAbstract("int", types.Duplicable)
	c.boolType = types.NewAbstract("bool", types.Duplicable)
	c.decls["int"] = c.intType
	c.decls["bool"] = c.boolType
	return c
}

// Env returns the current environment.
func (c *Checker) Env() *Env { return c.env }

// DataType returns a registered data type declaration by name.
func (c *Checker) DataType(name string) (*types.DataType, bool) {
	d, ok := c.decls[name]
	return d, ok
}

// IntType returns the builtin int declaration.
func (c *Checker) IntType() *types.DataType { return c.intType }

// BoolType returns the builtin bool declaration.
func (c *Checker) BoolType() *types.DataType { return c.boolType }

// DeclareDataTypes registers a batch of data type declarations, splits them
// into mutually recursive groups, and runs fact analysis on each group in
// dependency order. Declarations in the batch may refer to each other and to
// previously registered types.
func (c *Checker) DeclareDataTypes(batch []*types.DataType) error {
	for _, d := range batch {
		c.decls[d.Name] = d
		for _, b := range d.Branches {
			if prev, dup := c.datacons[b.Datacon]; dup && prev != d {
				if c.Config.DuplicateDatacons == "reject" {
					return checkErrorf(DuplicateDatacon, nil,
						"data constructor %s is already declared by type %s", b.Datacon, prev.Name)
				}
			}
			c.datacons[b.Datacon] = d
		}
	}

	index := make(map[*types.DataType]int, len(batch))
	for i, d := range batch {
		index[d] = i
	}
	g := util.NewDepGraph(len(batch))
	for i, d := range batch {
		for _, b := range d.Branches {
			for _, f := range b.Fields {
				addTypeDeps(g, i, f.Type, index)
			}
		}
	}
	for _, group := range g.Groups() {
		decls := make([]*types.DataType, len(group))
		for i, j := range group {
			decls[i] = batch[j]
		}
		AnalyzeDataTypes(decls)
		if c.Config.Trace {
			for _, d := range decls {
				f, _ := d.Fact()
				c.Log.Printf("data %s is %v", d.Name, f)
			}
		}
	}
	return nil
}

func addTypeDeps(g *util.DepGraph, from int, t types.Type, index map[*types.DataType]int) {
	switch t := t.(type) {
	case *types.App:
		if to, ok := index[t.Data]; ok {
			g.AddDep(from, to)
		}
		for _, a := range t.Args {
			addTypeDeps(g, from, a, index)
		}
	case *types.Q:
		addTypeDeps(g, from, t.Body, index)
	case *types.Arrow:
		for _, a := range t.Args {
			addTypeDeps(g, from, a, index)
		}
		addTypeDeps(g, from, t.Return, index)
	case *types.Tuple:
		for _, comp := range t.Components {
			addTypeDeps(g, from, comp, index)
		}
	case *types.Concrete:
		for _, f := range t.Fields {
			addTypeDeps(g, from, f.Type, index)
		}
	case *types.Anchored:
		addTypeDeps(g, from, t.What, index)
	case *types.Star:
		addTypeDeps(g, from, t.Left, index)
		addTypeDeps(g, from, t.Right, index)
	case *types.Bar:
		addTypeDeps(g, from, t.Type, index)
		addTypeDeps(g, from, t.Perm, index)
	}
}
