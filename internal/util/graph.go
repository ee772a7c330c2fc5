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

// util contains a dependency graph used to split data type declarations
// into mutually recursive groups.
package util

// DepGraph records references between declarations, identified by their
// position in the declaration list.
type DepGraph struct {
	succs [][]int
}

func NewDepGraph(numDecls int) *DepGraph {
	return &DepGraph{succs: make([][]int, numDecls)}
}

// AddDep records that declaration from refers to declaration to.
func (g *DepGraph) AddDep(from, to int) {
	for _, succ := range g.succs[from] {
		if succ == to {
			return
		}
	}
	g.succs[from] = append(g.succs[from], to)
}

// Groups partitions the declarations into strongly connected components,
// ordered so every group appears after the groups it depends on. Declarations
// in the same group are mutually recursive.
//
// Tarjan's SCC algorithm, based on https://github.com/gonum/gonum/blob/master/graph/topo/tarjan.go
func (g *DepGraph) Groups() [][]int {
	w := sccWalk{
		graph:      g,
		indexTable: make([]int, len(g.succs)),
		lowLink:    make([]int, len(g.succs)),
		onStack:    make([]bool, len(g.succs)),
	}
	for v := range g.succs {
		if w.indexTable[v] == 0 {
			w.visit(v)
		}
	}
	// Tarjan emits each component only after the components it refers to,
	// so the output is already in analysis order.
	return w.groups
}

type sccWalk struct {
	graph      *DepGraph
	index      int
	indexTable []int
	lowLink    []int
	onStack    []bool

	stack  []int
	groups [][]int
}

func (w *sccWalk) visit(v int) {
	// Set the depth index for v to the smallest unused index
	w.index++
	w.indexTable[v] = w.index
	w.lowLink[v] = w.index
	w.stack = append(w.stack, v)
	w.onStack[v] = true

	for _, succ := range w.graph.succs[v] {
		if w.indexTable[succ] == 0 {
			// Successor has not yet been visited; recur on it
			w.visit(succ)
			if w.lowLink[succ] < w.lowLink[v] {
				w.lowLink[v] = w.lowLink[succ]
			}
		} else if w.onStack[succ] {
			// Successor is on the stack and hence in the current SCC
			if w.indexTable[succ] < w.lowLink[v] {
				w.lowLink[v] = w.indexTable[succ]
			}
		}
	}

	// If v is a root node, pop the stack and generate an SCC
	if w.lowLink[v] == w.indexTable[v] {
		var c []int
		for {
			succ := w.stack[len(w.stack)-1]
			w.stack = w.stack[:len(w.stack)-1]
			w.onStack[succ] = false
			c = append(c, succ)
			if succ == v {
				break
			}
		}
		w.groups = append(w.groups, c)
	}
}
