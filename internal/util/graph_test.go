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

package util

import (
	"sort"
	"testing"
)

func groupOf(groups [][]int, v int) int {
	for i, g := range groups {
		for _, m := range g {
			if m == v {
				return i
			}
		}
	}
	return -1
}

func TestGroupsMutualRecursion(t *testing.T) {
	// 0 refers to 1, 1 and 2 refer to each other
	g := NewDepGraph(3)
	g.AddDep(0, 1)
	g.AddDep(1, 2)
	g.AddDep(2, 1)

	groups := g.Groups()
	if len(groups) != 2 {
		t.Fatalf("groups: %v", groups)
	}
	cycle := groups[groupOf(groups, 1)]
	sort.Ints(cycle)
	if len(cycle) != 2 || cycle[0] != 1 || cycle[1] != 2 {
		t.Fatalf("cycle group: %v", cycle)
	}
	// the cycle is a dependency of 0, so its group comes first
	if groupOf(groups, 1) != 0 || groupOf(groups, 0) != 1 {
		t.Fatalf("group order: %v", groups)
	}
}

func TestGroupsSelfContained(t *testing.T) {
	g := NewDepGraph(2)
	g.AddDep(0, 0)
	g.AddDep(0, 0) // duplicate edges collapse

	groups := g.Groups()
	if len(groups) != 2 {
		t.Fatalf("groups: %v", groups)
	}
	for v := 0; v < 2; v++ {
		if i := groupOf(groups, v); i < 0 || len(groups[i]) != 1 {
			t.Fatalf("vertex %d: %v", v, groups)
		}
	}
}

func TestGroupsChainOrder(t *testing.T) {
	// 2 -> 1 -> 0: groups must come out as 0, 1, 2
	g := NewDepGraph(3)
	g.AddDep(2, 1)
	g.AddDep(1, 0)

	groups := g.Groups()
	if len(groups) != 3 {
		t.Fatalf("groups: %v", groups)
	}
	for want, v := range []int{0, 1, 2} {
		if got := groupOf(groups, v); got != want {
			t.Fatalf("vertex %d in group %d: %v", v, got, groups)
		}
	}
}
