package types

import (
	"github.com/benbjohnson/immutable"
)

var emptyList = immutable.NewList()

var EmptyPermList = PermList{emptyList}

// PermList is an immutable list of the permissions currently held by a point.
type PermList struct {
	l *immutable.List
}

func NewPermList() PermList { return PermList{emptyList} }

// Create a PermList with a single permission.
func SingletonPermList(t Type) PermList {
	return PermList{emptyList.Append(t)}
}

// Create a PermList from a slice of permissions.
func PermListOf(ts ...Type) PermList {
	b := NewPermListBuilder()
	for _, t := range ts {
		b.Append(t)
	}
	return b.Build()
}

func (l PermList) Len() int       { return l.l.Len() }
func (l PermList) Get(i int) Type { return l.l.Get(i).(Type) }

func (l PermList) Append(t Type) PermList { return PermList{l.l.Append(t)} }

func (l PermList) Set(i int, t Type) PermList { return PermList{l.l.Set(i, t)} }

// Remove the permission at index i.
func (l PermList) Remove(i int) PermList {
	b := immutable.NewListBuilder(emptyList)
	for j := 0; j < l.l.Len(); j++ {
		if j != i {
			b.Append(l.l.Get(j))
		}
	}
	return PermList{b.List()}
}

// Slice returns the sub-list between start (inclusive) and end (exclusive).
func (l PermList) Slice(start, end int) PermList { return PermList{l.l.Slice(start, end)} }

// If f returns false, iteration will be stopped.
func (l PermList) Range(f func(int, Type) bool) {
	iter := l.l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Type)) {
			return
		}
	}
}

// IndexOf returns the index of the first permission identical to t, or -1.
// Identity is interface equality: all non-trivial terms are pointers.
func (l PermList) IndexOf(t Type) int {
	found := -1
	l.Range(func(i int, u Type) bool {
		if u == t {
			found = i
			return false
		}
		return true
	})
	return found
}

// Slice out the permissions into a plain slice.
func (l PermList) ToSlice() []Type {
	out := make([]Type, 0, l.Len())
	l.Range(func(_ int, t Type) bool {
		out = append(out, t)
		return true
	})
	return out
}

func (l PermList) Builder() PermListBuilder {
	imm := l.l
	if imm == nil {
		imm = emptyList
	}
	return PermListBuilder{immutable.NewListBuilder(imm)}
}

type PermListBuilder struct {
	b *immutable.ListBuilder
}

func NewPermListBuilder() PermListBuilder {
	return PermListBuilder{immutable.NewListBuilder(emptyList)}
}

func (b PermListBuilder) Len() int          { return b.b.Len() }
func (b PermListBuilder) Append(t Type)     { b.b.Append(t) }
func (b PermListBuilder) Set(i int, t Type) { b.b.Set(i, t) }
func (b PermListBuilder) Build() PermList   { return PermList{b.b.List()} }
