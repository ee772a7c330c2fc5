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

package types

import (
	"strconv"
	"strings"
	"sync"
)

// PointNamer resolves a point to a human-readable name, typically implemented
// by the environment. A nil namer prints bare point ids.
type PointNamer interface {
	PointName(Point) string
}

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{}
	},
}

type typePrinter struct {
	sb     strings.Builder
	namer  PointNamer
	binder []string
}

func newTypePrinter(namer PointNamer) *typePrinter {
	p := printerPool.Get().(*typePrinter)
	p.namer = namer
	return p
}

func (p *typePrinter) release() {
	p.sb.Reset()
	p.namer = nil
	p.binder = p.binder[:0]
	printerPool.Put(p)
}

// TypeString returns a string representation of a type or permission.
func TypeString(t Type) string { return TypeStringNamed(t, nil) }

// TypeStringNamed returns a string representation of a type or permission,
// resolving points through the given namer.
func TypeStringNamed(t Type, namer PointNamer) string {
	p := newTypePrinter(namer)
	typeString(p, false, t)
	s := p.sb.String()
	p.release()
	return s
}

func (p *typePrinter) pointName(pt Point) string {
	if p.namer != nil {
		if name := p.namer.PointName(pt); name != "" {
			return name
		}
	}
	return "!" + strconv.Itoa(int(pt))
}

func (p *typePrinter) boundName(index int) string {
	if index < len(p.binder) {
		return p.binder[len(p.binder)-1-index]
	}
	return "!" + strconv.Itoa(index)
}

// typeString writes t to the printer. When simple is set, types which would
// parse ambiguously as arguments are parenthesized.
func typeString(p *typePrinter, simple bool, t Type) {
	switch t := t.(type) {
	case Unknown:
		p.sb.WriteString("unknown")

	case Dynamic:
		p.sb.WriteString("dynamic")

	case Empty:
		p.sb.WriteString("empty")

	case *Bound:
		p.sb.WriteString(p.boundName(t.Index))

	case *Open:
		p.sb.WriteString(p.pointName(t.Point))

	case *Q:
		if simple {
			p.sb.WriteByte('(')
		}
		name := t.Binding.Name
		if name == "" {
			name = "a" + strconv.Itoa(len(p.binder))
		}
		p.sb.WriteString(t.Quant.String())
		p.sb.WriteByte(' ')
		p.sb.WriteString(name)
		p.sb.WriteString(". ")
		p.binder = append(p.binder, name)
		typeString(p, false, t.Body)
		p.binder = p.binder[:len(p.binder)-1]
		if simple {
			p.sb.WriteByte(')')
		}

	case *Arrow:
		if simple {
			p.sb.WriteByte('(')
		}
		if len(t.Args) == 1 {
			typeString(p, true, t.Args[0])
		} else {
			p.sb.WriteByte('(')
			for i, arg := range t.Args {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				typeString(p, false, arg)
			}
			p.sb.WriteByte(')')
		}
		p.sb.WriteString(" -> ")
		typeString(p, false, t.Return)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Tuple:
		p.sb.WriteByte('(')
		for i, c := range t.Components {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, c)
		}
		p.sb.WriteByte(')')

	case *App:
		if t.Data == nil {
			p.sb.WriteString("<invalid>")
			return
		}
		if len(t.Args) == 0 {
			p.sb.WriteString(t.Data.Name)
			return
		}
		if simple {
			p.sb.WriteByte('(')
		}
		p.sb.WriteString(t.Data.Name)
		for _, arg := range t.Args {
			p.sb.WriteByte(' ')
			typeString(p, true, arg)
		}
		if simple {
			p.sb.WriteByte(')')
		}

	case *Concrete:
		p.sb.WriteString(t.Datacon)
		if len(t.Fields) == 0 {
			return
		}
		p.sb.WriteString(" {")
		for i, f := range t.Fields {
			if i > 0 {
				p.sb.WriteString("; ")
			}
			p.sb.WriteString(f.Name)
			p.sb.WriteString(" = ")
			typeString(p, false, f.Type)
		}
		p.sb.WriteByte('}')

	case *Singleton:
		p.sb.WriteByte('=')
		p.sb.WriteString(p.pointName(t.Point))

	case *Anchored:
		p.sb.WriteString(p.pointName(t.Point))
		p.sb.WriteString(" @ ")
		typeString(p, true, t.What)

	case *Star:
		if simple {
			p.sb.WriteByte('(')
		}
		typeString(p, false, t.Left)
		p.sb.WriteString(" * ")
		typeString(p, false, t.Right)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Bar:
		p.sb.WriteByte('(')
		typeString(p, false, t.Type)
		p.sb.WriteString(" | ")
		typeString(p, false, t.Perm)
		p.sb.WriteByte(')')

	default:
		p.sb.WriteString("<invalid>")
	}
}
