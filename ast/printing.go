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

package ast

import (
	"strconv"
	"strings"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch e := e.(type) {
	case *Int:
		sb.WriteString(strconv.FormatInt(e.Value, 10))

	case *Bool:
		sb.WriteString(strconv.FormatBool(e.Value))

	case *Var:
		sb.WriteString(e.Name)

	case *BinOp:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, e.Left)
		sb.WriteByte(' ')
		sb.WriteString(e.Op)
		sb.WriteByte(' ')
		exprString(sb, true, e.Right)
		if simple {
			sb.WriteByte(')')
		}

	case *Let:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("let ")
		sb.WriteString(e.Var)
		sb.WriteString(" = ")
		exprString(sb, false, e.Value)
		sb.WriteString(" in ")
		exprString(sb, false, e.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *New:
		sb.WriteString(e.Datacon)
		if len(e.Fields) == 0 {
			return
		}
		sb.WriteString(" {")
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(" = ")
			exprString(sb, false, f.Value)
		}
		sb.WriteByte('}')

	case *Select:
		exprString(sb, true, e.Value)
		sb.WriteByte('.')
		sb.WriteString(e.Field)

	case *SetField:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, e.Value)
		sb.WriteByte('.')
		sb.WriteString(e.Field)
		sb.WriteString(" <- ")
		exprString(sb, false, e.New)
		if simple {
			sb.WriteByte(')')
		}

	case *TupleExpr:
		sb.WriteByte('(')
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, item)
		}
		sb.WriteByte(')')

	case *If:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("if ")
		exprString(sb, false, e.Cond)
		sb.WriteString(" then ")
		exprString(sb, true, e.Then)
		sb.WriteString(" else ")
		exprString(sb, true, e.Else)
		if simple {
			sb.WriteByte(')')
		}
	}
}
