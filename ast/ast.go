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

// ast declares the expression and declaration forms accepted by the checker
// driver. The surface language is deliberately small: just enough structure
// to exercise the permission algebra end to end.
package ast

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
}

var (
	_ Expr = (*Int)(nil)
	_ Expr = (*Bool)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*BinOp)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*New)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*SetField)(nil)
	_ Expr = (*TupleExpr)(nil)
	_ Expr = (*If)(nil)
)

// Integer literal
type Int struct {
	Value int64
}

func (e *Int) ExprName() string { return "Int" }

// Boolean literal
type Bool struct {
	Value bool
}

func (e *Bool) ExprName() string { return "Bool" }

// Variable
type Var struct {
	Name string
}

func (e *Var) ExprName() string { return "Var" }

// Builtin binary operation on integers: `x + y`, `x < y`
type BinOp struct {
	Op          string
	Left, Right Expr
}

func (e *BinOp) ExprName() string { return "BinOp" }

// Let binding: `let x = e in body`
type Let struct {
	Var   string
	Value Expr
	Body  Expr
}

func (e *Let) ExprName() string { return "Let" }

// FieldInit initializes one field of a constructor literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// Constructor literal: `Cons {head = e; tail = f}`
type New struct {
	Datacon string
	Fields  []FieldInit
}

func (e *New) ExprName() string { return "New" }

// Field access: `e.f`
type Select struct {
	Value Expr
	Field string
}

func (e *Select) ExprName() string { return "Select" }

// Field assignment (strong update): `e.f <- v`
type SetField struct {
	Value Expr
	Field string
	New   Expr
}

func (e *SetField) ExprName() string { return "SetField" }

// Tuple construction: `(e1, e2)`
type TupleExpr struct {
	Items []Expr
}

func (e *TupleExpr) ExprName() string { return "Tuple" }

// Conditional: `if c then e1 else e2`
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (e *If) ExprName() string { return "If" }

// Decl is a top-level declaration.
type Decl interface {
	DeclName() string
}

// Value declaration: `val x = e`
type ValDecl struct {
	Name  string
	Value Expr
}

func (d *ValDecl) DeclName() string { return "ValDecl" }
