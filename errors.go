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
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/hml-lang/permbox/ast"
)

// ErrorKind classifies checking failures.
type ErrorKind int

const (
	UnboundVariable ErrorKind = iota
	UnknownDatacon
	DuplicateDatacon
	MissingField
	ExtraField
	DuplicateField
	NoSuchField
	NotConcrete
	PermissionMissing
	CannotAssign
	TypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundVariable:
		return "unbound-variable"
	case UnknownDatacon:
		return "unknown-datacon"
	case DuplicateDatacon:
		return "duplicate-datacon"
	case MissingField:
		return "missing-field"
	case ExtraField:
		return "extra-field"
	case DuplicateField:
		return "duplicate-field"
	case NoSuchField:
		return "no-such-field"
	case NotConcrete:
		return "not-concrete"
	case PermissionMissing:
		return "permission-missing"
	case CannotAssign:
		return "cannot-assign"
	case TypeMismatch:
		return "type-mismatch"
	}
	return "unknown"
}

// CheckError is a failure raised while checking a declaration. Errors carry
// the offending expression so diagnostics can show the syntax being checked.
type CheckError struct {
	Kind    ErrorKind
	Expr    ast.Expr
	Message string
}

func (e *CheckError) Error() string {
	if e.Expr == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s (in %s)", e.Kind, e.Message, ast.ExprString(e.Expr))
}

func checkErrorf(kind ErrorKind, expr ast.Expr, format string, args ...interface{}) *CheckError {
	return &CheckError{Kind: kind, Expr: expr, Message: fmt.Sprintf(format, args...)}
}

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	kindStyle  = color.New(color.FgYellow, color.Bold)
	exprStyle  = color.New(color.FgCyan)
)

// FormatError renders a checking failure for terminal output.
func FormatError(err *CheckError) string {
	var sb strings.Builder
	sb.WriteString(errorStyle.Sprint("error"))
	sb.WriteString(kindStyle.Sprintf("[%v]", err.Kind))
	sb.WriteString(": ")
	sb.WriteString(err.Message)
	if err.Expr != nil {
		sb.WriteString("\n  in: ")
		sb.WriteString(exprStyle.Sprint(ast.ExprString(err.Expr)))
	}
	return sb.String()
}
