// Package ast defines the syntax tree produced by the cookable parser.
//
// Expressions and statements are closed sets: every node type implements
// exactly one of Expr or Stmt through an unexported marker method, and the
// interpreter switches over the concrete types.
package ast

import (
	"fmt"
	"strings"

	"github.com/cookable-lang/cookable/internal/lexer"
)

// Node is the base interface for all syntax tree nodes
type Node interface {
	// GetLine returns the 1-based source line the node starts on
	GetLine() int
	// String renders the node in a compact source-like form
	String() string
}

// Expr represents all expression nodes
type Expr interface {
	Node
	exprNode()
}

// Stmt represents all statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// ====== Expressions ======

// Ident is a bare variable reference.
type Ident struct {
	Name string
	Line int
}

// Number is an integer literal. Negative literals are folded by the parser.
type Number struct {
	Value int64
	Line  int
}

// StringLiteral is a double-quoted literal.
type StringLiteral struct {
	Value string
	Line  int
}

// Boolean is `sigma` or `ohio`.
type Boolean struct {
	Value bool
	Line  int
}

// List is a `[a, b, c]` literal.
type List struct {
	Elements []Expr
	Line     int
}

// FunctionCall is `name(args)` or, with a receiver, `recv.name(args)`.
type FunctionCall struct {
	Name     string
	Receiver Expr // nil for receiver-less calls
	Args     []Expr
	Line     int
}

// BinOp is a binary operation.
type BinOp struct {
	Left  Expr
	Op    lexer.TokenType
	Right Expr
	Line  int
}

// NewInstance is `new Class(args)`.
type NewInstance struct {
	ClassName string
	Args      []Expr
	Line      int
}

// ObjectValue is a field read `recv.name`.
type ObjectValue struct {
	Receiver Expr
	Name     string
	Line     int
}

func (e *Ident) GetLine() int         { return e.Line }
func (e *Number) GetLine() int        { return e.Line }
func (e *StringLiteral) GetLine() int { return e.Line }
func (e *Boolean) GetLine() int       { return e.Line }
func (e *List) GetLine() int          { return e.Line }
func (e *FunctionCall) GetLine() int  { return e.Line }
func (e *BinOp) GetLine() int         { return e.Line }
func (e *NewInstance) GetLine() int   { return e.Line }
func (e *ObjectValue) GetLine() int   { return e.Line }

func (*Ident) exprNode()         {}
func (*Number) exprNode()        {}
func (*StringLiteral) exprNode() {}
func (*Boolean) exprNode()       {}
func (*List) exprNode()          {}
func (*FunctionCall) exprNode()  {}
func (*BinOp) exprNode()         {}
func (*NewInstance) exprNode()   {}
func (*ObjectValue) exprNode()   {}

func (e *Ident) String() string         { return e.Name }
func (e *Number) String() string        { return fmt.Sprintf("%d", e.Value) }
func (e *StringLiteral) String() string { return fmt.Sprintf("%q", e.Value) }

func (e *Boolean) String() string {
	if e.Value {
		return "sigma"
	}
	return "ohio"
}

func (e *List) String() string { return "[" + joinExprs(e.Elements) + "]" }

func (e *FunctionCall) String() string {
	if e.Receiver != nil {
		return fmt.Sprintf("%s.%s(%s)", e.Receiver, e.Name, joinExprs(e.Args))
	}
	return fmt.Sprintf("%s(%s)", e.Name, joinExprs(e.Args))
}

func (e *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, OperatorSymbol(e.Op), e.Right)
}

func (e *NewInstance) String() string {
	return fmt.Sprintf("new %s(%s)", e.ClassName, joinExprs(e.Args))
}

func (e *ObjectValue) String() string { return fmt.Sprintf("%s.%s", e.Receiver, e.Name) }

// OperatorSymbol returns the source spelling of a binary operator token.
func OperatorSymbol(op lexer.TokenType) string {
	switch op {
	case lexer.TokenPlus:
		return "+"
	case lexer.TokenMinus:
		return "-"
	case lexer.TokenMul:
		return "*"
	case lexer.TokenDiv:
		return "/"
	case lexer.TokenEq:
		return "=="
	case lexer.TokenGt:
		return ">"
	case lexer.TokenLt:
		return "<"
	}
	return op.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// ====== Statements ======

// Function declares a parameterless function (or a method inside a class).
type Function struct {
	Name string
	Body []Stmt
	Line int
}

// Class declares a class; it always contains a `__edge__` constructor.
type Class struct {
	Name    string
	Methods []*Function
	Line    int
}

// VariableAssign is `name is value` or `recv.name is value`.
type VariableAssign struct {
	Name     string
	Receiver Expr // nil for plain variables
	Value    Expr
	Line     int
}

// While loops while Cond is truthy.
type While struct {
	Cond Expr
	Body []Stmt
	Line int
}

// If has an optional else branch; Else is nil when there is no `cap`.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Line int
}

// Expression evaluates a value for its side effects.
type Expression struct {
	Value Expr
	Line  int
}

// Return is `blud value`.
type Return struct {
	Value Expr
	Line  int
}

// Continue is `ghost`.
type Continue struct {
	Line int
}

// Import is `gyatt library`.
type Import struct {
	Library string
	Line    int
}

// ForLoop iterates over a list literal.
type ForLoop struct {
	Iterator   string
	Collection *List
	Body       []Stmt
	Line       int
}

func (s *Function) GetLine() int       { return s.Line }
func (s *Class) GetLine() int          { return s.Line }
func (s *VariableAssign) GetLine() int { return s.Line }
func (s *While) GetLine() int          { return s.Line }
func (s *If) GetLine() int             { return s.Line }
func (s *Expression) GetLine() int     { return s.Line }
func (s *Return) GetLine() int         { return s.Line }
func (s *Continue) GetLine() int       { return s.Line }
func (s *Import) GetLine() int         { return s.Line }
func (s *ForLoop) GetLine() int        { return s.Line }

func (*Function) stmtNode()       {}
func (*Class) stmtNode()          {}
func (*VariableAssign) stmtNode() {}
func (*While) stmtNode()          {}
func (*If) stmtNode()             {}
func (*Expression) stmtNode()     {}
func (*Return) stmtNode()         {}
func (*Continue) stmtNode()       {}
func (*Import) stmtNode()         {}
func (*ForLoop) stmtNode()        {}

func (s *Function) String() string {
	return fmt.Sprintf("cookable %s() %sslay", s.Name, blockString(s.Body))
}

func (s *Class) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pookie %s() ", s.Name)
	for _, m := range s.Methods {
		sb.WriteString(m.String())
		sb.WriteString(" ")
	}
	sb.WriteString("slay")
	return sb.String()
}

func (s *VariableAssign) String() string {
	if s.Receiver != nil {
		return fmt.Sprintf("%s.%s is %s", s.Receiver, s.Name, s.Value)
	}
	return fmt.Sprintf("%s is %s", s.Name, s.Value)
}

func (s *While) String() string {
	return fmt.Sprintf("skibidi (%s) do %sslay", s.Cond, blockString(s.Body))
}

func (s *If) String() string {
	out := fmt.Sprintf("suspect (%s) then %s", s.Cond, blockString(s.Then))
	if s.Else != nil {
		out += "cap " + blockString(s.Else)
	}
	return out + "slay"
}

func (s *Expression) String() string { return s.Value.String() }
func (s *Return) String() string     { return "blud " + s.Value.String() }
func (s *Continue) String() string   { return "ghost" }
func (s *Import) String() string     { return "gyatt " + s.Library }

func (s *ForLoop) String() string {
	return fmt.Sprintf("goon (%s in %s) do %sslay", s.Iterator, s.Collection, blockString(s.Body))
}

func blockString(body []Stmt) string {
	var sb strings.Builder
	for _, stmt := range body {
		sb.WriteString(stmt.String())
		sb.WriteString(" ")
	}
	return sb.String()
}
