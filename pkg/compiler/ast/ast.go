// Package ast defines the expression and statement trees of the WHILE
// language. Each category is a closed union: the marker methods are
// unexported, so only the types in this package implement them, and
// consumers switch exhaustively over the concrete types.
package ast

import (
	"strconv"
)

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	// String renders the node as fully parenthesized infix source.
	String() string
}

// Arithmetic represents an expression that yields an integer.
type Arithmetic interface {
	Node
	arithNode()
}

// Boolean represents an expression that yields a truth value.
type Boolean interface {
	Node
	boolNode()
}

// Statement represents a standalone unit of execution.
type Statement interface {
	Node
	stmtNode()
}

// Numeral is an integer literal.
type Numeral struct {
	Value int64
}

func (n *Numeral) String() string { return strconv.FormatInt(n.Value, 10) }
func (n *Numeral) arithNode()     {}

// Variable reads a name from the program state.
type Variable struct {
	Name string
}

func (v *Variable) String() string { return v.Name }
func (v *Variable) arithNode()     {}

// Add: Left + Right
type Add struct {
	Left, Right Arithmetic
}

func (a *Add) String() string { return binary(a.Left, "+", a.Right) }
func (a *Add) arithNode()     {}

// Minus: Left - Right
type Minus struct {
	Left, Right Arithmetic
}

func (m *Minus) String() string { return binary(m.Left, "-", m.Right) }
func (m *Minus) arithNode()     {}

// Product: Left * Right
type Product struct {
	Left, Right Arithmetic
}

func (p *Product) String() string { return binary(p.Left, "*", p.Right) }
func (p *Product) arithNode()     {}

// Uminus: -Operand
type Uminus struct {
	Operand Arithmetic
}

func (u *Uminus) String() string { return "(-" + u.Operand.String() + ")" }
func (u *Uminus) arithNode()     {}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
}

func (b *BooleanLiteral) String() string { return strconv.FormatBool(b.Value) }
func (b *BooleanLiteral) boolNode()      {}

// And: Left && Right
type And struct {
	Left, Right Boolean
}

func (a *And) String() string { return binary(a.Left, "&&", a.Right) }
func (a *And) boolNode()      {}

// Or: Left || Right
type Or struct {
	Left, Right Boolean
}

func (o *Or) String() string { return binary(o.Left, "||", o.Right) }
func (o *Or) boolNode()      {}

// Equal: Left = Right
type Equal struct {
	Left, Right Arithmetic
}

func (e *Equal) String() string { return binary(e.Left, "=", e.Right) }
func (e *Equal) boolNode()      {}

// Less: Left < Right
type Less struct {
	Left, Right Arithmetic
}

func (l *Less) String() string { return binary(l.Left, "<", l.Right) }
func (l *Less) boolNode()      {}

// LessEqual: Left <= Right
type LessEqual struct {
	Left, Right Arithmetic
}

func (l *LessEqual) String() string { return binary(l.Left, "<=", l.Right) }
func (l *LessEqual) boolNode()      {}

// Great: Left > Right
type Great struct {
	Left, Right Arithmetic
}

func (g *Great) String() string { return binary(g.Left, ">", g.Right) }
func (g *Great) boolNode()      {}

// GreatEqual: Left >= Right
type GreatEqual struct {
	Left, Right Arithmetic
}

func (g *GreatEqual) String() string { return binary(g.Left, ">=", g.Right) }
func (g *GreatEqual) boolNode()      {}

// Skip is the empty statement.
type Skip struct{}

func (s *Skip) String() string { return "skip" }
func (s *Skip) stmtNode()      {}

func binary(left Node, op string, right Node) string {
	return "(" + left.String() + " " + op + " " + right.String() + ")"
}
