package parser

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
)

// Tag identifies which field of a Node is populated.
type Tag uint8

const (
	TagToken Tag = iota
	TagArithmetic
	TagBoolean
	TagStatement
)

func (t Tag) String() string {
	switch t {
	case TagToken:
		return "token"
	case TagArithmetic:
		return "arithmetic expression"
	case TagBoolean:
		return "boolean expression"
	case TagStatement:
		return "statement"
	}
	return "unknown"
}

// Node is one slot of a Sequence: either a lexical token or a completed
// tree of one of the three categories. Exactly one field matching Tag is
// set, and slots only change by whole-node replacement.
type Node struct {
	Tag   Tag
	Token lexer.Token
	Arith ast.Arithmetic
	Bool  ast.Boolean
	Stmt  ast.Statement
}

func TokenNode(t lexer.Token) Node       { return Node{Tag: TagToken, Token: t} }
func ArithNode(a ast.Arithmetic) Node    { return Node{Tag: TagArithmetic, Arith: a} }
func BoolNode(b ast.Boolean) Node        { return Node{Tag: TagBoolean, Bool: b} }
func StatementNode(s ast.Statement) Node { return Node{Tag: TagStatement, Stmt: s} }

// Is reports whether the node is a token of kind k.
func (n Node) Is(k lexer.Kind) bool {
	return n.Tag == TagToken && n.Token.Kind == k
}

func (n Node) String() string {
	switch n.Tag {
	case TagArithmetic:
		return n.Arith.String()
	case TagBoolean:
		return n.Bool.String()
	case TagStatement:
		return n.Stmt.String()
	}
	return n.Token.String()
}

// Sequence is the mutable working state of a reduction. All passes go
// through Get, Remove, Insert and Len; an index outside the sequence is
// reported as ErrIndexOutOfRange.
type Sequence struct {
	nodes []Node
}

// NewSequence wraps a token stream, one slot per token.
func NewSequence(tokens []lexer.Token) *Sequence {
	nodes := make([]Node, len(tokens))
	for i, t := range tokens {
		nodes[i] = TokenNode(t)
	}
	return &Sequence{nodes: nodes}
}

func (s *Sequence) Len() int {
	return len(s.nodes)
}

func (s *Sequence) Get(i int) (Node, error) {
	if i < 0 || i >= len(s.nodes) {
		return Node{}, outOfRange(i, len(s.nodes))
	}
	return s.nodes[i], nil
}

func (s *Sequence) Remove(i int) (Node, error) {
	if i < 0 || i >= len(s.nodes) {
		return Node{}, outOfRange(i, len(s.nodes))
	}
	n := s.nodes[i]
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	return n, nil
}

// Insert places n at index i, shifting later slots right. i may equal Len.
func (s *Sequence) Insert(i int, n Node) error {
	if i < 0 || i > len(s.nodes) {
		return outOfRange(i, len(s.nodes))
	}
	s.nodes = append(s.nodes, Node{})
	copy(s.nodes[i+1:], s.nodes[i:])
	s.nodes[i] = n
	return nil
}

// replace swaps the slot at i for n.
func (s *Sequence) replace(i int, n Node) error {
	if _, err := s.Remove(i); err != nil {
		return err
	}
	return s.Insert(i, n)
}
