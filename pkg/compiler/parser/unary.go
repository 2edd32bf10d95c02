package parser

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
)

// resolveUnary binds every prefix minus to the operand right after it.
func (r *run) resolveUnary(seq *Sequence) error {
	for i := 0; i < seq.Len(); i++ {
		n, err := seq.Get(i)
		if err != nil {
			return err
		}
		if !n.Is(lexer.KindMinus) {
			continue
		}
		unary, err := unaryPosition(seq, i)
		if err != nil {
			return err
		}
		if !unary {
			continue
		}
		if err := r.negate(seq, i); err != nil {
			return err
		}
	}
	return nil
}

// unaryPosition reports whether the minus at i is a prefix operator: it
// opens the sequence, or follows an operator, keyword or opening
// parenthesis. After a completed operand or a closing parenthesis it is a
// binary minus.
func unaryPosition(seq *Sequence, i int) (bool, error) {
	if i == 0 {
		return true, nil
	}
	prev, err := seq.Get(i - 1)
	if err != nil {
		return false, err
	}
	if prev.Tag != TagToken {
		return false, nil
	}
	k := prev.Token.Kind
	return !isLeaf(k) && k != lexer.KindCloseParen, nil
}

// negate replaces the minus at i and its operand with one Uminus node.
func (r *run) negate(seq *Sequence, i int) error {
	opNode, err := seq.Get(i)
	if err != nil {
		return err
	}
	if i+1 >= seq.Len() {
		return newError(ErrMissingOperand, "unary -", i, "nothing to negate")
	}

	operand, err := r.operandAt(seq, i+1, TagArithmetic, "unary -", ErrMissingOperand)
	if err != nil {
		return err
	}

	for k := 0; k < 2; k++ {
		if _, err := seq.Remove(i); err != nil {
			return err
		}
	}
	result := ArithNode(&ast.Uminus{Operand: operand.Arith})
	if err := seq.Insert(i, result); err != nil {
		return err
	}
	r.traceReduction("unary", opNode.Token, i, result)
	return nil
}
