package parser

import (
	"github.com/agenthands/while/pkg/compiler/lexer"
)

// combineFunc builds the replacement for an operator and its two operands.
type combineFunc func(left, right Node) Node

// bind reduces the binary operator at index i with its immediate
// neighbours. Both operands must be of category operand; the right one is
// resolved on the spot if it is still a leaf token, a unary minus or a
// parenthesized group. The three slots are replaced by combine's result at
// i-1, so the caller resumes its scan at i.
func (r *run) bind(seq *Sequence, i int, operand Tag, pass string, combine combineFunc) error {
	opNode, err := seq.Get(i)
	if err != nil {
		return err
	}
	op := opNode.Token
	name := op.Kind.String()

	if i == 0 {
		return newError(ErrMissingLeftOperand, name, i, "operator at start of expression")
	}
	left, err := seq.Get(i - 1)
	if err != nil {
		return err
	}
	if left.Tag == TagToken {
		return newError(ErrMissingLeftOperand, name, i, "preceded by %s", left)
	}
	if left.Tag != operand {
		return newError(ErrTypeMismatch, name, i, "left operand is %s %s, want %s", left.Tag, left, operand)
	}

	if i+1 >= seq.Len() {
		return newError(ErrMissingRightOperand, name, i, "operator at end of expression")
	}
	right, err := r.operandAt(seq, i+1, operand, name, ErrMissingRightOperand)
	if err != nil {
		return err
	}

	for k := 0; k < 3; k++ {
		if _, err := seq.Remove(i - 1); err != nil {
			return err
		}
	}
	result := combine(left, right)
	if err := seq.Insert(i-1, result); err != nil {
		return err
	}
	r.traceReduction(pass, op, i-1, result)
	return nil
}

// operandAt resolves the slot at j, the operand right of the operator at
// j-1, into a node of category want and returns it. The slot keeps the
// resolved node. An operator token where the operand should be is reported
// as missing.
func (r *run) operandAt(seq *Sequence, j int, want Tag, op string, missing error) (Node, error) {
	n, err := seq.Get(j)
	if err != nil {
		return Node{}, err
	}

	if n.Tag == TagToken {
		k := n.Token.Kind
		switch {
		case k == lexer.KindOpenParen && want == TagArithmetic:
			err = r.extractGroup(seq, j, modeArithmetic)
		case isLeaf(k):
			err = r.resolveAtom(seq, j)
		case k == lexer.KindMinus && want == TagArithmetic:
			err = r.negate(seq, j)
		default:
			return Node{}, newError(missing, op, j-1, "followed by %s", n)
		}
		if err != nil {
			return Node{}, err
		}
		if n, err = seq.Get(j); err != nil {
			return Node{}, err
		}
	}

	if n.Tag != want {
		return Node{}, newError(ErrTypeMismatch, op, j-1, "right operand is %s %s, want %s", n.Tag, n, want)
	}
	return n, nil
}
