package parser

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
)

// reduceArithmetic binds + - * in a single left-to-right scan, each to the
// neighbours it has when the scan reaches it. There are no precedence
// tiers: 2 + 3 * 4 reduces to (2 + 3) * 4. Parenthesized groups met in
// operand position are reduced as they are reached.
func (r *run) reduceArithmetic(seq *Sequence) error {
	for i := 0; i < seq.Len(); {
		n, err := seq.Get(i)
		if err != nil {
			return err
		}
		if n.Tag != TagToken {
			i++
			continue
		}

		switch k := n.Token.Kind; k {
		case lexer.KindPlus, lexer.KindMinus, lexer.KindMultiply:
			if err := r.bind(seq, i, TagArithmetic, "arithmetic", arithmetic(k)); err != nil {
				return err
			}
		case lexer.KindOpenParen:
			if err := r.extractGroup(seq, i, modeGroup); err != nil {
				return err
			}
			i++
		case lexer.KindCloseParen:
			return newError(ErrUnbalancedParentheses, ")", i, "no matching opening parenthesis")
		default:
			i++
		}
	}
	return nil
}

func arithmetic(k lexer.Kind) combineFunc {
	return func(left, right Node) Node {
		l, r := left.Arith, right.Arith
		switch k {
		case lexer.KindPlus:
			return ArithNode(&ast.Add{Left: l, Right: r})
		case lexer.KindMinus:
			return ArithNode(&ast.Minus{Left: l, Right: r})
		default:
			return ArithNode(&ast.Product{Left: l, Right: r})
		}
	}
}
