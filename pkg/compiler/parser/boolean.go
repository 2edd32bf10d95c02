package parser

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
)

// reduceBoolean binds comparisons and logical connectives in one
// left-to-right scan. Comparisons take arithmetic operands and connectives
// take boolean ones. When the right side of a connective is the left
// operand of a comparison, that comparison is reduced first so the
// connective receives a boolean.
func (r *run) reduceBoolean(seq *Sequence) error {
	for i := 0; i < seq.Len(); {
		n, err := seq.Get(i)
		if err != nil {
			return err
		}
		if n.Tag != TagToken {
			i++
			continue
		}

		switch k := n.Token.Kind; {
		case k.IsComparison():
			if err := r.bind(seq, i, TagArithmetic, "boolean", comparison(k)); err != nil {
				return err
			}
		case k == lexer.KindAnd || k == lexer.KindOr:
			if err := r.comparisonAhead(seq, i+1); err != nil {
				return err
			}
			if err := r.bind(seq, i, TagBoolean, "boolean", connective(k)); err != nil {
				return err
			}
		case k == lexer.KindCloseParen:
			return newError(ErrUnbalancedParentheses, ")", i, "no matching opening parenthesis")
		default:
			i++
		}
	}
	return nil
}

// comparisonAhead reduces the comparison whose left operand sits at j, if
// there is one.
func (r *run) comparisonAhead(seq *Sequence, j int) error {
	if j+1 >= seq.Len() {
		return nil
	}
	operand, err := seq.Get(j)
	if err != nil {
		return err
	}
	next, err := seq.Get(j + 1)
	if err != nil {
		return err
	}
	if operand.Tag != TagArithmetic || next.Tag != TagToken || !next.Token.Kind.IsComparison() {
		return nil
	}
	return r.bind(seq, j+1, TagArithmetic, "boolean", comparison(next.Token.Kind))
}

func comparison(k lexer.Kind) combineFunc {
	return func(left, right Node) Node {
		l, r := left.Arith, right.Arith
		switch k {
		case lexer.KindEqual:
			return BoolNode(&ast.Equal{Left: l, Right: r})
		case lexer.KindLess:
			return BoolNode(&ast.Less{Left: l, Right: r})
		case lexer.KindLessEqual:
			return BoolNode(&ast.LessEqual{Left: l, Right: r})
		case lexer.KindGreater:
			return BoolNode(&ast.Great{Left: l, Right: r})
		default:
			return BoolNode(&ast.GreatEqual{Left: l, Right: r})
		}
	}
}

func connective(k lexer.Kind) combineFunc {
	return func(left, right Node) Node {
		if k == lexer.KindAnd {
			return BoolNode(&ast.And{Left: left.Bool, Right: right.Bool})
		}
		return BoolNode(&ast.Or{Left: left.Bool, Right: right.Bool})
	}
}
