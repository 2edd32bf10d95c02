package parser

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
)

// resolveAtomics turns every leaf token into its leaf node in one forward
// scan. Slots that are already reduced are skipped.
func (r *run) resolveAtomics(seq *Sequence) error {
	for i := 0; i < seq.Len(); i++ {
		n, err := seq.Get(i)
		if err != nil {
			return err
		}
		if n.Tag != TagToken {
			continue
		}
		if err := r.resolveAtom(seq, i); err != nil {
			return err
		}
	}
	return nil
}

// resolveAtom converts the token at i if it is a numeral, identifier,
// boolean literal or skip. Other tokens are left for later passes.
func (r *run) resolveAtom(seq *Sequence, i int) error {
	n, err := seq.Get(i)
	if err != nil {
		return err
	}
	if n.Tag != TagToken {
		return newError(ErrUnexpectedNodeKind, "atom", i, "expected a token, got %s %s", n.Tag, n)
	}

	var leaf Node
	switch n.Token.Kind {
	case lexer.KindNumeral:
		leaf = ArithNode(&ast.Numeral{Value: n.Token.Value})
	case lexer.KindIdentifier:
		leaf = ArithNode(&ast.Variable{Name: n.Token.Name})
	case lexer.KindTrue:
		leaf = BoolNode(&ast.BooleanLiteral{Value: true})
	case lexer.KindFalse:
		leaf = BoolNode(&ast.BooleanLiteral{Value: false})
	case lexer.KindSkip:
		leaf = StatementNode(&ast.Skip{})
	default:
		return nil
	}
	return seq.replace(i, leaf)
}

func isLeaf(k lexer.Kind) bool {
	switch k {
	case lexer.KindNumeral, lexer.KindIdentifier, lexer.KindTrue, lexer.KindFalse, lexer.KindSkip:
		return true
	}
	return false
}
