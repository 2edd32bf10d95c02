package parser

import (
	"github.com/agenthands/while/pkg/compiler/lexer"
	"go.uber.org/zap"
)

// extractGroup reduces the parenthesized group opening at index open. The
// whole block from the opener to its matching closer is moved out into a
// fresh Sequence, reduced there, and the single resulting node is spliced
// back in at open. On return the slot at open holds the reduced group.
func (r *run) extractGroup(seq *Sequence, open int, m mode) error {
	n, err := seq.Get(open)
	if err != nil {
		return err
	}
	if !n.Is(lexer.KindOpenParen) {
		return newError(ErrUnexpectedNodeKind, "(", open, "expected an opening parenthesis, got %s", n)
	}

	closeAt := -1
	depth := 1
	for j := open + 1; j < seq.Len(); j++ {
		c, err := seq.Get(j)
		if err != nil {
			return err
		}
		if c.Is(lexer.KindOpenParen) {
			depth++
		} else if c.Is(lexer.KindCloseParen) {
			depth--
			if depth == 0 {
				closeAt = j
				break
			}
		}
	}
	if closeAt < 0 {
		return newError(ErrUnbalancedParentheses, "(", open, "no matching closing parenthesis")
	}
	if limit := r.p.maxDepth; limit > 0 && r.depth+1 > limit {
		return newError(ErrMalformedSubexpression, "(", open, "nesting deeper than %d", limit)
	}

	removed := closeAt - open + 1
	inner := &Sequence{nodes: make([]Node, 0, removed-2)}
	for k := 0; k < removed; k++ {
		c, err := seq.Remove(open)
		if err != nil {
			return err
		}
		if k > 0 && k < removed-1 {
			inner.nodes = append(inner.nodes, c)
		}
	}

	child := &run{p: r.p, goal: r.childGoal(m), depth: r.depth + 1, log: r.log}
	if err := child.pipeline(inner); err != nil {
		return err
	}

	result, err := r.groupResult(inner, open, m)
	if err != nil {
		return err
	}

	if ce := r.log.Check(zap.DebugLevel, "group reduced"); ce != nil {
		ce.Write(
			zap.Stringer("mode", m),
			zap.Int("index", open),
			zap.Int("removed", removed),
			zap.Int("depth", child.depth),
			zap.Stringer("node", result),
		)
	}
	return seq.Insert(open, result)
}

// childGoal is the pass order a group runs with. A primary-position group
// inherits the goal of the enclosing reduction.
func (r *run) childGoal(m mode) mode {
	if m == modeGroup {
		return r.goal
	}
	return m
}

func (r *run) groupResult(inner *Sequence, open int, m mode) (Node, error) {
	if inner.Len() != 1 {
		return Node{}, newError(ErrMalformedSubexpression, "(", open, "group reduced to %d nodes, want 1", inner.Len())
	}
	n, err := inner.Get(0)
	if err != nil {
		return Node{}, err
	}

	ok := false
	switch m {
	case modeArithmetic:
		ok = n.Tag == TagArithmetic
	case modeGroup:
		ok = n.Tag == TagArithmetic || n.Tag == TagBoolean
	}
	if !ok {
		return Node{}, newError(ErrMalformedSubexpression, "(", open, "group reduced to %s %s in %s context", n.Tag, n, m)
	}
	return n, nil
}
