// Package parser reduces a token stream into a single typed expression by
// rewriting a Sequence in place. Passes run in a fixed order (atomic,
// unary, arithmetic, boolean) and each one is a single left-to-right scan.
//
// Operators bind strictly in the order they are met: 2 + 3 * 4 is
// (2 + 3) * 4. Parentheses are the only way to group otherwise.
package parser

import (
	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds parenthesis nesting.
const DefaultMaxDepth = 256

// Parser holds reduction settings. It keeps no per-parse state and is safe
// for concurrent use.
type Parser struct {
	logger   *zap.Logger
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the trace sink. Every reduction is logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxDepth bounds parenthesis nesting; n <= 0 removes the bound.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// ReduceArithmetic reduces tokens with the default parser.
func ReduceArithmetic(tokens []lexer.Token) (ast.Arithmetic, error) {
	return defaultParser.ReduceArithmetic(tokens)
}

// ReduceBoolean reduces tokens with the default parser.
func ReduceBoolean(tokens []lexer.Token) (ast.Boolean, error) {
	return defaultParser.ReduceBoolean(tokens)
}

// ReduceArithmetic runs atomic, unary and arithmetic passes and returns the
// single arithmetic expression left in the sequence.
func (p *Parser) ReduceArithmetic(tokens []lexer.Token) (ast.Arithmetic, error) {
	n, err := p.reduce(tokens, modeArithmetic, TagArithmetic)
	if err != nil {
		return nil, err
	}
	return n.Arith, nil
}

// ReduceBoolean runs all four passes and returns the single boolean
// expression left in the sequence.
func (p *Parser) ReduceBoolean(tokens []lexer.Token) (ast.Boolean, error) {
	n, err := p.reduce(tokens, modeBoolean, TagBoolean)
	if err != nil {
		return nil, err
	}
	return n.Bool, nil
}

func (p *Parser) reduce(tokens []lexer.Token, goal mode, want Tag) (Node, error) {
	seq := NewSequence(tokens)
	r := &run{p: p, goal: goal, log: p.logger}
	if err := r.pipeline(seq); err != nil {
		return Node{}, err
	}
	return single(seq, want)
}

// single checks that the sequence reduced to one node of category want.
func single(seq *Sequence, want Tag) (Node, error) {
	switch seq.Len() {
	case 0:
		return Node{}, newError(ErrUnexpectedNodeKind, "", 0, "empty expression, want %s", want)
	case 1:
	default:
		n, _ := seq.Get(1)
		return Node{}, newError(ErrUnexpectedNodeKind, "", 1, "unreduced %s %s after the expression", n.Tag, n)
	}
	n, err := seq.Get(0)
	if err != nil {
		return Node{}, err
	}
	if n.Tag != want {
		return Node{}, newError(ErrTypeMismatch, "", 0, "got %s %s, want %s", n.Tag, n, want)
	}
	return n, nil
}

// mode selects the pass order for a (sub)sequence.
type mode uint8

const (
	modeArithmetic mode = iota // atomic, unary, arithmetic
	modeBoolean                // atomic, unary, arithmetic, boolean
	modeGroup                  // a primary-position group: the goal's order, either category
)

func (m mode) String() string {
	switch m {
	case modeArithmetic:
		return "arithmetic"
	case modeBoolean:
		return "boolean"
	}
	return "group"
}

// run is the state of one reduction: the goal of the outermost call and
// the current parenthesis depth.
type run struct {
	p     *Parser
	goal  mode
	depth int
	log   *zap.Logger
}

func (r *run) pipeline(seq *Sequence) error {
	if err := r.resolveAtomics(seq); err != nil {
		return err
	}
	if err := r.resolveUnary(seq); err != nil {
		return err
	}
	if err := r.reduceArithmetic(seq); err != nil {
		return err
	}
	if r.goal == modeBoolean {
		if err := r.reduceBoolean(seq); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) traceReduction(pass string, op lexer.Token, index int, n Node) {
	if ce := r.log.Check(zap.DebugLevel, "reduced"); ce != nil {
		ce.Write(
			zap.String("pass", pass),
			zap.Stringer("op", op.Kind),
			zap.Uint32("line", op.Line),
			zap.Int("index", index),
			zap.Int("depth", r.depth),
			zap.Stringer("node", n),
		)
	}
}
