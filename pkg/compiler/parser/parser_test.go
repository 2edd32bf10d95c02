package parser_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
	"github.com/agenthands/while/pkg/compiler/parser"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	plus   = lexer.Tok(lexer.KindPlus)
	minus  = lexer.Tok(lexer.KindMinus)
	times  = lexer.Tok(lexer.KindMultiply)
	divide = lexer.Tok(lexer.KindDivide)
	open   = lexer.Tok(lexer.KindOpenParen)
	closep = lexer.Tok(lexer.KindCloseParen)
	and    = lexer.Tok(lexer.KindAnd)
	or     = lexer.Tok(lexer.KindOr)
	not    = lexer.Tok(lexer.KindNot)
	eq     = lexer.Tok(lexer.KindEqual)
	lt     = lexer.Tok(lexer.KindLess)
	le     = lexer.Tok(lexer.KindLessEqual)
	gt     = lexer.Tok(lexer.KindGreater)
	ge     = lexer.Tok(lexer.KindGreatEqual)
	tru    = lexer.Tok(lexer.KindTrue)
	fals   = lexer.Tok(lexer.KindFalse)
	skip   = lexer.Tok(lexer.KindSkip)
)

func toks(t ...lexer.Token) []lexer.Token { return t }

func num(v int64) *ast.Numeral       { return &ast.Numeral{Value: v} }
func vr(name string) *ast.Variable   { return &ast.Variable{Name: name} }
func lit(v bool) *ast.BooleanLiteral { return &ast.BooleanLiteral{Value: v} }

func TestNumeralLeaf(t *testing.T) {
	for _, v := range []int64{0, 1, 7, 42, -3, math.MaxInt64} {
		t.Run(strconv.FormatInt(v, 10), func(t *testing.T) {
			got, err := parser.ReduceArithmetic(toks(lexer.Num(v)))
			require.NoError(t, err)
			require.Equal(t, num(v), got)
		})
	}
}

func TestVariableLeaf(t *testing.T) {
	for _, name := range []string{"x", "y1", "counter", "_tmp"} {
		t.Run(name, func(t *testing.T) {
			got, err := parser.ReduceArithmetic(toks(lexer.Ident(name)))
			require.NoError(t, err)
			require.Equal(t, vr(name), got)
		})
	}
}

func TestReduceArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		tokens []lexer.Token
		want   ast.Arithmetic
	}{
		{
			name:   "flat binding ignores precedence",
			tokens: toks(lexer.Num(2), plus, lexer.Num(3), times, lexer.Num(4)),
			want:   &ast.Product{Left: &ast.Add{Left: num(2), Right: num(3)}, Right: num(4)},
		},
		{
			name:   "product first stays first",
			tokens: toks(lexer.Num(2), times, lexer.Num(3), plus, lexer.Num(4)),
			want:   &ast.Add{Left: &ast.Product{Left: num(2), Right: num(3)}, Right: num(4)},
		},
		{
			name:   "leading group",
			tokens: toks(open, lexer.Num(2), plus, lexer.Num(3), closep, times, lexer.Num(4)),
			want:   &ast.Product{Left: &ast.Add{Left: num(2), Right: num(3)}, Right: num(4)},
		},
		{
			name:   "trailing group as right operand",
			tokens: toks(lexer.Num(2), times, open, lexer.Num(3), plus, lexer.Num(4), closep),
			want:   &ast.Product{Left: num(2), Right: &ast.Add{Left: num(3), Right: num(4)}},
		},
		{
			name:   "nested groups",
			tokens: toks(open, open, lexer.Ident("x"), minus, lexer.Num(1), closep, closep, times, lexer.Ident("y")),
			want:   &ast.Product{Left: &ast.Minus{Left: vr("x"), Right: num(1)}, Right: vr("y")},
		},
		{
			name:   "redundant parentheses",
			tokens: toks(open, open, lexer.Num(5), closep, closep),
			want:   num(5),
		},
		{
			name:   "unary minus",
			tokens: toks(minus, lexer.Num(5)),
			want:   &ast.Uminus{Operand: num(5)},
		},
		{
			name:   "unary minus on a group",
			tokens: toks(minus, open, lexer.Num(2), plus, lexer.Num(3), closep),
			want:   &ast.Uminus{Operand: &ast.Add{Left: num(2), Right: num(3)}},
		},
		{
			name:   "binary then unary minus",
			tokens: toks(lexer.Num(10), minus, minus, lexer.Num(10)),
			want:   &ast.Minus{Left: num(10), Right: &ast.Uminus{Operand: num(10)}},
		},
		{
			name:   "double negation",
			tokens: toks(minus, minus, lexer.Ident("x")),
			want:   &ast.Uminus{Operand: &ast.Uminus{Operand: vr("x")}},
		},
		{
			name:   "unary minus after operator",
			tokens: toks(lexer.Num(2), times, minus, lexer.Num(3)),
			want:   &ast.Product{Left: num(2), Right: &ast.Uminus{Operand: num(3)}},
		},
		{
			name:   "unary minus inside group",
			tokens: toks(open, minus, lexer.Num(2), closep, minus, lexer.Num(1)),
			want:   &ast.Minus{Left: &ast.Uminus{Operand: num(2)}, Right: num(1)},
		},
		{
			name:   "long chain binds left to right",
			tokens: toks(lexer.Num(1), minus, lexer.Num(2), plus, lexer.Num(3), times, lexer.Num(4), minus, lexer.Num(5)),
			want: &ast.Minus{
				Left: &ast.Product{
					Left:  &ast.Add{Left: &ast.Minus{Left: num(1), Right: num(2)}, Right: num(3)},
					Right: num(4),
				},
				Right: num(5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ReduceArithmetic(tt.tokens)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReduceBoolean(t *testing.T) {
	tests := []struct {
		name   string
		tokens []lexer.Token
		want   ast.Boolean
	}{
		{
			name:   "literal",
			tokens: toks(fals),
			want:   lit(false),
		},
		{
			name:   "connective on literals",
			tokens: toks(tru, and, fals),
			want:   &ast.And{Left: lit(true), Right: lit(false)},
		},
		{
			name:   "comparisons bind before the connective between them",
			tokens: toks(lexer.Num(2), lt, lexer.Num(3), and, lexer.Num(4), ge, lexer.Num(1)),
			want: &ast.And{
				Left:  &ast.Less{Left: num(2), Right: num(3)},
				Right: &ast.GreatEqual{Left: num(4), Right: num(1)},
			},
		},
		{
			name:   "every comparison",
			tokens: toks(lexer.Num(1), eq, lexer.Num(1), or, lexer.Num(1), le, lexer.Num(2), or, lexer.Num(3), gt, lexer.Num(2)),
			want: &ast.Or{
				Left: &ast.Or{
					Left:  &ast.Equal{Left: num(1), Right: num(1)},
					Right: &ast.LessEqual{Left: num(1), Right: num(2)},
				},
				Right: &ast.Great{Left: num(3), Right: num(2)},
			},
		},
		{
			name:   "connectives bind left to right",
			tokens: toks(tru, or, fals, and, fals),
			want:   &ast.And{Left: &ast.Or{Left: lit(true), Right: lit(false)}, Right: lit(false)},
		},
		{
			name:   "arithmetic operands reduce first",
			tokens: toks(lexer.Ident("x"), plus, lexer.Num(1), lt, lexer.Ident("y"), times, lexer.Num(2)),
			want: &ast.Less{
				Left:  &ast.Add{Left: vr("x"), Right: num(1)},
				Right: &ast.Product{Left: vr("y"), Right: num(2)},
			},
		},
		{
			name:   "grouped connective on the right",
			tokens: toks(tru, and, open, fals, or, tru, closep),
			want:   &ast.And{Left: lit(true), Right: &ast.Or{Left: lit(false), Right: lit(true)}},
		},
		{
			name:   "grouped comparison on the left",
			tokens: toks(open, lexer.Ident("x"), lt, lexer.Num(1), closep, or, lexer.Ident("y"), eq, lexer.Num(0)),
			want: &ast.Or{
				Left:  &ast.Less{Left: vr("x"), Right: num(1)},
				Right: &ast.Equal{Left: vr("y"), Right: num(0)},
			},
		},
		{
			name:   "grouped arithmetic in a comparison",
			tokens: toks(open, lexer.Num(2), plus, lexer.Num(3), closep, gt, minus, lexer.Num(1)),
			want: &ast.Great{
				Left:  &ast.Add{Left: num(2), Right: num(3)},
				Right: &ast.Uminus{Operand: num(1)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ReduceBoolean(tt.tokens)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReduceErrors(t *testing.T) {
	tests := []struct {
		name    string
		boolean bool
		tokens  []lexer.Token
		want    error
	}{
		{name: "unbalanced opener", tokens: toks(open, lexer.Num(2), plus, lexer.Num(3)), want: parser.ErrUnbalancedParentheses},
		{name: "unbalanced right operand", tokens: toks(lexer.Num(1), plus, open, lexer.Num(2)), want: parser.ErrUnbalancedParentheses},
		{name: "stray closer", tokens: toks(lexer.Num(1), closep), want: parser.ErrUnbalancedParentheses},
		{name: "no left operand", tokens: toks(plus, lexer.Num(3)), want: parser.ErrMissingLeftOperand},
		{name: "operator after operator", tokens: toks(lexer.Num(1), divide, times, lexer.Num(3)), want: parser.ErrMissingLeftOperand},
		{name: "no right operand", tokens: toks(lexer.Num(3), times), want: parser.ErrMissingRightOperand},
		{name: "operator as right operand", tokens: toks(lexer.Num(3), plus, times, lexer.Num(4)), want: parser.ErrMissingRightOperand},
		{name: "lone unary minus", tokens: toks(minus), want: parser.ErrMissingOperand},
		{name: "unary minus before operator", tokens: toks(minus, times, lexer.Num(1)), want: parser.ErrMissingOperand},
		{name: "negated boolean", tokens: toks(minus, tru), want: parser.ErrTypeMismatch},
		{name: "boolean in arithmetic", boolean: true, tokens: toks(tru, plus, fals), want: parser.ErrTypeMismatch},
		{name: "arithmetic in connective", boolean: true, tokens: toks(lexer.Num(1), and, tru), want: parser.ErrTypeMismatch},
		{name: "boolean in comparison", boolean: true, tokens: toks(tru, lt, lexer.Num(1)), want: parser.ErrTypeMismatch},
		{name: "comparison in arithmetic goal", tokens: toks(lexer.Num(1), lt, lexer.Num(2)), want: parser.ErrUnexpectedNodeKind},
		{name: "arithmetic result for boolean goal", boolean: true, tokens: toks(lexer.Num(1), plus, lexer.Num(2)), want: parser.ErrTypeMismatch},
		{name: "boolean result for arithmetic goal", tokens: toks(tru), want: parser.ErrTypeMismatch},
		{name: "empty", tokens: nil, want: parser.ErrUnexpectedNodeKind},
		{name: "adjacent operands", tokens: toks(lexer.Num(1), lexer.Num(2)), want: parser.ErrUnexpectedNodeKind},
		{name: "opaque divide", tokens: toks(lexer.Num(4), divide, lexer.Num(2)), want: parser.ErrUnexpectedNodeKind},
		{name: "opaque not", boolean: true, tokens: toks(not, tru), want: parser.ErrUnexpectedNodeKind},
		{name: "skip is a statement", tokens: toks(skip), want: parser.ErrTypeMismatch},
		{name: "empty group", tokens: toks(open, closep), want: parser.ErrMalformedSubexpression},
		{name: "two operands in a group", tokens: toks(open, lexer.Num(1), lexer.Num(2), closep), want: parser.ErrMalformedSubexpression},
		{name: "comparison group as arithmetic operand", boolean: true, tokens: toks(lexer.Num(1), plus, open, lexer.Num(1), lt, lexer.Num(2), closep), want: parser.ErrMalformedSubexpression},
		{name: "arithmetic group as connective operand", boolean: true, tokens: toks(tru, and, open, lexer.Num(1), closep), want: parser.ErrTypeMismatch},
		{name: "comparison group in arithmetic goal", tokens: toks(open, lexer.Num(1), lt, lexer.Num(2), closep), want: parser.ErrMalformedSubexpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.boolean {
				_, err = parser.ReduceBoolean(tt.tokens)
			} else {
				_, err = parser.ReduceArithmetic(tt.tokens)
			}
			require.ErrorIs(t, err, tt.want)

			var perr *parser.Error
			require.ErrorAs(t, err, &perr)
			require.NotEmpty(t, perr.Error())
		})
	}
}

func TestErrorNamesOperator(t *testing.T) {
	_, err := parser.ReduceArithmetic(toks(lexer.Num(1), plus, lexer.Num(2), times))

	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, parser.ErrMissingRightOperand, perr.Kind)
	require.Equal(t, "Multiply", perr.Op)
	require.Equal(t, 1, perr.Index)
	require.Contains(t, err.Error(), "missing right operand at Multiply (index 1)")
}

func TestMaxDepth(t *testing.T) {
	nested := func(depth int) []lexer.Token {
		var ts []lexer.Token
		for i := 0; i < depth; i++ {
			ts = append(ts, open)
		}
		ts = append(ts, lexer.Num(1))
		for i := 0; i < depth; i++ {
			ts = append(ts, closep)
		}
		return ts
	}

	p := parser.New(parser.WithMaxDepth(3))
	got, err := p.ReduceArithmetic(nested(3))
	require.NoError(t, err)
	require.Equal(t, num(1), got)

	_, err = p.ReduceArithmetic(nested(4))
	require.ErrorIs(t, err, parser.ErrMalformedSubexpression)

	_, err = parser.New(parser.WithMaxDepth(0)).ReduceArithmetic(nested(parser.DefaultMaxDepth + 1))
	require.NoError(t, err)
}

func TestTraceSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := parser.New(parser.WithLogger(zap.New(core)))

	_, err := p.ReduceArithmetic(toks(open, lexer.Num(2), plus, lexer.Num(3), closep, times, lexer.Num(4)))
	require.NoError(t, err)

	reduced := logs.FilterMessage("reduced").All()
	require.Len(t, reduced, 2)
	require.Equal(t, "(2 + 3)", reduced[0].ContextMap()["node"])
	require.Equal(t, "((2 + 3) * 4)", reduced[1].ContextMap()["node"])
	require.Equal(t, int64(1), reduced[0].ContextMap()["depth"])
	require.Len(t, logs.FilterMessage("group reduced").All(), 1)
}

func TestNilLoggerKeepsDefault(t *testing.T) {
	p := parser.New(parser.WithLogger(nil))
	got, err := p.ReduceBoolean(toks(tru))
	require.NoError(t, err)
	require.Equal(t, lit(true), got)
}

func TestTokensFromScanner(t *testing.T) {
	tokens, err := lexer.Tokenize([]byte("x + 1 <= (y - -2) * 3 && !false || true"))
	require.NoError(t, err)

	_, err = parser.ReduceBoolean(tokens)
	require.ErrorIs(t, err, parser.ErrMissingRightOperand)

	tokens, err = lexer.Tokenize([]byte("x + 1 <= (y - -2) * 3 and z = 0 or true"))
	require.NoError(t, err)

	got, err := parser.ReduceBoolean(tokens)
	require.NoError(t, err)
	require.Equal(t, "((((x + 1) <= ((y - (-2)) * 3)) && (z = 0)) || true)", got.String())
}
