package lexer

import "strconv"

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError
	KindNumeral    // 42
	KindIdentifier // x
	KindPlus       // +
	KindMinus      // -
	KindMultiply   // *
	KindDivide     // /
	KindAssign     // :=
	KindLess       // <
	KindLessEqual  // <=
	KindGreater    // >
	KindGreatEqual // >=
	KindEqual      // =
	KindAnd        // && or and
	KindOr         // || or or
	KindNot        // ! or not
	KindIncrement  // ++
	KindIf
	KindThen
	KindElse
	KindWhile
	KindRepeat
	KindUntil
	KindFor
	KindSkip
	KindTrue
	KindFalse
	KindOpenParen  // (
	KindCloseParen // )
	KindOpenBrace  // {
	KindCloseBrace // }
	KindSemicolon  // ;
)

var kindNames = [...]string{
	KindEOF:        "EOF",
	KindError:      "Error",
	KindNumeral:    "Numeral",
	KindIdentifier: "Identifier",
	KindPlus:       "Plus",
	KindMinus:      "Minus",
	KindMultiply:   "Multiply",
	KindDivide:     "Divide",
	KindAssign:     "Assign",
	KindLess:       "Less",
	KindLessEqual:  "LessEqual",
	KindGreater:    "Greater",
	KindGreatEqual: "GreatEqual",
	KindEqual:      "Equal",
	KindAnd:        "And",
	KindOr:         "Or",
	KindNot:        "Not",
	KindIncrement:  "Increment",
	KindIf:         "If",
	KindThen:       "Then",
	KindElse:       "Else",
	KindWhile:      "While",
	KindRepeat:     "Repeat",
	KindUntil:      "Until",
	KindFor:        "For",
	KindSkip:       "Skip",
	KindTrue:       "True",
	KindFalse:      "False",
	KindOpenParen:  "OpenParen",
	KindCloseParen: "CloseParen",
	KindOpenBrace:  "OpenBrace",
	KindCloseBrace: "CloseBrace",
	KindSemicolon:  "Semicolon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// keywords maps reserved words to their kinds. Word forms of the logical
// connectives are accepted next to && || !.
var keywords = map[string]Kind{
	"if":     KindIf,
	"then":   KindThen,
	"else":   KindElse,
	"while":  KindWhile,
	"repeat": KindRepeat,
	"until":  KindUntil,
	"for":    KindFor,
	"skip":   KindSkip,
	"true":   KindTrue,
	"false":  KindFalse,
	"and":    KindAnd,
	"or":     KindOr,
	"not":    KindNot,
}

// Token is a lexical unit. Numerals carry Value, identifiers carry Name;
// every other kind is a bare marker. Offset and Line point back into the
// source and are only used for tracing.
type Token struct {
	Kind   Kind
	Value  int64
	Name   string
	Offset uint32
	Line   uint32
}

// Num builds a numeral token.
func Num(v int64) Token { return Token{Kind: KindNumeral, Value: v} }

// Ident builds an identifier token.
func Ident(name string) Token { return Token{Kind: KindIdentifier, Name: name} }

// Tok builds a bare marker token of the given kind.
func Tok(k Kind) Token { return Token{Kind: k} }

func (t Token) String() string {
	switch t.Kind {
	case KindNumeral:
		return "Numeral(" + strconv.FormatInt(t.Value, 10) + ")"
	case KindIdentifier:
		return "Identifier(" + t.Name + ")"
	}
	return t.Kind.String()
}

// IsComparison reports whether the kind is a relational operator.
func (k Kind) IsComparison() bool {
	switch k {
	case KindLess, KindLessEqual, KindGreater, KindGreatEqual, KindEqual:
		return true
	}
	return false
}
