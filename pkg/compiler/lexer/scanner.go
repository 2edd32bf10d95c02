package lexer

import (
	"fmt"
	"strconv"
)

// Error reports a byte the scanner could not turn into a token.
type Error struct {
	Offset uint32
	Line   uint32
	Text   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: unexpected %q at line %d (offset %d)", e.Text, e.Line, e.Offset)
}

// Scanner performs lexical analysis on WHILE source.
type Scanner struct {
	source []byte
	cursor int
	line   int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
}

// Next returns the next token from the source. It returns KindEOF at the
// end of input and KindError for anything it does not recognize; the
// offending text is then in Name.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Offset: uint32(s.cursor), Line: uint32(s.line)}
	}

	start := s.cursor
	ch := s.source[s.cursor]

	if isDigit(ch) {
		return s.scanNumeral()
	}
	if isAlpha(ch) {
		return s.scanWord()
	}

	// Two-byte operators first.
	switch {
	case ch == '+' && s.peek() == '+':
		return s.emit(KindIncrement, start, 2)
	case ch == ':' && s.peek() == '=':
		return s.emit(KindAssign, start, 2)
	case ch == '<' && s.peek() == '=':
		return s.emit(KindLessEqual, start, 2)
	case ch == '>' && s.peek() == '=':
		return s.emit(KindGreatEqual, start, 2)
	case ch == '&' && s.peek() == '&':
		return s.emit(KindAnd, start, 2)
	case ch == '|' && s.peek() == '|':
		return s.emit(KindOr, start, 2)
	}

	kind := KindError
	switch ch {
	case '+':
		kind = KindPlus
	case '-':
		kind = KindMinus
	case '*':
		kind = KindMultiply
	case '/':
		kind = KindDivide
	case '<':
		kind = KindLess
	case '>':
		kind = KindGreater
	case '=':
		kind = KindEqual
	case '!':
		kind = KindNot
	case '(':
		kind = KindOpenParen
	case ')':
		kind = KindCloseParen
	case '{':
		kind = KindOpenBrace
	case '}':
		kind = KindCloseBrace
	case ';':
		kind = KindSemicolon
	}

	tok := s.emit(kind, start, 1)
	if kind == KindError {
		tok.Name = string(s.source[start : start+1])
	}
	return tok
}

func (s *Scanner) emit(kind Kind, start, length int) Token {
	s.cursor = start + length
	return Token{Kind: kind, Offset: uint32(start), Line: uint32(s.line)}
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			s.cursor++
		} else if ch == '\n' {
			s.line++
			s.cursor++
		} else {
			break
		}
	}
}

func (s *Scanner) scanNumeral() Token {
	start := s.cursor
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		s.cursor++
	}
	literal := string(s.source[start:s.cursor])
	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		// out of int64 range
		return Token{Kind: KindError, Name: literal, Offset: uint32(start), Line: uint32(s.line)}
	}
	return Token{Kind: KindNumeral, Value: v, Offset: uint32(start), Line: uint32(s.line)}
}

func (s *Scanner) scanWord() Token {
	start := s.cursor
	for s.cursor < len(s.source) && (isAlpha(s.source[s.cursor]) || isDigit(s.source[s.cursor])) {
		s.cursor++
	}
	literal := string(s.source[start:s.cursor])
	if kind, ok := keywords[literal]; ok {
		return Token{Kind: kind, Offset: uint32(start), Line: uint32(s.line)}
	}
	return Token{Kind: KindIdentifier, Name: literal, Offset: uint32(start), Line: uint32(s.line)}
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// Tokenize scans the whole source. The returned slice does not include the
// EOF marker.
func Tokenize(src []byte) ([]Token, error) {
	s := NewScanner(src)
	var toks []Token
	for {
		tok := s.Next()
		switch tok.Kind {
		case KindEOF:
			return toks, nil
		case KindError:
			return nil, &Error{Offset: tok.Offset, Line: tok.Line, Text: tok.Name}
		}
		toks = append(toks, tok)
	}
}
