// Package state holds the variable bindings an expression is evaluated
// against.
package state

import (
	"sort"

	"github.com/agenthands/while/pkg/compiler/ast"
	"github.com/agenthands/while/pkg/compiler/lexer"
	"github.com/agenthands/while/pkg/compiler/parser"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

var (
	ErrMalformedBinding = errors.New("state: malformed binding")
	ErrNotConstant      = errors.New("state: value is not an integer constant")
	ErrInvalidName      = errors.New("state: invalid variable name")
)

// State maps variable names to integers.
type State map[string]int64

// Lookup returns the value bound to name.
func (s State) Lookup(name string) (int64, bool) {
	v, ok := s[name]
	return v, ok
}

// Names returns the bound names in sorted order.
func (s State) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge copies every binding of o into s, overwriting existing ones.
func (s State) Merge(o State) {
	for name, v := range o {
		s[name] = v
	}
}

// Parse reads bindings of the form "x := 3; y := -2". A trailing semicolon
// is allowed and later bindings of the same name win. Each value is reduced
// as an arithmetic expression and must be an integer literal, optionally
// negated.
func Parse(src string) (State, error) {
	tokens, err := lexer.Tokenize([]byte(src))
	if err != nil {
		return nil, errors.WithMessage(err, "state: tokenizing bindings")
	}

	st := State{}
	for len(tokens) > 0 {
		end := 0
		for end < len(tokens) && tokens[end].Kind != lexer.KindSemicolon {
			end++
		}
		if err := st.bind(tokens[:end]); err != nil {
			return nil, err
		}
		if end == len(tokens) {
			break
		}
		tokens = tokens[end+1:]
	}
	return st, nil
}

func (s State) bind(tokens []lexer.Token) error {
	if len(tokens) < 3 || tokens[0].Kind != lexer.KindIdentifier || tokens[1].Kind != lexer.KindAssign {
		return errors.Wrapf(ErrMalformedBinding, "want <name> := <integer>, got %v", tokens)
	}
	name := tokens[0].Name

	expr, err := parser.ReduceArithmetic(tokens[2:])
	if err != nil {
		return errors.WithMessagef(err, "state: value of %s", name)
	}
	v, ok := constant(expr)
	if !ok {
		return errors.Wrapf(ErrNotConstant, "%s := %s", name, expr)
	}
	s[name] = v
	return nil
}

func constant(expr ast.Arithmetic) (int64, bool) {
	switch e := expr.(type) {
	case *ast.Numeral:
		return e.Value, true
	case *ast.Uminus:
		if n, ok := e.Operand.(*ast.Numeral); ok {
			return -n.Value, true
		}
	}
	return 0, false
}

// LoadYAML reads a YAML (or JSON) mapping of names to integers.
func LoadYAML(data []byte) (State, error) {
	raw := map[string]int64{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "state: decoding yaml")
	}

	st := make(State, len(raw))
	for name, v := range raw {
		if !validName(name) {
			return nil, errors.Wrapf(ErrInvalidName, "%q", name)
		}
		st[name] = v
	}
	return st, nil
}

func validName(name string) bool {
	tokens, err := lexer.Tokenize([]byte(name))
	return err == nil && len(tokens) == 1 && tokens[0].Kind == lexer.KindIdentifier && tokens[0].Name == name
}
