package interpreter

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/leonardinius/loxexpr/internal/loxerrors"
	"github.com/leonardinius/loxexpr/internal/parser"
	"github.com/leonardinius/loxexpr/internal/token"
)

// environment holds the variables declared by one input unit.
// There are no nested scopes and no assignment: "var" (re)defines a name.
type environment struct {
	values map[string]parser.Value
}

func newEnvironment() *environment {
	return &environment{}
}

func (e *environment) Define(name string, value parser.Value) {
	if e.values == nil {
		e.values = make(map[string]parser.Value)
	}
	e.values[name] = value
}

func (e *environment) Get(name *token.Token) (parser.Value, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}

	return nil, e.undefinedVariable(name)
}

func (e *environment) undefinedVariable(name *token.Token) error {
	return loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedVariableName(name.Lexeme))
}

func (e *environment) String() string {
	names := maps.Keys(e.values)
	slices.Sort(names)

	w := new(strings.Builder)
	w.WriteString("{")
	for i, name := range names {
		if i > 0 {
			w.WriteString(",")
		}
		fmt.Fprintf(w, "%s=%#v", name, e.values[name])
	}
	w.WriteString("}")
	return w.String()
}

var _ fmt.Stringer = (*environment)(nil)
