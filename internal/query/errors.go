package query

import (
	"errors"
	"fmt"

	"github.com/dgallion1/markdownql/internal/lexer"
)

// ErrUnexpectedEndOfInput is returned when the token stream ends where a
// token is required.
var ErrUnexpectedEndOfInput = errors.New("unexpected end of input")

// UnexpectedTokenError reports a token that is not valid at its position.
type UnexpectedTokenError struct {
	Token lexer.Token
}

func (e *UnexpectedTokenError) Error() string {
	p := e.Token.Pos()
	return fmt.Sprintf("unexpected token at line %d, column %d: %s", p.Line, p.Column, e.Token)
}

// UnsupportedError reports syntax the language reserves but does not implement.
type UnsupportedError struct {
	Feature string
	Token   lexer.Token
}

func (e *UnsupportedError) Error() string {
	p := e.Token.Pos()
	return fmt.Sprintf("%s is not yet supported (line %d, column %d)", e.Feature, p.Line, p.Column)
}
