package lexer

import "fmt"

// ErrorKind classifies tokenization failures.
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnexpectedEscapeSequence
	UnterminatedStringLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedEscapeSequence:
		return "unexpected escape sequence"
	case UnterminatedStringLiteral:
		return "unterminated string literal"
	}
	return "unknown tokenization error"
}

// Error is returned by Tokenize. Char is unset for UnterminatedStringLiteral.
type Error struct {
	Kind ErrorKind
	Char rune
	Position
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character at line %d, column %d: %q", e.Line, e.Column, e.Char)
	case UnexpectedEscapeSequence:
		return fmt.Sprintf("unexpected escape sequence at line %d, column %d: %c", e.Line, e.Column, e.Char)
	default:
		return fmt.Sprintf("unterminated string literal at line %d, column %d", e.Line, e.Column)
	}
}

// Is lets errors.Is match on kind: errors.Is(err, &lexer.Error{Kind: lexer.UnterminatedStringLiteral}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
