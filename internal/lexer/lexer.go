// Package lexer turns a line of query text into tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize scans input left to right and returns its tokens in source order.
//
// Outside string literals, whitespace ends a word, which is emitted as a
// Keyword if it matches one (case-insensitively) and as an Identifier
// otherwise. ',' and '.' end a word as an Identifier and are emitted as
// Punctuation. A word still pending at the end of input is an Identifier.
// Double-quoted strings support the escapes \n, \t, \\ and \".
func Tokenize(input string) ([]Token, error) {
	s := &scanner{pos: Position{Line: 1}}
	for i := 0; i < len(input); {
		r, w := utf8.DecodeRuneInString(input[i:])
		i += w
		s.advance(r)
		if (r == utf8.RuneError && w == 1) || r == 0 {
			return nil, &Error{Kind: UnexpectedCharacter, Char: r, Position: s.pos}
		}
		if err := s.step(r); err != nil {
			return nil, err
		}
	}

	if s.inString || s.escape {
		return nil, &Error{Kind: UnterminatedStringLiteral, Position: s.pos}
	}
	s.flushIdentifier()
	return s.tokens, nil
}

type scanner struct {
	tokens []Token

	buf      strings.Builder
	bufStart Position

	inString bool
	escape   bool

	// pos is the position of the character being scanned.
	pos          Position
	afterNewline bool
}

func (s *scanner) advance(r rune) {
	if s.afterNewline {
		s.pos.Line++
		s.pos.Column = 1
		s.afterNewline = false
	} else {
		s.pos.Column++
	}
	if r == '\n' {
		s.afterNewline = true
	}
}

func (s *scanner) step(r rune) error {
	if s.escape {
		switch r {
		case 'n':
			s.buf.WriteByte('\n')
		case 't':
			s.buf.WriteByte('\t')
		case '\\':
			s.buf.WriteByte('\\')
		case '"':
			s.buf.WriteByte('"')
		default:
			return &Error{Kind: UnexpectedEscapeSequence, Char: r, Position: s.pos}
		}
		s.escape = false
		return nil
	}

	if s.inString {
		switch r {
		case '\\':
			s.escape = true
		case '"':
			s.tokens = append(s.tokens, StringLiteral{Text: s.buf.String(), Position: s.bufStart})
			s.buf.Reset()
			s.inString = false
		default:
			s.buf.WriteRune(r)
		}
		return nil
	}

	switch {
	case unicode.IsSpace(r):
		s.flushWord()
	case r == '"':
		s.flushWord()
		s.inString = true
		// The literal starts at the character after the opening quote.
		s.bufStart = Position{Line: s.pos.Line, Column: s.pos.Column + 1}
	case r == ',' || r == '.':
		s.flushIdentifier()
		s.tokens = append(s.tokens, Punctuation{Char: r, Position: s.pos})
	default:
		if s.buf.Len() == 0 {
			s.bufStart = s.pos
		}
		s.buf.WriteRune(r)
	}
	return nil
}

// flushWord emits the pending word as a Keyword or Identifier.
func (s *scanner) flushWord() {
	if s.buf.Len() == 0 {
		return
	}
	word := s.buf.String()
	s.buf.Reset()
	if kind, ok := LookupKeyword(word); ok {
		s.tokens = append(s.tokens, Keyword{Kind: kind, Position: s.bufStart})
		return
	}
	s.tokens = append(s.tokens, Identifier{Text: word, Position: s.bufStart})
}

// flushIdentifier emits the pending word as an Identifier without keyword lookup.
func (s *scanner) flushIdentifier() {
	if s.buf.Len() == 0 {
		return
	}
	s.tokens = append(s.tokens, Identifier{Text: s.buf.String(), Position: s.bufStart})
	s.buf.Reset()
}
