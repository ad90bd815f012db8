package lexer

import (
	"fmt"
	"strings"
)

// KeywordKind enumerates the reserved words of the query language.
type KeywordKind int

const (
	Select KeywordKind = iota
	From
	Where
	All
)

func (k KeywordKind) String() string {
	switch k {
	case Select:
		return "SELECT"
	case From:
		return "FROM"
	case Where:
		return "WHERE"
	case All:
		return "ALL"
	}
	return fmt.Sprintf("KeywordKind(%d)", int(k))
}

// keywords is looked up with the upper-cased lexeme. "*" is the spelling of ALL.
var keywords = map[string]KeywordKind{
	"SELECT": Select,
	"FROM":   From,
	"WHERE":  Where,
	"*":      All,
}

// LookupKeyword reports whether word is a keyword, ignoring case.
func LookupKeyword(word string) (KeywordKind, bool) {
	k, ok := keywords[strings.ToUpper(word)]
	return k, ok
}

// Position is a 1-based source location. Column is the first character of
// the lexeme.
type Position struct {
	Line   int
	Column int
}

// Pos returns p. Embedding Position gives every token its Pos method.
func (p Position) Pos() Position { return p }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one of Keyword, Identifier, Punctuation or StringLiteral.
type Token interface {
	Pos() Position
	String() string
	isToken()
}

type Keyword struct {
	Kind KeywordKind
	Position
}

type Identifier struct {
	Text string
	Position
}

// Punctuation is a ',' or '.'.
type Punctuation struct {
	Char rune
	Position
}

type StringLiteral struct {
	Text string
	Position
}

func (Keyword) isToken()       {}
func (Identifier) isToken()    {}
func (Punctuation) isToken()   {}
func (StringLiteral) isToken() {}

func (t Keyword) String() string       { return "Keyword: " + t.Kind.String() }
func (t Identifier) String() string    { return "Identifier: " + t.Text }
func (t Punctuation) String() string   { return fmt.Sprintf("Punctuation: '%c'", t.Char) }
func (t StringLiteral) String() string { return fmt.Sprintf("String Literal: %q", t.Text) }
