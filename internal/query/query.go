// Package query parses tokens into a Query.
package query

import "strings"

// Element is one selection target: Headings, Paragraphs, Text or All.
type Element interface {
	String() string
	isElement()
}

type Headings struct{}

type Paragraphs struct{}

// Text matches text nodes containing Pattern (case-sensitive substring).
type Text struct {
	Pattern string
}

// All selects headings and paragraphs.
type All struct{}

func (Headings) isElement()   {}
func (Paragraphs) isElement() {}
func (Text) isElement()       {}
func (All) isElement()        {}

func (Headings) String() string   { return "headings" }
func (Paragraphs) String() string { return "paragraphs" }
func (e Text) String() string     { return "text " + quote(e.Pattern) }
func (All) String() string        { return "*" }

// Query is a parsed request. FilePath is empty when no FROM clause was given.
// Condition is never set: WHERE is rejected by Parse.
type Query struct {
	Elements  []Element
	FilePath  string
	Condition *string
}

// String renders q as query text. With a FilePath set, the text parses back
// to an equal Query.
func (q *Query) String() string {
	var clauses []string
	if len(q.Elements) > 0 {
		var b strings.Builder
		b.WriteString("SELECT ")
		for i, e := range q.Elements {
			if i > 0 {
				// A comma directly after "*" would lex it as an identifier.
				if _, ok := q.Elements[i-1].(All); ok {
					b.WriteByte(' ')
				}
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		clauses = append(clauses, b.String())
	}
	if q.FilePath != "" {
		clauses = append(clauses, "FROM "+quote(q.FilePath))
	}
	return strings.Join(clauses, " ")
}

// quote produces a string literal using only the escapes the lexer accepts.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
