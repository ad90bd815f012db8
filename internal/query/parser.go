package query

import (
	"github.com/dgallion1/markdownql/internal/lexer"
)

// Parse builds a Query from tokens.
//
// Every top-level token must be a keyword. SELECT clauses accumulate
// elements, FROM replaces the file path and a bare ALL is ignored. WHERE
// fails with *UnsupportedError.
func Parse(tokens []lexer.Token) (*Query, error) {
	p := &parser{tokens: tokens}
	q := &Query{}

	for {
		tok, ok := p.next()
		if !ok {
			break
		}
		kw, ok := tok.(lexer.Keyword)
		if !ok {
			return nil, &UnexpectedTokenError{Token: tok}
		}

		switch kw.Kind {
		case lexer.Select:
			elements, err := p.parseSelect()
			if err != nil {
				return nil, err
			}
			q.Elements = append(q.Elements, elements...)
		case lexer.From:
			path, err := p.parseFilePath()
			if err != nil {
				return nil, err
			}
			q.FilePath = path
		case lexer.Where:
			cond, err := p.parseCondition(kw)
			if err != nil {
				return nil, err
			}
			q.Condition = cond
		}
	}

	return q, nil
}

// ParseString tokenizes and parses input.
func ParseString(input string) (*Query, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) next() (lexer.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return nil, false
	}
	return p.tokens[p.pos], true
}

// parseSelect reads selectors separated by commas. It stops at the first
// selector not followed by ',' and leaves the next token unread.
func (p *parser) parseSelect() ([]Element, error) {
	var elements []Element

	for {
		tok, ok := p.next()
		if !ok {
			break
		}

		switch t := tok.(type) {
		case lexer.Keyword:
			if t.Kind != lexer.All {
				return nil, &UnexpectedTokenError{Token: tok}
			}
			elements = append(elements, All{})
		case lexer.Identifier:
			switch t.Text {
			case "headings":
				elements = append(elements, Headings{})
			case "paragraphs":
				elements = append(elements, Paragraphs{})
			case "text":
				lit, ok := p.next()
				s, isString := lit.(lexer.StringLiteral)
				if !ok || !isString {
					return nil, ErrUnexpectedEndOfInput
				}
				elements = append(elements, Text{Pattern: s.Text})
			default:
				// Unknown selector names are text patterns.
				elements = append(elements, Text{Pattern: t.Text})
			}
		default:
			return nil, &UnexpectedTokenError{Token: tok}
		}

		next, ok := p.peek()
		if !ok {
			break
		}
		if punct, isPunct := next.(lexer.Punctuation); !isPunct || punct.Char != ',' {
			break
		}
		p.pos++
	}

	return elements, nil
}

func (p *parser) parseFilePath() (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", ErrUnexpectedEndOfInput
	}
	s, ok := tok.(lexer.StringLiteral)
	if !ok {
		return "", &UnexpectedTokenError{Token: tok}
	}
	return s.Text, nil
}

// parseCondition is reserved for WHERE clauses, which have no semantics yet.
func (p *parser) parseCondition(where lexer.Keyword) (*string, error) {
	return nil, &UnsupportedError{Feature: "WHERE clause", Token: where}
}
