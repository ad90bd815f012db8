package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/markdownql/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct {
	GFM bool
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var opts []goldmark.Option
	if p.GFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	md := goldmark.New(opts...)
	doc := md.Parser().Parse(text.NewReader(src))

	return &doctree.DocTree{
		Title: title(filename),
		Root:  convertMarkdown(doc, src),
	}, nil
}

// convertMarkdown maps a goldmark node and its descendants onto the document tree.
func convertMarkdown(n ast.Node, src []byte) *doctree.Node {
	var out *doctree.Node
	switch node := n.(type) {
	case *ast.Document:
		out = doctree.NewRoot()
	case *ast.Heading:
		out = &doctree.Node{Kind: doctree.KindHeading, Type: "Heading", Level: node.Level}
	case *ast.Paragraph:
		out = &doctree.Node{Kind: doctree.KindParagraph, Type: "Paragraph"}
	default:
		out = &doctree.Node{Kind: doctree.KindOther, Type: n.Kind().String()}
	}
	convertMarkdownChildren(n, out, src)
	return out
}

// convertMarkdownChildren appends the children of n to out. goldmark splits
// one run of text into several nodes wherever an inline parser was tried, so
// adjacent text nodes are joined into a single Text. A hard line break ends
// the run and becomes a Break node.
func convertMarkdownChildren(n ast.Node, out *doctree.Node, src []byte) {
	var run strings.Builder
	pending := false
	flush := func() {
		if pending {
			out.Append(doctree.Text(run.String()))
			run.Reset()
			pending = false
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			run.Write(markdownTextValue(node, src))
			pending = true
			if node.HardLineBreak() {
				flush()
				out.Append(&doctree.Node{Kind: doctree.KindOther, Type: "Break"})
			} else if node.SoftLineBreak() {
				run.WriteByte('\n')
			}
		case *ast.String:
			run.Write(node.Value)
			pending = true
		default:
			flush()
			out.Append(convertMarkdown(c, src))
		}
	}
	flush()
}

// markdownTextValue decodes escapes and character references the way
// goldmark's HTML renderer does. Raw text (code spans) is kept as written.
func markdownTextValue(node *ast.Text, src []byte) []byte {
	value := node.Segment.Value(src)
	if node.IsRaw() {
		return value
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
