package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/markdownql/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{
		Title: title(filename),
		Root:  doctree.NewRoot(),
	}

	// Extract title from <title> tag if present.
	if t := findTitle(doc); t != "" {
		tree.Title = t
	}

	// Find <body> or use whole document.
	start := findBody(doc)
	if start == nil {
		start = doc
	}
	for c := start.FirstChild; c != nil; c = c.NextSibling {
		convertHTML(c, tree.Root)
	}

	return tree, nil
}

// convertHTML appends the document-tree form of n to parent.
func convertHTML(n *html.Node, parent *doctree.Node) {
	switch n.Type {
	case html.TextNode:
		t := collapseSpace(n.Data)
		// Formatting whitespace between blocks is not content.
		if strings.TrimSpace(t) == "" && parent.IsContainer() {
			return
		}
		parent.Append(doctree.Text(t))
		return
	case html.ElementNode:
	default:
		return
	}

	var out *doctree.Node
	if level := headingLevel(n.Data); level > 0 {
		out = &doctree.Node{Kind: doctree.KindHeading, Type: n.Data, Level: level}
	} else {
		switch n.Data {
		case "script", "style", "nav", "head", "noscript", "template":
			return
		case "div", "section", "article", "main", "header", "footer", "body":
			// Layout wrappers are transparent.
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				convertHTML(c, parent)
			}
			return
		case "p":
			out = &doctree.Node{Kind: doctree.KindParagraph, Type: n.Data}
		default:
			out = &doctree.Node{Kind: doctree.KindOther, Type: n.Data}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		convertHTML(c, out)
	}
	if out.Kind == doctree.KindHeading || out.Kind == doctree.KindParagraph {
		trimEdges(out)
	}
	parent.Append(out)
}

// trimEdges strips the whitespace HTML source formatting leaves at the start
// of the first text child and the end of the last one.
func trimEdges(n *doctree.Node) {
	if len(n.Children) == 0 {
		return
	}
	if first := n.Children[0]; first.Kind == doctree.KindText {
		first.Value = strings.TrimLeft(first.Value, " ")
	}
	if last := n.Children[len(n.Children)-1]; last.Kind == doctree.KindText {
		last.Value = strings.TrimRight(last.Value, " ")
	}
}

// collapseSpace replaces each run of whitespace with a single space.
func collapseSpace(s string) string {
	var buf strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				buf.WriteByte(' ')
			}
			space = true
		default:
			buf.WriteRune(r)
			space = false
		}
	}
	return buf.String()
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
