package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/markdownql/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraphs with a heading style become
// headings; every other non-empty paragraph becomes a paragraph.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "markdownql-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	tree := &doctree.DocTree{
		Title: title(filename),
		Root:  doctree.NewRoot(),
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		texts := docxTextNodes(para)
		if len(texts) == 0 {
			continue
		}

		node := &doctree.Node{Kind: doctree.KindParagraph, Type: "Paragraph"}
		if level := docxHeadingLevel(para); level > 0 {
			node = &doctree.Node{Kind: doctree.KindHeading, Type: "Heading", Level: level}
		}
		tree.Root.Append(node.Append(texts...))
	}

	return tree, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "heading1", "title":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

// docxTextNodes returns one Text node per text run segment, or nil when the
// paragraph holds only whitespace.
func docxTextNodes(para *docx.Paragraph) []*doctree.Node {
	var nodes []*doctree.Node
	blank := true
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			t, ok := rc.(*docx.Text)
			if !ok || t.Text == "" {
				continue
			}
			if strings.TrimSpace(t.Text) != "" {
				blank = false
			}
			nodes = append(nodes, doctree.Text(t.Text))
		}
	}
	if blank {
		return nil
	}
	return nodes
}
