package parser

import (
	"io"

	"github.com/dgallion1/markdownql/internal/doctree"
)

// TextParser handles plain text files: blank-line separated blocks become
// paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{
		Title: title(filename),
		Root:  doctree.NewRoot(),
	}
	for _, block := range splitBlocks(string(src)) {
		tree.Root.Append(paragraph(block))
	}
	return tree, nil
}
