package parser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/markdownql/internal/doctree"
)

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tunes the parsers returned by ForFile.
type Options struct {
	GFM                  bool // Enable GitHub-flavoured markdown extensions
	PDFFallbackPdftotext bool // Shell out to pdftotext when the PDF library fails
}

// SupportedExtensions lists file extensions with a dedicated parser.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename. Files with an
// unknown extension are parsed as markdown.
func ForFile(filename string, opts Options) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}
	case ".csv":
		return &CSVParser{}
	case ".html", ".htm":
		return &HTMLParser{}
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}
	case ".docx":
		return &DOCXParser{}
	default:
		return &MarkdownParser{GFM: opts.GFM}
	}
}

// IsSupportedExtension checks if a file extension has a dedicated parser.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// title derives a document title from its file name.
func title(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// paragraph wraps text in a Paragraph node with a single Text child.
func paragraph(text string) *doctree.Node {
	return (&doctree.Node{Kind: doctree.KindParagraph, Type: "Paragraph"}).Append(doctree.Text(text))
}

// splitBlocks splits text on blank lines, dropping empty blocks.
func splitBlocks(text string) []string {
	var blocks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r\f")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()
	return blocks
}
