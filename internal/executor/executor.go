// Package executor runs parsed queries against documents.
package executor

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/markdownql/internal/config"
	"github.com/dgallion1/markdownql/internal/doctree"
	"github.com/dgallion1/markdownql/internal/parser"
	"github.com/dgallion1/markdownql/internal/query"
)

// Traversal controls where heading and paragraph extraction looks.
type Traversal string

const (
	// Deep finds headings and paragraphs inside any container (lists,
	// block quotes, tables, ...).
	Deep Traversal = config.TraversalDeep
	// RootOnly finds only headings and paragraphs that are direct children
	// of the document root.
	RootOnly Traversal = config.TraversalRoot
)

// QueryResult holds the extracted strings in document order.
type QueryResult struct {
	Headings     []string `json:"headings"`
	Paragraphs   []string `json:"paragraphs"`
	MatchingText []string `json:"matching_text"`
}

// Executor loads the document a query names and extracts its elements.
type Executor struct {
	Dir          string // Base directory for relative paths; the working directory if empty
	Traversal    Traversal
	MaxFileBytes int64 // 0 means unlimited
	Parser       parser.Options
	Log          *slog.Logger

	// Confine restricts FROM paths to local paths beneath Dir.
	Confine bool
}

// New returns an Executor configured from cfg.
func New(cfg config.Config, log *slog.Logger) *Executor {
	return &Executor{
		Traversal:    Traversal(cfg.Traversal),
		MaxFileBytes: cfg.MaxFileBytes,
		Parser: parser.Options{
			GFM:                  cfg.GFM,
			PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
		Log: log,
	}
}

// Execute runs q with default settings relative to the working directory.
func Execute(q *query.Query) (*QueryResult, error) {
	e := &Executor{
		Traversal: Deep,
		Parser:    parser.Options{GFM: true, PDFFallbackPdftotext: true},
	}
	return e.Execute(q)
}

// Execute reads and parses q.FilePath, then extracts q.Elements from it.
func (e *Executor) Execute(q *query.Query) (*QueryResult, error) {
	path, src, err := e.load(q.FilePath)
	if err != nil {
		return nil, &FileReadError{Path: q.FilePath, Err: err}
	}

	if !parser.IsSupportedExtension(path) {
		e.logger().Debug("unknown extension, parsing as markdown", "path", path)
	}
	tree, err := parser.ForFile(path, e.Parser).Parse(bytes.NewReader(src), filepath.Base(path))
	if err != nil {
		return nil, &DocumentParseError{Path: q.FilePath, Err: err}
	}

	result := Extract(q.Elements, tree.Root, e.Traversal)
	e.logger().Debug("executed query",
		"path", path,
		"elements", len(q.Elements),
		"headings", len(result.Headings),
		"paragraphs", len(result.Paragraphs),
		"matching_text", len(result.MatchingText),
	)
	return result, nil
}

// load returns the resolved path and contents of name.
func (e *Executor) load(name string) (string, []byte, error) {
	if e.Confine {
		src, err := e.readConfined(name)
		return name, src, err
	}

	path := name
	if !filepath.IsAbs(path) {
		dir, err := e.baseDir()
		if err != nil {
			return "", nil, err
		}
		path = filepath.Join(dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	src, err := readLimited(f, e.MaxFileBytes)
	return path, src, err
}

// readConfined opens name beneath the base directory. Absolute paths,
// ".." components and symlinks leading outside the directory are refused.
func (e *Executor) readConfined(name string) ([]byte, error) {
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %q", ErrPathOutsideDir, name)
	}
	dir, err := e.baseDir()
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, e.MaxFileBytes)
}

func (e *Executor) baseDir() (string, error) {
	if e.Dir != "" {
		return e.Dir, nil
	}
	return os.Getwd()
}

// readLimited reads r to the end, failing once more than max bytes arrive.
// max <= 0 means unlimited.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", max)
	}
	return data, nil
}

func (e *Executor) logger() *slog.Logger {
	if e.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Log
}

// Extract evaluates elements against a parsed document in order. Results of
// the same kind accumulate without deduplication.
func Extract(elements []query.Element, root *doctree.Node, mode Traversal) *QueryResult {
	result := &QueryResult{
		Headings:     []string{},
		Paragraphs:   []string{},
		MatchingText: []string{},
	}
	deep := mode != RootOnly

	for _, el := range elements {
		switch el := el.(type) {
		case query.Headings:
			result.Headings = collectBlocks(root, doctree.KindHeading, deep, result.Headings)
		case query.Paragraphs:
			result.Paragraphs = collectBlocks(root, doctree.KindParagraph, deep, result.Paragraphs)
		case query.Text:
			result.MatchingText = collectText(root, el.Pattern, result.MatchingText)
		case query.All:
			result.Headings = collectBlocks(root, doctree.KindHeading, deep, result.Headings)
			result.Paragraphs = collectBlocks(root, doctree.KindParagraph, deep, result.Paragraphs)
		}
	}
	return result
}

// collectBlocks appends the direct text of every node of kind found by a
// pre-order walk. Matching nodes are not descended into. The root is always
// descended into; other containers only when deep is set.
func collectBlocks(n *doctree.Node, kind doctree.Kind, deep bool, out []string) []string {
	switch {
	case n.Kind == kind:
		return append(out, n.DirectText())
	case n.Kind == doctree.KindRoot || (deep && n.IsContainer()):
		for _, c := range n.Children {
			out = collectBlocks(c, kind, deep, out)
		}
	}
	return out
}

// collectText appends every text value anywhere under root containing pattern.
func collectText(root *doctree.Node, pattern string, out []string) []string {
	doctree.Walk(root, func(n *doctree.Node) bool {
		if n.Kind == doctree.KindText && strings.Contains(n.Value, pattern) {
			out = append(out, n.Value)
		}
		return true
	})
	return out
}
