package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/markdownql/internal/doctree"
)

func parseMarkdown(t *testing.T, input string, gfm bool) *doctree.DocTree {
	t.Helper()
	p := &MarkdownParser{GFM: gfm}
	tree, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Root == nil || tree.Root.Kind != doctree.KindRoot {
		t.Fatalf("expected a root node, got %+v", tree.Root)
	}
	return tree
}

func TestMarkdownParser_HeadingAndParagraph(t *testing.T) {
	tree := parseMarkdown(t, "# Title\n\nSome text here.\n", true)

	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}

	children := tree.Root.Children
	if len(children) != 2 {
		t.Fatalf("expected 2 top-level children, got %d", len(children))
	}

	h := children[0]
	if h.Kind != doctree.KindHeading || h.Level != 1 {
		t.Errorf("expected level-1 heading, got %s level %d", h.Kind, h.Level)
	}
	if got := h.DirectText(); got != "Title" {
		t.Errorf("expected heading text %q, got %q", "Title", got)
	}

	para := children[1]
	if para.Kind != doctree.KindParagraph {
		t.Errorf("expected paragraph, got %s", para.Kind)
	}
	if got := para.DirectText(); got != "Some text here." {
		t.Errorf("expected paragraph text %q, got %q", "Some text here.", got)
	}
}

func TestMarkdownParser_InlineMarkupIsNotText(t *testing.T) {
	tree := parseMarkdown(t, "## Hello *big* world\n", true)

	h := tree.Root.Children[0]
	if h.Level != 2 {
		t.Errorf("expected level 2, got %d", h.Level)
	}
	if got := h.DirectText(); got != "Hello  world" {
		t.Errorf("expected emphasis to be skipped, got %q", got)
	}

	var emphasis *doctree.Node
	for _, c := range h.Children {
		if c.Type == "Emphasis" {
			emphasis = c
		}
	}
	if emphasis == nil || emphasis.Kind != doctree.KindOther {
		t.Fatalf("expected an Emphasis node of kind other, got %+v", h.Children)
	}
	if got := emphasis.DirectText(); got != "big" {
		t.Errorf("expected emphasis text %q, got %q", "big", got)
	}
}

func TestMarkdownParser_SoftLineBreakKeepsNewline(t *testing.T) {
	tree := parseMarkdown(t, "line one\nline two\n", false)

	para := tree.Root.Children[0]
	if got := para.DirectText(); got != "line one\nline two" {
		t.Errorf("expected %q, got %q", "line one\nline two", got)
	}
}

func TestMarkdownParser_NestedContainers(t *testing.T) {
	input := "> # Quoted\n>\n> quoted text\n\n- item\n\n  second paragraph\n"
	tree := parseMarkdown(t, input, true)

	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected blockquote and list, got %d children", len(tree.Root.Children))
	}
	quote := tree.Root.Children[0]
	if quote.Kind != doctree.KindOther || quote.Type != "Blockquote" {
		t.Errorf("expected Blockquote container, got %s %q", quote.Kind, quote.Type)
	}
	if len(quote.Children) != 2 || quote.Children[0].Kind != doctree.KindHeading {
		t.Fatalf("expected heading inside blockquote, got %+v", quote.Children)
	}

	var paragraphs []string
	doctree.Walk(tree.Root.Children[1], func(n *doctree.Node) bool {
		if n.Kind == doctree.KindParagraph {
			paragraphs = append(paragraphs, n.DirectText())
		}
		return true
	})
	if len(paragraphs) != 2 || paragraphs[1] != "second paragraph" {
		t.Errorf("expected list paragraphs [item second paragraph], got %q", paragraphs)
	}
}

func TestMarkdownParser_GFMTable(t *testing.T) {
	input := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	withGFM := parseMarkdown(t, input, true)
	if withGFM.Root.Children[0].Type != "Table" {
		t.Errorf("expected Table with GFM, got %q", withGFM.Root.Children[0].Type)
	}

	plain := parseMarkdown(t, input, false)
	if plain.Root.Children[0].Kind != doctree.KindParagraph {
		t.Errorf("expected paragraph without GFM, got %s", plain.Root.Children[0].Kind)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	tree := parseMarkdown(t, "", true)
	if len(tree.Root.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Root.Children))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}

func TestMarkdownParser_LiteralTextValues(t *testing.T) {
	input := "# Tom &amp; Jerry\n\nEscaped \\*star\\* here &copy; &#65;\n\nhello world\n\n`a &amp; b`\n"

	for _, gfm := range []bool{true, false} {
		tree := parseMarkdown(t, input, gfm)
		children := tree.Root.Children
		if len(children) != 4 {
			t.Fatalf("gfm=%v: expected 4 top-level children, got %d", gfm, len(children))
		}

		tests := []struct {
			node *doctree.Node
			want string
		}{
			{children[0], "Tom & Jerry"},
			{children[1], "Escaped *star* here © A"},
			{children[2], "hello world"},
		}
		for _, tt := range tests {
			if len(tt.node.Children) != 1 {
				t.Errorf("gfm=%v: expected one text node for %q, got %d", gfm, tt.want, len(tt.node.Children))
			}
			if got := tt.node.DirectText(); got != tt.want {
				t.Errorf("gfm=%v: expected %q, got %q", gfm, tt.want, got)
			}
		}

		// Code spans keep their text as written.
		code := children[3].Children[0]
		if code.Type != "CodeSpan" || code.DirectText() != "a &amp; b" {
			t.Errorf("gfm=%v: expected raw code span text, got %s %q", gfm, code.Type, code.DirectText())
		}
	}
}

func TestMarkdownParser_SoftBreakJoinsRun(t *testing.T) {
	tree := parseMarkdown(t, "hello world\nsecond line here\n", true)

	para := tree.Root.Children[0]
	if len(para.Children) != 1 {
		t.Fatalf("expected a single text node, got %d", len(para.Children))
	}
	if got := para.Children[0].Value; got != "hello world\nsecond line here" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestMarkdownParser_HardBreakSplitsText(t *testing.T) {
	tree := parseMarkdown(t, "first line\\\nsecond line\n", true)

	para := tree.Root.Children[0]
	var kinds []string
	for _, c := range para.Children {
		kinds = append(kinds, c.Type)
	}
	if strings.Join(kinds, ",") != "Text,Break,Text" {
		t.Fatalf("expected Text,Break,Text, got %v", kinds)
	}
	if para.Children[0].Value != "first line" || para.Children[2].Value != "second line" {
		t.Errorf("unexpected texts %q and %q", para.Children[0].Value, para.Children[2].Value)
	}
}
