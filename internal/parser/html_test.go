package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/markdownql/internal/doctree"
)

func TestHTMLParser_HeadingsAndParagraphs(t *testing.T) {
	input := `<html><head><title>Guide</title><style>p {}</style></head>
<body>
  <div class="content">
    <h1>  Getting   started </h1>
    <p>Install the <code>tool</code> first.</p>
  </div>
  <ul><li><p>nested</p></li></ul>
  <script>var x = "<p>no</p>";</script>
</body></html>`

	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", tree.Title)
	}

	children := tree.Root.Children
	if len(children) != 3 {
		t.Fatalf("expected h1, p and ul at the root, got %d children", len(children))
	}

	if children[0].Kind != doctree.KindHeading || children[0].Level != 1 {
		t.Errorf("expected level-1 heading, got %s level %d", children[0].Kind, children[0].Level)
	}
	if got := children[0].DirectText(); got != "Getting started" {
		t.Errorf("expected %q, got %q", "Getting started", got)
	}

	if children[1].Kind != doctree.KindParagraph {
		t.Errorf("expected paragraph, got %s", children[1].Kind)
	}
	if got := children[1].DirectText(); got != "Install the  first." {
		t.Errorf("expected inline code to be skipped, got %q", got)
	}

	if children[2].Kind != doctree.KindOther || children[2].Type != "ul" {
		t.Errorf("expected ul container, got %s %q", children[2].Kind, children[2].Type)
	}
}

func TestHTMLParser_FilenameTitleFallback(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader("<p>x</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", tree.Title)
	}
	if len(tree.Root.Children) != 1 || tree.Root.Children[0].DirectText() != "x" {
		t.Errorf("expected a single paragraph, got %+v", tree.Root.Children)
	}
}
