package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/markdownql/internal/doctree"
)

func TestCSVParser_HeaderAndRows(t *testing.T) {
	input := "name,role\nada,engineer\ngrace,admiral,extra\n"
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	children := tree.Root.Children
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[0].Kind != doctree.KindHeading || children[0].DirectText() != "name, role" {
		t.Errorf("expected header heading, got %s %q", children[0].Kind, children[0].DirectText())
	}

	want := []string{"name: ada, role: engineer", "name: grace, role: admiral, extra"}
	for i, w := range want {
		if got := children[i+1].DirectText(); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(tree.Root.Children))
	}
}
