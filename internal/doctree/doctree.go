package doctree

import "strings"

// Kind identifies the type of a Node.
type Kind int

const (
	KindRoot Kind = iota
	KindHeading
	KindParagraph
	KindText
	// KindOther covers every node type the query engine does not extract
	// (lists, block quotes, code blocks, emphasis, links, tables, ...).
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Node is one element of a parsed document.
type Node struct {
	Kind     Kind
	Type     string  // Source node type name, e.g. "Emphasis" or "li" (informational)
	Level    int     // Heading level 1-6 (0 for non-headings)
	Value    string  // Literal value of text nodes
	Children []*Node // Child nodes in document order
}

// DocTree is the root of a parsed document.
type DocTree struct {
	Title string // Document title (from metadata or filename)
	Root  *Node  // Always of KindRoot
}

// NewRoot returns an empty root node.
func NewRoot() *Node {
	return &Node{Kind: KindRoot, Type: "Document"}
}

// Text returns a text leaf.
func Text(value string) *Node {
	return &Node{Kind: KindText, Type: "Text", Value: value}
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// IsContainer reports whether n can hold block-level content that a deep
// traversal should descend into. Headings, paragraphs and text are leaves.
func (n *Node) IsContainer() bool {
	return n.Kind == KindRoot || n.Kind == KindOther
}

// DirectText concatenates the values of n's direct Text children.
// Non-text children are skipped without being descended into.
func (n *Node) DirectText() string {
	var buf strings.Builder
	for _, c := range n.Children {
		if c.Kind == KindText {
			buf.WriteString(c.Value)
		}
	}
	return buf.String()
}

// Walk visits n and its descendants in pre-order. If fn returns false the
// node's children are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
