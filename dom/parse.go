package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads an HTML document. Missing html, head and body elements are
// added the way a browser would.
func Parse(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return convert(root), nil
}

func ParseString(markup string) (*Node, error) {
	return Parse(strings.NewReader(markup))
}

// ParseFragment parses markup as the content of an element like context.
func ParseFragment(markup string, context *Node) ([]*Node, error) {
	tag := "body"
	if context != nil && context.Type == ElementNode {
		tag = context.Tag
	}
	htmlContext := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	parsed, err := html.ParseFragment(strings.NewReader(markup), htmlContext)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	nodes := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := convert(p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.children {
		// strings.Builder never fails
		_ = Render(&sb, c)
	}
	return sb.String()
}

// SetInnerHTML replaces the children of n with the parsed markup.
func (n *Node) SetInnerHTML(markup string) error {
	children, err := ParseFragment(markup, n)
	if err != nil {
		return err
	}
	n.replaceChildren(children)
	return nil
}

func convert(h *html.Node) *Node {
	var n *Node
	switch h.Type {
	case html.DocumentNode:
		n = NewDocument()
	case html.ElementNode:
		n = &Node{Type: ElementNode, Tag: h.Data}
		for _, a := range h.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			n.attrs = append(n.attrs, Attribute{Name: name, Value: a.Val})
		}
	case html.TextNode:
		return NewText(h.Data)
	case html.CommentNode:
		return NewComment(h.Data)
	case html.DoctypeNode:
		return &Node{Type: DoctypeNode, Data: h.Data}
	default:
		return nil
	}

	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			n.AppendChild(child)
		}
	}
	return n
}
