package dom

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// NodeType is the node type discriminator. Values match the DOM's nodeType.
type NodeType uint8

const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	CommentNode  NodeType = 8
	DocumentNode NodeType = 9
	DoctypeNode  NodeType = 10
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	case DoctypeNode:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// Attribute is one name/value pair, in source order.
type Attribute struct {
	Name  string
	Value string
}

// Node is a DOM-like tree node.
type Node struct {
	Type NodeType
	Tag  string // lower-case tag name for ElementNode
	Data string // text for TextNode, CommentNode and DoctypeNode

	parent    *Node
	children  []*Node
	attrs     []Attribute
	value     *string
	listeners map[string][]Listener
}

func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

func NewElement(tag string, attrs ...Attribute) *Node {
	return &Node{
		Type:  ElementNode,
		Tag:   strings.ToLower(tag),
		attrs: slices.Clone(attrs),
	}
}

func NewText(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Data: text}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// ChildNodes returns a snapshot of the children in document order.
func (n *Node) ChildNodes() []*Node {
	return slices.Clone(n.children)
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// AppendChild moves child under n, after its last child.
func (n *Node) AppendChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Append builds a subtree inline and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = slices.Delete(n.children, i, i+1)
			child.parent = nil
			return
		}
	}
}

func (n *Node) replaceChildren(children []*Node) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	for _, c := range children {
		n.AppendChild(c)
	}
}

// Attributes returns a snapshot of the attributes in source order.
func (n *Node) Attributes() []Attribute {
	return slices.Clone(n.attrs)
}

func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Name: name, Value: value})
}

func (n *Node) RemoveAttribute(name string) {
	n.attrs = slices.DeleteFunc(n.attrs, func(a Attribute) bool {
		return a.Name == name
	})
}

// TextContent is the node's own text for character data, or the
// concatenated text of every descendant text node otherwise.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode, CommentNode:
		return n.Data
	case DoctypeNode:
		return ""
	}

	var sb strings.Builder
	var walk func(*Node)
	walk = func(node *Node) {
		for _, c := range node.children {
			switch c.Type {
			case TextNode:
				sb.WriteString(c.Data)
			case ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

// SetTextContent replaces the children of an element with a single text node,
// or none when text is empty. Character data nodes get their text replaced.
func (n *Node) SetTextContent(text string) {
	switch n.Type {
	case TextNode, CommentNode:
		n.Data = text
		return
	case DoctypeNode:
		return
	}

	if text == "" {
		n.replaceChildren(nil)
		return
	}
	n.replaceChildren([]*Node{NewText(text)})
}

// Value is the current form value: the last value set, else the value
// attribute, else the text of a textarea.
func (n *Node) Value() string {
	if n.value != nil {
		return *n.value
	}
	if v, ok := n.GetAttribute("value"); ok {
		return v
	}
	if n.Tag == "textarea" {
		return n.TextContent()
	}
	return ""
}

// SetValue sets the form value without firing any event.
func (n *Node) SetValue(value string) {
	n.value = &value
}

// Path locates n from the root as tag[index] steps.
func (n *Node) Path() string {
	var steps []string
	for node := n; node != nil && node.Type != DocumentNode; node = node.parent {
		steps = append(steps, node.step())
	}
	slices.Reverse(steps)
	return "/" + strings.Join(steps, "/")
}

func (n *Node) step() string {
	name := n.Tag
	switch n.Type {
	case TextNode:
		name = "#text"
	case CommentNode:
		name = "#comment"
	case DoctypeNode:
		name = "#doctype"
	}
	if n.parent == nil {
		return name
	}
	return name + "[" + strconv.Itoa(slices.Index(n.parent.children, n)) + "]"
}

func (n *Node) String() string {
	switch n.Type {
	case ElementNode:
		return fmt.Sprintf("<%s>", n.Tag)
	case TextNode:
		return fmt.Sprintf("%q", n.Data)
	default:
		return n.Type.String()
	}
}
