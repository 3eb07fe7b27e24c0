package dom

import (
	"bytes"
	"io"

	"github.com/valyala/quicktemplate"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

// Render writes n and its subtree as HTML. Form values set through SetValue
// are written as the value attribute of input elements and as the content
// of textareas.
func Render(w io.Writer, n *Node) error {
	var buf bytes.Buffer
	qw := quicktemplate.AcquireWriter(&buf)
	renderNode(qw, n)
	quicktemplate.ReleaseWriter(qw)

	_, err := w.Write(buf.Bytes())
	return err
}

// OuterHTML serializes n itself and its subtree.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}

func renderNode(qw *quicktemplate.Writer, n *Node) {
	switch n.Type {
	case DocumentNode:
		renderChildren(qw, n)

	case DoctypeNode:
		qw.N().S("<!DOCTYPE ")
		qw.N().S(n.Data)
		qw.N().S(">")

	case CommentNode:
		qw.N().S("<!--")
		qw.N().S(n.Data)
		qw.N().S("-->")

	case TextNode:
		if n.parent != nil && rawTextElements[n.parent.Tag] {
			qw.N().S(n.Data)
			return
		}
		qw.E().S(n.Data)

	case ElementNode:
		qw.N().S("<")
		qw.N().S(n.Tag)
		wroteValue := false
		for _, a := range n.attrs {
			value := a.Value
			if a.Name == "value" && n.Tag == "input" && n.value != nil {
				value = *n.value
				wroteValue = true
			}
			renderAttr(qw, a.Name, value)
		}
		if n.Tag == "input" && n.value != nil && !wroteValue {
			renderAttr(qw, "value", *n.value)
		}
		qw.N().S(">")

		if voidElements[n.Tag] {
			return
		}
		if n.Tag == "textarea" && n.value != nil {
			qw.E().S(*n.value)
		} else {
			renderChildren(qw, n)
		}

		qw.N().S("</")
		qw.N().S(n.Tag)
		qw.N().S(">")
	}
}

func renderAttr(qw *quicktemplate.Writer, name, value string) {
	qw.N().S(" ")
	qw.N().S(name)
	qw.N().S(`="`)
	qw.E().S(value)
	qw.N().S(`"`)
}

func renderChildren(qw *quicktemplate.Writer, n *Node) {
	for _, c := range n.children {
		renderNode(qw, c)
	}
}
