package compile

import (
	"github.com/delaneyj/bindparty/dom"
)

// Kind is the facet of a node a binding drives.
type Kind uint8

const (
	KindText  Kind = iota + 1 // text content
	KindHTML                  // inner markup
	KindModel                 // form value, two-way
	KindEvent                 // event listener, no watcher
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHTML:
		return "html"
	case KindModel:
		return "model"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

type updater func(node *dom.Node, value any) error

// directives maps a directive suffix to the binding it declares.
var directives = map[string]Kind{
	"text":  KindText,
	"html":  KindHTML,
	"model": KindModel,
}

var updaters = map[Kind]updater{
	KindText: func(node *dom.Node, value any) error {
		node.SetTextContent(Stringify(value))
		return nil
	},
	KindHTML: func(node *dom.Node, value any) error {
		return node.SetInnerHTML(Stringify(value))
	},
	KindModel: func(node *dom.Node, value any) error {
		node.SetValue(Stringify(value))
		return nil
	},
}
