package compile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/delaneyj/bindparty/dom"
	"github.com/delaneyj/bindparty/reactive"
)

const (
	DefaultDirectivePrefix = "my-"
	DefaultEventPrefix     = "@"
)

var ErrHandlerNotFound = errors.New("handler not found")

var interpolation = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Scope is the evaluation context bindings read from, write to, and look
// event handlers up in.
type Scope interface {
	reactive.Scope
	Method(name string) (dom.Listener, bool)
}

// Binding describes one wired expression.
type Binding struct {
	Node *dom.Node
	Kind Kind
	Expr string
	// Attr is the attribute that declared the binding, empty for interpolation
	Attr string
}

type Options struct {
	DirectivePrefix string
	EventPrefix     string
	Logger          *slog.Logger
	// OnBind is called once per binding after it is wired.
	OnBind func(Binding)
}

type Compiler struct {
	directivePrefix string
	eventPrefix     string
	logger          *slog.Logger
	onBind          func(Binding)
}

func New(opts Options) *Compiler {
	c := &Compiler{
		directivePrefix: opts.DirectivePrefix,
		eventPrefix:     opts.EventPrefix,
		logger:          opts.Logger,
		onBind:          opts.OnBind,
	}
	if c.directivePrefix == "" {
		c.directivePrefix = DefaultDirectivePrefix
	}
	if c.eventPrefix == "" {
		c.eventPrefix = DefaultEventPrefix
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Compile binds every directive, event attribute and interpolation below
// root to scope, in document order. It stops at the first error; bindings
// made before it stay wired.
func (c *Compiler) Compile(root *dom.Node, scope Scope) error {
	return c.compile(root, scope)
}

func (c *Compiler) compile(parent *dom.Node, scope Scope) error {
	for _, node := range parent.ChildNodes() {
		if node.Type == dom.ElementNode {
			for _, attr := range node.Attributes() {
				if err := c.compileAttr(node, attr, scope); err != nil {
					return err
				}
			}
		} else if expr, ok := interpolated(node); ok {
			if err := c.bind(node, KindText, expr, "", scope); err != nil {
				return &BindError{Path: node.Path(), Err: err}
			}
		}

		// children are read after the attributes ran, so markup injected by
		// an html binding is compiled as well
		if err := c.compile(node, scope); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileAttr(node *dom.Node, attr dom.Attribute, scope Scope) error {
	if name, ok := strings.CutPrefix(attr.Name, c.directivePrefix); ok {
		if kind, known := directives[name]; known {
			if err := c.bind(node, kind, strings.TrimSpace(attr.Value), attr.Name, scope); err != nil {
				return &BindError{Path: node.Path(), Attr: attr.Name, Err: err}
			}
		} else {
			c.logger.Debug("unknown directive", slog.String("attr", attr.Name), slog.String("node", node.Path()))
		}
	}

	if event, ok := strings.CutPrefix(attr.Name, c.eventPrefix); ok {
		if err := c.listen(node, event, strings.TrimSpace(attr.Value), attr.Name, scope); err != nil {
			return &BindError{Path: node.Path(), Attr: attr.Name, Err: err}
		}
	}
	return nil
}

// bind applies the current value once, then leaves one watcher behind to
// apply every later value.
func (c *Compiler) bind(node *dom.Node, kind Kind, expr, attr string, scope Scope) error {
	apply := updaters[kind]
	if err := apply(node, scope.Get(expr)); err != nil {
		return fmt.Errorf("initial %s: %w", kind, err)
	}
	reactive.NewWatcher(scope, expr, func(value any) error {
		return apply(node, value)
	})

	if kind == KindModel {
		node.AddEventListener("input", func(e dom.Event) error {
			return scope.Set(expr, e.Target.Value())
		})
	}

	c.report(Binding{Node: node, Kind: kind, Expr: expr, Attr: attr})
	return nil
}

func (c *Compiler) listen(node *dom.Node, event, method, attr string, scope Scope) error {
	fn, ok := scope.Method(method)
	if !ok {
		return fmt.Errorf("%w: %q for %s", ErrHandlerNotFound, method, event)
	}
	node.AddEventListener(event, fn)

	c.report(Binding{Node: node, Kind: KindEvent, Expr: method, Attr: attr})
	return nil
}

func (c *Compiler) report(b Binding) {
	c.logger.Debug("bound",
		slog.String("kind", b.Kind.String()),
		slog.String("expr", b.Expr),
		slog.String("node", b.Node.Path()),
	)
	if c.onBind != nil {
		c.onBind(b)
	}
}

// interpolated returns the expression of the first {{ }} placeholder of a
// text node.
func interpolated(node *dom.Node) (string, bool) {
	if node.Type != dom.TextNode {
		return "", false
	}
	m := interpolation.FindStringSubmatch(node.Data)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
