package dom

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var ErrInvalidSelector = errors.New("invalid selector")

// selector is a single compound selector: tag, #id and .class parts.
type selector struct {
	tag     string
	id      string
	classes mapset.Set[string]
}

func parseSelector(s string) (*selector, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n>+~,[]:*") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}

	sel := &selector{classes: mapset.NewThreadUnsafeSet[string]()}
	rest := s
	for rest != "" {
		i := strings.IndexAny(rest[1:], "#.") + 1
		if i == 0 {
			i = len(rest)
		}
		part := rest[:i]
		rest = rest[i:]

		switch part[0] {
		case '#':
			if len(part) == 1 || sel.id != "" {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
			}
			sel.id = part[1:]
		case '.':
			if len(part) == 1 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
			}
			sel.classes.Add(part[1:])
		default:
			if sel.tag != "" || sel.id != "" || sel.classes.Cardinality() > 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
			}
			sel.tag = strings.ToLower(part)
		}
	}
	return sel, nil
}

func (sel *selector) matches(n *Node) bool {
	if n.Type != ElementNode {
		return false
	}
	if sel.tag != "" && sel.tag != n.Tag {
		return false
	}
	if sel.id != "" {
		if id, _ := n.GetAttribute("id"); id != sel.id {
			return false
		}
	}
	if sel.classes.Cardinality() > 0 {
		class, _ := n.GetAttribute("class")
		have := mapset.NewThreadUnsafeSet(strings.Fields(class)...)
		if !have.IsSuperset(sel.classes) {
			return false
		}
	}
	return true
}

// QuerySelector returns the first descendant element of n, in document
// order, matching a compound selector such as "#app", "div.card" or
// "input#name.wide". It returns nil when nothing matches.
func (n *Node) QuerySelector(s string) (*Node, error) {
	sel, err := parseSelector(s)
	if err != nil {
		return nil, err
	}
	return n.find(sel), nil
}

// QuerySelectorAll returns every matching descendant element in document order.
func (n *Node) QuerySelectorAll(s string) ([]*Node, error) {
	sel, err := parseSelector(s)
	if err != nil {
		return nil, err
	}
	var found []*Node
	n.walk(func(c *Node) {
		if sel.matches(c) {
			found = append(found, c)
		}
	})
	return found, nil
}

func (n *Node) find(sel *selector) *Node {
	for _, c := range n.children {
		if sel.matches(c) {
			return c
		}
		if found := c.find(sel); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}
