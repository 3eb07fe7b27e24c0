package dom

import "fmt"

// Event is what listeners receive. Target is the node the event was
// dispatched on; CurrentTarget is the node whose listener is running.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node
}

type Listener func(e Event) error

// AddEventListener registers fn for events of type typ on n.
func (n *Node) AddEventListener(typ string, fn Listener) {
	if n.listeners == nil {
		n.listeners = map[string][]Listener{}
	}
	n.listeners[typ] = append(n.listeners[typ], fn)
}

// ListenerCount returns how many listeners of type typ n has.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// DispatchEvent runs the listeners of n and then of each ancestor, in
// registration order. The first error stops propagation.
func (n *Node) DispatchEvent(e Event) error {
	if e.Target == nil {
		e.Target = n
	}
	for node := n; node != nil; node = node.parent {
		listeners := node.listeners[e.Type]
		if len(listeners) == 0 {
			continue
		}
		e.CurrentTarget = node
		snapshot := make([]Listener, len(listeners))
		copy(snapshot, listeners)
		for _, fn := range snapshot {
			if err := fn(e); err != nil {
				return fmt.Errorf("%s listener on %s: %w", e.Type, node.Path(), err)
			}
		}
	}
	return nil
}

// Input simulates a user typing value into a form control.
func (n *Node) Input(value string) error {
	n.SetValue(value)
	return n.DispatchEvent(Event{Type: "input"})
}

// Click dispatches a click event on n.
func (n *Node) Click() error {
	return n.DispatchEvent(Event{Type: "click"})
}
