package reactive

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Subscriber is anything a Dep can notify.
type Subscriber interface {
	Update() error
}

// Dep is the ordered set of subscribers of one reactive key.
// Registrations are not deduplicated.
type Dep struct {
	id   uint64
	key  string
	subs []Subscriber
}

// NewDep creates the dependency set for the key at path.
func NewDep(path string) *Dep {
	return &Dep{
		id:  xxhash.Sum64String(path),
		key: path,
	}
}

func (d *Dep) ID() uint64 {
	return d.id
}

// Key returns the dotted path of the key this set guards.
func (d *Dep) Key() string {
	return d.key
}

func (d *Dep) Len() int {
	return len(d.subs)
}

// Subscribers returns a copy of the registered subscribers in order.
func (d *Dep) Subscribers() []Subscriber {
	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)
	return subs
}

func (d *Dep) AddDep(sub Subscriber) {
	d.subs = append(d.subs, sub)
}

// Notify updates every subscriber registered when it was called, in
// registration order. The first failing update stops the fan-out.
func (d *Dep) Notify() error {
	subs := d.Subscribers()
	for i, sub := range subs {
		if err := sub.Update(); err != nil {
			return fmt.Errorf("notify %s (subscriber %d of %d): %w", d.key, i+1, len(subs), err)
		}
	}
	return nil
}
