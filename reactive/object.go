package reactive

import (
	"fmt"
	"log/slog"
	"slices"
)

type cell struct {
	value any
	dep   *Dep
}

// Object is an observed composite value. Each reactive key is a cell holding
// its value and the Dep of everything that read it while registering.
type Object struct {
	rc   *ReactiveContext
	path string
	// src is the map or Fields this object was observed from
	src   any
	keys  []string
	cells map[string]*cell
	plain map[string]any
}

func newObject(rc *ReactiveContext, path string, src any) *Object {
	return &Object{
		rc:    rc,
		path:  path,
		src:   src,
		cells: map[string]*cell{},
		plain: map[string]any{},
	}
}

func (o *Object) Context() *ReactiveContext {
	return o.rc
}

// Path is the dotted location of this object below the observed root.
func (o *Object) Path() string {
	return o.path
}

func (o *Object) childPath(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

// Keys returns every own key in the order it was added.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) Has(key string) bool {
	if _, ok := o.cells[key]; ok {
		return true
	}
	_, ok := o.plain[key]
	return ok
}

func (o *Object) IsReactive(key string) bool {
	_, ok := o.cells[key]
	return ok
}

// Dep returns the dependency set of a reactive key, or nil.
func (o *Object) Dep(key string) *Dep {
	c, ok := o.cells[key]
	if !ok {
		return nil
	}
	return c.dep
}

// Define makes key reactive with value as its initial value. Composite values
// are observed first. Redefining a key replaces its Dep, so earlier
// subscribers are no longer notified.
func (o *Object) Define(key string, value any) {
	path := o.childPath(key)
	if nested := observe(o.rc, path, value); nested != nil {
		value = nested
	}

	if _, ok := o.cells[key]; !ok {
		if _, ok := o.plain[key]; ok {
			delete(o.plain, key)
		} else {
			o.keys = append(o.keys, key)
		}
	}
	o.cells[key] = &cell{
		value: value,
		dep:   NewDep(path),
	}
}

// Get returns the value of key. When a subscriber is registering, it is added
// to the key's Dep. Missing keys read as nil.
func (o *Object) Get(key string) any {
	c, ok := o.cells[key]
	if !ok {
		return o.plain[key]
	}

	if sub := o.rc.target; sub != nil {
		c.dep.AddDep(sub)
	}
	o.rc.Logger().Debug("get", slog.String("key", c.dep.key), slog.Bool("tracking", o.rc.target != nil))

	return c.value
}

// Set stores value under key. A reactive key that already holds the same
// value is left alone; otherwise the new value is observed, stored, and every
// subscriber of the key is updated before Set returns.
//
// Keys that were never defined are stored without reactivity.
func (o *Object) Set(key string, value any) error {
	c, ok := o.cells[key]
	if !ok {
		if _, ok := o.plain[key]; !ok {
			o.keys = append(o.keys, key)
		}
		o.plain[key] = value
		return nil
	}

	if Same(c.value, value) {
		return nil
	}
	o.rc.Logger().Debug("set", slog.String("key", c.dep.key), slog.Any("value", value), slog.Int("subscribers", c.dep.Len()))

	// The composite check is made on the owner, which is always an Object,
	// so every incoming value goes through observe.
	if nested := observe(o.rc, c.dep.key, value); nested != nil {
		value = nested
	}
	c.value = value

	return c.dep.Notify()
}

// Raw copies the object into plain maps without registering anything.
func (o *Object) Raw() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, key := range o.keys {
		out[key] = raw(o.peek(key))
	}
	return out
}

// Fields copies the object into ordered fields without registering anything.
func (o *Object) Fields() Fields {
	out := make(Fields, 0, len(o.keys))
	for _, key := range o.keys {
		v := o.peek(key)
		if nested, ok := v.(*Object); ok {
			v = nested.Fields()
		}
		out = append(out, Field{Key: key, Value: v})
	}
	return out
}

// String formats the untracked contents of the object.
func (o *Object) String() string {
	return fmt.Sprint(o.Raw())
}

func (o *Object) peek(key string) any {
	if c, ok := o.cells[key]; ok {
		return c.value
	}
	return o.plain[key]
}

func raw(v any) any {
	if nested, ok := v.(*Object); ok {
		return nested.Raw()
	}
	return v
}

// Set adds reactivity to key on obj, whether or not the key already exists.
func Set(obj *Object, key string, value any) {
	obj.Define(key, value)
}
