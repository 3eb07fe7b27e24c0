package reactive

import (
	"sort"
)

// Field is one key of an ordered composite value.
type Field struct {
	Key   string
	Value any
}

// Fields is a composite value whose keys are enumerated in slice order.
type Fields []Field

// Get returns the value of the first field named key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Observe makes value reactive and returns it as an Object.
//
// Composite values are map[string]any, Fields and *Object; anything else,
// slices included, is left untouched and Observe returns nil. Map keys are
// enumerated in sorted order. Observing an Object again redefines each of its
// keys with the value read through its own getter.
func Observe(rc *ReactiveContext, value any) *Object {
	if rc == nil {
		rc = &ReactiveContext{}
	}
	return observe(rc, "", value)
}

func observe(rc *ReactiveContext, path string, value any) *Object {
	switch v := value.(type) {
	case *Object:
		if v == nil {
			return nil
		}
		for _, key := range v.Keys() {
			v.Define(key, v.Get(key))
		}
		return v

	case map[string]any:
		if v == nil {
			return nil
		}
		o := newObject(rc, path, v)
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			o.Define(key, v[key])
		}
		return o

	case Fields:
		if v == nil {
			return nil
		}
		o := newObject(rc, path, v)
		for _, field := range v {
			o.Define(field.Key, field.Value)
		}
		return o

	default:
		return nil
	}
}
