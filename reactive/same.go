package reactive

import "reflect"

// Same reports whether a write of b over a would be a no-op.
//
// Comparable values compare with ==. Maps, pointers, funcs, channels and
// slices compare by reference. Pointers to zero-size values may share an
// address, so they never compare the same and such a write always notifies.
// An Object is the same as the map or Fields it was observed from.
func Same(a, b any) bool {
	if o, ok := a.(*Object); ok && o != nil && o.src != nil {
		if _, isObject := b.(*Object); !isObject {
			a = o.src
		}
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer:
		if va.Type().Elem().Size() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
