package enumparam

import (
	"cmp"
	"reflect"
)

// CastFrom assigns source to target when source converts to a valid value of
// target's type. Sources are the inputs Parse accepts. target is left
// untouched on failure.
func CastFrom(target Enumerate, source any) bool {
	if isNil(target) {
		return false
	}
	t, err := TypeFor(reflect.TypeOf(target))
	if err != nil {
		return false
	}

	v, err := Parse(t, source)
	if err != nil || v == nil {
		return false
	}
	target.SetInt(v.Int())
	return true
}

// CastTo converts v to Q. Supported targets are int, int32, int64, float64
// and the native enumeration type of v.
func CastTo[Q any](v Enumerate) (Q, bool) {
	var target Q
	if isNil(v) {
		return target, false
	}

	switch p := any(&target).(type) {
	case *int:
		*p = v.Int()
	case *int32:
		*p = int32(v.Int())
	case *int64:
		*p = int64(v.Int())
	case *float64:
		*p = float64(v.Int())
	default:
		rt := reflect.TypeOf(&target).Elem()
		if rt != v.UnderlyingType() {
			return target, false
		}
		reflect.ValueOf(&target).Elem().Set(reflect.ValueOf(v.Int()).Convert(rt))
	}
	return target, true
}

// Compare orders two values by their integer value.
func Compare(a, b Enumerate) int {
	return cmp.Compare(a.Int(), b.Int())
}
