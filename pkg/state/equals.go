package state

import "reflect"

// valuesEqual provides type-appropriate equality checking: == for the
// common scalar types and reflect.DeepEqual for composites. Funcs are
// never equal: closures minted from one literal share a code pointer,
// so identity cannot tell a fresh closure from a stale one, and a func
// write always counts as a change.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return false
	}
	return reflect.DeepEqual(a, b)
}
