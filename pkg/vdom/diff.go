package vdom

import "reflect"

// booleanAttrs are attributes whose host semantics are controlled by
// presence, not value. A falsy new value removes the attribute instead
// of setting it to "false".
var booleanAttrs = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"selected":  true,
	"readonly":  true,
	"multiple":  true,
	"required":  true,
	"autofocus": true,
	"hidden":    true,
	"open":      true,
}

// Diff compares two VNode trees and returns the Op that transforms a
// host node materialized from prev into the representation of next.
// It is pure and total: any pair of inputs (including nils) yields an Op.
func Diff(prev, next *VNode) Op {
	// Both absent - nothing to do.
	if prev == nil && next == nil {
		return Op{Kind: OpNone}
	}

	// Shape mismatch: one side absent, differing kinds, or differing
	// tags. Tag equality is required for any finer-grained diff.
	if prev == nil || next == nil || prev.Kind != next.Kind {
		return Op{Kind: OpReplace, Node: next}
	}

	if prev.Kind == KindText {
		if prev.Text != next.Text {
			return Op{Kind: OpText, Text: next.Text}
		}
		return Op{Kind: OpNone}
	}

	if prev.Tag != next.Tag {
		return Op{Kind: OpReplace, Node: next}
	}

	attrs := DiffAttrs(prev.Props, next.Props)
	children := DiffChildren(prev.Children, next.Children)

	if len(attrs) == 0 && allChildrenNone(children) {
		return Op{Kind: OpNone}
	}
	return Op{Kind: OpUpdate, Attrs: attrs, Children: children}
}

// DiffAttrs compares two prop maps and returns the attribute edits.
// Iteration covers the union of keys; order across the union is not
// significant to correctness.
func DiffAttrs(prev, next Props) []AttrPatch {
	var patches []AttrPatch

	// Removed or changed.
	for key, prevVal := range prev {
		if key == "key" {
			continue // Reconciliation key, not a real attribute
		}
		nextVal, exists := next[key]
		if !exists {
			patches = append(patches, AttrPatch{Remove: true, Key: key})
			continue
		}
		if propsEqual(prevVal, nextVal) {
			continue
		}
		patches = append(patches, setOrRemove(key, nextVal))
	}

	// Added.
	for key, nextVal := range next {
		if key == "key" {
			continue
		}
		if _, exists := prev[key]; !exists {
			patches = append(patches, setOrRemove(key, nextVal))
		}
	}

	return patches
}

// setOrRemove emits a Set patch, except for boolean attributes with a
// falsy value, which are removed so presence semantics stay correct.
func setOrRemove(key string, val any) AttrPatch {
	if booleanAttrs[key] && isFalsy(val) {
		return AttrPatch{Remove: true, Key: key}
	}
	return AttrPatch{Key: key, Value: val}
}

// DiffChildren walks the two child lists positionally, index by index.
// Children that shift position without a stable key are diffed in place
// and may churn; keyed reconciliation is the only escape hatch, and a
// key mismatch at the same index forces a replace even when tags match.
func DiffChildren(prev, next []*VNode) []ChildPatch {
	maxLen := len(prev)
	if len(next) > maxLen {
		maxLen = len(next)
	}

	var patches []ChildPatch
	for i := 0; i < maxLen; i++ {
		switch {
		case i >= len(prev):
			patches = append(patches, ChildPatch{Kind: ChildAppend, Node: next[i]})
		case i >= len(next):
			patches = append(patches, ChildPatch{Kind: ChildRemove, Index: i})
		default:
			op := diffChild(prev[i], next[i])
			patches = append(patches, ChildPatch{Kind: ChildUpdate, Index: i, Op: op})
		}
	}
	return patches
}

// diffChild diffs two children occupying the same index.
func diffChild(prev, next *VNode) Op {
	pk, nk := getKey(prev), getKey(next)
	if (pk != "" || nk != "") && pk != nk {
		// Explicit keys override structural reuse.
		return Op{Kind: OpReplace, Node: next}
	}
	return Diff(prev, next)
}

// getKey extracts the reconciliation key from a node.
func getKey(node *VNode) string {
	if node == nil {
		return ""
	}
	if node.Key != "" {
		return node.Key
	}
	if node.Props == nil {
		return ""
	}
	if key, ok := node.Props["key"].(string); ok {
		return key
	}
	return ""
}

// allChildrenNone reports whether every child patch is a no-op update.
func allChildrenNone(patches []ChildPatch) bool {
	for _, p := range patches {
		if p.Kind != ChildUpdate || p.Op.Kind != OpNone {
			return false
		}
	}
	return true
}

// isFalsy reports whether a prop value counts as absent for boolean
// attribute purposes.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == "" || val == "false"
	case int:
		return val == 0
	case float64:
		return val == 0
	default:
		return false
	}
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types.
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		// Closures minted from one literal share a code pointer, so no
		// cheap identity can tell a fresh handler from a stale one.
		// Handler props are never equal: every render re-sets them and
		// the patcher rebinds, so captured state stays current.
		return false
	}

	// Fallback for maps and other composite values.
	return reflect.DeepEqual(a, b)
}
