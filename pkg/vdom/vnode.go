package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text leaf
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is one virtual UI node. A VNode tree describes the desired shape
// of a host subtree. Trees are immutable by convention: a render pass
// produces a fresh tree, it is never edited in place.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes, in order
	Key      string   // Reconciliation key
	Text     string   // For KindText
}

// Props holds attributes and event handlers. Values are strings, bools,
// numbers, nested map[string]string (style, data), or funcs (handlers).
type Props map[string]any

// IsInteractive returns true if this node has event handlers attached.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler attribute.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
