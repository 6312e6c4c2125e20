package dom

import "strings"

// NodeKind is the host node type discriminator.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a mutable host tree node. It is the in-memory stand-in for a
// browser DOM node: an element with attributes, inline style, dataset-
// style properties, live properties, children, and event listeners, or
// a plain text leaf.
//
// Nodes are not safe for concurrent mutation; the engine drives them
// from a single goroutine.
type Node struct {
	kind     NodeKind
	tag      string
	parent   *Node
	children []*Node

	attrs map[string]string
	style map[string]string
	props map[string]any

	text string

	listeners map[string][]*Listener
	nextLID   int
}

// liveProps are the properties predefined per element tag. Assigning one
// mirrors how a browser keeps element state (an input's value) separate
// from its attributes.
var liveProps = map[string][]string{
	"input":    {"value", "checked", "disabled"},
	"textarea": {"value", "disabled"},
	"select":   {"value", "disabled"},
	"option":   {"value", "selected", "disabled"},
	"button":   {"disabled"},
	"details":  {"open"},
	"dialog":   {"open"},
}

// NewElement creates an element node with the given tag.
func NewElement(tag string) *Node {
	n := &Node{
		kind:  ElementNode,
		tag:   tag,
		attrs: make(map[string]string),
		style: make(map[string]string),
		props: make(map[string]any),
	}
	for _, p := range liveProps[tag] {
		switch p {
		case "value":
			n.props[p] = ""
		default:
			n.props[p] = false
		}
	}
	return n
}

// NewText creates a text leaf with the given content.
func NewText(content string) *Node {
	return &Node{kind: TextNode, text: content}
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Tag returns the element tag name. Empty for text nodes.
func (n *Node) Tag() string { return n.tag }

// Parent returns the parent node, or nil for a detached root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The slice is shared; callers must
// not mutate it directly.
func (n *Node) Children() []*Node { return n.children }

// ChildAt returns the child at index i, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AppendChild appends child after the existing children. A child already
// attached elsewhere is detached first.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertChildAt inserts child at index i, shifting later children right.
// An index past the end appends.
func (n *Node) InsertChildAt(i int, child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = n
	if i < 0 {
		i = 0
	}
	if i >= len(n.children) {
		n.children = append(n.children, child)
		return
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// ReplaceChild substitutes newChild for oldChild at the same position.
// It is a no-op if oldChild is not a child of n.
func (n *Node) ReplaceChild(oldChild, newChild *Node) {
	for i, c := range n.children {
		if c == oldChild {
			newChild.Detach()
			newChild.parent = n
			n.children[i] = newChild
			oldChild.parent = nil
			return
		}
	}
}

// RemoveChildAt removes and returns the child at index i, or nil if out
// of range.
func (n *Node) RemoveChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	child := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return child
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// IndexIn returns the node's index within parent, or -1.
func (n *Node) IndexIn(parent *Node) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// SetText overwrites the node's text content. On an element it replaces
// all children with a single text leaf.
func (n *Node) SetText(content string) {
	if n.kind == TextNode {
		n.text = content
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	n.AppendChild(NewText(content))
}

// Text returns the node's text content: the leaf content for a text
// node, the concatenated descendant text for an element.
func (n *Node) Text() string {
	if n.kind == TextNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// SetAttr sets a string attribute.
func (n *Node) SetAttr(key, value string) {
	if n.kind != ElementNode {
		return
	}
	n.attrs[key] = value
}

// Attr returns the attribute value, or "" when absent.
func (n *Node) Attr(key string) string { return n.attrs[key] }

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.attrs[key]
	return ok
}

// RemoveAttr removes an attribute. Removing an absent key is a no-op.
func (n *Node) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// Attrs returns the attribute map. Shared, not a copy.
func (n *Node) Attrs() map[string]string { return n.attrs }

// SetStyle sets one inline style property, leaving others untouched.
func (n *Node) SetStyle(prop, value string) {
	if n.kind != ElementNode {
		return
	}
	n.style[prop] = value
}

// Style returns one inline style property, or "" when unset.
func (n *Node) Style(prop string) string { return n.style[prop] }

// Styles returns the inline style map. Shared, not a copy.
func (n *Node) Styles() map[string]string { return n.style }

// ClearStyle drops the entire inline style.
func (n *Node) ClearStyle() {
	for k := range n.style {
		delete(n.style, k)
	}
}

// HasProp reports whether key names a live property on this element.
func (n *Node) HasProp(key string) bool {
	_, ok := n.props[key]
	return ok
}

// SetProp assigns a live property. Assigning a key that is not live for
// this tag creates it; the materializer only assigns existing ones.
func (n *Node) SetProp(key string, value any) {
	if n.kind != ElementNode {
		return
	}
	n.props[key] = value
}

// Prop returns the live property value, or nil when absent.
func (n *Node) Prop(key string) any { return n.props[key] }
