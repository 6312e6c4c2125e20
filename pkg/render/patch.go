package render

import (
	"sort"

	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/vdom"
)

// Apply applies exactly one Op to exactly one host node and returns the
// possibly-new node reference. A Replace swaps the node in the live
// tree, so callers must use the return value rather than assume the
// input reference remains valid. A Replace carrying a nil virtual node
// removes the host node and returns nil.
//
// Precondition: node must be the host node the Op's diff was computed
// against. Shape mismatches after external host mutation are not
// defensively checked; the worst case is an inconsistent render, never
// a panic from this package.
func (e *Engine) Apply(node *dom.Node, op vdom.Op) *dom.Node {
	if node == nil {
		return nil
	}

	switch op.Kind {
	case vdom.OpNone:
		return node

	case vdom.OpText:
		node.SetText(op.Text)
		return node

	case vdom.OpReplace:
		if op.Node == nil {
			e.release(node)
			node.Detach()
			return nil
		}
		replacement := e.Render(op.Node)
		if parent := node.Parent(); parent != nil {
			parent.ReplaceChild(node, replacement)
		}
		e.release(node)
		return replacement

	case vdom.OpUpdate:
		for _, ap := range op.Attrs {
			if ap.Remove {
				e.removeAttribute(node, ap.Key)
			} else {
				e.setAttribute(node, ap.Key, ap.Value)
			}
		}
		e.applyChildren(node, op.Children)
		return node

	default:
		return node
	}
}

// applyChildren applies child patches in three phases: positional
// updates first, then appends, then removals in descending index order.
// This ordering is required: removing before appending or updating, or
// removing in ascending order, corrupts indices mid-patch.
func (e *Engine) applyChildren(node *dom.Node, patches []vdom.ChildPatch) {
	// Phase 1: in-place updates (including text and replace ops).
	for _, p := range patches {
		if p.Kind != vdom.ChildUpdate || p.Op.IsNone() {
			continue
		}
		child := node.ChildAt(p.Index)
		if child == nil {
			e.logger.Warn("child patch skipped: index out of range",
				"index", p.Index, "children", len(node.Children()))
			continue
		}
		e.Apply(child, p.Op)
	}

	// Phase 2: appends.
	for _, p := range patches {
		if p.Kind == vdom.ChildAppend {
			if c := e.Render(p.Node); c != nil {
				node.AppendChild(c)
			}
		}
	}

	// Phase 3: removals, highest index first.
	var removals []int
	for _, p := range patches {
		if p.Kind == vdom.ChildRemove {
			removals = append(removals, p.Index)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(removals)))
	for _, i := range removals {
		if removed := node.RemoveChildAt(i); removed != nil {
			e.release(removed)
		}
	}
}
