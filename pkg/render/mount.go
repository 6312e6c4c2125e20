package render

import (
	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/vdom"
)

// mountRecord is the one piece of ambient state per host container: the
// last virtual tree rendered there and the host node it produced. It is
// overwritten on every successful patch and never shared between
// containers.
type mountRecord struct {
	vnode *vdom.VNode
	node  *dom.Node
}

// AppendTo renders vnode into container. The first call for a container
// materializes the tree and appends it; subsequent calls diff against
// the container's cached tree and patch the mounted host node in place.
// It returns the current mounted host node.
func (e *Engine) AppendTo(vnode *vdom.VNode, container *dom.Node) *dom.Node {
	if container == nil || vnode == nil {
		return nil
	}

	rec := e.mounts[container]
	if rec == nil {
		node := e.Render(vnode)
		container.AppendChild(node)
		e.mounts[container] = &mountRecord{vnode: vnode, node: node}
		return node
	}

	op := vdom.Diff(rec.vnode, vnode)
	rec.node = e.Apply(rec.node, op)
	rec.vnode = vnode
	return rec.node
}

// Mounted returns the last virtual tree applied to container, or nil
// before the first mount.
func (e *Engine) Mounted(container *dom.Node) *vdom.VNode {
	if rec := e.mounts[container]; rec != nil {
		return rec.vnode
	}
	return nil
}

// MountedNode returns the host node currently mounted in container, or
// nil.
func (e *Engine) MountedNode(container *dom.Node) *dom.Node {
	if rec := e.mounts[container]; rec != nil {
		return rec.node
	}
	return nil
}

// Unmount removes the mounted host tree from container, detaches every
// handler the engine installed in it, and drops the mount record.
func (e *Engine) Unmount(container *dom.Node) {
	rec := e.mounts[container]
	if rec == nil {
		return
	}
	if rec.node != nil {
		e.release(rec.node)
		rec.node.Detach()
	}
	delete(e.mounts, container)
}
