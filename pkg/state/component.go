package state

import (
	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/render"
	"github.com/loom-ui/loom/pkg/vdom"
)

// RenderFunc computes a virtual tree from the current state.
type RenderFunc func(s *Store) *vdom.VNode

// Component binds a store to one mount point: every effective state
// write re-invokes the render function, diffs the result against the
// container's cached tree, and patches the mounted host node before the
// write returns.
//
// Re-entrant writes are serialized: a write issued from inside a
// handler while a render/patch is in flight commits immediately but
// defers its re-render; when the in-flight patch completes, one
// trailing re-render runs against the final state. Nested renders never
// interleave.
type Component struct {
	store     *Store
	renderFn  RenderFunc
	engine    *render.Engine
	container *dom.Node

	unsubscribe func()
	mounted     bool
	rendering   bool
	dirty       bool
}

// NewComponent creates a component over an initial record and a render
// function. It does not render until Mount is called.
func NewComponent(engine *render.Engine, container *dom.Node, initial map[string]any, renderFn RenderFunc) *Component {
	return &Component{
		store:     NewStore(initial),
		renderFn:  renderFn,
		engine:    engine,
		container: container,
	}
}

// WithProps merges an externally supplied props record into the wrapped
// state. Must be called before Mount; later calls behave like a batch
// Update.
func (c *Component) WithProps(props map[string]any) *Component {
	if !c.mounted {
		for k, v := range props {
			c.store.Set(k, v)
		}
		return c
	}
	c.store.Update(props)
	return c
}

// Mount performs the first render into the container and starts
// reacting to state writes. Mounting twice is a no-op.
func (c *Component) Mount() *Component {
	if c.mounted {
		return c
	}
	c.mounted = true
	c.unsubscribe = c.store.Subscribe(c.rerender)
	c.rerender()
	return c
}

// Unmount stops reacting to writes and removes the mounted host tree.
func (c *Component) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.engine.Unmount(c.container)
}

// Store returns the wrapped store for direct reads and writes.
func (c *Component) Store() *Store { return c.store }

// Get reads one state key.
func (c *Component) Get(key string) any { return c.store.Get(key) }

// Set writes one state key; an effective write triggers a synchronous
// render-diff-patch cycle.
func (c *Component) Set(key string, value any) { c.store.Set(key, value) }

// Update writes a batch of keys with at most one re-render.
func (c *Component) Update(changes map[string]any) { c.store.Update(changes) }

// Node returns the currently mounted host node, or nil before Mount.
func (c *Component) Node() *dom.Node {
	return c.engine.MountedNode(c.container)
}

// rerender runs one render-diff-patch cycle, coalescing any re-entrant
// writes into a single trailing cycle.
func (c *Component) rerender() {
	if !c.mounted {
		return
	}
	if c.rendering {
		c.dirty = true
		return
	}
	c.rendering = true
	for {
		c.dirty = false
		c.engine.AppendTo(c.renderFn(c.store), c.container)
		if !c.dirty {
			break
		}
	}
	c.rendering = false
}
