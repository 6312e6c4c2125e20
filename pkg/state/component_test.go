package state

import (
	"fmt"
	"testing"

	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/render"
	"github.com/loom-ui/loom/pkg/vdom"
)

func counterView(s *Store) *vdom.VNode {
	return vdom.Div(
		vdom.P(fmt.Sprintf("count: %v", s.Get("count"))),
	)
}

func TestComponentMountRenders(t *testing.T) {
	container := dom.NewElement("div")
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, counterView)

	if c.Node() != nil {
		t.Fatal("component must not render before Mount")
	}

	c.Mount()

	node := c.Node()
	if node == nil || node.Text() != "count: 0" {
		t.Fatalf("mounted text = %q, want count: 0", node.Text())
	}
	c.Mount() // second mount is a no-op
	if len(container.Children()) != 1 {
		t.Error("double mount duplicated the tree")
	}
}

func TestComponentSetPatches(t *testing.T) {
	container := dom.NewElement("div")
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, counterView)
	c.Mount()
	node := c.Node()

	c.Set("count", 1)

	if c.Node() != node {
		t.Error("write must patch the mounted node, not rebuild it")
	}
	if node.Text() != "count: 1" {
		t.Errorf("text = %q, want count: 1", node.Text())
	}
}

func TestComponentNoopWriteSkipsRender(t *testing.T) {
	container := dom.NewElement("div")
	renders := 0
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, func(s *Store) *vdom.VNode {
		renders++
		return counterView(s)
	})
	c.Mount()
	if renders != 1 {
		t.Fatalf("renders = %d, want 1 after mount", renders)
	}

	c.Set("count", 0)
	if renders != 1 {
		t.Errorf("renders = %d, want 1 (no-op write must not render)", renders)
	}
}

func TestComponentUpdateBatchRendersOnce(t *testing.T) {
	container := dom.NewElement("div")
	renders := 0
	c := NewComponent(render.New(), container, map[string]any{"a": 1, "b": 2}, func(s *Store) *vdom.VNode {
		renders++
		return vdom.Div(vdom.Textf("%v %v", s.Get("a"), s.Get("b")))
	})
	c.Mount()

	c.Update(map[string]any{"a": 10, "b": 20})

	if renders != 2 {
		t.Errorf("renders = %d, want 2 (mount + one batch render)", renders)
	}
	if c.Node().Text() != "10 20" {
		t.Errorf("text = %q, want 10 20", c.Node().Text())
	}
}

func TestComponentWithProps(t *testing.T) {
	container := dom.NewElement("div")
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, counterView).
		WithProps(map[string]any{"count": 7}).
		Mount()

	if c.Node().Text() != "count: 7" {
		t.Errorf("text = %q, want count: 7", c.Node().Text())
	}

	c.WithProps(map[string]any{"count": 8})
	if c.Node().Text() != "count: 8" {
		t.Errorf("text = %q, want count: 8 after post-mount props", c.Node().Text())
	}
}

func TestComponentReentrantWriteCoalesces(t *testing.T) {
	container := dom.NewElement("div")

	renders := 0
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, func(s *Store) *vdom.VNode {
		renders++
		// A handler writing state mid-render defers to one trailing
		// cycle instead of nesting.
		if s.Get("count") == 1 {
			s.Set("count", 2)
		}
		return counterView(s)
	})
	c.Mount()
	renders = 0

	c.Set("count", 1)

	if got := c.Get("count"); got != 2 {
		t.Errorf("count = %v, want 2 (re-entrant write committed)", got)
	}
	if c.Node().Text() != "count: 2" {
		t.Errorf("text = %q, want count: 2 (trailing render ran)", c.Node().Text())
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2 (original + one trailing, no nesting)", renders)
	}
}

func TestComponentEventHandlerWrite(t *testing.T) {
	container := dom.NewElement("div")
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, func(s *Store) *vdom.VNode {
		return vdom.Div(
			vdom.Button(vdom.OnClick(func() {
				s.Set("count", s.Get("count").(int)+1)
			}), "inc"),
			vdom.P(fmt.Sprintf("count: %v", s.Get("count"))),
		)
	})
	c.Mount()

	button := c.Node().Query("button")
	button.Dispatch(&dom.Event{Type: "click"})

	if c.Node().Query("p").Text() != "count: 1" {
		t.Errorf("text = %q, want count: 1 after click", c.Node().Query("p").Text())
	}

	// The patched button carries the rebound handler; a second click
	// still increments exactly once.
	button = c.Node().Query("button")
	button.Dispatch(&dom.Event{Type: "click"})
	if c.Node().Query("p").Text() != "count: 2" {
		t.Errorf("text = %q, want count: 2 after second click", c.Node().Query("p").Text())
	}
}

func TestComponentUnmount(t *testing.T) {
	container := dom.NewElement("div")
	renders := 0
	c := NewComponent(render.New(), container, map[string]any{"count": 0}, func(s *Store) *vdom.VNode {
		renders++
		return counterView(s)
	})
	c.Mount()
	c.Unmount()

	if len(container.Children()) != 0 {
		t.Error("host tree not removed on unmount")
	}

	before := renders
	c.Set("count", 1)
	if renders != before {
		t.Error("unmounted component must not react to writes")
	}
	c.Unmount() // already unmounted, no-op
}
